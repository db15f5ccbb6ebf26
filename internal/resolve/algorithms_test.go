package resolve

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"reflect"
	"strings"
	"testing"
)

func TestParseAlgorithmsSingleString(t *testing.T) {
	got, err := ParseAlgorithms("SHA256")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"sha256"}) {
		t.Fatalf("got %v", got)
	}
}

func TestParseAlgorithmsList(t *testing.T) {
	got, err := ParseAlgorithms([]string{"sha256", "sha384"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"sha256", "sha384"}) {
		t.Fatalf("got %v", got)
	}
}

func TestParseAlgorithmsAnyList(t *testing.T) {
	got, err := ParseAlgorithms([]any{"sha512"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"sha512"}) {
		t.Fatalf("got %v", got)
	}
}

func TestParseAlgorithmsRejectsEmpty(t *testing.T) {
	if _, err := ParseAlgorithms([]string{}); err == nil {
		t.Fatalf("empty list must be a configuration error")
	}
}

func TestParseAlgorithmsRejectsUnknown(t *testing.T) {
	if _, err := ParseAlgorithms([]string{"md5"}); err == nil {
		t.Fatalf("md5 must be rejected")
	}
}

func TestParseAlgorithmsRejectsBadTypes(t *testing.T) {
	if _, err := ParseAlgorithms(42); err == nil {
		t.Fatalf("non-string input must be rejected")
	}
	if _, err := ParseAlgorithms([]any{1}); err == nil {
		t.Fatalf("non-string list entry must be rejected")
	}
}

func TestDigestSingleAlgorithm(t *testing.T) {
	content := []byte("alert('hi');")
	sum := sha256.Sum256(content)
	want := "sha256-" + base64.StdEncoding.EncodeToString(sum[:])
	if got := Digest([]string{"sha256"}, content); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDigestMultiAlgorithmOrder(t *testing.T) {
	content := []byte("body{}")
	got := Digest([]string{"sha256", "sha384"}, content)

	parts := strings.Split(got, " ")
	if len(parts) != 2 {
		t.Fatalf("expected two space-separated terms, got %q", got)
	}
	if !strings.HasPrefix(parts[0], "sha256-") || !strings.HasPrefix(parts[1], "sha384-") {
		t.Fatalf("terms out of configured order: %q", got)
	}

	sum256 := sha256.Sum256(content)
	if parts[0] != "sha256-"+base64.StdEncoding.EncodeToString(sum256[:]) {
		t.Fatalf("sha256 term wrong: %q", parts[0])
	}
	sum384 := sha512.Sum384(content)
	if parts[1] != "sha384-"+base64.StdEncoding.EncodeToString(sum384[:]) {
		t.Fatalf("sha384 term wrong: %q", parts[1])
	}
}
