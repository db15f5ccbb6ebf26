package markup

import (
	"strings"
	"testing"

	"sealant/internal/bundle"
	"sealant/internal/diag"
)

func sealedAssets(t *testing.T, digests map[string]string) bundle.AssetMap {
	t.Helper()
	m := make(bundle.AssetMap, len(digests))
	for path, digest := range digests {
		a := bundle.NewAsset(path, []byte("content of "+path))
		a.Integrity = digest
		m.Add(a)
	}
	return m
}

func TestInjectScriptWithQueryString(t *testing.T) {
	assets := sealedAssets(t, map[string]string{"app.js": "sha256-AAAA"})
	bag := diag.NewBag(10)
	in := NewInjector(assets, "", diag.BagReporter{Bag: bag})

	doc := `<html><head></head><body><script src="app.js?v=123"></script></body></html>`
	out, count, err := in.InjectFile([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one injected tag, got %d", count)
	}
	html := string(out)
	if !strings.Contains(html, `integrity="sha256-AAAA"`) {
		t.Fatalf("integrity attribute missing: %s", html)
	}
	if !strings.Contains(html, `crossorigin="anonymous"`) {
		t.Fatalf("crossorigin attribute missing: %s", html)
	}
	if bag.HasWarnings() {
		t.Fatalf("unexpected warnings: %v", bag.Items())
	}
}

func TestInjectUnresolvableReferenceWarnsAndLeavesTag(t *testing.T) {
	assets := sealedAssets(t, map[string]string{"app.js": "sha256-AAAA"})
	bag := diag.NewBag(10)
	in := NewInjector(assets, "", diag.BagReporter{Bag: bag})

	doc := `<html><head></head><body><script src="missing.js"></script></body></html>`
	out, count, err := in.InjectFile([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Fatalf("nothing should be injected, got %d", count)
	}
	if strings.Contains(string(out), "integrity=") {
		t.Fatalf("tag must stay unmodified: %s", out)
	}
	if !bag.HasWarnings() {
		t.Fatalf("expected a warning for the unresolved reference")
	}
	d := bag.Items()[0]
	if d.Code != diag.MarkupUnresolvedRef || d.Ref != "missing.js" {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
}

func TestInjectStylesheetWithPublicPath(t *testing.T) {
	assets := sealedAssets(t, map[string]string{"css/site.css": "sha384-BBBB"})
	in := NewInjector(assets, "/static/", diag.NopReporter{})

	doc := `<html><head><link rel="stylesheet" href="/static/css/site.css"></head><body></body></html>`
	out, count, err := in.InjectFile([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one injected tag, got %d", count)
	}
	if !strings.Contains(string(out), `integrity="sha384-BBBB"`) {
		t.Fatalf("stylesheet integrity missing: %s", out)
	}
}

func TestInjectSkipsTagsWithExistingIntegrity(t *testing.T) {
	assets := sealedAssets(t, map[string]string{"app.js": "sha256-NEW"})
	in := NewInjector(assets, "", diag.NopReporter{})

	doc := `<html><body><script src="app.js" integrity="sha256-OLD"></script></body></html>`
	out, count, err := in.InjectFile([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Fatalf("pre-attributed tag must be skipped")
	}
	if !strings.Contains(string(out), "sha256-OLD") {
		t.Fatalf("existing integrity must survive: %s", out)
	}
}

func TestInjectIgnoresUnrelatedTags(t *testing.T) {
	assets := sealedAssets(t, map[string]string{"icon.png": "sha256-ICON"})
	bag := diag.NewBag(10)
	in := NewInjector(assets, "", diag.BagReporter{Bag: bag})

	doc := `<html><head><link rel="icon" href="icon.png"></head><body><img src="icon.png"></body></html>`
	_, count, err := in.InjectFile([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Fatalf("icon links and img tags are not integrity targets")
	}
	if bag.HasWarnings() {
		t.Fatalf("unrelated tags must not produce warnings: %v", bag.Items())
	}
}

func TestAssetKeyNormalization(t *testing.T) {
	in := NewInjector(nil, "/assets/", diag.NopReporter{})
	cases := []struct {
		ref  string
		want string
	}{
		{"/assets/app.js?v=1", "app.js"},
		{"/assets/sub/../app.js", "app.js"},
		{"app.js#frag", "app.js"},
		{"/bare.js", "bare.js"},
	}
	for _, tc := range cases {
		if got := in.assetKey(tc.ref); got != tc.want {
			t.Fatalf("assetKey(%q) = %q, want %q", tc.ref, got, tc.want)
		}
	}
}
