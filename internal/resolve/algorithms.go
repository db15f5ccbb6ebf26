package resolve

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"hash"
	"strings"
)

// hashers maps the supported SRI algorithm names to constructors.
var hashers = map[string]func() hash.Hash{
	"sha256": sha256.New,
	"sha384": sha512.New384,
	"sha512": sha512.New,
}

// ParseAlgorithms normalizes the configured hash-algorithm value: a single
// string or a list of strings. Anything else is a configuration error,
// raised before any sealing phase runs.
func ParseAlgorithms(value any) ([]string, error) {
	switch v := value.(type) {
	case string:
		return validateAlgorithms([]string{v})
	case []string:
		return validateAlgorithms(v)
	case []any:
		algos := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("hash algorithm list contains non-string entry %v", item)
			}
			algos = append(algos, s)
		}
		return validateAlgorithms(algos)
	default:
		return nil, fmt.Errorf("hash algorithms must be a string or a list of strings, got %T", value)
	}
}

func validateAlgorithms(algos []string) ([]string, error) {
	if len(algos) == 0 {
		return nil, fmt.Errorf("hash algorithm list is empty")
	}
	out := make([]string, 0, len(algos))
	for _, alg := range algos {
		alg = strings.TrimSpace(strings.ToLower(alg))
		if _, ok := hashers[alg]; !ok {
			return nil, fmt.Errorf("unsupported hash algorithm %q (supported: sha256, sha384, sha512)", alg)
		}
		out = append(out, alg)
	}
	return out, nil
}

// Digest computes the SRI digest string for content: one
// "<alg>-<base64(hash)>" term per configured algorithm, joined by a single
// space, in configuration order. The format is a compatibility contract
// with the runtime verifier and must be reproduced exactly.
func Digest(algorithms []string, content []byte) string {
	terms := make([]string, 0, len(algorithms))
	for _, alg := range algorithms {
		newHash, ok := hashers[alg]
		if !ok {
			continue
		}
		h := newHash()
		h.Write(content)
		terms = append(terms, alg+"-"+base64.StdEncoding.EncodeToString(h.Sum(nil)))
	}
	return strings.Join(terms, " ")
}
