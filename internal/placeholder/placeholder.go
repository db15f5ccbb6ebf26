// Package placeholder implements the token codec for not-yet-known digests.
//
// Loader code is generated before any output bytes are final, so it cannot
// carry real digests. Instead a deterministic marker embedding the chunk
// name is emitted, and the resolution pass later replaces the marker with
// the computed digest by exact substring splice. Tokens only ever appear
// inside generated string literals, so an unresolved token stays
// syntactically inert: it reads as a digest that will never verify.
package placeholder

import "strings"

const (
	tokenPrefix = "*-*-*-sealant-sri-pending:"
	tokenSuffix = ":*-*-*"
)

// Token returns the marker for a chunk name. Deterministic and injective:
// the name is embedded verbatim between fixed sentinels that are vanishingly
// unlikely to occur in generated code.
func Token(name string) string {
	return tokenPrefix + name + tokenSuffix
}

// Locate finds the chunk's token in content. Returns the byte offset and
// whether it was found.
func Locate(content, name string) (int, bool) {
	pos := strings.Index(content, Token(name))
	if pos < 0 {
		return 0, false
	}
	return pos, true
}

// Replace splices value over the chunk's token. When the token is absent the
// content is returned unchanged and found is false; absence is a tolerated
// condition (dead branch, optimizer-dropped reference), not an error.
func Replace(content, name, value string) (string, bool) {
	pos, ok := Locate(content, name)
	if !ok {
		return content, false
	}
	token := Token(name)
	return content[:pos] + value + content[pos+len(token):], true
}
