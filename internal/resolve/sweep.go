package resolve

import "sealant/internal/bundle"

// Sweep attaches a digest to every asset that resolution did not reach:
// static copies, secondary chunk files, anything outside the graph. Content
// is hashed as-is, no substitution. Returns the swept paths in sorted order.
func Sweep(assets bundle.AssetMap, algorithms []string) []string {
	swept := make([]string, 0)
	for _, path := range assets.Paths() {
		asset := assets[path]
		if asset.Integrity != "" {
			continue
		}
		asset.Integrity = Digest(algorithms, asset.Bytes())
		swept = append(swept, path)
	}
	return swept
}
