package bundle

// Chunk is one unit of bundle output: a stable name, the output files it
// produced, and the chunks it loads at runtime. Chunks are created by the
// bundler that emitted the manifest; the sealing passes only read them.
type Chunk struct {
	Name     string   `json:"name"`
	Files    []string `json:"files"`
	Children []string `json:"children,omitempty"`
	Entry    bool     `json:"entry,omitempty"`
}

// PrimaryFile returns the first declared output file. Placeholder
// substitution targets only this file; secondary files (source maps and the
// like) are hashed as-is by the sweeper.
func (c *Chunk) PrimaryFile() (string, bool) {
	if len(c.Files) == 0 {
		return "", false
	}
	return c.Files[0], true
}
