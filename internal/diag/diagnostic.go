package diag

// Note attaches secondary context to a diagnostic.
type Note struct {
	Ref string
	Msg string
}

// Diagnostic is a single finding produced by a sealing phase. Ref names the
// asset path, chunk name, or tag reference the finding is about; it may be
// empty for run-wide findings.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Ref      string
	Notes    []Note
}
