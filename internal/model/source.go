package model

// Path represents a file system path.
type Path string

// File represents a source file loaded for conversion.
type File struct {
	Path    Path
	Content []byte
	// Hash is the SHA-256 of Content when it was read.
	Hash string
}

// PlanEntry describes one edit of a script in source terms, for display.
type PlanEntry struct {
	Unit    int
	Kind    EditKind
	Line    int
	Subject string
	Detail  string
}

// FileResult is the outcome of converting one file.
type FileResult struct {
	Path    Path
	Script  EditScript
	Plan    []PlanEntry
	Output  []byte
	Diff    string
	Written bool
	Err     error
}

// Changed reports whether the conversion produced different text.
func (r FileResult) Changed() bool {
	return r.Err == nil && r.Script.Len() > 0
}
