package model

// Result is the per-file outcome of the batch driver. A failed file carries
// Err and no artifacts; the batch inspects this instead of unwinding.
type Result struct {
	RelPath       string
	TokenPath     string
	MetadataPath  string
	Record        Record
	NumTokens     int
	SkippedEvents int
	Err           error
}

func (r Result) Failed() bool {
	return r.Err != nil
}
