// Package diffview turns before/after file content into two independently
// highlighted columns and renders them into a shared scroll region.
package diffview

// LineKind is the classification of one line of diff content
type LineKind int

const (
	LineUnchanged LineKind = iota
	LineAdded
	LineRemoved
)

func (k LineKind) String() string {
	switch k {
	case LineAdded:
		return "added"
	case LineRemoved:
		return "removed"
	default:
		return "unchanged"
	}
}

// Classify looks only at the first byte of line
func Classify(line string) LineKind {
	if line == "" {
		return LineUnchanged
	}
	switch line[0] {
	case '-':
		return LineRemoved
	case '+':
		return LineAdded
	default:
		return LineUnchanged
	}
}
