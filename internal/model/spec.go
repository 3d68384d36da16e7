package model

// MaxSubHeaders caps how many sub-headers a single HeaderSpec entry may
// declare (the catalog layout family never nests more than three: L/W/H or
// the three container types).
const MaxSubHeaders = 3

// SubHeader pairs a sub-header label in the source table with the sub-field
// name to emit in the output record.
type SubHeader struct {
	Name     string
	Selected string
}

// HeaderEntry describes one desired output field: the target header to look
// for in the table, the output field name, and up to MaxSubHeaders nested
// sub-headers. Header names are free text and matched case-insensitively.
type HeaderEntry struct {
	Header        string
	Selected      string
	UseSubheaders bool
	SubHeaders    []SubHeader
}

// HeaderSpec is the ordered, caller-supplied description of the output
// schema. Order matters: when several entries match the same column, the
// first entry in declaration order wins.
type HeaderSpec []HeaderEntry

// SubHeaderNames returns the declared sub-header labels of the entry.
func (e HeaderEntry) SubHeaderNames() []string {
	names := make([]string, 0, len(e.SubHeaders))
	for _, sh := range e.SubHeaders {
		if sh.Name != "" {
			names = append(names, sh.Name)
		}
	}
	return names
}

// Find returns the first entry whose header equals name, or nil.
func (s HeaderSpec) Find(name string) *HeaderEntry {
	for i := range s {
		if s[i].Header == name {
			return &s[i]
		}
	}
	return nil
}
