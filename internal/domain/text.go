package domain

// Text is a single work in the corpus. Loaded once per session from the
// metadata store and treated as immutable afterwards.
type Text struct {
	ID          int
	Title       string
	AuthorID    int
	Tags        []string
	VolumeCount int
	Extra       map[string]string
}

// HasTag reports whether the text carries the given genre tag.
func (t *Text) HasTag(tag string) bool {
	for _, g := range t.Tags {
		if g == tag {
			return true
		}
	}
	return false
}

// Author is a corpus author. Death and birth dates are hijri years; a nil
// pointer means the date is not recorded.
type Author struct {
	ID          int
	Name        string
	DeathDateAH *int
	BirthDateAH *int
	Extra       map[string]string
}

// Placeholder display values substituted when a hit references a text or
// author missing from the metadata snapshot. Hits are never dropped for
// missing metadata.
const (
	PlaceholderTitle  = "(unknown text)"
	PlaceholderAuthor = "(unknown author)"
)
