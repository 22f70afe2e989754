package domain

// ClassifiedEntry is the structured result of successfully parsing a clipboard line.
// All three fields are non-empty whenever an entry is produced.
type ClassifiedEntry struct {
	Tag     string // lowercase matched prefix, or FallbackTag
	Section string // display name the tag resolves to
	Text    string // trimmed remainder after the colon
}

// TagMap maps lowercase tags to their display section names.
type TagMap map[string]string

// DefaultTagMap returns the built-in tag mapping.
func DefaultTagMap() TagMap {
	return TagMap{
		"todo": "TODO",
		"fu":   "Follow Up",
		"misc": "Miscellany",
	}
}

// MergeTagMap overlays custom entries onto the built-in defaults.
// Keys are lowercased; blank keys are dropped.
func MergeTagMap(custom map[string]string) TagMap {
	tags := DefaultTagMap()
	for key, section := range custom {
		if norm := normalizeTag(key); norm != "" {
			tags[norm] = section
		}
	}
	return tags
}
