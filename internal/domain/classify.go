package domain

import (
	"regexp"
	"strings"
)

// UnknownTagPolicy controls what happens to a line whose tag is not in the map.
type UnknownTagPolicy int

const (
	// UnknownMapToDefault substitutes FallbackTag for unrecognized tags.
	UnknownMapToDefault UnknownTagPolicy = iota
	// UnknownIgnore drops lines with unrecognized tags.
	UnknownIgnore
)

// FallbackTag is the reserved tag substituted under UnknownMapToDefault.
const FallbackTag = "misc"

var tagLineRe = regexp.MustCompile(`^([A-Za-z0-9]+):(.*)$`)

// Classify parses raw clipboard text into a ClassifiedEntry.
//
// Only the first non-blank line is consulted. It must match "<tag>:<rest>"
// where tag is alphanumeric; the tag is lowercased and rest is trimmed.
// Returns nil when nothing matches, the remainder is empty, the tag is
// unknown under UnknownIgnore, or the resolved section is blank.
// Classify is pure: same input, same output, no external state.
func Classify(raw string, tags TagMap, policy UnknownTagPolicy) *ClassifiedEntry {
	var line string
	for _, candidate := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			line = trimmed
			break
		}
	}
	if line == "" {
		return nil
	}

	m := tagLineRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}

	tag := strings.ToLower(m[1])
	text := strings.TrimSpace(m[2])
	if text == "" {
		return nil
	}

	if _, known := tags[tag]; !known {
		if policy == UnknownIgnore {
			return nil
		}
		tag = FallbackTag
	}

	section := strings.TrimSpace(tags[tag])
	if section == "" {
		return nil
	}

	return &ClassifiedEntry{Tag: tag, Section: section, Text: text}
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
