package models

import "strings"

// TagList is an ordered set of memory tags. Insertion order is preserved for
// display and duplicates are rejected with case-sensitive comparison.
type TagList []string

// Has reports whether the exact tag is present.
func (t TagList) Has(tag string) bool {
	for _, existing := range t {
		if existing == tag {
			return true
		}
	}
	return false
}

// Add trims the tag and appends it. Empty strings and exact duplicates are
// rejected; the return value reports whether the list changed.
func (t *TagList) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || t.Has(tag) {
		return false
	}
	*t = append(*t, tag)
	return true
}

// Remove deletes the tag matching exactly by value. Removing a tag that is not
// present leaves the list unchanged.
func (t *TagList) Remove(tag string) bool {
	for i, existing := range *t {
		if existing == tag {
			*t = append((*t)[:i], (*t)[i+1:]...)
			return true
		}
	}
	return false
}

// NormalizeTags builds a TagList from raw input, applying the same trim and
// dedup rules as Add.
func NormalizeTags(raw []string) TagList {
	tags := make(TagList, 0, len(raw))
	for _, tag := range raw {
		tags.Add(tag)
	}
	return tags
}
