package domain

import "strings"

// VocabWord is one entry of the shared vocabulary list. The list is
// read-mostly reference data: imports replace it wholesale, they never merge.
type VocabWord struct {
	Word       string
	Meaning    string
	Example    string
	Category   string
	Difficulty string
}

// Key returns the normalized text used to key progress records.
func (w VocabWord) Key() string {
	return NormalizeWord(w.Word)
}

// NormalizeWord lowercases and trims a word so that progress lookups are
// insensitive to casing and stray whitespace.
func NormalizeWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
