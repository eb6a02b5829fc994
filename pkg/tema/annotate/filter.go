package annotate

import "strings"

// ContentFilter keeps only tokens whose coarse part-of-speech carries
// content (nouns, proper nouns, verbs, adjectives, adverbs) and renders the
// survivors as a whitespace-joined lemma sequence in original order.
type ContentFilter struct {
	keep map[string]struct{}
}

// NewContentFilter creates a filter with the default content tag set.
func NewContentFilter() *ContentFilter {
	return &ContentFilter{keep: map[string]struct{}{
		Noun:      {},
		ProperN:   {},
		Verb:      {},
		Adjective: {},
		Adverb:    {},
	}}
}

// Keep reports whether tokens with the given coarse tag survive filtering.
func (f *ContentFilter) Keep(pos string) bool {
	_, ok := f.keep[pos]
	return ok
}

// Lemmas returns the content lemmas of an annotation in original order.
func (f *ContentFilter) Lemmas(ann Annotation) []string {
	var out []string
	for _, tok := range ann.Tokens {
		if !f.Keep(tok.POS) {
			continue
		}
		if tok.Lemma == "" {
			continue
		}
		out = append(out, tok.Lemma)
	}
	return out
}

// Filter returns the whitespace-joined content lemmas of an annotation.
// A document with no qualifying tokens yields the empty string; downstream
// vectorization treats such documents as all-zero rows rather than errors.
func (f *ContentFilter) Filter(ann Annotation) string {
	return strings.Join(f.Lemmas(ann), " ")
}
