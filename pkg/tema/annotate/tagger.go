package annotate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cognicore/tema/pkg/tema/internalerr"
)

// LexEntry is one row of the tag lexicon: a surface form with its lemma and
// part-of-speech tags.
type LexEntry struct {
	Surface string
	Lemma   string
	POS     string
	Tag     string
}

// Tagger is a lexicon-driven annotator for Spanish text. Forms missing from
// the lexicon fall back to suffix heuristics, with NOUN as the default;
// mis-taggings of ambiguous forms are accepted rather than special-cased.
type Tagger struct {
	lexicon   map[string]LexEntry
	stopwords map[string]struct{}
	lemmas    Lemmatizer  // optional dictionary lemmatizer
	vectors   WordVectors // optional pretrained embeddings
}

// NewTagger creates a tagger from a tag lexicon and a stopword list.
func NewTagger(entries []LexEntry, stopwords []string) *Tagger {
	lex := make(map[string]LexEntry, len(entries))
	for _, e := range entries {
		lex[strings.ToLower(e.Surface)] = e
	}
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Tagger{lexicon: lex, stopwords: stops}
}

// SetLemmatizer assigns a dictionary lemmatizer used for forms the lexicon
// does not cover.
func (t *Tagger) SetLemmatizer(l Lemmatizer) {
	t.lemmas = l
}

// SetWordVectors assigns a pretrained embedding model. When set, each
// annotation carries the mean vector of its known word tokens.
func (t *Tagger) SetWordVectors(v WordVectors) {
	t.vectors = v
}

// Annotate tokenizes and tags one document. Empty or whitespace-only text
// is rejected; callers are expected to skip such documents and continue.
func (t *Tagger) Annotate(text string) (Annotation, error) {
	if strings.TrimSpace(text) == "" {
		return Annotation{}, fmt.Errorf("%w: empty text", internalerr.ErrAnnotation)
	}

	var ann Annotation
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		ann.Tokens = append(ann.Tokens, t.tagWord(current.String()))
		current.Reset()
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-':
			current.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			s := string(r)
			ann.Tokens = append(ann.Tokens, Token{Surface: s, Lemma: s, POS: Punct, Tag: Punct})
		}
	}
	flush()

	if t.vectors != nil {
		ann.Vector = t.meanVector(ann.Tokens)
	}

	return ann, nil
}

// tagWord resolves lemma and tags for a single word token.
func (t *Tagger) tagWord(surface string) Token {
	lower := strings.ToLower(surface)

	tok := Token{Surface: surface}
	if _, ok := t.stopwords[lower]; ok {
		tok.Stop = true
	}

	if e, ok := t.lexicon[lower]; ok {
		tok.Lemma = e.Lemma
		tok.POS = e.POS
		tok.Tag = e.Tag
		if tok.Tag == "" {
			tok.Tag = e.POS
		}
		return tok
	}

	tok.POS = t.guessPOS(surface, lower)
	tok.Tag = tok.POS
	tok.Lemma = lower
	if t.lemmas != nil && tok.POS != Numeral && tok.POS != ProperN {
		if lemma := t.lemmas.Lemma(lower); lemma != "" {
			tok.Lemma = lemma
		}
	}
	return tok
}

// guessPOS applies Spanish suffix heuristics to forms the lexicon misses.
// Unknown forms default to NOUN, which keeps content filtering idempotent:
// a kept lemma re-annotated is never reclassified out of the content set.
func (t *Tagger) guessPOS(surface, lower string) string {
	if isNumeric(lower) {
		return Numeral
	}
	if r := []rune(surface); unicode.IsUpper(r[0]) {
		return ProperN
	}
	if strings.HasSuffix(lower, "mente") {
		return Adverb
	}
	switch {
	case hasAnySuffix(lower, "ando", "iendo", "yendo"),
		len(lower) > 3 && hasAnySuffix(lower, "ar", "er", "ir", "arse", "erse", "irse"),
		hasAnySuffix(lower, "aba", "aban", "ía", "ían", "aron", "ieron", "ará", "erá", "irá"):
		return Verb
	case hasAnySuffix(lower, "oso", "osa", "osos", "osas", "ivo", "iva", "ivos", "ivas",
		"able", "ables", "ible", "ibles", "íble", "íbles", "al", "ales"):
		return Adjective
	}
	return Noun
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' && r != ',' && r != '.' {
			return false
		}
	}
	return true
}

// meanVector averages the vectors of the word tokens the model knows.
// Documents with no known words get the zero vector.
func (t *Tagger) meanVector(tokens []Token) []float64 {
	sum := make([]float64, t.vectors.Dim())
	known := 0
	for _, tok := range tokens {
		if tok.POS == Punct {
			continue
		}
		v, ok := t.vectors.Vector(strings.ToLower(tok.Surface))
		if !ok {
			v, ok = t.vectors.Vector(tok.Lemma)
		}
		if !ok {
			continue
		}
		for i := range sum {
			sum[i] += v[i]
		}
		known++
	}
	if known > 0 {
		for i := range sum {
			sum[i] /= float64(known)
		}
	}
	return sum
}
