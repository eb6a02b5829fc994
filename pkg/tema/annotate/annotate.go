// Package annotate turns raw text into per-token linguistic annotations:
// surface form, lemma, coarse part-of-speech, fine tag and stopword flag,
// plus an averaged embedding vector for the whole document when a word
// vector model is attached.
package annotate

// Coarse part-of-speech tags (Universal Dependencies naming).
const (
	Noun      = "NOUN"
	ProperN   = "PROPN"
	Verb      = "VERB"
	Adjective = "ADJ"
	Adverb    = "ADV"
	Determin  = "DET"
	Pronoun   = "PRON"
	Adposit   = "ADP"
	Conjunct  = "CONJ"
	Numeral   = "NUM"
	Interject = "INTJ"
	Punct     = "PUNCT"
	Other     = "X"
)

// Token is one annotated token in document order.
type Token struct {
	Surface string
	Lemma   string
	POS     string // coarse tag
	Tag     string // fine-grained tag, falls back to the coarse tag
	Stop    bool
}

// Annotation is the result of annotating one document.
type Annotation struct {
	Tokens []Token
	Vector []float64 // mean word vector, nil when no model is attached
}

// Annotator produces annotations for a single document. Implementations
// must be deterministic: the same text always yields the same annotation.
type Annotator interface {
	Annotate(text string) (Annotation, error)
}

// Lemmatizer reduces a surface form to its dictionary form.
type Lemmatizer interface {
	Lemma(word string) string
}

// WordVectors resolves pretrained embedding vectors for single words.
type WordVectors interface {
	Vector(word string) ([]float64, bool)
	Dim() int
}
