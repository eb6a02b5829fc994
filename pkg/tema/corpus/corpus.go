// Package corpus loads a labeled document collection from a delimited file
// and holds it as an ordered in-memory table. Row order is fixed at load
// time; every accessor returns values in row order so that feature matrices,
// label vectors and derived columns built from the table stay aligned.
package corpus

import (
	"fmt"

	"github.com/cognicore/tema/pkg/tema/internalerr"
)

// Doc is one corpus row. The loaded fields are immutable; derived fields
// (Filtered, Vector) are appended by later pipeline stages via the Table.
type Doc struct {
	ID       string
	Text     string
	Category string
	Length   int // rune count of the raw text

	Filtered string    // content-lemma rendering, set by the annotation stage
	Vector   []float64 // averaged embedding vector, set by the annotation stage
}

// Table is an ordered document collection with an id index.
type Table struct {
	docs []Doc
	byID map[string]int
}

// NewTable builds a table from pre-constructed docs.
// Duplicate ids are rejected.
func NewTable(docs []Doc) (*Table, error) {
	t := &Table{
		docs: docs,
		byID: make(map[string]int, len(docs)),
	}
	for i, d := range docs {
		if _, dup := t.byID[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", internalerr.ErrLoad, d.ID)
		}
		t.byID[d.ID] = i
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.docs)
}

// Doc returns the row at index i.
func (t *Table) Doc(i int) Doc {
	return t.docs[i]
}

// ByID returns the row with the given id.
func (t *Table) ByID(id string) (Doc, bool) {
	i, ok := t.byID[id]
	if !ok {
		return Doc{}, false
	}
	return t.docs[i], true
}

// Texts returns the raw text column in row order.
func (t *Table) Texts() []string {
	out := make([]string, len(t.docs))
	for i, d := range t.docs {
		out[i] = d.Text
	}
	return out
}

// Categories returns the category column in row order.
func (t *Table) Categories() []string {
	out := make([]string, len(t.docs))
	for i, d := range t.docs {
		out[i] = d.Category
	}
	return out
}

// Filtered returns the derived content-lemma column in row order.
func (t *Table) Filtered() []string {
	out := make([]string, len(t.docs))
	for i, d := range t.docs {
		out[i] = d.Filtered
	}
	return out
}

// SetFiltered sets the derived filtered text for row i.
func (t *Table) SetFiltered(i int, s string) {
	t.docs[i].Filtered = s
}

// SetVector sets the derived embedding vector for row i.
func (t *Table) SetVector(i int, v []float64) {
	t.docs[i].Vector = v
}

// Vectors returns the derived embedding column in row order.
// Rows without a vector are nil.
func (t *Table) Vectors() [][]float64 {
	out := make([][]float64, len(t.docs))
	for i, d := range t.docs {
		out[i] = d.Vector
	}
	return out
}
