// Package labels maps categorical string labels to dense integer class ids
// and back. Classes are ordered lexicographically so the mapping depends
// only on the set of observed labels, never on row order.
package labels

import (
	"fmt"
	"sort"

	"github.com/cognicore/tema/pkg/tema/internalerr"
)

// Encoder is a bijective label ↔ id mapping, fixed once fitted.
type Encoder struct {
	classes []string
	ids     map[string]int
}

// NewEncoder fits an encoder on the observed labels.
func NewEncoder(observed []string) *Encoder {
	set := make(map[string]struct{}, len(observed))
	for _, l := range observed {
		set[l] = struct{}{}
	}
	classes := make([]string, 0, len(set))
	for l := range set {
		classes = append(classes, l)
	}
	sort.Strings(classes)

	ids := make(map[string]int, len(classes))
	for i, l := range classes {
		ids[l] = i
	}
	return &Encoder{classes: classes, ids: ids}
}

// Len returns the number of classes.
func (e *Encoder) Len() int {
	return len(e.classes)
}

// Classes returns the class names in id order.
func (e *Encoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// Encode maps a label to its id.
func (e *Encoder) Encode(label string) (int, bool) {
	id, ok := e.ids[label]
	return id, ok
}

// Decode maps an id back to its label.
func (e *Encoder) Decode(id int) (string, bool) {
	if id < 0 || id >= len(e.classes) {
		return "", false
	}
	return e.classes[id], true
}

// EncodeAll encodes a label column, preserving order. A label the encoder
// has never seen is an error.
func (e *Encoder) EncodeAll(observed []string) ([]int, error) {
	out := make([]int, len(observed))
	for i, l := range observed {
		id, ok := e.ids[l]
		if !ok {
			return nil, fmt.Errorf("%w: unknown label %q", internalerr.ErrFit, l)
		}
		out[i] = id
	}
	return out, nil
}
