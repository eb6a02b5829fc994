package corpus

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/oklog/ulid/v2"
	"golang.org/x/net/html"

	"github.com/cognicore/tema/pkg/tema/internalerr"
)

// Required header names. Extra columns are ignored.
const (
	colID       = "id"
	colText     = "text"
	colCategory = "category"
)

// Load reads a UTF-8 comma-delimited file with a header row containing at
// least the columns id, text and category. The text column is treated as an
// opaque string apart from markup stripping; rows with a blank id are
// assigned a ULID so every row has a usable key.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrLoad, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // header decides the width

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrLoad, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: empty file", internalerr.ErrLoad, path)
	}

	idx, err := headerIndex(records[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrLoad, path, err)
	}

	entropy := ulid.Monotonic(rand.New(rand.NewSource(ulidSeed)), 0)

	docs := make([]Doc, 0, len(records)-1)
	for n, rec := range records[1:] {
		if len(rec) <= idx.max() {
			return nil, fmt.Errorf("%w: %s: row %d has %d columns", internalerr.ErrLoad, path, n+2, len(rec))
		}
		id := strings.TrimSpace(rec[idx.id])
		if id == "" {
			id = ulid.MustNew(ulid.Now(), entropy).String()
		}
		text := StripMarkup(rec[idx.text])
		docs = append(docs, Doc{
			ID:       id,
			Text:     text,
			Category: strings.TrimSpace(rec[idx.category]),
			Length:   len([]rune(text)),
		})
	}

	return NewTable(docs)
}

// Fixed entropy keeps the random half of generated ids reproducible; the
// timestamp half follows the clock.
const ulidSeed = 1

type columns struct {
	id, text, category int
}

func (c columns) max() int {
	m := c.id
	if c.text > m {
		m = c.text
	}
	if c.category > m {
		m = c.category
	}
	return m
}

func headerIndex(header []string) (columns, error) {
	idx := columns{id: -1, text: -1, category: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case colID:
			idx.id = i
		case colText:
			idx.text = i
		case colCategory:
			idx.category = i
		}
	}
	if idx.id < 0 || idx.text < 0 || idx.category < 0 {
		return idx, fmt.Errorf("header must contain id, text and category, got %v", header)
	}
	return idx, nil
}

// StripMarkup extracts the visible text from a string that may carry HTML
// fragments. Malformed markup falls back to the raw string.
func StripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}
