package config

import (
	"fmt"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/es"

	"github.com/cognicore/tema/pkg/tema/annotate"
	"github.com/cognicore/tema/pkg/tema/embed"
	"github.com/cognicore/tema/pkg/tema/internalerr"
)

// Loader loads the resource files and constructs annotation components.
type Loader struct {
	Language     string
	StoplistPath string
	LexiconPath  string
	VectorsPath  string
}

// Components holds the assembled annotation stage.
type Components struct {
	Tagger *annotate.Tagger
	Filter *annotate.ContentFilter
	Embeds *embed.Model // nil when no vectors file is configured
}

// Load reads the configured resource files and returns an initialized
// tagger and content filter. A missing stoplist or lexicon path yields an
// empty resource rather than an error, matching exploratory use.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{Filter: annotate.NewContentFilter()}

	var stops []string
	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		stops = sl.Terms
	}

	var entries []annotate.LexEntry
	if l.LexiconPath != "" {
		lex, err := LoadLexicon(l.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		entries = lex
	}

	comp.Tagger = annotate.NewTagger(entries, stops)

	switch l.Language {
	case "", "es":
		lem, err := golem.New(es.New())
		if err != nil {
			return nil, fmt.Errorf("%w: spanish lemmatizer: %v", internalerr.ErrInvalidConfig, err)
		}
		comp.Tagger.SetLemmatizer(lem)
	default:
		return nil, fmt.Errorf("%w: unsupported language %q", internalerr.ErrInvalidConfig, l.Language)
	}

	if l.VectorsPath != "" {
		model, err := embed.Load(l.VectorsPath)
		if err != nil {
			return nil, fmt.Errorf("load vectors: %w", err)
		}
		comp.Embeds = model
		comp.Tagger.SetWordVectors(model)
	}

	return comp, nil
}
