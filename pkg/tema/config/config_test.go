package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/tema/pkg/tema/annotate"
	"github.com/cognicore/tema/pkg/tema/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "config.yaml", `
language: es
corpus: corpus.csv
features: 500
max_doc_freq: 200
tfidf: true
trees: 200
topics: 10
top_terms: 8
holdout: 0.25
seed: 1
threshold: 0.75
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Features != 500 || cfg.MaxDocFreq != 200 || !cfg.TFIDF {
		t.Errorf("vectorizer knobs wrong: %+v", cfg)
	}
	if cfg.Holdout != 0.25 || cfg.Seed != 1 {
		t.Errorf("split knobs wrong: %+v", cfg)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing corpus", "language: es\n"},
		{"bad holdout", "corpus: c.csv\nholdout: 1.5\n"},
		{"negative knob", "corpus: c.csv\ntrees: -1\n"},
		{"bad threshold", "corpus: c.csv\nthreshold: 2\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeFile(t, "config.yaml", c.yaml)
			if _, err := LoadConfig(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, internalerr.ErrLoad) {
		t.Errorf("expected ErrLoad, got %v", err)
	}
}

func TestLoadStoplist(t *testing.T) {
	path := writeFile(t, "stoplist.yaml", "terms:\n  - el\n  - la\n  - de\n")

	sl, err := LoadStoplist(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sl.Terms) != 3 || sl.Terms[0] != "el" {
		t.Errorf("terms = %v", sl.Terms)
	}
}

func TestLoadLexicon(t *testing.T) {
	path := writeFile(t, "lexicon.txt", `
# function words
el|el|DET
corre|correr|VERB|VMIP3S0

malformed line
perro|perro
`)

	entries, err := LoadLexicon(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 valid entries, got %d: %v", len(entries), entries)
	}
	if entries[0].POS != annotate.Determin {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[1].Lemma != "correr" || entries[1].Tag != "VMIP3S0" {
		t.Errorf("second entry = %+v", entries[1])
	}
}

func TestLoaderUnsupportedLanguage(t *testing.T) {
	l := Loader{Language: "xx"}
	if _, err := l.Load(); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoaderDefaults(t *testing.T) {
	l := Loader{Language: "es"}
	comp, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if comp.Tagger == nil || comp.Filter == nil {
		t.Error("loader should build a tagger and filter even without resource files")
	}
	if comp.Embeds != nil {
		t.Error("no vectors path configured, embeddings should be nil")
	}
}
