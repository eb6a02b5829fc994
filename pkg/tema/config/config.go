// Package config loads the analysis configuration and the linguistic
// resource files (stoplist, tag lexicon, word vectors) and assembles the
// annotation components from them.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/tema/pkg/tema/annotate"
	"github.com/cognicore/tema/pkg/tema/internalerr"
)

// Config is the YAML analysis configuration.
type Config struct {
	Language string `yaml:"language"` // annotation language, e.g. "es"

	Corpus   string `yaml:"corpus"`   // delimited corpus file
	Stoplist string `yaml:"stoplist"` // YAML stopword list
	Lexicon  string `yaml:"lexicon"`  // pipe-delimited tag lexicon
	Vectors  string `yaml:"vectors"`  // word2vec text file, optional

	Features   int     `yaml:"features"`     // vocabulary cap
	MaxDocFreq int     `yaml:"max_doc_freq"` // absolute df ceiling
	TFIDF      bool    `yaml:"tfidf"`
	Trees      int     `yaml:"trees"`
	Topics     int     `yaml:"topics"`
	TopTerms   int     `yaml:"top_terms"`
	Holdout    float64 `yaml:"holdout"`
	Seed       int64   `yaml:"seed"`
	Threshold  float64 `yaml:"threshold"` // strong topic-association cutoff
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrLoad, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrLoad, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks knob ranges and required paths.
func (c *Config) Validate() error {
	if c.Corpus == "" {
		return fmt.Errorf("%w: corpus path required", internalerr.ErrInvalidConfig)
	}
	if c.Holdout < 0 || c.Holdout >= 1 {
		return fmt.Errorf("%w: holdout %v outside [0,1)", internalerr.ErrInvalidConfig, c.Holdout)
	}
	if c.Features < 0 || c.MaxDocFreq < 0 || c.Trees < 0 || c.Topics < 0 || c.TopTerms < 0 {
		return fmt.Errorf("%w: negative knob", internalerr.ErrInvalidConfig)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v outside [0,1]", internalerr.ErrInvalidConfig, c.Threshold)
	}
	return nil
}

// Stoplist is the stopword list file format.
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file.
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrLoad, err)
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrLoad, err)
	}
	return &sl, nil
}

// LoadLexicon loads the tag lexicon.
// Format: surface|lemma|coarse-pos|fine-tag, one entry per line, the fine
// tag optional; blank lines and #-comments are skipped.
func LoadLexicon(path string) ([]annotate.LexEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrLoad, err)
	}

	var entries []annotate.LexEntry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) < 3 {
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		e := annotate.LexEntry{
			Surface: parts[0],
			Lemma:   parts[1],
			POS:     parts[2],
		}
		if len(parts) > 3 {
			e.Tag = parts[3]
		}
		entries = append(entries, e)
	}

	return entries, nil
}
