package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/cognicore/tema/pkg/tema"
	"github.com/cognicore/tema/pkg/tema/bow"
	"github.com/cognicore/tema/pkg/tema/config"
	"github.com/cognicore/tema/pkg/tema/corpus"
	"github.com/cognicore/tema/pkg/tema/project"
)

func main() {
	var (
		cfgPath   = flag.String("config", "", "Path to YAML config (overrides the other flags)")
		input     = flag.String("input", "", "Path to corpus CSV with id,text,category columns (required)")
		stoplist  = flag.String("stoplist", "", "Stopword list YAML")
		lexicon   = flag.String("lexicon", "", "Tag lexicon file")
		vectors   = flag.String("vectors", "", "Pretrained word vectors (word2vec text format)")
		language  = flag.String("language", "es", "Annotation language")
		features  = flag.Int("features", 500, "Vocabulary size cap")
		maxDF     = flag.Int("maxdf", 200, "Drop terms appearing in more than this many documents")
		tfidf     = flag.Bool("tfidf", true, "Weight features by tf-idf instead of raw counts")
		trees     = flag.Int("trees", 200, "Random forest size")
		topicsN   = flag.Int("topics", 10, "Number of LDA topics")
		topTerms  = flag.Int("top-terms", 8, "Terms listed per topic and top features reported")
		holdout   = flag.Float64("holdout", 0.25, "Held-out evaluation fraction")
		seed      = flag.Int64("seed", 1, "Split/model seed")
		threshold = flag.Float64("threshold", 0.75, "Strong topic-association cutoff")
		plotPath  = flag.String("plot", "", "Optional: write a 2D projection scatter plot here")
		useTSNE   = flag.Bool("tsne", false, "Plot with t-SNE instead of the Fisher projection")
	)
	flag.Parse()

	cfg := &config.Config{
		Language:   *language,
		Corpus:     *input,
		Stoplist:   *stoplist,
		Lexicon:    *lexicon,
		Vectors:    *vectors,
		Features:   *features,
		MaxDocFreq: *maxDF,
		TFIDF:      *tfidf,
		Trees:      *trees,
		Topics:     *topicsN,
		TopTerms:   *topTerms,
		Holdout:    *holdout,
		Seed:       *seed,
		Threshold:  *threshold,
	}
	if *cfgPath != "" {
		loaded, err := config.LoadConfig(*cfgPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}
	if cfg.Corpus == "" {
		log.Fatal("--input (or a config with a corpus path) required")
	}

	loader := config.Loader{
		Language:     cfg.Language,
		StoplistPath: cfg.Stoplist,
		LexiconPath:  cfg.Lexicon,
		VectorsPath:  cfg.Vectors,
	}
	comp, err := loader.Load()
	if err != nil {
		log.Fatalf("load resources: %v", err)
	}

	tbl, err := corpus.Load(cfg.Corpus)
	if err != nil {
		log.Fatalf("load corpus: %v", err)
	}

	pipe := tema.New(tema.Options{Annotator: comp.Tagger, Filter: comp.Filter})
	if _, err := pipe.AnnotateTable(tbl); err != nil {
		log.Fatalf("annotate: %v", err)
	}

	analysis, err := pipe.Run(tbl, tema.RunConfig{
		Vector: bow.Config{
			MaxFeatures: cfg.Features,
			MaxDocFreq:  cfg.MaxDocFreq,
			TFIDF:       cfg.TFIDF,
		},
		Trees:     cfg.Trees,
		Topics:    cfg.Topics,
		TopTerms:  cfg.TopTerms,
		Holdout:   cfg.Holdout,
		Seed:      cfg.Seed,
		Threshold: cfg.Threshold,
	})
	if err != nil {
		log.Fatalf("run: %v", err)
	}

	out, err := json.MarshalIndent(analysis.Report, "", "  ")
	if err != nil {
		log.Fatalf("marshal report: %v", err)
	}
	fmt.Println(string(out))

	if *plotPath != "" {
		if err := writePlot(analysis, *useTSNE, *plotPath); err != nil {
			log.Fatalf("plot: %v", err)
		}
		log.Printf("wrote %s", *plotPath)
	}
}

func writePlot(a *tema.Analysis, useTSNE bool, path string) error {
	rows := bow.Dense(a.Matrix)
	X := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		X.SetRow(i, row)
	}

	var coords *mat.Dense
	var title string
	if useTSNE {
		coords = project.TSNE(X)
		title = "t-SNE projection"
	} else {
		var err error
		coords, err = project.Fisher(X, a.Labels)
		if err != nil {
			return err
		}
		title = "Fisher discriminant projection"
	}
	return project.Scatter(coords, a.Labels, a.Encoder.Classes(), title, path)
}
