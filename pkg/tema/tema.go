// Package tema chains the full corpus-analysis pipeline: annotation and
// content filtering, bag-of-words or tf-idf vectorization, label encoding,
// random-forest train/eval, LDA topic modeling and 2D projection. Stages
// run synchronously and each stage fully materializes its output; row
// order is preserved end to end so documents, labels and matrix rows stay
// aligned.
package tema

import (
	"errors"
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/cognicore/tema/pkg/tema/annotate"
	"github.com/cognicore/tema/pkg/tema/bow"
	"github.com/cognicore/tema/pkg/tema/classify"
	"github.com/cognicore/tema/pkg/tema/corpus"
	"github.com/cognicore/tema/pkg/tema/internalerr"
	"github.com/cognicore/tema/pkg/tema/labels"
	"github.com/cognicore/tema/pkg/tema/topics"
)

// Pipeline holds the annotation stage shared by every run.
type Pipeline struct {
	annotator annotate.Annotator
	filter    *annotate.ContentFilter
}

// Options configures a Pipeline.
type Options struct {
	Annotator annotate.Annotator
	Filter    *annotate.ContentFilter // defaulted when nil
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	f := opts.Filter
	if f == nil {
		f = annotate.NewContentFilter()
	}
	return &Pipeline{annotator: opts.Annotator, filter: f}
}

// AnnotateTable annotates every row and fills the derived filtered-text
// and embedding columns. A document the annotator rejects is recorded with
// an empty filtered string rather than aborting the batch; the number of
// such documents is returned.
func (p *Pipeline) AnnotateTable(tbl *corpus.Table) (skipped int, err error) {
	for i := 0; i < tbl.Len(); i++ {
		ann, err := p.annotator.Annotate(tbl.Doc(i).Text)
		if err != nil {
			if errors.Is(err, internalerr.ErrAnnotation) {
				tbl.SetFiltered(i, "")
				skipped++
				continue
			}
			return skipped, fmt.Errorf("annotate row %d: %w", i, err)
		}
		tbl.SetFiltered(i, p.filter.Filter(ann))
		if ann.Vector != nil {
			tbl.SetVector(i, ann.Vector)
		}
	}
	return skipped, nil
}

// RunConfig carries the knobs for one analysis run.
type RunConfig struct {
	Vector    bow.Config
	Trees     int
	Topics    int
	TopTerms  int
	Holdout   float64
	Seed      int64
	Threshold float64 // strong topic-association cutoff, e.g. 0.75
}

// FeatureWeight pairs a vocabulary term with its importance score.
type FeatureWeight struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// Report is the human-facing summary of a run.
type Report struct {
	Docs          int             `json:"docs"`
	Skipped       int             `json:"skipped"`
	Classes       map[string]int  `json:"classes"`
	Baseline      float64         `json:"baseline"`
	Vocabulary    int             `json:"vocabulary"`
	TrainAccuracy float64         `json:"train_accuracy"`
	TestAccuracy  float64         `json:"test_accuracy"`
	TopFeatures   []FeatureWeight `json:"top_features"`
	TopicTerms    [][]string      `json:"topic_terms"`
	StrongDocs    []int           `json:"strong_docs_per_topic"`
}

// Analysis bundles the fitted artifacts of one run for further inspection
// (projection, per-document topic weights, predictions).
type Analysis struct {
	Report     Report
	Matrix     *sparse.CSR
	Labels     []int
	Encoder    *labels.Encoder
	Vectorizer *bow.Vectorizer
	Classifier classify.Result
	Topics     *topics.Model
}

// Run executes vectorization, classification and topic modeling over an
// annotated table. AnnotateTable must have filled the filtered column.
func (p *Pipeline) Run(tbl *corpus.Table, cfg RunConfig) (*Analysis, error) {
	if tbl.Len() == 0 {
		return nil, fmt.Errorf("%w: empty corpus", internalerr.ErrLoad)
	}

	filtered := tbl.Filtered()

	vec := bow.New(cfg.Vector)
	X, err := vec.FitTransform(filtered)
	if err != nil {
		return nil, err
	}

	enc := labels.NewEncoder(tbl.Categories())
	y, err := enc.EncodeAll(tbl.Categories())
	if err != nil {
		return nil, err
	}

	if err := checkAlignment(tbl, X, y); err != nil {
		return nil, err
	}

	dense := bow.Dense(X)
	result, err := classify.TrainEval(dense, y, classify.Config{
		Trees:   cfg.Trees,
		Holdout: cfg.Holdout,
		Seed:    cfg.Seed,
	})
	if err != nil {
		return nil, err
	}

	topTerms := cfg.TopTerms
	if topTerms <= 0 {
		topTerms = 8
	}
	model, err := topics.Fit(X, vec.Vocabulary(), topics.Config{
		K:    cfg.Topics,
		Seed: cfg.Seed,
	})
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		Matrix:     X,
		Labels:     y,
		Encoder:    enc,
		Vectorizer: vec,
		Classifier: result,
		Topics:     model,
	}
	a.Report = p.buildReport(tbl, a, cfg, topTerms)

	return a, nil
}

func (p *Pipeline) buildReport(tbl *corpus.Table, a *Analysis, cfg RunConfig, topTerms int) Report {
	rep := Report{
		Docs:          tbl.Len(),
		Classes:       make(map[string]int),
		Baseline:      classify.MajorityBaseline(a.Labels),
		Vocabulary:    len(a.Vectorizer.Vocabulary()),
		TrainAccuracy: a.Classifier.TrainAccuracy,
		TestAccuracy:  a.Classifier.TestAccuracy,
		TopicTerms:    a.Topics.TopTerms(topTerms),
	}
	for i := 0; i < tbl.Len(); i++ {
		doc := tbl.Doc(i)
		rep.Classes[doc.Category]++
		if doc.Filtered == "" {
			rep.Skipped++
		}
	}

	// Importance on the held-out partition, ranked by score.
	dense := bow.Dense(a.Matrix)
	testX := make([][]float64, len(a.Classifier.TestIdx))
	testY := make([]int, len(a.Classifier.TestIdx))
	for i, j := range a.Classifier.TestIdx {
		testX[i] = dense[j]
		testY[i] = a.Labels[j]
	}
	if len(testX) > 0 {
		scores := a.Classifier.Model.FeatureImportance(testX, testY, cfg.Seed)
		rep.TopFeatures = topFeatures(a.Vectorizer.Vocabulary(), scores, topTerms)
	}

	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = 0.75
	}
	rep.StrongDocs = make([]int, a.Topics.K())
	for topic := 0; topic < a.Topics.K(); topic++ {
		rep.StrongDocs[topic] = len(a.Topics.DocsAbove(topic, threshold))
	}

	return rep
}

func topFeatures(vocab []string, scores []float64, n int) []FeatureWeight {
	weights := make([]FeatureWeight, len(vocab))
	for i, term := range vocab {
		weights[i] = FeatureWeight{Term: term, Score: scores[i]}
	}
	for i := 0; i < len(weights); i++ {
		for j := i + 1; j < len(weights); j++ {
			if weights[j].Score > weights[i].Score {
				weights[i], weights[j] = weights[j], weights[i]
			}
		}
	}
	if len(weights) > n {
		weights = weights[:n]
	}
	return weights
}

// checkAlignment verifies the row-alignment invariant between the table,
// the feature matrix and the label vector.
func checkAlignment(tbl *corpus.Table, X *sparse.CSR, y []int) error {
	rows, _ := X.Dims()
	if rows != tbl.Len() || len(y) != tbl.Len() {
		return fmt.Errorf("%w: misaligned rows: corpus %d, matrix %d, labels %d",
			internalerr.ErrFit, tbl.Len(), rows, len(y))
	}
	return nil
}
