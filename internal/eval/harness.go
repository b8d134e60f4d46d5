package eval

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"review-insight/backend/internal/llm"
	"review-insight/backend/internal/parse"
)

// DefaultSeed keeps samples identical across runs so the three prompt
// variants are compared on the same inputs.
const DefaultSeed = 42

// DefaultSampleSize caps how many reviews each approach is tested on.
const DefaultSampleSize = 200

const (
	promptTemperature = 0.3
	promptMaxTokens   = 200
	snippetLen        = 100
)

// PredictionRecord is the per-item audit entry for a successful extraction.
// Failed extractions leave no record; they only count in TotalTested.
type PredictionRecord struct {
	Actual        int    `json:"actual"`
	Predicted     int    `json:"predicted"`
	Explanation   string `json:"explanation"`
	Correct       bool   `json:"correct"`
	ReviewSnippet string `json:"review_snippet"`
}

// Result aggregates one approach's run over the sampled dataset.
type Result struct {
	Approach           string             `json:"approach"`
	TotalTested        int                `json:"total_tested"`
	ValidJSONCount     int                `json:"valid_json_count"`
	CorrectPredictions int                `json:"correct_predictions"`
	Predictions        []PredictionRecord `json:"predictions"`
	JSONValidityRate   float64            `json:"json_validity_rate"`
	Accuracy           float64            `json:"accuracy"`
	ElapsedMs          int64              `json:"elapsed_ms"`
}

// HarnessConfig wires the harness dependencies.
type HarnessConfig struct {
	Client llm.Completer
	// Delay is the courtesy pause between LLM calls. Zero disables the
	// throttle (tests run unthrottled).
	Delay time.Duration
	Seed  int64
	// Progress, when set, is invoked after every processed item.
	Progress func(done, total int)
}

// Harness runs one prompt variant sequentially over a deterministic sample.
type Harness struct {
	client   llm.Completer
	limiter  *rate.Limiter
	seed     int64
	progress func(done, total int)
}

// NewHarness constructs a harness from the supplied configuration.
func NewHarness(cfg HarnessConfig) *Harness {
	h := &Harness{
		client:   cfg.Client,
		seed:     cfg.Seed,
		progress: cfg.Progress,
	}
	if h.seed == 0 {
		h.seed = DefaultSeed
	}
	if cfg.Delay > 0 {
		h.limiter = rate.NewLimiter(rate.Every(cfg.Delay), 1)
	}
	return h
}

// Sample returns a deterministic fixed-seed sample of the dataset, clamped to
// the dataset size. The same (dataset, size, seed) triple always yields the
// same rows in the same order.
func Sample(dataset []Review, size int, seed int64) []Review {
	if size > len(dataset) {
		size = len(dataset)
	}
	if size < 0 {
		size = 0
	}
	rng := rand.New(rand.NewSource(seed))
	sample := make([]Review, 0, size)
	for _, idx := range rng.Perm(len(dataset))[:size] {
		sample = append(sample, dataset[idx])
	}
	return sample
}

// Run tests one prompt template against a sample of the dataset. A failed
// call or unparseable response counts only toward the denominator; it never
// aborts the run.
func (h *Harness) Run(ctx context.Context, dataset []Review, approach Approach, sampleSize int) Result {
	start := time.Now()
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	sample := Sample(dataset, sampleSize, h.seed)

	result := Result{
		Approach:    approach.Name,
		TotalTested: len(sample),
		Predictions: []PredictionRecord{},
	}

	for i, review := range sample {
		text := truncate(review.Text, maxReviewLen)
		prompt := RenderPrompt(approach.Template, review.Text)
		response := h.client.Complete(ctx, llm.Request{
			Prompt:      prompt,
			Temperature: promptTemperature,
			MaxTokens:   promptMaxTokens,
		})
		if i == 0 {
			logrus.WithField("approach", approach.Name).Debugf("first raw response: %s", truncate(response, 200))
		}

		if pred, ok := parse.Extract(response); ok {
			result.ValidJSONCount++
			correct := review.Stars == pred.PredictedStars
			if correct {
				result.CorrectPredictions++
			}
			result.Predictions = append(result.Predictions, PredictionRecord{
				Actual:        review.Stars,
				Predicted:     pred.PredictedStars,
				Explanation:   pred.Explanation,
				Correct:       correct,
				ReviewSnippet: truncate(text, snippetLen) + "...",
			})
		}

		if h.progress != nil {
			h.progress(i+1, len(sample))
		}
		if h.limiter != nil && i < len(sample)-1 {
			if err := h.limiter.Wait(ctx); err != nil {
				logrus.WithError(err).Debug("throttle wait interrupted")
			}
		}
	}

	if result.TotalTested > 0 {
		result.JSONValidityRate = float64(result.ValidJSONCount) / float64(result.TotalTested) * 100
	}
	if result.ValidJSONCount > 0 {
		result.Accuracy = float64(result.CorrectPredictions) / float64(result.ValidJSONCount) * 100
	}
	result.ElapsedMs = time.Since(start).Milliseconds()
	return result
}
