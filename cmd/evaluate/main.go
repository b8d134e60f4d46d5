package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"review-insight/backend/internal/eval"
	"review-insight/backend/internal/llm"
)

type evaluateFlags struct {
	CSVPath       string
	SampleSize    int
	Seed          int64
	Delay         time.Duration
	Backend       string
	Model         string
	APIKey        string
	SyntheticRows int
}

func main() {
	flags := &evaluateFlags{}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Compare prompt variants for star-rating prediction on a review dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&flags.CSVPath, "csv", "", "path to a reviews CSV with text and stars columns (synthetic data when empty)")
	fs.IntVar(&flags.SampleSize, "sample-size", eval.DefaultSampleSize, "reviews sampled per approach")
	fs.Int64Var(&flags.Seed, "seed", eval.DefaultSeed, "sampling seed; identical seeds compare approaches on identical rows")
	fs.DurationVar(&flags.Delay, "delay", 300*time.Millisecond, "courtesy pause between LLM calls")
	fs.StringVar(&flags.Backend, "backend", string(llm.BackendOpenRouter), "completion backend: openrouter or gemini")
	fs.StringVar(&flags.Model, "model", "", "model identifier (backend default when empty)")
	fs.StringVar(&flags.APIKey, "api-key", "", "API key (falls back to OPENROUTER_API_KEY / GEMINI_API_KEY)")
	fs.IntVar(&flags.SyntheticRows, "synthetic-rows", 200, "rows to generate when no CSV is supplied")

	if err := cmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func run(flags *evaluateFlags) error {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file loaded")
	}

	apiKey := flags.APIKey
	if apiKey == "" {
		switch llm.Backend(flags.Backend) {
		case llm.BackendGemini:
			apiKey = os.Getenv("GEMINI_API_KEY")
		default:
			apiKey = os.Getenv("OPENROUTER_API_KEY")
		}
	}

	client, err := llm.NewClient(llm.Config{
		APIKey:  apiKey,
		Model:   flags.Model,
		Backend: llm.Backend(flags.Backend),
	})
	if errors.Is(err, llm.ErrDisabled) {
		return errors.New("an API key is required; pass --api-key or set the backend's environment variable")
	}
	if err != nil {
		return err
	}

	var dataset []eval.Review
	if flags.CSVPath != "" {
		dataset, err = eval.LoadCSV(flags.CSVPath)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"path": flags.CSVPath, "rows": len(dataset)}).Info("dataset loaded")
	} else {
		dataset = eval.SampleDataset(flags.SyntheticRows)
		logrus.WithField("rows", len(dataset)).Info("using synthetic sample dataset")
	}

	sampled := flags.SampleSize
	if sampled > len(dataset) {
		sampled = len(dataset)
	}

	ctx := cmdContext()
	results := make([]eval.Result, 0, 3)
	for _, approach := range eval.Approaches() {
		fmt.Printf("\nTesting: %s\n", approach.Name)
		bar := progressbar.Default(int64(sampled), approach.Name)

		harness := eval.NewHarness(eval.HarnessConfig{
			Client: client,
			Delay:  flags.Delay,
			Seed:   flags.Seed,
			Progress: func(done, total int) {
				_ = bar.Set(done)
			},
		})
		result := harness.Run(ctx, dataset, approach, flags.SampleSize)
		_ = bar.Finish()

		fmt.Printf("\n%s complete: valid JSON %.1f%%, accuracy %.1f%%\n", approach.Name, result.JSONValidityRate, result.Accuracy)
		results = append(results, result)
	}

	fmt.Println()
	eval.WriteComparison(os.Stdout, results)
	fmt.Println()
	eval.WriteDetails(os.Stdout, results)
	return nil
}

// cmdContext cancels in-flight calls on interrupt; the harness itself keeps
// going so partial results still get reported.
func cmdContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt)
	return ctx
}
