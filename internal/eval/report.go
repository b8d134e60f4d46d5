package eval

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteComparison renders the side-by-side metrics table for all approaches.
func WriteComparison(w io.Writer, results []Result) {
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w, "COMPARISON TABLE")
	fmt.Fprintln(w, strings.Repeat("=", 80))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Approach\tSamples\tValid JSON (%)\tAccuracy (%)\tCorrect")
	for _, result := range results {
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\t%.1f%%\t%d\n",
			result.Approach,
			result.TotalTested,
			result.JSONValidityRate,
			result.Accuracy,
			result.CorrectPredictions,
		)
	}
	tw.Flush()
}

// WriteDetails renders per-approach sample predictions and metrics.
func WriteDetails(w io.Writer, results []Result) {
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w, "DETAILED ANALYSIS & SAMPLE PREDICTIONS")
	fmt.Fprintln(w, strings.Repeat("=", 80))

	for i, result := range results {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, result.Approach)
		fmt.Fprintln(w, strings.Repeat("-", 70))

		if len(result.Predictions) > 0 {
			fmt.Fprintln(w, "Sample Predictions (first 5):")
			limit := len(result.Predictions)
			if limit > 5 {
				limit = 5
			}
			for _, pred := range result.Predictions[:limit] {
				status := "✗"
				if pred.Correct {
					status = "✓"
				}
				fmt.Fprintf(w, "\n  %s Actual: %d -> Predicted: %d\n", status, pred.Actual, pred.Predicted)
				fmt.Fprintf(w, "     Review: %s\n", pred.ReviewSnippet)
				fmt.Fprintf(w, "     Reasoning: %s\n", pred.Explanation)
			}
		}

		fmt.Fprintf(w, "\n  JSON Validity: %.1f%%\n", result.JSONValidityRate)
		fmt.Fprintf(w, "  Accuracy: %.1f%%\n", result.Accuracy)
		fmt.Fprintf(w, "  Elapsed: %dms\n", result.ElapsedMs)
	}
}
