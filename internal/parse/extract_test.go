package parse

import (
	"strings"
	"testing"
)

func TestExtractStrictJSON(t *testing.T) {
	testCases := []struct {
		name        string
		response    string
		expectStars int
		expectExp   string
	}{
		{"bare object", `{"predicted_stars": 4, "explanation": "Good food"}`, 4, "Good food"},
		{"fenced json", "```json\n{\"predicted_stars\": 2, \"explanation\": \"Slow service\"}\n```", 2, "Slow service"},
		{"fenced without tag", "```\n{\"predicted_stars\": 5, \"explanation\": \"Perfect\"}\n```", 5, "Perfect"},
		{"surrounding whitespace", "  \n {\"predicted_stars\": 3, \"explanation\": \"Okay\"} \n ", 3, "Okay"},
		{"missing explanation", `{"predicted_stars": 1}`, 1, "No explanation"},
		{"stars as string", `{"predicted_stars": "4", "explanation": "Quoted"}`, 4, "Quoted"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pred, ok := Extract(tc.response)
			if !ok {
				t.Fatalf("expected success for %q", tc.response)
			}
			if pred.PredictedStars != tc.expectStars {
				t.Fatalf("expected stars %d got %d", tc.expectStars, pred.PredictedStars)
			}
			if pred.Explanation != tc.expectExp {
				t.Fatalf("expected explanation %q got %q", tc.expectExp, pred.Explanation)
			}
		})
	}
}

func TestExtractEmbeddedObject(t *testing.T) {
	response := "Sure! Here's the result:\n```json\n{\"predicted_stars\": 4, \"explanation\": \"Good food\"}\n```\nHope this helps!"
	pred, ok := Extract(response)
	if !ok {
		t.Fatal("expected success")
	}
	if pred.PredictedStars != 4 {
		t.Fatalf("expected stars 4 got %d", pred.PredictedStars)
	}
	if pred.Explanation != "Good food" {
		t.Fatalf("expected explanation %q got %q", "Good food", pred.Explanation)
	}
}

func TestExtractObjectInsideProse(t *testing.T) {
	response := "Based on the tone I would say {\"predicted_stars\": 2,\n\"explanation\": \"Mostly negative\"} overall."
	pred, ok := Extract(response)
	if !ok {
		t.Fatal("expected success")
	}
	if pred.PredictedStars != 2 {
		t.Fatalf("expected stars 2 got %d", pred.PredictedStars)
	}
	if pred.Explanation != "Mostly negative" {
		t.Fatalf("expected explanation %q got %q", "Mostly negative", pred.Explanation)
	}
}

func TestExtractRegexRescue(t *testing.T) {
	t.Run("stars only", func(t *testing.T) {
		response := `The rating I settled on is "predicted_stars": 3 but I could not format the JSON properly.`
		pred, ok := Extract(response)
		if !ok {
			t.Fatal("expected success")
		}
		if pred.PredictedStars != 3 {
			t.Fatalf("expected stars 3 got %d", pred.PredictedStars)
		}
		if pred.Explanation != "Extracted from response" {
			t.Fatalf("expected rescue explanation, got %q", pred.Explanation)
		}
	})

	t.Run("stars with explanation fragment", func(t *testing.T) {
		response := `broken json follows "predicted_stars": 5, "explanation": "Loved everything" trailing garbage {{{`
		pred, ok := Extract(response)
		if !ok {
			t.Fatal("expected success")
		}
		if pred.PredictedStars != 5 {
			t.Fatalf("expected stars 5 got %d", pred.PredictedStars)
		}
		if pred.Explanation != "Loved everything" {
			t.Fatalf("expected explanation %q got %q", "Loved everything", pred.Explanation)
		}
	})
}

func TestExtractFailures(t *testing.T) {
	testCases := []struct {
		name     string
		response string
	}{
		{"empty", ""},
		{"plain prose", "The review sounds positive to me, maybe four stars."},
		{"json without key", `{"stars": 4, "explanation": "wrong key"}`},
		{"zero stars", `{"predicted_stars": 0, "explanation": "invalid"}`},
		{"six stars", `{"predicted_stars": 6, "explanation": "invalid"}`},
		{"negative stars", `{"predicted_stars": -1, "explanation": "invalid"}`},
		{"six stars in prose", `the verdict was "predicted_stars": 6 unfortunately`},
		{"non numeric stars", `{"predicted_stars": "many", "explanation": "invalid"}`},
		{"null stars", `{"predicted_stars": null, "explanation": "invalid"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if pred, ok := Extract(tc.response); ok {
				t.Fatalf("expected failure, got %+v", pred)
			}
		})
	}
}

// A nested object defeats both the strict parse (prose prefix) and the flat
// braces scan, so only the digit rescue applies and the nested explanation is
// ignored.
func TestExtractNestedObjectFallsThroughToRescue(t *testing.T) {
	response := "Result: {\"predicted_stars\": 4, \"detail\": {\"tone\": \"warm\"}} as requested"
	pred, ok := Extract(response)
	if !ok {
		t.Fatal("expected rescue to succeed")
	}
	if pred.PredictedStars != 4 {
		t.Fatalf("expected stars 4 got %d", pred.PredictedStars)
	}
	if pred.Explanation != "Extracted from response" {
		t.Fatalf("expected rescue explanation, got %q", pred.Explanation)
	}
}

func TestExtractTruncatesExplanation(t *testing.T) {
	long := strings.Repeat("x", 240)
	pred, ok := Extract(`{"predicted_stars": 4, "explanation": "` + long + `"}`)
	if !ok {
		t.Fatal("expected success")
	}
	if len(pred.Explanation) != 100 {
		t.Fatalf("expected 100-char explanation, got %d", len(pred.Explanation))
	}
}
