package eval

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/sirupsen/logrus"
)

// Review is one labelled dataset row.
type Review struct {
	Text  string
	Stars int
}

// LoadCSV reads a review dataset from a CSV file. The header must contain
// "text" and "stars" columns; rows with an unparseable or out-of-range star
// rating are skipped with a warning.
func LoadCSV(path string) ([]Review, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	textIdx, starsIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "text":
			textIdx = i
		case "stars":
			starsIdx = i
		}
	}
	if textIdx < 0 || starsIdx < 0 {
		return nil, errors.New("dataset requires text and stars columns")
	}

	var reviews []Review
	skipped := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		if textIdx >= len(record) || starsIdx >= len(record) {
			skipped++
			continue
		}
		stars, err := strconv.Atoi(strings.TrimSpace(record[starsIdx]))
		if err != nil || stars < 1 || stars > 5 {
			skipped++
			continue
		}
		reviews = append(reviews, Review{Text: record[textIdx], Stars: stars})
	}
	if skipped > 0 {
		logrus.WithFields(logrus.Fields{"path": path, "skipped": skipped}).Warn("dropped unusable dataset rows")
	}
	if len(reviews) == 0 {
		return nil, errors.New("dataset contains no usable rows")
	}
	return reviews, nil
}

var sampleTemplates = map[int][]string{
	1: {
		"Terrible experience. The %s was cold and the staff was rude.",
		"Never coming back. Waited an hour and the %s was inedible.",
	},
	2: {
		"Disappointing. The %s was bland and overpriced.",
		"Not great. Service was slow and the %s arrived lukewarm.",
	},
	3: {
		"It was okay. The %s was decent but nothing special.",
		"Average place. Some dishes like the %s were fine, others not.",
	},
	4: {
		"Good food overall. Really enjoyed the %s, service was friendly.",
		"Solid spot. The %s was tasty, just a bit of a wait.",
	},
	5: {
		"Amazing place! The %s was delicious and service was excellent.",
		"Fantastic! Best %s I've had in months, highly recommend.",
	},
}

// SampleDataset generates a synthetic labelled dataset for dry runs when no
// CSV is supplied. Generation is seeded so repeated runs see the same rows.
func SampleDataset(n int) []Review {
	gofakeit.Seed(42)
	reviews := make([]Review, 0, n)
	for i := 0; i < n; i++ {
		stars := i%5 + 1
		templates := sampleTemplates[stars]
		text := fmt.Sprintf(templates[i%len(templates)], gofakeit.Dinner())
		reviews = append(reviews, Review{Text: text, Stars: stars})
	}
	return reviews
}
