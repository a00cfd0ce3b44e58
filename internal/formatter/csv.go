package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/yildizm/instastory/internal/story"
)

// csvFormatter flattens every figure of the story into one CSV row
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(slides []story.Slide) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{"Slide", "Kind", "Metric", "Rank", "Label", "Value"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i := range slides {
		slide := &slides[i]
		for _, record := range slideRecords(i+1, slide) {
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return b.Bytes(), nil
}

func slideRecords(number int, slide *story.Slide) [][]string {
	prefix := []string{strconv.Itoa(number), slide.Kind.String(), string(slide.Metric)}
	record := func(rank, label string, value int64) []string {
		return append(append([]string{}, prefix...), rank, label, strconv.FormatInt(value, 10))
	}

	var records [][]string
	if label, value, ok := headline(slide); ok {
		records = append(records, record("", label, value))
	}
	for _, row := range slide.Rows {
		records = append(records, record(strconv.Itoa(row.Rank), row.Name, row.Figure.Value))
	}
	for _, cell := range slide.Emojis {
		records = append(records, record("", cell.Symbol, cell.Figure.Value))
	}
	for _, stat := range slide.Stats {
		records = append(records, record("", stat.Label, stat.Value))
	}
	return records
}
