package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/GreatValueCreamSoda/gossimu2/internal/comparator"
)

// WriteCSV writes records as "frame,score" rows. Scores use the
// shortest decimal form that round-trips.
func WriteCSV(w io.Writer, records []comparator.ScoreRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"frame", "score"}); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.Frame),
			strconv.FormatFloat(rec.Score, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes records to path, creating or truncating it.
func WriteCSVFile(path string, records []comparator.ScoreRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV parses rows written by WriteCSV.
func ReadCSV(r io.Reader) ([]comparator.ScoreRecord, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || len(rows[0]) != 2 || rows[0][0] != "frame" {
		return nil, fmt.Errorf("missing frame,score header")
	}

	records := make([]comparator.ScoreRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		frame, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("frame %q: %w", row[0], err)
		}
		score, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("score %q: %w", row[1], err)
		}
		records = append(records, comparator.ScoreRecord{Frame: frame, Score: score})
	}
	return records, nil
}
