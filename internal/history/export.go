package history

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

// ExportCSV writes every entry to w as CSV with a header row. Readings are
// serialized as a JSON object in a single column so the file round-trips
// without a fixed activity schema.
func (s *Store) ExportCSV(ctx context.Context, w io.Writer) error {
	entries, err := s.All(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "total_kg", "readings"}); err != nil {
		return err
	}
	for _, entry := range entries {
		encoded, err := json.Marshal(entry.Readings)
		if err != nil {
			return err
		}
		record := []string{
			entry.Date,
			strconv.FormatFloat(entry.TotalKg, 'f', 2, 64),
			string(encoded),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
