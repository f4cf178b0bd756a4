package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spec-kit/review-router/internal/domain"
)

// DateLayout formats the Date column, matching the timestamp sent to the webhook.
const DateLayout = domain.SubmittedAtLayout

// Columns is the header row of the artifact.
var Columns = []string{"Date", "Source", "Review", "Sentiment", "Score", "Summary", "Suggested Response"}

// ErrNoExport is returned when no artifact has been produced yet.
var ErrNoExport = errors.New("no export available")

// EncodeCSV writes the header and a single row for rec.
func EncodeCSV(w io.Writer, rec domain.ExportRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	row := []string{
		rec.Date.Format(DateLayout),
		rec.Source,
		rec.Review,
		rec.Sentiment,
		strconv.Itoa(rec.Score),
		rec.Summary,
		rec.SuggestedResponse,
	}
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// DecodeCSV reads back an artifact written by EncodeCSV. Dates are parsed in loc.
func DecodeCSV(r io.Reader, loc *time.Location) (domain.ExportRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)
	rows, err := cr.ReadAll()
	if err != nil {
		return domain.ExportRecord{}, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) != 2 {
		return domain.ExportRecord{}, fmt.Errorf("expected header and one row, got %d rows", len(rows))
	}
	for i, col := range Columns {
		if rows[0][i] != col {
			return domain.ExportRecord{}, fmt.Errorf("unexpected column %q at %d", rows[0][i], i)
		}
	}

	row := rows[1]
	date, err := time.ParseInLocation(DateLayout, row[0], loc)
	if err != nil {
		return domain.ExportRecord{}, fmt.Errorf("parse date: %w", err)
	}
	score, err := strconv.Atoi(row[4])
	if err != nil {
		return domain.ExportRecord{}, fmt.Errorf("parse score: %w", err)
	}
	return domain.ExportRecord{
		Date:              date,
		Source:            row[1],
		Review:            row[2],
		Sentiment:         row[3],
		Score:             score,
		Summary:           row[5],
		SuggestedResponse: row[6],
	}, nil
}
