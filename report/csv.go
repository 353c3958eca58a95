package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"thyrocast/session"
)

var csvHeader = []string{
	"id", "timestamp", "name", "age", "gender", "risk", "stage", "m",
	"confidence_no", "confidence_yes", "predicted_label", "verdict", "high_risk",
}

// WriteCSV streams the session history as a CSV download. Nothing is written
// to disk; the history lives only for the session.
func WriteCSV(w io.Writer, entries []session.Entry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, entry := range entries {
		row := []string{
			entry.ID,
			entry.CreatedAt.Format(time.RFC3339),
			entry.Name,
			fmt.Sprintf("%d", entry.Record.Age),
			entry.Record.Gender,
			entry.Record.Risk,
			entry.Record.Stage,
			entry.Record.M,
			fmt.Sprintf("%.2f", entry.Result.ConfidenceNo),
			fmt.Sprintf("%.2f", entry.Result.Probability),
			string(entry.Result.Label),
			string(entry.Result.Verdict),
			fmt.Sprintf("%t", entry.Result.HighRisk),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
