package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"thyrocast/patient"
	"thyrocast/predict"
	"thyrocast/session"
)

func historyFixture() []session.Entry {
	h := session.NewHistory()
	specs := []struct {
		name    string
		risk    string
		proba   float64
		verdict predict.Verdict
	}{
		{"a", "Low", 0.10, predict.VerdictUnlikely},
		{"b", "Intermediate", 0.40, predict.VerdictBorderline},
		{"c", "High", 0.85, predict.VerdictLikely},
	}
	for _, s := range specs {
		record := patient.Record{Name: s.name, Age: 50, Gender: "F", Risk: s.risk, Stage: "I", M: "M0"}
		label := predict.LabelNotRecurred
		if s.proba >= 0.5 {
			label = predict.LabelRecurred
		}
		h.Record(record, predict.Result{
			Label:        label,
			Probability:  s.proba,
			ConfidenceNo: 1 - s.proba,
			Verdict:      s.verdict,
		})
	}
	return h.List()
}

func TestSummarize(t *testing.T) {
	summary := Summarize(historyFixture())

	if summary.Entries != 3 {
		t.Fatalf("expected 3 entries, got %d", summary.Entries)
	}
	if math.Abs(summary.MeanConfidenceYes-0.45) > 1e-9 {
		t.Fatalf("unexpected mean confidence: %f", summary.MeanConfidenceYes)
	}
	if summary.Verdicts["likely"] != 1 || summary.Verdicts["borderline"] != 1 || summary.Verdicts["unlikely"] != 1 {
		t.Fatalf("unexpected verdict breakdown: %v", summary.Verdicts)
	}
	if summary.RiskLevels["High"] != 1 {
		t.Fatalf("unexpected risk breakdown: %v", summary.RiskLevels)
	}
	if len(summary.Series) != 3 || summary.Series[2].ConfidenceYes != 0.85 {
		t.Fatalf("unexpected series: %v", summary.Series)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.Entries != 0 || summary.MeanConfidenceYes != 0 {
		t.Fatalf("unexpected summary for empty history: %+v", summary)
	}
}

func TestTopRisk(t *testing.T) {
	entries := historyFixture()
	top := TopRisk(entries, 2)

	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Name != "c" || top[1].Name != "b" {
		t.Fatalf("unexpected order: %s, %s", top[0].Name, top[1].Name)
	}

	// The input slice keeps its submission order.
	if entries[0].Name != "a" {
		t.Fatal("TopRisk must not reorder its input")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, historyFixture()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,timestamp,name") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[3], "0.85") || !strings.Contains(lines[3], "recurred") {
		t.Fatalf("unexpected row: %s", lines[3])
	}
}
