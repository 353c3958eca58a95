package db

import (
	"os"
	"testing"

	"thyrocast/patient"
)

func TestMain(m *testing.M) {
	if err := InitDB(":memory:"); err != nil {
		os.Exit(1)
	}

	code := m.Run()

	CloseDB()
	os.Exit(code)
}

func datasetRows() []patient.DatasetRow {
	base := patient.Record{
		Age: 30, Gender: "F", Smoking: "No", SmokingHistory: "No",
		Radiotherapy: "No", ThyroidFunction: "Euthyroid",
		PhysicalExam: "Normal", Adenopathy: "No", Pathology: "Papillary",
		Focality: "Uni-Focal", Risk: "Low", T: "T1a", N: "N0", M: "M0",
		Stage: "I", Response: "Excellent",
	}
	recurrent := base
	recurrent.Age = 70
	recurrent.Risk = "High"
	recurrent.M = "M1"
	recurrent.Stage = "IVB"
	recurrent.Response = "Structural Incomplete"

	return []patient.DatasetRow{
		{Record: base, Recurred: false},
		{Record: base, Recurred: false},
		{Record: recurrent, Recurred: true},
	}
}

func TestLoadAndSummarize(t *testing.T) {
	if err := LoadPatients(datasetRows()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count, err := CountPatients()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 patients, got %d", count)
	}

	summary, err := QueryDatasetSummary()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Patients != 3 || summary.Recurred != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.HighRisk != 1 {
		t.Fatalf("expected 1 high risk patient, got %d", summary.HighRisk)
	}
	if summary.RecurrenceRate < 0.3 || summary.RecurrenceRate > 0.34 {
		t.Fatalf("unexpected recurrence rate: %f", summary.RecurrenceRate)
	}
}

func TestRandomPatient(t *testing.T) {
	row, err := RandomPatient()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := patient.Validate(row.Record); err != nil {
		t.Fatalf("sampled record should be valid: %v", err)
	}
}
