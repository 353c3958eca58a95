package patient

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DatasetRow is one labeled row of the reference dataset.
type DatasetRow struct {
	Record   Record
	Recurred bool
}

// datasetColumns maps CSV header names to record fields. The header spelling
// follows the published dataset, typos included.
var datasetColumns = []string{
	"Age", "Gender", "Smoking", "Hx Smoking", "Hx Radiothreapy",
	"Thyroid Function", "Physical Examination", "Adenopathy", "Pathology",
	"Focality", "Risk", "T", "N", "M", "Stage", "Response", "Recurred",
}

// LoadDataset reads the reference dataset CSV. Any structural problem — a
// missing column, a non-numeric age, a value outside its domain — is an
// error; the caller treats it as fatal at startup.
func LoadDataset(path string) ([]DatasetRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range datasetColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("dataset missing column %q", name)
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset rows: %w", err)
	}

	rows := make([]DatasetRow, 0, len(records))
	for i, fields := range records {
		row, err := parseDatasetRow(fields, index)
		if err != nil {
			return nil, fmt.Errorf("dataset row %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset %s has no rows", path)
	}
	return rows, nil
}

func parseDatasetRow(fields []string, index map[string]int) (DatasetRow, error) {
	get := func(column string) string {
		return strings.TrimSpace(fields[index[column]])
	}

	age, err := strconv.Atoi(get("Age"))
	if err != nil {
		return DatasetRow{}, fmt.Errorf("invalid age %q", get("Age"))
	}

	record := Record{
		Age:             age,
		Gender:          get("Gender"),
		Smoking:         get("Smoking"),
		SmokingHistory:  get("Hx Smoking"),
		Radiotherapy:    get("Hx Radiothreapy"),
		ThyroidFunction: get("Thyroid Function"),
		PhysicalExam:    get("Physical Examination"),
		Adenopathy:      get("Adenopathy"),
		Pathology:       get("Pathology"),
		Focality:        get("Focality"),
		Risk:            get("Risk"),
		T:               get("T"),
		N:               get("N"),
		M:               get("M"),
		Stage:           get("Stage"),
		Response:        get("Response"),
	}
	if err := Validate(record); err != nil {
		return DatasetRow{}, err
	}

	switch get("Recurred") {
	case "Yes":
		return DatasetRow{Record: record, Recurred: true}, nil
	case "No":
		return DatasetRow{Record: record, Recurred: false}, nil
	default:
		return DatasetRow{}, fmt.Errorf("invalid Recurred value %q", get("Recurred"))
	}
}
