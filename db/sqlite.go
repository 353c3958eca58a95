// Package db keeps the read-only reference dataset queryable for the
// lifetime of the process. The default path is :memory:, so nothing
// survives the session.
package db

import (
	"database/sql"
	"errors"

	_ "github.com/mattn/go-sqlite3"

	"thyrocast/patient"
)

var database *sql.DB

// InitDB opens the SQLite database and creates the patients table.
func InitDB(path string) error {
	if path == "" {
		path = ":memory:"
	}
	var err error
	database, err = sql.Open("sqlite3", path)
	if err != nil {
		return err
	}

	query := `
    CREATE TABLE IF NOT EXISTS patients (
        id INTEGER PRIMARY KEY,
        age INTEGER NOT NULL,
        gender TEXT NOT NULL,
        smoking TEXT NOT NULL,
        smoking_history TEXT NOT NULL,
        radiotherapy_history TEXT NOT NULL,
        thyroid_function TEXT NOT NULL,
        physical_exam TEXT NOT NULL,
        adenopathy TEXT NOT NULL,
        pathology TEXT NOT NULL,
        focality TEXT NOT NULL,
        risk TEXT NOT NULL,
        t TEXT NOT NULL,
        n TEXT NOT NULL,
        m TEXT NOT NULL,
        stage TEXT NOT NULL,
        response TEXT NOT NULL,
        recurred INTEGER NOT NULL
    );
    `

	_, err = database.Exec(query)
	return err
}

// CloseDB releases the database. Safe to call once at shutdown.
func CloseDB() error {
	if database == nil {
		return nil
	}
	err := database.Close()
	database = nil
	return err
}

// LoadPatients bulk-inserts the reference dataset rows.
func LoadPatients(rows []patient.DatasetRow) error {
	if database == nil {
		return errors.New("database not initialized")
	}
	tx, err := database.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
        INSERT INTO patients (
            age, gender, smoking, smoking_history, radiotherapy_history,
            thyroid_function, physical_exam, adenopathy, pathology, focality,
            risk, t, n, m, stage, response, recurred
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		r := row.Record
		recurred := 0
		if row.Recurred {
			recurred = 1
		}
		if _, err := stmt.Exec(
			r.Age, r.Gender, r.Smoking, r.SmokingHistory, r.Radiotherapy,
			r.ThyroidFunction, r.PhysicalExam, r.Adenopathy, r.Pathology,
			r.Focality, r.Risk, r.T, r.N, r.M, r.Stage, r.Response, recurred,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// DatasetSummary aggregates the reference cohort for the analytics view.
type DatasetSummary struct {
	Patients       int     `json:"patients"`
	Recurred       int     `json:"recurred"`
	RecurrenceRate float64 `json:"recurrence_rate"`
	MeanAge        float64 `json:"mean_age"`
	HighRisk       int     `json:"high_risk"`
}

func QueryDatasetSummary() (*DatasetSummary, error) {
	if database == nil {
		return nil, errors.New("database not initialized")
	}
	var s DatasetSummary
	err := database.QueryRow(`
        SELECT COUNT(*),
               COALESCE(SUM(recurred), 0),
               COALESCE(AVG(age), 0),
               COALESCE(SUM(CASE WHEN stage IN ('IVA', 'IVB') OR m = 'M1' THEN 1 ELSE 0 END), 0)
        FROM patients`).Scan(&s.Patients, &s.Recurred, &s.MeanAge, &s.HighRisk)
	if err != nil {
		return nil, err
	}
	if s.Patients > 0 {
		s.RecurrenceRate = float64(s.Recurred) / float64(s.Patients)
	}
	return &s, nil
}

// RandomPatient samples one reference row, used to prefill the form in demo
// mode.
func RandomPatient() (patient.DatasetRow, error) {
	if database == nil {
		return patient.DatasetRow{}, errors.New("database not initialized")
	}
	var (
		r        patient.Record
		recurred int
	)
	err := database.QueryRow(`
        SELECT age, gender, smoking, smoking_history, radiotherapy_history,
               thyroid_function, physical_exam, adenopathy, pathology, focality,
               risk, t, n, m, stage, response, recurred
        FROM patients
        ORDER BY RANDOM()
        LIMIT 1`).Scan(
		&r.Age, &r.Gender, &r.Smoking, &r.SmokingHistory, &r.Radiotherapy,
		&r.ThyroidFunction, &r.PhysicalExam, &r.Adenopathy, &r.Pathology,
		&r.Focality, &r.Risk, &r.T, &r.N, &r.M, &r.Stage, &r.Response, &recurred,
	)
	if err != nil {
		return patient.DatasetRow{}, err
	}
	return patient.DatasetRow{Record: r, Recurred: recurred == 1}, nil
}

// CountPatients returns the reference cohort size.
func CountPatients() (int, error) {
	if database == nil {
		return 0, errors.New("database not initialized")
	}
	var count int
	err := database.QueryRow(`SELECT COUNT(*) FROM patients`).Scan(&count)
	return count, err
}
