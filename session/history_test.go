package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thyrocast/patient"
	"thyrocast/predict"
)

func entryFixture(name string, proba float64) (patient.Record, predict.Result) {
	record := patient.Record{Name: name, Age: 40, Gender: "F", Risk: "Low", Stage: "I", M: "M0"}
	label := predict.LabelNotRecurred
	if proba >= 0.5 {
		label = predict.LabelRecurred
	}
	result := predict.Result{Label: label, Probability: proba, ConfidenceNo: 1 - proba}
	return record, result
}

func TestHistoryRecordOrder(t *testing.T) {
	h := NewHistory()
	require.Equal(t, 0, h.Len())

	const n = 5
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		record, result := entryFixture(fmt.Sprintf("p%d", i), float64(i)/n)
		entry := h.Record(record, result)
		require.NotEmpty(t, entry.ID)
		ids = append(ids, entry.ID)
	}

	entries := h.List()
	require.Len(t, entries, n)
	for i, entry := range entries {
		assert.Equal(t, ids[i], entry.ID, "insertion order must be preserved")
		assert.Equal(t, fmt.Sprintf("p%d", i), entry.Name)
	}
}

func TestHistoryDefaultNames(t *testing.T) {
	h := NewHistory()
	record, result := entryFixture("", 0.7)
	first := h.Record(record, result)
	second := h.Record(record, result)

	assert.Equal(t, "Patient 1", first.Name)
	assert.Equal(t, "Patient 2", second.Name)
}

func TestHistoryCompare(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 3; i++ {
		record, result := entryFixture(fmt.Sprintf("p%d", i), 0.4)
		h.Record(record, result)
	}

	first, second, err := h.Compare(0, 2)
	require.NoError(t, err)

	entries := h.List()
	assert.Equal(t, entries[0], first)
	assert.Equal(t, entries[2], second)

	for _, pair := range [][2]int{{-1, 0}, {0, 3}, {5, 5}} {
		_, _, err := h.Compare(pair[0], pair[1])
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "pair %v", pair)
	}
}

func TestHistoryListIsACopy(t *testing.T) {
	h := NewHistory()
	record, result := entryFixture("jane", 0.9)
	h.Record(record, result)

	entries := h.List()
	entries[0].Name = "mutated"

	fresh := h.List()
	assert.Equal(t, "jane", fresh[0].Name)
}

func TestHistoryFind(t *testing.T) {
	h := NewHistory()
	record, result := entryFixture("jane", 0.9)
	entry := h.Record(record, result)

	found, ok := h.Find(entry.ID)
	require.True(t, ok)
	assert.Equal(t, entry, found)

	_, ok = h.Find("missing")
	assert.False(t, ok)
}
