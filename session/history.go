// Package session holds the comparator state for one interactive session:
// every completed prediction, in submission order.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"thyrocast/patient"
	"thyrocast/predict"
)

// ErrIndexOutOfRange is returned by Compare and Get for an absent index.
var ErrIndexOutOfRange = errors.New("history index out of range")

// Entry is one completed prediction.
type Entry struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Record    patient.Record `json:"record"`
	Result    predict.Result `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}

// History is the session-scoped log of predictions. It is owned by whoever
// constructs it and passed by reference; there is no package-level instance.
// Entries are append-only: no deletion or mutation operations exist. The
// application is single-session and synchronous, so History does no locking.
type History struct {
	entries []Entry
}

func NewHistory() *History {
	return &History{}
}

// Record appends a completed prediction and returns the stored entry. It
// never fails. Unnamed patients get a positional display name.
func (h *History) Record(record patient.Record, result predict.Result) Entry {
	name := record.Name
	if name == "" {
		name = fmt.Sprintf("Patient %d", len(h.entries)+1)
	}
	entry := Entry{
		ID:        newEntryID(),
		Name:      name,
		Record:    record,
		Result:    result,
		CreatedAt: time.Now(),
	}
	h.entries = append(h.entries, entry)
	return entry
}

// List returns the entries in insertion order. The returned slice is a copy;
// callers cannot mutate the history through it.
func (h *History) List() []Entry {
	return append([]Entry(nil), h.entries...)
}

func (h *History) Len() int {
	return len(h.entries)
}

// Get returns the entry at index i.
func (h *History) Get(i int) (Entry, error) {
	if i < 0 || i >= len(h.entries) {
		return Entry{}, ErrIndexOutOfRange
	}
	return h.entries[i], nil
}

// Compare returns the entries at i and j for side-by-side rendering.
func (h *History) Compare(i, j int) (Entry, Entry, error) {
	first, err := h.Get(i)
	if err != nil {
		return Entry{}, Entry{}, err
	}
	second, err := h.Get(j)
	if err != nil {
		return Entry{}, Entry{}, err
	}
	return first, second, nil
}

// Find returns the entry with the given id.
func (h *History) Find(id string) (Entry, bool) {
	for _, entry := range h.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return Entry{}, false
}

func newEntryID() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%08x", time.Now().UnixNano()&0xffffffff)
	}
	return hex.EncodeToString(buf)
}
