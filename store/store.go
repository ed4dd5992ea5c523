// Package store persists finished session scores as a JSON document.
package store

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/ballz/sim"
)

// Version is the current document format.
const Version = 1

// Record is one finished session.
type Record struct {
	Score      int       `json:"score"`
	Session    uuid.UUID `json:"session"`
	RecordedAt time.Time `json:"recorded_at"`
}

type document struct {
	Version int      `json:"version"`
	Records []Record `json:"records"`
}

// JSONStore keeps score records, oldest first, in a single file. Writes go
// to a temporary file that is renamed over the original.
type JSONStore struct {
	path string
	log  *slog.Logger
	now  func() time.Time

	mu sync.Mutex
}

// NewJSONStore returns a store backed by path. The file is created on the
// first append.
func NewJSONStore(path string, logger *slog.Logger) *JSONStore {
	if logger == nil {
		logger = slog.Default().With("component", "store")
	}
	return &JSONStore{path: path, log: logger, now: time.Now}
}

// Path returns the backing file.
func (s *JSONStore) Path() string {
	return s.path
}

// Records returns every stored record, oldest first. A missing file is an
// empty history.
func (s *JSONStore) Records() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Records, nil
}

// LoadHighScores returns every stored score, oldest first.
func (s *JSONStore) LoadHighScores() ([]int, error) {
	records, err := s.Records()
	if err != nil {
		return nil, err
	}
	scores := make([]int, len(records))
	for i, r := range records {
		scores[i] = r.Score
	}
	return scores, nil
}

// AppendScore records a score without a session id.
func (s *JSONStore) AppendScore(score int) error {
	return s.AppendSessionScore(uuid.Nil, score)
}

// AppendSessionScore records a finished session's score.
func (s *JSONStore) AppendSessionScore(id uuid.UUID, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Records = append(doc.Records, Record{
		Score:      score,
		Session:    id,
		RecordedAt: s.now().UTC(),
	})
	if err := s.write(doc); err != nil {
		return err
	}
	s.log.Debug("score saved", "session", id, "score", score, "records", len(doc.Records))
	return nil
}

// TopScores returns up to n records with the highest scores. Ties keep the
// earlier record first.
func (s *JSONStore) TopScores(n int) ([]Record, error) {
	records, err := s.Records()
	if err != nil {
		return nil, err
	}
	return Top(records, n), nil
}

// Top sorts a copy of records by descending score and truncates it to n.
func Top(records []Record, n int) []Record {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func (s *JSONStore) read() (document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return document{Version: Version}, nil
	}
	if err != nil {
		return document{}, fmt.Errorf("%w: reading %s: %w", sim.ErrPersistence, s.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("%w: decoding %s: %w", sim.ErrPersistence, s.path, err)
	}
	if doc.Version > Version {
		return document{}, fmt.Errorf("%w: %s has version %d, newest supported is %d",
			sim.ErrPersistence, s.path, doc.Version, Version)
	}
	doc.Version = Version
	return doc, nil
}

func (s *JSONStore) write(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding: %w", sim.ErrPersistence, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", sim.ErrPersistence, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing %s: %w", sim.ErrPersistence, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", sim.ErrPersistence, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: replacing %s: %w", sim.ErrPersistence, s.path, err)
	}
	return nil
}
