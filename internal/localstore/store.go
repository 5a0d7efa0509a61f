package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lgznml/WorkoutTracker/internal/plan"
	"github.com/lgznml/WorkoutTracker/internal/trainlog"
)

// Document is the single-file JSON snapshot of one user's data, the
// same shape the single-user offline version keeps on disk: a template
// and a history, no username column.
type Document struct {
	Template plan.Plan          `json:"template"`
	History  []trainlog.Session `json:"history"`
}

// Store reads and writes per-user snapshot documents in one directory.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create local store dir: %w", err)
	}
	return &Store{
		dir: dir,
	}, nil
}

func (s *Store) path(username string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s.json", username))
}

// Save writes the document through a temp file so a crash mid-write
// never truncates the previous snapshot.
func (s *Store) Save(username string, doc Document) error {
	docJson, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	tmpPath := s.path(username) + ".tmp"
	if err := os.WriteFile(tmpPath, docJson, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if err := os.Rename(tmpPath, s.path(username)); err != nil {
		return fmt.Errorf("rename document: %w", err)
	}
	return nil
}

// Load reads a user's snapshot. A missing file yields empty defaults,
// not an error.
func (s *Store) Load(username string) (*Document, error) {
	docJson, err := os.ReadFile(s.path(username))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Document{
				Template: plan.New(),
				History:  []trainlog.Session{},
			}, nil
		}
		return nil, fmt.Errorf("read document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(docJson, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	if doc.Template == nil {
		doc.Template = plan.New()
	}
	doc.Template.Normalize()
	if doc.History == nil {
		doc.History = []trainlog.Session{}
	}
	return &doc, nil
}
