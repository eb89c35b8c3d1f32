// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package tracker

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Store holds the whole application table in memory between a load and the
// following save. It is not safe for concurrent use.
type Store struct {
	path string
	log  *slog.Logger
	now  func() time.Time
	apps []Application
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to default date_applied.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Filter selects applications in List. Empty fields match everything.
type Filter struct {
	Status  string
	Company string
}

// Changes are the mutable fields accepted by Update. Empty fields are left
// alone. A whitespace-only Status is rejected and whitespace-only Notes clear
// the notes.
type Changes struct {
	Status string
	Notes  string
}

// New returns a store for the file at path without reading it.
// A nil logger discards all output.
func New(path string, log *slog.Logger, opts ...Option) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Store{path: path, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open returns a store for the file at path with its contents loaded.
func Open(path string, log *slog.Logger, opts ...Option) (*Store, error) {
	s := New(path, log, opts...)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Init creates an empty data file containing only the header row.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return Errorf(KindAlreadyExists, "data file already exists at %s", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Errorf(KindStorageUnavailable, "failed to inspect %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return Errorf(KindStorageUnavailable, "failed to create data directory %s: %w", filepath.Dir(path), err)
	}
	return New(path, nil).Save()
}

// Path returns the location of the data file.
func (s *Store) Path() string { return s.path }

// Applications returns a copy of the loaded table in file order.
func (s *Store) Applications() []Application {
	return slices.Clone(s.apps)
}

// Load replaces the in-memory table with the contents of the data file.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Errorf(KindNotFound, "CSV not found at %s. Create it first with 'jt init'", s.path)
		}
		return Errorf(KindStorageUnavailable, "failed to read CSV at %s: %w", s.path, err)
	}

	apps, err := decodeTable(bytes.NewReader(data))
	if err != nil {
		var mc *missingColumnsError
		switch {
		case errors.As(err, &mc), errors.Is(err, errEmptyTable):
			return Errorf(KindSchemaMismatch, "CSV schema mismatch at %s: %w", s.path, err)
		default:
			return Errorf(KindStorageUnavailable, "failed to read CSV at %s: %w", s.path, err)
		}
	}

	s.apps = apps
	s.log.Debug("Loaded applications", "path", s.path, "count", len(apps))
	return nil
}

// Save rewrites the whole data file from the in-memory table. The new content
// is written to a sibling temporary file and renamed over the target.
func (s *Store) Save() error {
	var buf bytes.Buffer
	if err := encodeTable(&buf, s.apps); err != nil {
		return fmt.Errorf("encoding applications: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return Errorf(KindStorageUnavailable, "failed to write CSV at %s: %w", s.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return Errorf(KindStorageUnavailable, "failed to write CSV at %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return Errorf(KindStorageUnavailable, "failed to write CSV at %s: %w", s.path, err)
	}
	if err := os.Chmod(tmpName, 0640); err != nil {
		return Errorf(KindStorageUnavailable, "failed to write CSV at %s: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return Errorf(KindStorageUnavailable, "failed to replace CSV at %s: %w", s.path, err)
	}

	s.log.Debug("Saved applications", "path", s.path, "count", len(s.apps))
	return nil
}

// Add validates app, appends it to the table and persists the file.
// Status defaults to applied and date_applied to today.
func (s *Store) Add(app Application) (Application, error) {
	app = app.trimmed()

	var err error
	if app.Company, err = RequireNonEmpty(app.Company, "company"); err != nil {
		return Application{}, err
	}
	if app.Role, err = RequireNonEmpty(app.Role, "role"); err != nil {
		return Application{}, err
	}
	if app.Status == "" {
		app.Status = StatusApplied
	} else if app.Status, err = NormalizeStatus(string(app.Status)); err != nil {
		return Application{}, err
	}
	if app.DateApplied, err = normalizeDate(app.DateApplied, s.now()); err != nil {
		return Application{}, err
	}

	if slices.ContainsFunc(s.apps, func(a Application) bool { return a.matches(app.Company, app.Role) }) {
		return Application{}, Errorf(KindDuplicateKey,
			"duplicate entry: company='%s' and role='%s' already exists. Use update instead", app.Company, app.Role)
	}

	s.log.Info("Adding application", "company", app.Company, "role", app.Role, "status", app.Status)

	s.apps = append(s.apps, app)
	if err := s.Save(); err != nil {
		s.apps = s.apps[:len(s.apps)-1]
		return Application{}, err
	}
	return app, nil
}

// List returns the applications matching every non-empty field of f.
// The status filter is validated even when the table is empty.
func (s *Store) List(f Filter) ([]Application, error) {
	var status Status
	if strings.TrimSpace(f.Status) != "" {
		var err error
		if status, err = NormalizeStatus(f.Status); err != nil {
			return nil, err
		}
	}
	company := strings.TrimSpace(f.Company)

	matched := lo.Filter(s.apps, func(a Application, _ int) bool {
		if status != "" && a.Status != status {
			return false
		}
		if company != "" && strings.TrimSpace(a.Company) != company {
			return false
		}
		return true
	})
	s.log.Debug("Listed applications", "status", status, "company", company, "matched", len(matched))
	return matched, nil
}

// Update changes the status and/or notes of the application identified by
// (company, role) and persists the file.
func (s *Store) Update(company, role string, ch Changes) (Application, error) {
	var err error
	if company, err = RequireNonEmpty(company, "company"); err != nil {
		return Application{}, err
	}
	if role, err = RequireNonEmpty(role, "role"); err != nil {
		return Application{}, err
	}

	var status Status
	if ch.Status != "" {
		if status, err = NormalizeStatus(ch.Status); err != nil {
			return Application{}, err
		}
	}
	setNotes := ch.Notes != ""
	notes := cleanText(ch.Notes)

	var idx []int
	for i, a := range s.apps {
		if a.matches(company, role) {
			idx = append(idx, i)
		}
	}
	switch {
	case len(idx) == 0:
		return Application{}, Errorf(KindNotFound, "no application found for company='%s' and role='%s'", company, role)
	case len(idx) > 1:
		return Application{}, Errorf(KindAmbiguousMatch,
			"multiple applications match company='%s' and role='%s'. Refusing to update", company, role)
	}
	if status == "" && !setNotes {
		return Application{}, Errorf(KindNothingToUpdate, "nothing to update. Provide --status and/or --notes")
	}

	i := idx[0]
	previous := s.apps[i]
	if status != "" {
		s.apps[i].Status = status
	}
	if setNotes {
		s.apps[i].Notes = notes
	}

	if err := s.Save(); err != nil {
		s.apps[i] = previous
		return Application{}, err
	}
	s.log.Info("Updated application", "company", company, "role", role, "status", s.apps[i].Status, "notes_changed", setNotes)
	return s.apps[i], nil
}

// Companies returns the distinct company names in sorted order.
func (s *Store) Companies() []string {
	companies := lo.Uniq(lo.Map(s.apps, func(a Application, _ int) string { return a.Company }))
	slices.Sort(companies)
	return companies
}

// Roles returns the distinct roles, optionally restricted to one company, in sorted order.
func (s *Store) Roles(company string) []string {
	apps := s.apps
	if company != "" {
		apps = lo.Filter(apps, func(a Application, _ int) bool { return a.Company == company })
	}
	roles := lo.Uniq(lo.Map(apps, func(a Application, _ int) string { return a.Role }))
	slices.Sort(roles)
	return roles
}
