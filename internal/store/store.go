// Package store persists country datasets as flat JSON files, one file per
// country named <CC>.json.
//
// Files hold a compact JSON array of {"date","name"} objects sorted by
// date. Non-ASCII names are written as UTF-8, never \u-escaped. Writes go
// through a temp file and rename so a crash never leaves a half-written
// dataset behind.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rickgao/holiday-data/internal/model"
)

// FileStore reads and writes datasets under a root directory.
type FileStore struct {
	dir string
}

// New returns a FileStore rooted at dir. The directory is created on the
// first Save.
func New(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the file path for a country code.
func (s *FileStore) Path(code string) string {
	return filepath.Join(s.dir, code+".json")
}

// Load reads a country's records. A missing file yields an empty slice and
// no error. Content that is not a JSON array of valid records fails with an
// error wrapping model.ErrMalformedRecord.
func (s *FileStore) Load(code string) ([]model.Record, error) {
	data, err := os.ReadFile(s.Path(code))
	if errors.Is(err, fs.ErrNotExist) {
		return []model.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", code, err)
	}

	records, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", code, err)
	}
	return records, nil
}

// Save replaces a country's file with records.
func (s *FileStore) Save(code string, records []model.Record) error {
	data, err := Encode(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", code, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", s.dir, err)
	}

	path := s.Path(code)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", code, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", code, err)
	}
	return nil
}

// HasData reports whether the country's file exists and holds at least one
// record. Content that cannot be decoded counts as data, so recreate mode
// never silently replaces a file it cannot read.
func (s *FileStore) HasData(code string) (bool, error) {
	data, err := os.ReadFile(s.Path(code))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", code, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return true, nil
	}
	return len(raw) > 0, nil
}

// Codes lists the country codes that have a file, sorted. Only stems that
// are valid two-letter uppercase codes are returned. A missing directory
// yields no codes.
func (s *FileStore) Codes() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}

	var codes []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		code, ok := strings.CutSuffix(e.Name(), ".json")
		if !ok || !model.ValidCountryCode(code) {
			continue
		}
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes, nil
}

// Encode renders records in the on-disk format.
func Encode(records []model.Record) ([]byte, error) {
	if records == nil {
		records = []model.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses the on-disk format.
func Decode(data []byte) ([]model.Record, error) {
	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		var typeErr *json.UnmarshalTypeError
		var syntaxErr *json.SyntaxError
		if errors.As(err, &typeErr) || errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("%w: %v", model.ErrMalformedRecord, err)
		}
		return nil, err
	}
	if records == nil {
		records = []model.Record{}
	}
	return records, nil
}
