package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/centuriae/revtrail/internal/timeline"
)

// Format is the encoding of a history file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForPath returns FormatYAML for ".yaml" and ".yml" files, and FormatJSON otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// record is one entry of a history file.
type record struct {
	Hash     string `json:"hash" yaml:"hash"`
	Date     string `json:"date,omitempty" yaml:"date,omitempty"`
	Subject  string `json:"subject" yaml:"subject"`
	Content  string `json:"content" yaml:"content"`
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`
}

// ReadFile reads a newest-first history file. The format is chosen with FormatForPath.
func ReadFile(path string) ([]timeline.Revision, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	defer f.Close()

	revs, err := Decode(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return revs, nil
}

// Decode reads a newest-first history from r. Empty input decodes to an empty history.
func Decode(r io.Reader, format Format) ([]timeline.Revision, error) {
	var records []record

	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&records)
	default:
		err = json.NewDecoder(r).Decode(&records)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("history: decode: %w", err)
	}

	revs := make([]timeline.Revision, len(records))
	for i, rec := range records {
		revs[i] = timeline.Revision{
			ID:        rec.Hash,
			Content:   rec.Content,
			Subject:   rec.Subject,
			Timestamp: rec.Date,
		}
	}

	if err := Validate(revs); err != nil {
		return nil, err
	}
	return revs, nil
}

// Encode writes revs as an indented JSON history file. filename, if non-empty, is recorded on every entry.
func Encode(w io.Writer, revs []timeline.Revision, filename string) error {
	records := make([]record, len(revs))
	for i, rev := range revs {
		records[i] = record{
			Hash:     rev.ID,
			Date:     rev.Timestamp,
			Subject:  rev.Subject,
			Content:  rev.Content,
			Filename: filename,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}
