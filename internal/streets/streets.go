// Package streets loads the fixed reference data used to recognise addresses:
// the vocabulary of valid street names and the street type abbreviation map.
//
// Both are loaded once at start-up and never modified afterwards, so a single
// instance can be shared by concurrent callers.
package streets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// ConfigurationMissingError reports reference data that could not be found.
// It is fatal: there is no built-in fallback.
type ConfigurationMissingError struct {
	Resource string
	Path     string
	Err      error
}

func (e *ConfigurationMissingError) Error() string {
	return fmt.Sprintf("streets: %s not found at %s", e.Resource, e.Path)
}

func (e *ConfigurationMissingError) Unwrap() error {
	return e.Err
}

// Vocabulary is the ordered set of canonical street names, e.g. "valencia st".
type Vocabulary struct {
	names []string
	index map[string]struct{}
}

// NewVocabulary builds a vocabulary from names. Names are lower-cased and
// trimmed, duplicates dropped, and the first-seen order kept.
func NewVocabulary(names []string) *Vocabulary {
	v := &Vocabulary{
		names: make([]string, 0, len(names)),
		index: make(map[string]struct{}, len(names)),
	}
	for _, name := range names {
		name = canonical(name)
		if name == "" {
			continue
		}
		if _, dup := v.index[name]; dup {
			continue
		}
		v.index[name] = struct{}{}
		v.names = append(v.names, name)
	}
	return v
}

// LoadVocabulary reads a JSON array of street names from path.
func LoadVocabulary(path string) (*Vocabulary, error) {
	var names []string
	if err := readJSON("street names", path, &names); err != nil {
		return nil, err
	}
	return NewVocabulary(names), nil
}

// SaveVocabulary writes v to path as a JSON array in load order, creating the
// parent directory if needed.
func SaveVocabulary(path string, v *Vocabulary) error {
	data, err := json.MarshalIndent(v.names, "", "  ")
	if err != nil {
		return eris.Wrap(err, "streets: encode street names")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "streets: create directory for %s", path)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return eris.Wrapf(err, "streets: write street names to %s", path)
	}
	return nil
}

// Contains reports whether name is exactly a vocabulary entry.
func (v *Vocabulary) Contains(name string) bool {
	_, ok := v.index[name]
	return ok
}

// Names returns the entries in load order. The slice must not be modified.
func (v *Vocabulary) Names() []string {
	return v.names
}

// Len returns the number of entries.
func (v *Vocabulary) Len() int {
	return len(v.names)
}

// Abbreviations maps long-form street types to their abbreviation.
type Abbreviations struct {
	short map[string]string
}

// NewAbbreviations builds an abbreviation map; keys and values are lower-cased.
func NewAbbreviations(m map[string]string) *Abbreviations {
	a := &Abbreviations{short: make(map[string]string, len(m))}
	for long, short := range m {
		a.short[canonical(long)] = canonical(short)
	}
	return a
}

// LoadAbbreviations reads a JSON object of {"street": "st", ...} from path.
func LoadAbbreviations(path string) (*Abbreviations, error) {
	var m map[string]string
	if err := readJSON("street types", path, &m); err != nil {
		return nil, err
	}
	return NewAbbreviations(m), nil
}

// Abbreviate returns the abbreviation for streetType, if there is one.
func (a *Abbreviations) Abbreviate(streetType string) (string, bool) {
	short, ok := a.short[strings.ToLower(streetType)]
	return short, ok
}

// Len returns the number of street types.
func (a *Abbreviations) Len() int {
	return len(a.short)
}

func readJSON(resource, path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ConfigurationMissingError{Resource: resource, Path: path, Err: err}
		}
		return eris.Wrapf(err, "streets: read %s", resource)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return eris.Wrapf(err, "streets: decode %s from %s", resource, path)
	}
	return nil
}

func canonical(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
