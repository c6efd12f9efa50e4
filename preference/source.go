// SPDX-License-Identifier: MIT

package preference

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Source selects where preference data comes from. Exactly one of Filename
// and Dictionary must be set.
type Source[D any] struct {
	Filename   string
	Dictionary *D
}

// FromFile returns a Source reading the named file.
func FromFile[D any](name string) Source[D] {
	return Source[D]{Filename: name}
}

// FromDictionary returns a Source holding a copy of d.
func FromDictionary[D any](d D) Source[D] {
	return Source[D]{Dictionary: &d}
}

// Check enforces the exactly-one contract and, for files, that the name
// references a regular file. It performs no parsing.
func (s Source[D]) Check() error {
	hasFile := strings.TrimSpace(s.Filename) != ""
	switch {
	case hasFile && s.Dictionary != nil:
		return ErrAmbiguousSource
	case !hasFile && s.Dictionary == nil:
		return ErrNoSource
	case !hasFile:
		return nil
	}

	info, err := os.Stat(s.Filename)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrFileNotFound, s.Filename)
	}

	return nil
}

// decodeFile fills dst from name, dispatching on the file extension.
// Plain-text files are handed to parseText.
func decodeFile(name string, dst any, parseText func(*os.File) error) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err = dec.Decode(dst); err != nil {
			return fmt.Errorf("%w: decode yaml %s: %w", ErrMalformed, name, err)
		}
	case ".toml":
		dec := toml.NewDecoder(f)
		dec.DisallowUnknownFields()
		if err = dec.Decode(dst); err != nil {
			return fmt.Errorf("%w: decode toml %s: %w", ErrMalformed, name, err)
		}
	default:
		if err = parseText(f); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}
