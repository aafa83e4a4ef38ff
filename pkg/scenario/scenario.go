package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/skyhookui/skyhook/pkg/errors"
)

// Format identifies a scenario serialization format.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidScenario,
			"unsupported scenario file extension %q (want .toml or .json)", filepath.Ext(path))
	}
}

// =============================================================================
// Scenario Serialization API
// =============================================================================

// Marshal encodes a scenario in the given format.
func Marshal(s *Scenario, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(s, &buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a scenario to an io.Writer.
func Write(s *Scenario, w io.Writer, format Format) error {
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(s); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidScenario, "unsupported format %q", format)
	}
}

// WriteFile writes a scenario to a file, picking the format from the
// extension. The file is created with 0644 permissions.
func WriteFile(s *Scenario, path string) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(s, f, format)
}

// Read decodes and validates a scenario from an io.Reader.
func Read(r io.Reader, format Format) (*Scenario, error) {
	var s Scenario
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "decode toml")
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidScenario, "unsupported format %q", format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ReadFile reads and validates a scenario file, picking the format from the
// extension.
func ReadFile(path string) (*Scenario, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}
