package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the file format from the path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported schedule file %q (want .toml, .yaml or .json)", path)
}

func Decode(data []byte, format Format) (*Schedule, error) {
	var s Schedule
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &s)
	case FormatYAML:
		err = yaml.Unmarshal(data, &s)
	case FormatJSON:
		err = json.Unmarshal(data, &s)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s schedule: %w", format, err)
	}
	return &s, nil
}

func Encode(s *Schedule, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(s)
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return json.MarshalIndent(s, "", "  ")
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// Load reads and validates a schedule file. A schedule without an id gets one.
func Load(path string) (*Schedule, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schedule file: %w", err)
	}

	s, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	if s.ID == "" {
		s.ID = New(s.Name).ID
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schedule %s: %w", path, err)
	}
	return s, nil
}

func Save(path string, s *Schedule) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	data, err := Encode(s, format)
	if err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating schedule directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}
