package scene

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for a file extension that is neither YAML
// nor TOML.
var ErrUnknownFormat = errors.New("scene: unknown file format")

// Format is a scene file encoding.
type Format int

// Supported formats.
const (
	FormatYAML Format = iota
	FormatTOML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath selects the format from the file extension: .yaml and
// .yml for YAML, .toml for TOML.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Base(path))
	}
}

// Decode parses and validates a scene.
func Decode(data []byte, format Format) (*Scene, error) {
	var s Scene
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("scene: parse yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("scene: parse toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Encode serializes a scene.
func Encode(s *Scene, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return nil, fmt.Errorf("scene: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("scene: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		data, err := toml.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("scene: encode toml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}

// Load reads a scene file, choosing the format by extension.
func Load(path string) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	s, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// Save writes a scene file, choosing the format by extension.
func Save(path string, s *Scene) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(s, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("scene: write %s: %w", path, err)
	}
	return nil
}
