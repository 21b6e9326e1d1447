package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// chainFile represents the structure of the middlewares configuration file.
type chainFile struct {
	Middlewares []Config `json:"middlewares" yaml:"middlewares"`
}

// DefaultChain is the chain used when no middlewares file is configured:
// a single detailed logger with default settings.
func DefaultChain() []Config {
	return []Config{{ID: TypeDetailedLogger, Type: TypeDetailedLogger}}
}

// LoadChain loads middleware config entries from a YAML/JSON file.
func LoadChain(path string) ([]Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("middlewares file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open middlewares file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read middlewares file: %w", err)
	}

	parsed, err := parseChain(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(parsed.Middlewares) == 0 {
		return nil, errors.New("middlewares file contains no middlewares entries")
	}

	seen := make(map[string]struct{}, len(parsed.Middlewares))
	out := make([]Config, 0, len(parsed.Middlewares))
	for i, cfg := range parsed.Middlewares {
		cfg.ID = strings.TrimSpace(cfg.ID)
		cfg.Type = strings.TrimSpace(strings.ToLower(cfg.Type))
		if cfg.Type == "" {
			return nil, fmt.Errorf("middlewares[%d]: missing type", i)
		}
		if cfg.ID == "" {
			cfg.ID = cfg.Type
		}
		if _, exists := seen[cfg.ID]; exists {
			return nil, fmt.Errorf("duplicate middleware id %q", cfg.ID)
		}
		seen[cfg.ID] = struct{}{}
		out = append(out, cfg)
	}
	return out, nil
}

// parseChain decodes the file contents based on the file extension.
func parseChain(raw []byte, ext string) (chainFile, error) {
	var parsed chainFile

	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return chainFile{}, fmt.Errorf("parse middlewares json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(raw, &parsed); err != nil {
			return chainFile{}, fmt.Errorf("parse middlewares yaml: %w", err)
		}
	}
	return parsed, nil
}
