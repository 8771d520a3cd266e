package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader reads keyword seed files from a directory.
type Loader struct {
	keywordsDir string
}

func NewLoader(keywordsDir string) *Loader {
	return &Loader{keywordsDir: keywordsDir}
}

// LoadAll loads every *.yml and *.yaml file in the keywords directory.
// A missing directory yields an empty list, not an error.
func (l *Loader) LoadAll() ([]Seed, error) {
	if _, err := os.Stat(l.keywordsDir); os.IsNotExist(err) {
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(l.keywordsDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	yamlFiles, err := filepath.Glob(filepath.Join(l.keywordsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}
	files = append(files, yamlFiles...)

	var seeds []Seed
	seen := make(map[string]string)

	for _, file := range files {
		fileSeeds, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		for _, seed := range fileSeeds {
			term := strings.TrimSpace(seed.Term)
			if term == "" {
				return nil, fmt.Errorf("invalid seed in %s: term is required", file)
			}
			if prev, ok := seen[term]; ok {
				return nil, fmt.Errorf("duplicate keyword term '%s' in %s (already defined in %s)", term, file, prev)
			}
			seen[term] = file

			seed.Term = term
			seeds = append(seeds, seed)
		}

		slog.Debug("Keyword seed file loaded", "file", file, "keywords", len(fileSeeds))
	}

	return seeds, nil
}

func (l *Loader) loadFile(path string) ([]Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var parsed seedFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return parsed.Keywords, nil
}
