package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed defaults.json
var defaultCatalog []byte

//go:embed schema.json
var catalogSchema string

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() (*ActivityCatalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads and validates a catalog file.
func LoadCatalog(path string) (*ActivityCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return catalog, nil
}

// ParseCatalog validates data against the catalog schema and decodes it.
func ParseCatalog(data []byte) (*ActivityCatalog, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var catalog ActivityCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := checkUniqueNames(catalog.Activities); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Validate checks data against the embedded JSON schema.
func Validate(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(catalogSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

func checkUniqueNames(activities []Activity) error {
	seen := make(map[string]bool, len(activities))
	for _, a := range activities {
		if seen[a.Name] {
			return fmt.Errorf("duplicate activity name %q", a.Name)
		}
		seen[a.Name] = true
	}
	return nil
}

// SaveCatalog stamps LastUpdated and writes the catalog as indented JSON.
func SaveCatalog(path string, catalog *ActivityCatalog) error {
	catalog.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	for i := range catalog.Activities {
		if catalog.Activities[i].Participants == nil {
			catalog.Activities[i].Participants = []string{}
		}
	}
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return err
	}
	if err := Validate(data); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
