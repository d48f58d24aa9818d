package routing

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of routes.yaml
type Loader struct {
	filePath string
}

// NewLoader creates a new routes loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the routes file
func (l *Loader) Load() (RoutesFile, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return RoutesFile{}, fmt.Errorf("failed to read routes file: %w", err)
	}

	data = expandVariables(data)

	var file RoutesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return RoutesFile{}, fmt.Errorf("failed to parse routes yaml: %w", err)
	}

	return file, nil
}

// Double braces never clash with single brace URI template expressions.
var variableRe = regexp.MustCompile(`\{\{\s*([A-Z0-9_]+)\s*\}\}`)

// expandVariables replaces {{NAME}} with the value of the environment
// variable NAME, or "" when unset.
// Example: "{{SHOP_PREFIX}}/products/{id}/{slug}" -> "/fr/products/{id}/{slug}"
func expandVariables(data []byte) []byte {
	return variableRe.ReplaceAllFunc(data, func(m []byte) []byte {
		name := variableRe.FindSubmatch(m)[1]
		return []byte(os.Getenv(string(name)))
	})
}
