package floor

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed floors.yaml
var defaultDocument []byte

// Load parses a floor document. JSON documents are accepted as well since
// they are valid YAML.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading floor document: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing floor document: %w", err)
	}
	return &doc, nil
}

// LoadFile parses the floor document at path.
func LoadFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening floor document: %w", err)
	}
	defer file.Close()

	return Load(file)
}

// Default returns the built-in floor document.
func Default() (*Document, error) {
	return Load(bytes.NewReader(defaultDocument))
}
