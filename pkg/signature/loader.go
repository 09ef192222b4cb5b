package signature

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogueFile is the top-level structure of a signatures YAML file.
type catalogueFile struct {
	Signatures []*Signature `yaml:"signatures"`
}

// Load parses a signature catalogue from YAML bytes.
func Load(data []byte) ([]*Signature, error) {
	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing signature catalogue: %w", err)
	}
	if len(file.Signatures) == 0 {
		return nil, fmt.Errorf("%w: no signatures in catalogue", ErrInvalidSignature)
	}
	for _, s := range file.Signatures {
		if err := s.validate(); err != nil {
			return nil, err
		}
	}
	return file.Signatures, nil
}

// LoadFile parses a signature catalogue from a YAML file path.
func LoadFile(path string) ([]*Signature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading signature file %s: %w", path, err)
	}
	return Load(data)
}
