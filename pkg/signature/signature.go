// Package signature loads byte-signature catalogues from YAML files and
// converts them to searchable patterns.
package signature

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/sigseek/sigseek/pkg/types"
)

// ErrInvalidSignature reports a malformed signature entry.
var ErrInvalidSignature = errors.New("invalid signature")

// Signature describes one byte sequence in a catalogue, specified as either
// a hex string or an ASCII literal.
type Signature struct {
	// ID uniquely identifies the signature, e.g. "fmt.zip".
	ID string `yaml:"id"`

	// Name is a display name, e.g. "ZIP archive".
	Name string `yaml:"name"`

	// Hex is the byte sequence as hexadecimal digits, e.g. "504B0304".
	// Exactly one of Hex and ASCII must be set.
	Hex string `yaml:"hex,omitempty"`

	// ASCII is the byte sequence as a literal string, e.g. "%PDF-".
	ASCII string `yaml:"ascii,omitempty"`

	// Description is optional free text.
	Description string `yaml:"description,omitempty"`
}

// Pattern converts the signature to a searchable pattern.
func (s *Signature) Pattern() (*types.Pattern, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	var data []byte
	if s.Hex != "" {
		decoded, err := hex.DecodeString(strings.ReplaceAll(s.Hex, " ", ""))
		if err != nil {
			return nil, fmt.Errorf("%w: signature %q: %v", ErrInvalidSignature, s.ID, err)
		}
		data = decoded
	} else {
		data = []byte(s.ASCII)
	}
	return &types.Pattern{ID: s.ID, Name: s.Name, Bytes: data}, nil
}

func (s *Signature) validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidSignature)
	}
	if s.Hex == "" && s.ASCII == "" {
		return fmt.Errorf("%w: signature %q has neither hex nor ascii bytes", ErrInvalidSignature, s.ID)
	}
	if s.Hex != "" && s.ASCII != "" {
		return fmt.Errorf("%w: signature %q has both hex and ascii bytes", ErrInvalidSignature, s.ID)
	}
	return nil
}

// Patterns converts a catalogue of signatures to patterns, preserving order.
func Patterns(signatures []*Signature) ([]*types.Pattern, error) {
	patterns := make([]*types.Pattern, 0, len(signatures))
	for _, s := range signatures {
		p, err := s.Pattern()
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}
