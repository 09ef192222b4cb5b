package signature

import (
	_ "embed"
)

//go:embed signatures/builtin.yaml
var builtinCatalogue []byte

// LoadBuiltin returns the embedded catalogue of common file-format
// signatures.
func LoadBuiltin() ([]*Signature, error) {
	return Load(builtinCatalogue)
}
