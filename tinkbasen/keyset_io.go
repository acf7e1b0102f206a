package tinkbasen

import (
	"fmt"
	"io"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/proto/tink_go_proto"
)

// GenerateKeyset returns a handle holding one fresh key built from template.
func GenerateKeyset(template *tink_go_proto.KeyTemplate) (*keyset.Handle, error) {
	if err := Register(); err != nil {
		return nil, fmt.Errorf("failed to register key manager: %w", err)
	}
	return keyset.NewHandle(template)
}

// WriteKeyset writes handle as cleartext JSON to w.
func WriteKeyset(handle *keyset.Handle, w io.Writer) error {
	if err := insecurecleartextkeyset.Write(handle, keyset.NewJSONWriter(w)); err != nil {
		return fmt.Errorf("failed to write keyset: %w", err)
	}
	return nil
}

// ReadKeyset reads a cleartext JSON keyset written by WriteKeyset.
func ReadKeyset(r io.Reader) (*keyset.Handle, error) {
	if err := Register(); err != nil {
		return nil, fmt.Errorf("failed to register key manager: %w", err)
	}
	handle, err := insecurecleartextkeyset.Read(keyset.NewJSONReader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to read keyset: %w", err)
	}
	return handle, nil
}
