// Package tinkbasen integrates sealed basen encodings with Tink keysets.
// This file contains the KeyManager that registers FF1 keys with Tink's registry.
package tinkbasen

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/google/tink/go/core/registry"
	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/proto/tink_go_proto"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/vdparikh/basen/subtle"
)

const (
	// KeyTypeURL is the type URL for FF1 keys in Tink's registry.
	KeyTypeURL = "type.googleapis.com/basen.Ff1Key"

	defaultKeySize = 32
)

// KeyManager implements registry.KeyManager for FF1 keys.
//
// Serialized keys are google.protobuf.BytesValue messages holding the raw AES
// key. Key templates carry a google.protobuf.UInt32Value with the key size.
type KeyManager struct {
	typeURL string
}

// NewKeyManager creates a new FF1 key manager.
func NewKeyManager() *KeyManager {
	return &KeyManager{
		typeURL: KeyTypeURL,
	}
}

// Primitive returns a *subtle.FF1 with an empty tweak for the serialized key.
// Use New to get a sealed encoding with a tweak.
func (km *KeyManager) Primitive(serializedKey []byte) (interface{}, error) {
	key, err := parseKey(serializedKey)
	if err != nil {
		return nil, err
	}

	ff1, err := subtle.NewFF1(key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create FF1: %w", err)
	}
	return ff1, nil
}

// DoesSupport returns true if this KeyManager supports the given key type URL.
func (km *KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == km.typeURL
}

// TypeURL returns the type URL of the keys managed by this KeyManager.
func (km *KeyManager) TypeURL() string {
	return km.typeURL
}

// NewKey generates a new key according to the given serialized key template.
func (km *KeyManager) NewKey(serializedKeyTemplate []byte) (proto.Message, error) {
	keySize, err := parseTemplate(serializedKeyTemplate)
	if err != nil {
		return nil, err
	}

	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate random key: %w", err)
	}
	return wrapperspb.Bytes(key), nil
}

// NewKeyData creates a new KeyData from the given serialized key template.
func (km *KeyManager) NewKeyData(serializedKeyTemplate []byte) (*tink_go_proto.KeyData, error) {
	key, err := km.NewKey(serializedKeyTemplate)
	if err != nil {
		return nil, err
	}

	value, err := proto.Marshal(key)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize key: %w", err)
	}

	return &tink_go_proto.KeyData{
		TypeUrl:         km.typeURL,
		Value:           value,
		KeyMaterialType: tink_go_proto.KeyData_SYMMETRIC,
	}, nil
}

var _ registry.KeyManager = (*KeyManager)(nil)

func parseKey(serializedKey []byte) ([]byte, error) {
	var key wrapperspb.BytesValue
	if err := proto.Unmarshal(serializedKey, &key); err != nil {
		return nil, fmt.Errorf("invalid serialized key: %w", err)
	}
	if err := validateKeySize(len(key.GetValue())); err != nil {
		return nil, err
	}
	return key.GetValue(), nil
}

func parseTemplate(serializedKeyTemplate []byte) (int, error) {
	if len(serializedKeyTemplate) == 0 {
		return defaultKeySize, nil
	}

	var size wrapperspb.UInt32Value
	if err := proto.Unmarshal(serializedKeyTemplate, &size); err != nil {
		return 0, fmt.Errorf("invalid key template: %w", err)
	}
	keySize := int(size.GetValue())
	if err := validateKeySize(keySize); err != nil {
		return 0, fmt.Errorf("invalid key template: %w", err)
	}
	return keySize, nil
}

func validateKeySize(n int) error {
	switch n {
	case 16, 24, 32:
		return nil
	}
	return fmt.Errorf("%w, got %d", subtle.ErrKeySize, n)
}

// KeyTemplate returns the recommended key template (AES-256):
//
//	handle, err := keyset.NewHandle(tinkbasen.KeyTemplate())
func KeyTemplate() *tink_go_proto.KeyTemplate {
	return KeyTemplateAES256()
}

// KeyTemplateAES128 returns a key template for FF1 with AES-128.
func KeyTemplateAES128() *tink_go_proto.KeyTemplate {
	return keyTemplate(16)
}

// KeyTemplateAES192 returns a key template for FF1 with AES-192.
func KeyTemplateAES192() *tink_go_proto.KeyTemplate {
	return keyTemplate(24)
}

// KeyTemplateAES256 returns a key template for FF1 with AES-256.
func KeyTemplateAES256() *tink_go_proto.KeyTemplate {
	return keyTemplate(32)
}

func keyTemplate(keySize uint32) *tink_go_proto.KeyTemplate {
	value, err := proto.Marshal(wrapperspb.UInt32(keySize))
	if err != nil {
		panic(fmt.Sprintf("tinkbasen: cannot serialize key template: %v", err))
	}
	return &tink_go_proto.KeyTemplate{
		TypeUrl:          KeyTypeURL,
		Value:            value,
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}
}

// NewKeysetHandleFromKey creates a keyset handle from a raw 16, 24 or 32 byte
// key, e.g. one exported from an HSM.
//
// The resulting keyset is unencrypted; encrypt it with keyset.Handle.Write and
// an AEAD before storing it.
func NewKeysetHandleFromKey(key []byte) (*keyset.Handle, error) {
	if err := validateKeySize(len(key)); err != nil {
		return nil, err
	}

	value, err := proto.Marshal(wrapperspb.Bytes(key))
	if err != nil {
		return nil, fmt.Errorf("failed to serialize key: %w", err)
	}

	var idBytes [4]byte
	if _, err := rand.Read(idBytes[:]); err != nil {
		return nil, fmt.Errorf("failed to generate key ID: %w", err)
	}
	// Zero is reserved: New rejects it.
	keyID := binary.BigEndian.Uint32(idBytes[:]) | 1

	ks := &tink_go_proto.Keyset{
		PrimaryKeyId: keyID,
		Key: []*tink_go_proto.Keyset_Key{{
			KeyData: &tink_go_proto.KeyData{
				TypeUrl:         KeyTypeURL,
				Value:           value,
				KeyMaterialType: tink_go_proto.KeyData_SYMMETRIC,
			},
			KeyId:            keyID,
			Status:           tink_go_proto.KeyStatusType_ENABLED,
			OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
		}},
	}

	return insecurecleartextkeyset.Read(&keyset.MemReaderWriter{Keyset: ks})
}
