package tinkbasen

import (
	"errors"
	"fmt"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/proto/tink_go_proto"

	"github.com/vdparikh/basen"
	"github.com/vdparikh/basen/subtle"
)

// New creates a sealed encoding over alphabet from the primary key of handle.
// The tweak separates domains: the same key with different tweaks gives
// unrelated encodings.
//
// Example:
//
//	handle, err := keyset.NewHandle(tinkbasen.KeyTemplate())
//	if err != nil {
//	    return err
//	}
//	ids, err := tinkbasen.New(handle, basen.Base58, []byte("order-id"))
//	if err != nil {
//	    return err
//	}
//	s, err := basen.SealUint(ids, uint64(42))
func New(handle *keyset.Handle, alphabet *basen.Alphabet, tweak []byte) (*basen.Sealed, error) {
	if handle == nil {
		return nil, errors.New("keyset handle cannot be nil")
	}
	if alphabet == nil {
		return nil, errors.New("alphabet cannot be nil")
	}
	if err := Register(); err != nil {
		return nil, fmt.Errorf("failed to register key manager: %w", err)
	}

	primitives, err := handle.Primitives()
	if err != nil {
		return nil, fmt.Errorf("failed to get primitives from handle: %w", err)
	}
	primary := primitives.Primary
	if primary == nil {
		return nil, errors.New("no primary key found in keyset")
	}
	if primary.KeyID == 0 {
		return nil, errors.New("invalid key ID in primary entry")
	}

	key, err := primaryKey(insecurecleartextkeyset.KeysetMaterial(handle), primary.KeyID)
	if err != nil {
		return nil, err
	}

	ff1, err := subtle.NewFF1(key, tweak)
	if err != nil {
		return nil, fmt.Errorf("failed to create FF1 instance: %w", err)
	}
	return basen.NewSealed(alphabet, ff1), nil
}

func primaryKey(ks *tink_go_proto.Keyset, keyID uint32) ([]byte, error) {
	for _, k := range ks.GetKey() {
		if k.GetKeyId() != keyID {
			continue
		}
		kd := k.GetKeyData()
		if kd == nil || kd.GetTypeUrl() != KeyTypeURL {
			continue
		}
		if kd.GetKeyMaterialType() != tink_go_proto.KeyData_SYMMETRIC {
			return nil, fmt.Errorf("key %d has unsupported material type %s", keyID, kd.GetKeyMaterialType())
		}
		return parseKey(kd.GetValue())
	}
	return nil, fmt.Errorf("key with ID %d not found", keyID)
}
