package restdb

import (
	"fmt"

	hashids "github.com/speps/go-hashids/v2"
)

// HashProvider obfuscates numeric primary and foreign key values with
// reversible hashids. Every field gets its own hash sequence by folding the
// field name into the salt, so equal values in different columns never
// produce equal hashes.
type HashProvider struct {
	salt      string
	minLength int
}

// NewHashProvider creates a provider with the given salt. minLength pads
// short hashes; 0 disables padding.
func NewHashProvider(salt string, minLength int) *HashProvider {
	return &HashProvider{salt: salt, minLength: minLength}
}

func (h *HashProvider) forSeed(seed string) (*hashids.HashID, error) {
	data := hashids.NewData()
	data.Salt = h.salt + " " + seed
	data.MinLength = h.minLength
	return hashids.NewWithData(data)
}

// Encode hashes one numeric value under the given seed.
func (h *HashProvider) Encode(seed string, value int64) (string, error) {
	hid, err := h.forSeed(seed)
	if err != nil {
		return "", err
	}
	encoded, err := hid.EncodeInt64([]int64{value})
	if err != nil {
		return "", fmt.Errorf("hashid encode failed for seed %q: %w", seed, err)
	}
	return encoded, nil
}

// Decode reverses Encode under the same seed.
func (h *HashProvider) Decode(seed, hash string) (int64, error) {
	hid, err := h.forSeed(seed)
	if err != nil {
		return 0, err
	}
	values, err := hid.DecodeInt64WithError(hash)
	if err != nil || len(values) != 1 {
		return 0, fmt.Errorf("hashid %q does not decode under seed %q: %w", hash, seed, ErrInvalidID)
	}
	return values[0], nil
}
