package restdb

import (
	"errors"
	"fmt"
	"testing"
)

func TestHashProviderRoundTrip(t *testing.T) {
	h := NewHashProvider("test salt", 12)
	data := []int64{0, 1, 42, 1<<40 + 7}
	for idx, value := range data {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			hash, err := h.Encode("id", value)
			if err != nil {
				t.Fatal(err)
			}
			if len(hash) < 12 {
				t.Errorf("hash %q shorter than the minimum length", hash)
			}
			decoded, err := h.Decode("id", hash)
			if err != nil {
				t.Fatal(err)
			}
			if decoded != value {
				t.Errorf("got %v want %v", decoded, value)
			}
		})
	}
}

func TestHashProviderSeedsDiffer(t *testing.T) {
	h := NewHashProvider("test salt", 12)
	idHash, err := h.Encode("id", 42)
	if err != nil {
		t.Fatal(err)
	}
	ownerHash, err := h.Encode("owner_id", 42)
	if err != nil {
		t.Fatal(err)
	}
	if idHash == ownerHash {
		t.Error("different seeds must produce different hashes")
	}
	if _, err := h.Decode("owner_id", idHash); err == nil {
		t.Error("a hash must not decode under a foreign seed")
	}
}

func TestHashProviderRejectsGarbage(t *testing.T) {
	h := NewHashProvider("test salt", 12)
	if _, err := h.Decode("id", "not-a-hash"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("got %v want ErrInvalidID", err)
	}
}
