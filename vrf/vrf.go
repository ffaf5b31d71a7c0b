// Package vrf simulates the verifiable random function behind the validator
// lottery. A real VRF proves that an output was derived from a secret key;
// here the output is simply a hash of the epoch seed and the node identity.
// That keeps the two properties the lottery relies on: the draw is
// reproducible for a given epoch number, and nobody can precompute it before
// that number is fixed. No cryptographic unpredictability is claimed.
package vrf

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/rony4d/go-meshx-sim/inter"
	"github.com/rony4d/go-meshx-sim/utils/fast"
)

// Supported hash function names.
const (
	SHA256    = "sha256"
	Keccak256 = "keccak256"
)

// Hasher is the collision-resistant 256-bit digest the lottery runs on.
type Hasher interface {
	Name() string
	// Sum hashes the concatenation of data and returns a 32-byte digest.
	Sum(data ...[]byte) []byte
}

type sha256Hasher struct{}

func (sha256Hasher) Name() string { return SHA256 }

func (sha256Hasher) Sum(data ...[]byte) []byte {
	return hash.Of(data...).Bytes()
}

type keccak256Hasher struct{}

func (keccak256Hasher) Name() string { return Keccak256 }

func (keccak256Hasher) Sum(data ...[]byte) []byte {
	return crypto.Keccak256(data...)
}

var hashers = map[string]Hasher{
	SHA256:    sha256Hasher{},
	Keccak256: keccak256Hasher{},
}

// Default returns the sha256 hasher.
func Default() Hasher {
	return sha256Hasher{}
}

// ByName looks up a hasher by its configuration name.
func ByName(name string) (Hasher, error) {
	h, ok := hashers[name]
	if !ok {
		return nil, fmt.Errorf("unknown vrf hash %q (valid: %v)", name, Names())
	}
	return h, nil
}

// Supported reports whether name identifies a known hasher.
func Supported(name string) bool {
	_, ok := hashers[name]
	return ok
}

// Names lists the supported hasher names, sorted.
func Names() []string {
	names := make([]string, 0, len(hashers))
	for name := range hashers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EpochSeed derives the lottery seed for an epoch by hashing the decimal
// representation of the epoch number.
func EpochSeed(h Hasher, epoch idx.Epoch) []byte {
	return h.Sum([]byte(strconv.FormatUint(uint64(epoch), 10)))
}

// Output computes H(seed || id) and reads the digest as an unsigned
// big-endian integer. w is scratch space; it is reset before use.
func Output(h Hasher, w *fast.Writer, seed []byte, id inter.NodeID) *big.Int {
	w.Reset()
	w.Write(seed)
	w.WriteString(string(id))
	return new(big.Int).SetBytes(h.Sum(w.Bytes()))
}
