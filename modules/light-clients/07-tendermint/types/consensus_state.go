package types

import (
	"fmt"

	"github.com/cometbft/cometbft/crypto/tmhash"
	"gopkg.in/yaml.v2"
)

// ConsensusState is the trusted snapshot of the counterparty chain at a
// given height (spec.md §3). It is stored only by its canonical hash; the
// struct itself only ever exists transiently, inside a decoded proof's
// public values or as a constructor argument.
type ConsensusState struct {
	Timestamp          uint64 `json:"timestamp" yaml:"timestamp"`
	Root               [32]byte `json:"root" yaml:"root"`
	NextValidatorsHash [32]byte `json:"next_validators_hash" yaml:"next_validators_hash"`
}

// NewConsensusState constructs a ConsensusState.
func NewConsensusState(timestamp uint64, root, nextValidatorsHash [32]byte) ConsensusState {
	return ConsensusState{Timestamp: timestamp, Root: root, NextValidatorsHash: nextValidatorsHash}
}

// Reset, String and ProtoMessage satisfy gogoproto's proto.Message, the
// teacher's convention for every wire type (see codec.go).
func (cs *ConsensusState) Reset() { *cs = ConsensusState{} }
func (cs ConsensusState) ProtoMessage() {}
func (cs ConsensusState) String() string {
	out, err := yaml.Marshal(cs)
	if err != nil {
		return fmt.Sprintf("%+v", struct {
			Timestamp          uint64
			Root               [32]byte
			NextValidatorsHash [32]byte
		}(cs))
	}
	return string(out)
}

// Marshal implements the canonical encoding described in codec.go. Field
// order is fixed: Timestamp, Root, NextValidatorsHash — the same order
// CanonicalHash below feeds into the hash function, per spec.md §3
// "Canonical hash. ... fields in a fixed order".
func (cs ConsensusState) Marshal() ([]byte, error) {
	e := &encBuf{}
	e.putUint64(cs.Timestamp)
	e.buf.Write(cs.Root[:])
	e.buf.Write(cs.NextValidatorsHash[:])
	return e.bytes(), nil
}

// Unmarshal decodes bytes produced by Marshal.
func (cs *ConsensusState) Unmarshal(data []byte) error {
	d := newDecBuf(data)
	ts, err := d.getUint64()
	if err != nil {
		return wrapDecodeErr(err, "ConsensusState.Timestamp")
	}
	var root, nextValHash [32]byte
	if err := readFixed32(d, root[:]); err != nil {
		return wrapDecodeErr(err, "ConsensusState.Root")
	}
	if err := readFixed32(d, nextValHash[:]); err != nil {
		return wrapDecodeErr(err, "ConsensusState.NextValidatorsHash")
	}
	cs.Timestamp = ts
	cs.Root = root
	cs.NextValidatorsHash = nextValHash
	return nil
}

func readFixed32(d *decBuf, out []byte) error {
	n, err := d.r.Read(out)
	if err != nil {
		return err
	}
	for n < len(out) {
		m, err := d.r.Read(out[n:])
		if err != nil {
			return err
		}
		n += m
	}
	return nil
}

// CanonicalHash computes the deterministic identity of a ConsensusState
// used throughout the spec: the map key lookups (consensusStateHashes), the
// update-handler's duplicate/misbehaviour check, and the membership
// validators all compare against this value. It MUST agree bit-for-bit with
// the off-chain prover's equivalent function (spec.md §3, §9).
//
// tmhash (SHA-256, the hash cometbft itself uses for header/validator-set
// hashing) is used rather than a hand-rolled hash, keeping the light client
// on the same primitive as the chain it tracks.
func (cs ConsensusState) CanonicalHash() [32]byte {
	bz, _ := cs.Marshal() // deterministic encoding never errors
	var out [32]byte
	copy(out[:], tmhash.Sum(bz))
	return out
}

// IsZeroHash reports whether h is the reserved "absent" sentinel
// (spec.md §4.1 "Policy").
func IsZeroHash(h [32]byte) bool {
	return h == [32]byte{}
}
