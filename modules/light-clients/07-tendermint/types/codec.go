package types

import (
	"bytes"
	"encoding/binary"
	"io"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/gogoproto/proto"
)

// Canonical encoding.
//
// spec.md §6 requires only that the encoding be deterministic and
// round-trip identity-preserving, and bit-exact with the off-chain prover —
// the exact wire format is an external contract (§9). In the absence of a
// shared .proto schema with the prover in this pack, canonical encoding is
// implemented here directly as a fixed, deterministic, length-prefixed
// binary layout (never map iteration, never a format with padding
// ambiguity). ClientState and ConsensusState additionally satisfy gogoproto's
// proto.Message interface (Reset/String/ProtoMessage) and are registered
// with proto.RegisterType below; the proof and output types are plain
// structs with Marshal/Unmarshal only. That is the convention cosmos-sdk's
// custom-marshaled types (e.g. math.Int embedded in a protobuf message) follow.

func init() {
	proto.RegisterType((*ClientState)(nil), "sp1ics07tendermint.ClientState")
	proto.RegisterType((*ConsensusState)(nil), "sp1ics07tendermint.ConsensusState")
}

// encBuf is a small deterministic binary writer shared by every Marshal
// implementation in this package.
type encBuf struct {
	buf bytes.Buffer
}

func (e *encBuf) putUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

func (e *encBuf) putBool(v bool) {
	if v {
		e.buf.WriteByte(1)
	} else {
		e.buf.WriteByte(0)
	}
}

// putBytes writes a 4-byte big-endian length prefix followed by the bytes,
// so that variable-length fields never need a delimiter.
func (e *encBuf) putBytes(v []byte) {
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(v)))
	e.buf.Write(l[:])
	e.buf.Write(v)
}

func (e *encBuf) putString(v string) {
	e.putBytes([]byte(v))
}

func (e *encBuf) bytes() []byte { return e.buf.Bytes() }

// decBuf is the matching deterministic binary reader.
type decBuf struct {
	r *bytes.Reader
}

func newDecBuf(data []byte) *decBuf {
	return &decBuf{r: bytes.NewReader(data)}
}

func (d *decBuf) getUint64() (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func (d *decBuf) getBool() (bool, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return false, err
	}
	return b == 1, nil
}

func (d *decBuf) getBytes() ([]byte, error) {
	var l [4]byte
	if _, err := io.ReadFull(d.r, l[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(l[:])
	out := make([]byte, n)
	if _, err := io.ReadFull(d.r, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *decBuf) getString() (string, error) {
	b, err := d.getBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *decBuf) done() bool {
	return d.r.Len() == 0
}

// wrapDecodeErr standardizes decode failures across the four
// publicValues-decoded output types (spec.md §3 "Typed outputs").
func wrapDecodeErr(err error, typeName string) error {
	return errorsmod.Wrapf(ErrInvalidClientState, "failed to decode %s: %s", typeName, err)
}
