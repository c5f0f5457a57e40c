package types

import (
	errorsmod "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"
)

// MembershipProofType tags the sum-typed MembershipProof envelope
// (spec.md §4.4, re-architected per design note §9 as an exhaustive tagged
// variant rather than a loosely-typed proofType integer).
type MembershipProofType uint8

const (
	SP1MembershipProofType MembershipProofType = iota + 1
	SP1MembershipAndUpdateClientProofType
)

// MembershipProof is the outer envelope decoded from MsgMembership.Proof
// when it is non-empty (spec.md §4.4 step 2).
type MembershipProof struct {
	ProofType MembershipProofType
	Proof     []byte
}

func (p MembershipProof) Marshal() ([]byte, error) {
	e := &encBuf{}
	e.buf.WriteByte(byte(p.ProofType))
	e.putBytes(p.Proof)
	return e.bytes(), nil
}

func (p *MembershipProof) Unmarshal(data []byte) error {
	d := newDecBuf(data)
	tag, err := d.r.ReadByte()
	if err != nil {
		return wrapDecodeErr(err, "MembershipProof.ProofType")
	}
	proof, err := d.getBytes()
	if err != nil {
		return wrapDecodeErr(err, "MembershipProof.Proof")
	}
	p.ProofType = MembershipProofType(tag)
	p.Proof = proof
	return nil
}

// SP1MembershipProof is the inner proof for the single-height path
// (spec.md §4.4.1 step 1).
type SP1MembershipProof struct {
	SP1Proof              SP1Proof
	TrustedConsensusState ConsensusState
}

func (p SP1MembershipProof) Marshal() ([]byte, error) {
	e := &encBuf{}
	if err := putMarshaler(e, p.SP1Proof); err != nil {
		return nil, err
	}
	if err := putMarshaler(e, p.TrustedConsensusState); err != nil {
		return nil, err
	}
	return e.bytes(), nil
}

func (p *SP1MembershipProof) Unmarshal(data []byte) error {
	d := newDecBuf(data)
	if err := getMarshaler(d, &p.SP1Proof); err != nil {
		return wrapDecodeErr(err, "SP1MembershipProof.SP1Proof")
	}
	if err := getMarshaler(d, &p.TrustedConsensusState); err != nil {
		return wrapDecodeErr(err, "SP1MembershipProof.TrustedConsensusState")
	}
	return nil
}

// SP1MembershipAndUpdateClientProof is the inner proof for the combined
// path (spec.md §4.5 step 1).
type SP1MembershipAndUpdateClientProof struct {
	SP1Proof SP1Proof
}

func (p SP1MembershipAndUpdateClientProof) Marshal() ([]byte, error) {
	e := &encBuf{}
	if err := putMarshaler(e, p.SP1Proof); err != nil {
		return nil, err
	}
	return e.bytes(), nil
}

func (p *SP1MembershipAndUpdateClientProof) Unmarshal(data []byte) error {
	d := newDecBuf(data)
	if err := getMarshaler(d, &p.SP1Proof); err != nil {
		return wrapDecodeErr(err, "SP1MembershipAndUpdateClientProof.SP1Proof")
	}
	return nil
}

// MsgMembership is the membership handler's input (spec.md §4.4).
type MsgMembership struct {
	ProofHeight Height
	Path        [][]byte
	Value       []byte
	// Proof is empty to request a transient-cache lookup; otherwise it is
	// the encoded MembershipProof envelope.
	Proof []byte
}

// MembershipApplyResult carries what the single-height membership path
// computed after verification succeeded: the timestamp to return, and which
// pairs (if any) the caller should write into the transient cache, at which
// height.
type MembershipApplyResult struct {
	Timestamp   uint64
	CachePairs  []KVPair
	CacheHeight uint32
}

// ApplySingleHeightMembership implements spec.md §4.4.1 steps 1-6 and 8,
// including the verifier call. Population of the transient cache (step 7)
// is left to the caller (keeper.Keeper.Membership), since it owns the
// TransientCache instance and must only call CacheKVPairs after this
// function (and therefore the verifier) has already succeeded
// (spec.md §4.7 "Operations" rationale).
func ApplySingleHeightMembership(
	clientStore storetypes.KVStore,
	membershipVKey [32]byte,
	verifier Verifier,
	proofHeight Height,
	path [][]byte,
	value []byte,
	innerProof []byte,
) (*MembershipApplyResult, error) {
	var proof SP1MembershipProof
	if err := proof.Unmarshal(innerProof); err != nil {
		return nil, err
	}

	if proof.SP1Proof.VKey != membershipVKey {
		return nil, errorsmod.Wrapf(ErrVerificationKeyMismatch, "expected %x, got %x", membershipVKey, proof.SP1Proof.VKey)
	}

	var output MembershipOutput
	if err := output.Unmarshal(proof.SP1Proof.PublicValues); err != nil {
		return nil, err
	}
	if err := ValidateKVPairsLength(len(output.KVPairs)); err != nil {
		return nil, err
	}

	pair, found := FindKVPair(output.KVPairs, path)
	if !found {
		return nil, errorsmod.Wrapf(ErrMembershipProofKeyNotFound, "path %x", joinPath(path))
	}
	if !ValueEqual(pair.Value, value) {
		return nil, errorsmod.Wrapf(ErrMembershipProofValueMismatch, "path %x: expected %x, got %x", joinPath(path), value, pair.Value)
	}

	storedHash, err := GetConsensusStateHash(clientStore, uint32(proofHeight.RevisionHeight))
	if err != nil {
		return nil, err
	}
	if err := ValidateMembershipOutput(output.CommitmentRoot, storedHash, proof.TrustedConsensusState); err != nil {
		return nil, err
	}

	if err := verifier.Verify(proof.SP1Proof.VKey, proof.SP1Proof.PublicValues, proof.SP1Proof.Proof); err != nil {
		return nil, err
	}

	result := &MembershipApplyResult{Timestamp: proof.TrustedConsensusState.Timestamp}
	if len(output.KVPairs) > 1 {
		result.CachePairs = output.KVPairs
		result.CacheHeight = uint32(proofHeight.RevisionHeight)
	}
	return result, nil
}
