package types

// SP1Proof is the opaque succinct proof envelope of spec.md §3: vKey binds
// the proof to the exact program that produced it; publicValues decodes
// into one of the four typed outputs below depending on which handler
// receives it; proof is passed verbatim to the verifier.
type SP1Proof struct {
	VKey         [32]byte
	PublicValues []byte
	Proof        []byte
}

// Marshal/Unmarshal follow the deterministic layout of codec.go.
func (p SP1Proof) Marshal() ([]byte, error) {
	e := &encBuf{}
	e.buf.Write(p.VKey[:])
	e.putBytes(p.PublicValues)
	e.putBytes(p.Proof)
	return e.bytes(), nil
}

func (p *SP1Proof) Unmarshal(data []byte) error {
	d := newDecBuf(data)
	var vkey [32]byte
	if err := readFixed32(d, vkey[:]); err != nil {
		return wrapDecodeErr(err, "SP1Proof.VKey")
	}
	pv, err := d.getBytes()
	if err != nil {
		return wrapDecodeErr(err, "SP1Proof.PublicValues")
	}
	proof, err := d.getBytes()
	if err != nil {
		return wrapDecodeErr(err, "SP1Proof.Proof")
	}
	p.VKey = vkey
	p.PublicValues = pv
	p.Proof = proof
	return nil
}

// UpdateClientOutput is the typed decoding of an UPDATE_CLIENT_PROGRAM
// proof's publicValues (spec.md §3).
type UpdateClientOutput struct {
	TrustedHeight         Height
	TrustedConsensusState ConsensusState
	NewHeight             Height
	NewConsensusState     ConsensusState
	ClientState           ClientState
	Time                  uint64
}

func (o UpdateClientOutput) Marshal() ([]byte, error) {
	e := &encBuf{}
	putHeight(e, o.TrustedHeight)
	if err := putMarshaler(e, o.TrustedConsensusState); err != nil {
		return nil, err
	}
	putHeight(e, o.NewHeight)
	if err := putMarshaler(e, o.NewConsensusState); err != nil {
		return nil, err
	}
	if err := putMarshaler(e, o.ClientState); err != nil {
		return nil, err
	}
	e.putUint64(o.Time)
	return e.bytes(), nil
}

func (o *UpdateClientOutput) Unmarshal(data []byte) error {
	d := newDecBuf(data)
	var err error
	if o.TrustedHeight, err = getHeight(d); err != nil {
		return wrapDecodeErr(err, "UpdateClientOutput.TrustedHeight")
	}
	if err := getMarshaler(d, &o.TrustedConsensusState); err != nil {
		return wrapDecodeErr(err, "UpdateClientOutput.TrustedConsensusState")
	}
	if o.NewHeight, err = getHeight(d); err != nil {
		return wrapDecodeErr(err, "UpdateClientOutput.NewHeight")
	}
	if err := getMarshaler(d, &o.NewConsensusState); err != nil {
		return wrapDecodeErr(err, "UpdateClientOutput.NewConsensusState")
	}
	if err := getMarshaler(d, &o.ClientState); err != nil {
		return wrapDecodeErr(err, "UpdateClientOutput.ClientState")
	}
	if o.Time, err = d.getUint64(); err != nil {
		return wrapDecodeErr(err, "UpdateClientOutput.Time")
	}
	return nil
}

// MembershipOutput is the typed decoding of a MEMBERSHIP_PROGRAM proof's
// publicValues (spec.md §3). Length is bounded to
// [MinKVPairsPerProof, MaxKVPairsPerProof].
type MembershipOutput struct {
	CommitmentRoot [32]byte
	KVPairs        []KVPair
}

func (o MembershipOutput) Marshal() ([]byte, error) {
	e := &encBuf{}
	e.buf.Write(o.CommitmentRoot[:])
	putKVPairs(e, o.KVPairs)
	return e.bytes(), nil
}

func (o *MembershipOutput) Unmarshal(data []byte) error {
	d := newDecBuf(data)
	var root [32]byte
	if err := readFixed32(d, root[:]); err != nil {
		return wrapDecodeErr(err, "MembershipOutput.CommitmentRoot")
	}
	pairs, err := getKVPairs(d)
	if err != nil {
		return wrapDecodeErr(err, "MembershipOutput.KVPairs")
	}
	o.CommitmentRoot = root
	o.KVPairs = pairs
	return nil
}

// UcAndMembershipOutput is the typed decoding of an
// UPDATE_CLIENT_AND_MEMBERSHIP_PROGRAM proof's publicValues (spec.md §3).
type UcAndMembershipOutput struct {
	UpdateClientOutput UpdateClientOutput
	KVPairs            []KVPair
}

func (o UcAndMembershipOutput) Marshal() ([]byte, error) {
	e := &encBuf{}
	if err := putMarshaler(e, o.UpdateClientOutput); err != nil {
		return nil, err
	}
	putKVPairs(e, o.KVPairs)
	return e.bytes(), nil
}

func (o *UcAndMembershipOutput) Unmarshal(data []byte) error {
	d := newDecBuf(data)
	if err := getMarshaler(d, &o.UpdateClientOutput); err != nil {
		return wrapDecodeErr(err, "UcAndMembershipOutput.UpdateClientOutput")
	}
	pairs, err := getKVPairs(d)
	if err != nil {
		return wrapDecodeErr(err, "UcAndMembershipOutput.KVPairs")
	}
	o.KVPairs = pairs
	return nil
}

// MisbehaviourOutput is the typed decoding of a MISBEHAVIOUR_PROGRAM
// proof's publicValues (spec.md §3).
type MisbehaviourOutput struct {
	ClientState            ClientState
	TrustedHeight1         Height
	TrustedConsensusState1 ConsensusState
	TrustedHeight2         Height
	TrustedConsensusState2 ConsensusState
	Time                   uint64
}

func (o MisbehaviourOutput) Marshal() ([]byte, error) {
	e := &encBuf{}
	if err := putMarshaler(e, o.ClientState); err != nil {
		return nil, err
	}
	putHeight(e, o.TrustedHeight1)
	if err := putMarshaler(e, o.TrustedConsensusState1); err != nil {
		return nil, err
	}
	putHeight(e, o.TrustedHeight2)
	if err := putMarshaler(e, o.TrustedConsensusState2); err != nil {
		return nil, err
	}
	e.putUint64(o.Time)
	return e.bytes(), nil
}

func (o *MisbehaviourOutput) Unmarshal(data []byte) error {
	d := newDecBuf(data)
	if err := getMarshaler(d, &o.ClientState); err != nil {
		return wrapDecodeErr(err, "MisbehaviourOutput.ClientState")
	}
	var err error
	if o.TrustedHeight1, err = getHeight(d); err != nil {
		return wrapDecodeErr(err, "MisbehaviourOutput.TrustedHeight1")
	}
	if err := getMarshaler(d, &o.TrustedConsensusState1); err != nil {
		return wrapDecodeErr(err, "MisbehaviourOutput.TrustedConsensusState1")
	}
	if o.TrustedHeight2, err = getHeight(d); err != nil {
		return wrapDecodeErr(err, "MisbehaviourOutput.TrustedHeight2")
	}
	if err := getMarshaler(d, &o.TrustedConsensusState2); err != nil {
		return wrapDecodeErr(err, "MisbehaviourOutput.TrustedConsensusState2")
	}
	if o.Time, err = d.getUint64(); err != nil {
		return wrapDecodeErr(err, "MisbehaviourOutput.Time")
	}
	return nil
}

// --- shared encode/decode helpers for the composite output types ---

type marshaler interface {
	Marshal() ([]byte, error)
}

func putMarshaler(e *encBuf, m marshaler) error {
	bz, err := m.Marshal()
	if err != nil {
		return err
	}
	e.putBytes(bz)
	return nil
}

type unmarshaler interface {
	Unmarshal([]byte) error
}

func getMarshaler(d *decBuf, m unmarshaler) error {
	bz, err := d.getBytes()
	if err != nil {
		return err
	}
	return m.Unmarshal(bz)
}

func putHeight(e *encBuf, h Height) {
	e.putUint64(h.RevisionNumber)
	e.putUint64(h.RevisionHeight)
}

func getHeight(d *decBuf) (Height, error) {
	revNum, err := d.getUint64()
	if err != nil {
		return Height{}, err
	}
	revHeight, err := d.getUint64()
	if err != nil {
		return Height{}, err
	}
	return NewHeight(revNum, revHeight), nil
}

func putKVPairs(e *encBuf, pairs []KVPair) {
	e.putUint64(uint64(len(pairs)))
	for _, p := range pairs {
		e.putUint64(uint64(len(p.Path)))
		for _, seg := range p.Path {
			e.putBytes(seg)
		}
		e.putBytes(p.Value)
	}
}

func getKVPairs(d *decBuf) ([]KVPair, error) {
	n, err := d.getUint64()
	if err != nil {
		return nil, err
	}
	pairs := make([]KVPair, 0, n)
	for i := uint64(0); i < n; i++ {
		pathLen, err := d.getUint64()
		if err != nil {
			return nil, err
		}
		path := make([][]byte, 0, pathLen)
		for j := uint64(0); j < pathLen; j++ {
			seg, err := d.getBytes()
			if err != nil {
				return nil, err
			}
			path = append(path, seg)
		}
		value, err := d.getBytes()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, KVPair{Path: path, Value: value})
	}
	return pairs, nil
}
