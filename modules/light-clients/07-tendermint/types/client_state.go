package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"gopkg.in/yaml.v2"
)

// ClientState is the light client's configuration plus its two mutable
// fields (spec.md §3). Everything except LatestHeight and IsFrozen is fixed
// at construction time.
type ClientState struct {
	ChainID         string   `json:"chain_id" yaml:"chain_id"`
	TrustLevel      Fraction `json:"trust_level" yaml:"trust_level"`
	LatestHeight    Height   `json:"latest_height" yaml:"latest_height"`
	TrustingPeriod  uint64   `json:"trusting_period" yaml:"trusting_period"`
	UnbondingPeriod uint64   `json:"unbonding_period" yaml:"unbonding_period"`
	IsFrozen        bool     `json:"is_frozen" yaml:"is_frozen"`
}

// NewClientState constructs a ClientState, enforcing the construction-time
// invariant of spec.md §3: trustingPeriod ≤ unbondingPeriod.
func NewClientState(chainID string, trustLevel Fraction, latestHeight Height, trustingPeriod, unbondingPeriod uint64) (ClientState, error) {
	cs := ClientState{
		ChainID:         chainID,
		TrustLevel:      trustLevel,
		LatestHeight:    latestHeight,
		TrustingPeriod:  trustingPeriod,
		UnbondingPeriod: unbondingPeriod,
		IsFrozen:        false,
	}
	if err := cs.Validate(); err != nil {
		return ClientState{}, err
	}
	return cs, nil
}

// Validate performs the constructor-time checks spec.md §3 and §6 require:
// a sane trust threshold and trustingPeriod ≤ unbondingPeriod
// (ErrTrustingPeriodTooLong, spec.md §7 "Configuration").
func (cs ClientState) Validate() error {
	if cs.ChainID == "" {
		return errorsmod.Wrap(ErrInvalidClientState, "chain id cannot be empty")
	}
	if !cs.TrustLevel.IsValid() {
		return errorsmod.Wrapf(ErrInvalidClientState, "invalid trust level: %+v", cs.TrustLevel)
	}
	if cs.TrustingPeriod == 0 {
		return errorsmod.Wrap(ErrInvalidClientState, "trusting period cannot be zero")
	}
	if cs.TrustingPeriod > cs.UnbondingPeriod {
		return errorsmod.Wrapf(ErrTrustingPeriodTooLong,
			"trusting period (%d) must be ≤ unbonding period (%d)", cs.TrustingPeriod, cs.UnbondingPeriod)
	}
	return nil
}

// Reset, String and ProtoMessage satisfy gogoproto's proto.Message.
func (cs *ClientState) Reset() { *cs = ClientState{} }
func (cs ClientState) ProtoMessage() {}
func (cs ClientState) String() string {
	out, err := yaml.Marshal(cs)
	if err != nil {
		return fmt.Sprintf("%+v", struct {
			ChainID         string
			TrustLevel      Fraction
			LatestHeight    Height
			TrustingPeriod  uint64
			UnbondingPeriod uint64
			IsFrozen        bool
		}(cs))
	}
	return string(out)
}

// Marshal is the canonical encoding of ClientState (see codec.go), the
// exact bytes returned by the state store's getClientState accessor
// (spec.md §4.1).
func (cs ClientState) Marshal() ([]byte, error) {
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	e := &encBuf{}
	e.putString(cs.ChainID)
	e.putUint64(cs.TrustLevel.Numerator)
	e.putUint64(cs.TrustLevel.Denominator)
	e.putUint64(cs.LatestHeight.RevisionNumber)
	e.putUint64(cs.LatestHeight.RevisionHeight)
	e.putUint64(cs.TrustingPeriod)
	e.putUint64(cs.UnbondingPeriod)
	e.putBool(cs.IsFrozen)
	return e.bytes(), nil
}

// Unmarshal decodes bytes produced by Marshal.
func (cs *ClientState) Unmarshal(data []byte) error {
	d := newDecBuf(data)
	chainID, err := d.getString()
	if err != nil {
		return wrapDecodeErr(err, "ClientState.ChainID")
	}
	num, err := d.getUint64()
	if err != nil {
		return wrapDecodeErr(err, "ClientState.TrustLevel.Numerator")
	}
	den, err := d.getUint64()
	if err != nil {
		return wrapDecodeErr(err, "ClientState.TrustLevel.Denominator")
	}
	revNum, err := d.getUint64()
	if err != nil {
		return wrapDecodeErr(err, "ClientState.LatestHeight.RevisionNumber")
	}
	revHeight, err := d.getUint64()
	if err != nil {
		return wrapDecodeErr(err, "ClientState.LatestHeight.RevisionHeight")
	}
	trustingPeriod, err := d.getUint64()
	if err != nil {
		return wrapDecodeErr(err, "ClientState.TrustingPeriod")
	}
	unbondingPeriod, err := d.getUint64()
	if err != nil {
		return wrapDecodeErr(err, "ClientState.UnbondingPeriod")
	}
	isFrozen, err := d.getBool()
	if err != nil {
		return wrapDecodeErr(err, "ClientState.IsFrozen")
	}

	cs.ChainID = chainID
	cs.TrustLevel = NewFraction(num, den)
	cs.LatestHeight = NewHeight(revNum, revHeight)
	cs.TrustingPeriod = trustingPeriod
	cs.UnbondingPeriod = unbondingPeriod
	cs.IsFrozen = isFrozen
	return nil
}

// Status mirrors the ibc-go exported.ClientState.Status surface
// (06-solomachine's ClientState.Status): Active while not frozen, Frozen
// once IsFrozen is set. Supplemented read-only accessor (SPEC_FULL.md §4),
// not on the write path.
type Status string

const (
	Active Status = "Active"
	Frozen Status = "Frozen"
)

// Status returns the current status of the client.
func (cs ClientState) Status() Status {
	if cs.IsFrozen {
		return Frozen
	}
	return Active
}
