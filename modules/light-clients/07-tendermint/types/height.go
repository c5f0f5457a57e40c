package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Height mirrors clienttypes.Height from the teacher: a two-component,
// lexicographically ordered height in which only RevisionHeight is ever used
// as a map key (spec.md §3).
type Height struct {
	RevisionNumber uint64 `json:"revision_number" yaml:"revision_number"`
	RevisionHeight uint64 `json:"revision_height" yaml:"revision_height"`
}

// NewHeight constructs a Height.
func NewHeight(revisionNumber, revisionHeight uint64) Height {
	return Height{RevisionNumber: revisionNumber, RevisionHeight: revisionHeight}
}

// IsZero reports whether the height is the zero value.
func (h Height) IsZero() bool {
	return h.RevisionNumber == 0 && h.RevisionHeight == 0
}

// GT reports h > other, compared lexicographically on (RevisionNumber, RevisionHeight).
func (h Height) GT(other Height) bool {
	if h.RevisionNumber != other.RevisionNumber {
		return h.RevisionNumber > other.RevisionNumber
	}
	return h.RevisionHeight > other.RevisionHeight
}

// GTE reports h >= other.
func (h Height) GTE(other Height) bool {
	return h == other || h.GT(other)
}

// EQ reports structural equality.
func (h Height) EQ(other Height) bool {
	return h == other
}

// String implements fmt.Stringer in the "revision-height" form ibc-go uses.
func (h Height) String() string {
	return fmt.Sprintf("%d-%d", h.RevisionNumber, h.RevisionHeight)
}

// Fraction mirrors clienttypes.Fraction / the Tendermint trust-level
// threshold: numerator/denominator, compared field-wise per spec.md §4.2,
// and cross-multiplied (via cosmossdk.io/math.Uint, to stay overflow-safe
// the way cosmos-sdk's own fraction/decimal types do) when an ordering
// comparison is required.
type Fraction struct {
	Numerator   uint64 `json:"numerator" yaml:"numerator"`
	Denominator uint64 `json:"denominator" yaml:"denominator"`
}

// NewFraction constructs a Fraction.
func NewFraction(numerator, denominator uint64) Fraction {
	return Fraction{Numerator: numerator, Denominator: denominator}
}

// EQ reports field-wise equality, the comparison validateClientStateAndTime
// uses for trustLevel (spec.md §4.2 point 3): both components must match
// exactly, not merely be equivalent fractions.
func (f Fraction) EQ(other Fraction) bool {
	return f.Numerator == other.Numerator && f.Denominator == other.Denominator
}

// IsValid reports whether the fraction describes a sane trust threshold in
// (0, 1]: a zero denominator or a numerator exceeding the denominator can
// never be satisfied by a quorum of validators.
func (f Fraction) IsValid() bool {
	return f.Denominator != 0 && f.Numerator > 0 && f.Numerator <= f.Denominator
}

// cmpCrossMultiplied safely compares f to other without floating point,
// using math.Uint multiplication to avoid uint64 overflow on the
// cross-products — the same cross-multiplication cosmos-sdk's own
// math.LegacyDec comparison helpers perform internally.
func (f Fraction) cmpCrossMultiplied(other Fraction) int {
	left := math.NewUint(f.Numerator).Mul(math.NewUint(other.Denominator))
	right := math.NewUint(other.Numerator).Mul(math.NewUint(f.Denominator))
	switch {
	case left.GT(right):
		return 1
	case left.LT(right):
		return -1
	default:
		return 0
	}
}

// StricterThan reports whether f represents a stricter (larger) trust
// threshold than other, exposed for operators tuning trust levels; not on
// the spec's critical path (which requires exact equality), but a natural
// accessor for the type.
func (f Fraction) StricterThan(other Fraction) bool {
	return f.cmpCrossMultiplied(other) > 0
}
