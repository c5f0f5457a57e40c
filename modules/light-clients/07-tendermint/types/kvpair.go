package types

import "bytes"

// KVPair is a path/value pair decoded from a membership proof's public
// values (spec.md §3). Non-membership is encoded as a KVPair whose Value is
// the empty byte string (spec.md §4.4.1).
type KVPair struct {
	Path  [][]byte
	Value []byte
}

// PathEqual reports element-wise, length-matching byte equality between two
// paths, the comparison the spec mandates for locating a requested pair in
// a batch (spec.md §3 "KVPair").
func PathEqual(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// ValueEqual reports byte-for-byte equality, used for both membership
// (matching value) and non-membership (both empty) comparisons
// (spec.md §4.4.1 step 4).
func ValueEqual(a, b []byte) bool {
	return bytes.Equal(a, b)
}

// FindKVPair performs the linear scan spec.md §4.4.1 step 4 specifies:
// returns the first pair whose Path matches, or (KVPair{}, false) if none
// does. Duplicate paths are resolved by "first match wins" (spec.md P4).
func FindKVPair(pairs []KVPair, path [][]byte) (KVPair, bool) {
	for _, p := range pairs {
		if PathEqual(p.Path, path) {
			return p, true
		}
	}
	return KVPair{}, false
}

// joinPath renders a path as slash-joined segments, used only for the
// transient cache key and for error messages — never for proof verification
// itself, which is delegated entirely to the succinct-proof verifier.
func joinPath(path [][]byte) []byte {
	var out []byte
	for i, seg := range path {
		if i > 0 {
			out = append(out, '/')
		}
		out = append(out, seg...)
	}
	return out
}
