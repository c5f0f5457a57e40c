package types

import (
	"encoding/binary"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/crypto/tmhash"
)

// TransientCache is the per-transaction key→timestamp cache of spec.md
// §4.7. The spec's host environment is EVM-style transient storage
// (EIP-1153: cleared between transactions, NOT unwound by a nested revert
// within one transaction); the teacher repo's closest analogue is
// 08-wasm/internal/types.MergedClientStore, a KVStore wrapper the keeper
// constructs fresh per call and discards afterward. Since cosmos-sdk's own
// store/transient package is cleared per-block rather than per-transaction,
// design note §9 applies directly: the cache is modeled here as an explicit
// map owned by the LightClientModule/Keeper, which the host integration is
// responsible for resetting at transaction boundaries (see keeper.Keeper's
// doc comment) and for NOT resetting across a recovered panic within the
// same transaction.
type TransientCache struct {
	entries map[[32]byte]uint64
}

// NewTransientCache returns an empty cache, ready for one transaction's
// worth of membership calls.
func NewTransientCache() *TransientCache {
	return &TransientCache{entries: make(map[[32]byte]uint64)}
}

// Clear resets the cache. The host integration calls this at the start (or
// end) of every transaction boundary; it MUST NOT be called between
// handlers batched within the same multicall transaction (spec.md §5
// "Multicall composition").
func (c *TransientCache) Clear() {
	c.entries = make(map[[32]byte]uint64)
}

// cacheKey computes canonicalHash(proofHeight, KVPair{path, value})
// (spec.md §4.7 "Key").
func cacheKey(revisionHeight uint32, pair KVPair) [32]byte {
	h := tmhash.New()
	var heightBz [4]byte
	binary.BigEndian.PutUint32(heightBz[:], revisionHeight)
	h.Write(heightBz[:])
	h.Write(joinPath(pair.Path))
	h.Write(pair.Value)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// CacheKVPairs writes each pair's cache entry, called only after all
// validation and verifier calls for the proof have succeeded (spec.md §4.7
// "Operations" rationale: premature writes into non-reverting transient
// storage could otherwise poison the cache with unverified data).
func (c *TransientCache) CacheKVPairs(revisionHeight uint32, pairs []KVPair, timestamp uint64) {
	for _, pair := range pairs {
		c.entries[cacheKey(revisionHeight, pair)] = timestamp
	}
}

// GetCachedKVPair reads a previously cached entry, failing with
// ErrKeyValuePairNotInCache if absent (the zero sentinel, spec.md §4.7).
func (c *TransientCache) GetCachedKVPair(revisionHeight uint32, pair KVPair) (uint64, error) {
	timestamp, ok := c.entries[cacheKey(revisionHeight, pair)]
	if !ok || timestamp == 0 {
		return 0, errorsmod.Wrapf(ErrKeyValuePairNotInCache, "height %d, path %x", revisionHeight, joinPath(pair.Path))
	}
	return timestamp, nil
}
