package types

import (
	"encoding/binary"
	"fmt"
)

// ModuleName is the canonical name of the sp1-ics07-tendermint light client,
// used as the errorsmod codespace (see errors.go) and in the keeper's logger
// and telemetry keys. Client IDs are chosen by the caller and are not
// derived from it.
const ModuleName = "sp1-ics07-tendermint"

// Store key prefixes, following the single flat byte-key convention used by
// modules/core/24-host/packet_keys.go in the teacher repo: a short constant
// prefix byte string, concatenated with binary-encoded indices.
var (
	// KeyClientState is the key under which the canonical ClientState bytes
	// are stored.
	KeyClientState = []byte("clientState")

	// KeyConsensusStatePrefix prefixes the height-indexed consensus-state
	// hash map.
	KeyConsensusStatePrefix = []byte("consensusStates/")
)

// ConsensusStateHashKey returns the store key for the consensus state hash
// stored at the given revision height, mirroring packet_keys.go's pattern of
// building a deterministic, sortable key from a numeric index.
func ConsensusStateHashKey(revisionHeight uint32) []byte {
	key := make([]byte, len(KeyConsensusStatePrefix)+4)
	n := copy(key, KeyConsensusStatePrefix)
	binary.BigEndian.PutUint32(key[n:], revisionHeight)
	return key
}

// ParseConsensusStateHashKey recovers the revision height encoded by
// ConsensusStateHashKey, used by IterateConsensusStateHashes.
func ParseConsensusStateHashKey(key []byte) (uint32, error) {
	if len(key) != len(KeyConsensusStatePrefix)+4 {
		return 0, fmt.Errorf("invalid consensus state hash key length: %d", len(key))
	}
	return binary.BigEndian.Uint32(key[len(KeyConsensusStatePrefix):]), nil
}
