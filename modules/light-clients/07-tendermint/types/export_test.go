package types

/*
	This file allows unexported functions and fields to be accessible to the
	testing package, the same convention 08-wasm/types/export_test.go uses.
*/

// JoinPath wraps joinPath to allow the function to be directly called in
// tests.
func JoinPath(path [][]byte) []byte {
	return joinPath(path)
}

// CacheKey wraps cacheKey to allow the function to be directly called in
// tests.
func CacheKey(revisionHeight uint32, pair KVPair) [32]byte {
	return cacheKey(revisionHeight, pair)
}

// WrapDecodeErr wraps wrapDecodeErr to allow the function to be directly
// called in tests.
func WrapDecodeErr(err error, typeName string) error {
	return wrapDecodeErr(err, typeName)
}
