// Package hashx computes the content digests recorded in the file catalog.
// All digests are BLAKE2b-512, encoded as lowercase hex.
package hashx

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Sum returns the hex BLAKE2b-512 digest of data. Used for whole-file
// payloads and for individual chunk payloads.
func Sum(data []byte) string {
	d := blake2b.Sum512(data)
	return hex.EncodeToString(d[:])
}

// Summary returns the hex digest of the concatenation of the given hex
// chunk digests, in the order given. The caller must pass them in ascending
// chunk-index order; the result is the catalog hash of a finalized chunked
// file. The digests are hashed as strings, not decoded back to bytes.
func Summary(chunkHashes []string) string {
	h, _ := blake2b.New512(nil)
	for _, ch := range chunkHashes {
		h.Write([]byte(ch))
	}
	return hex.EncodeToString(h.Sum(nil))
}
