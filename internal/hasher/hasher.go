// Package hasher computes short content hashes for processed outputs.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// HexLen is the hash length recorded in run reports: 16 hex chars
// (the full 64 bits), collision-safe for practical photo counts.
const HexLen = 16

// Sum returns the xxHash64 of data as a 16-char hex string.
func Sum(data []byte) string {
	return encode(xxhash.Sum64(data))
}

// SumFile streams the file at path through xxHash64.
func SumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return encode(h.Sum64()), nil
}

func encode(v uint64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return hex.EncodeToString(b[:])
}
