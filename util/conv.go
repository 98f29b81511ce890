package util

import "encoding/binary"

// KeyToBytes encodes a key big-endian so byte-ordered structures (the radix
// tree reference model) iterate keys in numeric order.
func KeyToBytes(key uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, key)
	return buf
}

func BytesToKey(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}
