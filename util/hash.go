package util

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"
)

// Mix64 scrambles a word through murmur3 so sequential seeds spread
// uniformly across hash slots.
func Mix64(x uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], x)
	return murmur3.Sum64(buf[:])
}
