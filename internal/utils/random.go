package utils

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	mrand "math/rand/v2"
)

// NewRand returns a PCG-backed source. A zero seed draws both PCG words from
// crypto/rand, so every process gets a different sequence.
func NewRand(seed uint64) (*mrand.Rand, error) {
	if seed != 0 {
		return mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), nil
	}

	buf := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, err
	}
	return mrand.New(mrand.NewPCG(binary.LittleEndian.Uint64(buf[:8]), binary.LittleEndian.Uint64(buf[8:]))), nil
}
