package uuid7der

import (
	"encoding/binary"
)

// Uint128 is an unsigned 128-bit integer stored as two 64-bit halves.
// Hi holds bits 64-127 and Lo holds bits 0-63, so the big-endian byte
// form is Hi followed by Lo. The zero value is the number zero.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Uint128FromBytes builds a Uint128 from a 16-byte big-endian slice.
func Uint128FromBytes(b []byte) (Uint128, error) {
	if len(b) != 16 {
		return Uint128{}, ErrInvalidLength
	}
	return Uint128{
		Hi: binary.BigEndian.Uint64(b[0:8]),
		Lo: binary.BigEndian.Uint64(b[8:16]),
	}, nil
}

// MustUint128FromBytes is like Uint128FromBytes but panics on error.
func MustUint128FromBytes(b []byte) Uint128 {
	v, err := Uint128FromBytes(b)
	if err != nil {
		panic(err)
	}
	return v
}

// Bytes returns the value as a 16-byte big-endian slice.
func (v Uint128) Bytes() []byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], v.Hi)
	binary.BigEndian.PutUint64(b[8:16], v.Lo)
	return b[:]
}

// Compare returns an integer comparing two 128-bit values numerically.
// The result is 0 if v == other, -1 if v < other, and +1 if v > other.
func (v Uint128) Compare(other Uint128) int {
	switch {
	case v.Hi < other.Hi:
		return -1
	case v.Hi > other.Hi:
		return 1
	case v.Lo < other.Lo:
		return -1
	case v.Lo > other.Lo:
		return 1
	}
	return 0
}
