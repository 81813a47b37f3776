package uuid7der

import (
	"encoding/asn1"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sequence is the ASN.1 projection of a raw UUIDv7, shaped for DER
// serialization:
//
//	RawUuidV7 ::= SEQUENCE {
//	    unixTsMs   INTEGER,
//	    version    INTEGER,
//	    randA      BIT STRING,   -- 12 significant bits, 4 unused
//	    variant    BIT STRING,   --  2 significant bits, 6 unused
//	    randB      BIT STRING    -- 62 significant bits, 2 unused
//	}
//
// The field order is part of the wire contract and must not be changed.
// Bit-string buffers hold the big-endian bytes of the 16, 8 and 64 bit
// containers the fields are extracted into.
type Sequence struct {
	UnixTsMs int64
	Version  int
	RandA    asn1.BitString
	Variant  asn1.BitString
	RandB    asn1.BitString
}

// newBitString builds an asn1.BitString over buf with the given number of
// unused low-order bits in the final byte, rejecting combinations the DER
// encoding cannot represent.
func newBitString(unusedBits int, buf []byte) (asn1.BitString, error) {
	if unusedBits < 0 || unusedBits > 7 {
		return asn1.BitString{}, fmt.Errorf("%w: %d unused bits", ErrInvalidBitString, unusedBits)
	}
	if len(buf) == 0 && unusedBits != 0 {
		return asn1.BitString{}, fmt.Errorf("%w: empty buffer with %d unused bits", ErrInvalidBitString, unusedBits)
	}
	return asn1.BitString{Bytes: buf, BitLength: len(buf)*8 - unusedBits}, nil
}

// Sequence converts the record into its ASN.1 projection. The three
// sub-byte-width fields become bit strings; unix_ts_ms and version stay
// plain integers. The error path exists only for structurally
// inconsistent bit strings and cannot trigger for the fixed widths used
// here.
func (r Raw) Sequence() (Sequence, error) {
	// 12 significant bits in a 2-byte buffer, 4 unused.
	var bufA [2]byte
	binary.BigEndian.PutUint16(bufA[:], r.RandA)
	randA, err := newBitString(4, bufA[:])
	if err != nil {
		return Sequence{}, err
	}

	// 2 significant bits in a 1-byte buffer, 6 unused.
	variant, err := newBitString(6, []byte{r.Variant})
	if err != nil {
		return Sequence{}, err
	}

	// 62 significant bits in an 8-byte buffer, 2 unused.
	var bufB [8]byte
	binary.BigEndian.PutUint64(bufB[:], r.RandB)
	randB, err := newBitString(2, bufB[:])
	if err != nil {
		return Sequence{}, err
	}

	return Sequence{
		UnixTsMs: int64(r.UnixTsMs),
		Version:  int(r.Version),
		RandA:    randA,
		Variant:  variant,
		RandB:    randB,
	}, nil
}

// MarshalDER serializes the sequence to its canonical DER byte form.
// Serialization is deterministic: the same record always yields identical
// bytes.
func (s Sequence) MarshalDER() ([]byte, error) {
	der, err := asn1.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("uuid7der: marshal sequence: %w", err)
	}
	return der, nil
}

// FromUint128 projects an arbitrary 128-bit value into its ASN.1 SEQUENCE
// form. No version or variant validation is applied; callers that need the
// UUIDv7 invariants checked go through Unverified.Verify first.
func FromUint128(v Uint128) (Sequence, error) {
	return Unverified(v).Raw().Sequence()
}

// FromUUID projects a github.com/google/uuid value into its ASN.1
// SEQUENCE form, taking the UUID as an opaque 128-bit big-endian value.
func FromUUID(id uuid.UUID) (Sequence, error) {
	return FromUint128(Uint128{
		Hi: binary.BigEndian.Uint64(id[0:8]),
		Lo: binary.BigEndian.Uint64(id[8:16]),
	})
}

// NewSequence generates a fresh UUIDv7 at the current wall clock using the
// package-level generator and returns its ASN.1 projection.
func NewSequence() (Sequence, error) {
	id, err := New()
	if err != nil {
		return Sequence{}, err
	}
	return id.Sequence()
}

// NewSequenceWithTime is NewSequence with a caller-supplied timestamp.
func NewSequenceWithTime(t time.Time) (Sequence, error) {
	id, err := defaultGenerator.NewWithTime(t)
	if err != nil {
		return Sequence{}, err
	}
	return id.Sequence()
}

// Sequence returns the ASN.1 projection of the UUID.
func (u UUID) Sequence() (Sequence, error) {
	return u.Raw().Sequence()
}

// DER returns the canonical DER encoding of the UUID's ASN.1 projection.
func (u UUID) DER() ([]byte, error) {
	seq, err := u.Sequence()
	if err != nil {
		return nil, err
	}
	return seq.MarshalDER()
}
