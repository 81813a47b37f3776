package uuid7der

import (
	"time"
)

// Unverified wraps an arbitrary 128-bit value and provides UUIDv7 field
// accessors without validation. This is useful for inspecting the raw
// parts of a potential UUIDv7, including malformed or foreign values.
type Unverified Uint128

// UnixTsMs extracts the 48-bit Unix timestamp in milliseconds (bits 80-127).
func (u Unverified) UnixTsMs() uint64 {
	return u.Hi >> tsShift
}

// Version extracts the 4-bit version field (bits 76-79).
func (u Unverified) Version() uint8 {
	return uint8((u.Hi >> vsnShift) & 0xF)
}

// RandA extracts the 12-bit rand_a field (bits 64-75).
func (u Unverified) RandA() uint16 {
	return uint16(u.Hi & randAMask)
}

// Variant extracts the 2-bit variant field (bits 62-63).
func (u Unverified) Variant() uint8 {
	return uint8(u.Lo >> varShift)
}

// RandB extracts the 62-bit rand_b field (bits 0-61).
func (u Unverified) RandB() uint64 {
	return u.Lo & randBMask
}

// Raw decomposes the value into its named UUIDv7 fields. The record is a
// transparent projection of whatever 128-bit value produced it and carries
// no validity guarantee of its own.
func (u Unverified) Raw() Raw {
	return Raw{
		UnixTsMs: u.UnixTsMs(),
		Version:  u.Version(),
		RandA:    u.RandA(),
		Variant:  u.Variant(),
		RandB:    u.RandB(),
	}
}

// Verify checks the version and variant fields against the UUIDv7
// specification. The version field is checked first: a value other than 7
// yields a *VersionError even when the variant is also wrong; otherwise a
// variant other than 2 (0b10) yields a *VariantError. On success the
// returned UUID is bit-identical to the input; no normalization happens.
func (u Unverified) Verify() (UUID, error) {
	if v := u.Version(); v != 7 {
		return UUID{}, &VersionError{Version: v}
	}
	if v := u.Variant(); v != 2 {
		return UUID{}, &VariantError{Variant: v}
	}
	return UUID{value: Uint128(u)}, nil
}

// UUID is a validated UUIDv7: its version field is guaranteed to be 7 and
// its variant field 2 (the RFC 9562 variant). The guarantee holds because
// values are produced only by Unverified.Verify or by a Generator.
type UUID struct {
	value Uint128
}

// Uint128 returns the underlying 128-bit value.
func (u UUID) Uint128() Uint128 {
	return u.value
}

// Bytes returns the UUID as a 16-byte big-endian slice.
func (u UUID) Bytes() []byte {
	return u.value.Bytes()
}

// Raw decomposes the UUID into its named fields.
func (u UUID) Raw() Raw {
	return Unverified(u.value).Raw()
}

// Timestamp extracts the Unix timestamp in milliseconds.
func (u UUID) Timestamp() int64 {
	return int64(Unverified(u.value).UnixTsMs())
}

// Time returns the timestamp as a time.Time.
func (u UUID) Time() time.Time {
	ms := u.Timestamp()
	return time.Unix(ms/1000, (ms%1000)*1000000)
}

// Compare returns an integer comparing two UUIDs numerically, which for
// UUIDv7 orders them by creation time. The result is 0 if u == other,
// -1 if u < other, and +1 if u > other.
func (u UUID) Compare(other UUID) int {
	return u.value.Compare(other.value)
}

// Equal reports whether u and other represent the same UUID.
func (u UUID) Equal(other UUID) bool {
	return u.value == other.value
}

// Raw is the fully decomposed, named view of a UUIDv7's five fields.
type Raw struct {
	// UnixTsMs is the 48-bit Unix timestamp in milliseconds.
	UnixTsMs uint64
	// Version is the 4-bit version field.
	Version uint8
	// RandA is the 12-bit rand_a field.
	RandA uint16
	// Variant is the 2-bit variant field.
	Variant uint8
	// RandB is the 62-bit rand_b field.
	RandB uint64
}
