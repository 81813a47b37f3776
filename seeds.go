package uuid7der

// UUIDv7 bit layout, numbered from bit 0 at the least significant end of
// the 128-bit value:
//
//	bits 80-127  unix_ts_ms  48-bit Unix millisecond timestamp
//	bits 76-79   version     literal 7 (0b0111)
//	bits 64-75   rand_a      12 random bits
//	bits 62-63   variant     literal 2 (0b10)
//	bits  0-61   rand_b      62 random bits
//
// The top three fields live in the Hi half, the bottom two in the Lo half.
const (
	// MaxUnixTsMs is the largest millisecond timestamp the 48-bit
	// unix_ts_ms field can hold (a moment in the year 10889).
	MaxUnixTsMs uint64 = 1<<48 - 1

	tsShift   = 16                            // unix_ts_ms starts at bit 16 of Hi
	vsnShift  = 12                            // version starts at bit 12 of Hi
	varShift  = 62                            // variant starts at bit 62 of Lo
	randAMask = uint64(0x0FFF)                // low 12 bits of Hi
	randBMask = uint64(0x3FFF_FFFF_FFFF_FFFF) // low 62 bits of Lo
)

// Seeds holds the two inputs a UUIDv7 is built from: a Unix millisecond
// timestamp and 128 bits of caller-supplied randomness, typically drawn
// from a cryptographically secure source.
type Seeds struct {
	// UnixTsMs is the Unix timestamp in milliseconds. Only the low 48 bits
	// are used; any higher bits are silently discarded by Uint128. Callers
	// that need strict range enforcement check against MaxUnixTsMs first.
	UnixTsMs uint64

	// RandomBytes supplies the randomness for the rand_a and rand_b
	// regions. Its timestamp, version and variant regions are overwritten.
	RandomBytes Uint128
}

// Uint128 packs the seeds into the canonical UUIDv7 bit layout by
// overwriting the appropriate regions of RandomBytes:
//
//  1. The top 48 bits are replaced with UnixTsMs.
//  2. The 4 version bits (76-79) are set to 7 (0b0111).
//  3. The 2 variant bits (62-63) are set to 2 (0b10).
//
// All other 74 bits keep the caller-supplied randomness. The operation is
// total: it never fails, and a timestamp wider than 48 bits simply loses
// its high-order bits to the shift.
func (s Seeds) Uint128() Uint128 {
	hi, lo := s.RandomBytes.Hi, s.RandomBytes.Lo

	// Clear the top 48 bits and insert the timestamp.
	hi &= 0x0000_0000_0000_FFFF
	hi |= s.UnixTsMs << tsShift

	// Clear the version bits (76-79) and set them to 7 (0b0111).
	hi &= 0xFFFF_FFFF_FFFF_0FFF
	hi |= 0x7 << vsnShift

	// Clear the variant bits (62-63) and set them to 2 (0b10).
	lo &= 0x3FFF_FFFF_FFFF_FFFF
	lo |= 0x2 << varShift

	return Uint128{Hi: hi, Lo: lo}
}
