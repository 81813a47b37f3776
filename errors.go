package uuid7der

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength indicates that a byte slice does not hold exactly 16 bytes
	ErrInvalidLength = errors.New("uuid7der: invalid length (expected 16 bytes)")

	// ErrInvalidVersion indicates that the UUID version field is not 7
	ErrInvalidVersion = errors.New("uuid7der: invalid UUID version (expected 7)")

	// ErrInvalidVariant indicates that the UUID variant field is not the RFC 9562 variant
	ErrInvalidVariant = errors.New("uuid7der: invalid UUID variant (expected 0b10)")

	// ErrInvalidBitString indicates a bit string whose unused-bit count does not fit its buffer
	ErrInvalidBitString = errors.New("uuid7der: invalid bit string")

	// ErrTimestampRange indicates a timestamp outside the 48-bit unix_ts_ms range
	ErrTimestampRange = errors.New("uuid7der: timestamp outside 48-bit range")
)

// VersionError reports a version field that is not 7. It matches
// ErrInvalidVersion under errors.Is.
type VersionError struct {
	// Version is the 4-bit value found in the version field.
	Version uint8
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("uuid7der: invalid UUID version %d (expected 7)", e.Version)
}

func (e *VersionError) Unwrap() error { return ErrInvalidVersion }

// VariantError reports a variant field that is not 2 (0b10). It is
// produced only when the version check already passed, and matches
// ErrInvalidVariant under errors.Is.
type VariantError struct {
	// Variant is the 2-bit value found in the variant field.
	Variant uint8
}

func (e *VariantError) Error() string {
	return fmt.Sprintf("uuid7der: invalid UUID variant %d (expected 2)", e.Variant)
}

func (e *VariantError) Unwrap() error { return ErrInvalidVariant }
