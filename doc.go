// Package uuid7der converts between the three representations of a UUIDv7:
// the packed 128-bit value, a structured view of its five fields, and an
// ASN.1 DER-encoded SEQUENCE suitable for embedding identifiers in
// certificate or protocol structures that require ASN.1 typing.
//
// A UUIDv7 combines a 48-bit Unix millisecond timestamp with 74 bits of
// randomness, the version tag 7 and the standard two-bit variant tag 10.
// This package exposes the bit-level layout directly: packing a timestamp
// and random seed into the canonical layout, unpacking any 128-bit value
// into its raw fields without validation, validating the version/variant
// tags, and projecting the fields onto a DER SEQUENCE whose sub-byte-width
// fields are BIT STRINGs with explicit unused-bit counts.
//
// Basic Usage:
//
//	// Generate a fresh UUIDv7 and serialize it as DER
//	id, err := uuid7der.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	der, err := id.DER()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(der)
//
//	// Inspect an arbitrary 128-bit value without validation
//	raw := uuid7der.Unverified(value).Raw()
//	fmt.Println(raw.UnixTsMs, raw.Version, raw.RandA, raw.Variant, raw.RandB)
//
//	// Validate before use
//	id, err := uuid7der.Unverified(value).Verify()
//	if err != nil {
//	    log.Fatal(err) // *VersionError or *VariantError
//	}
//
// Wire Format:
//
// The DER encoding is that of the SEQUENCE
//
//	RawUuidV7 ::= SEQUENCE {
//	    unixTsMs   INTEGER,
//	    version    INTEGER,
//	    randA      BIT STRING,   -- 12 significant bits, 4 unused
//	    variant    BIT STRING,   --  2 significant bits, 6 unused
//	    randB      BIT STRING    -- 62 significant bits, 2 unused
//	}
//
// in this exact field order. The unused-bit counts are part of the wire
// contract. Encoding is deterministic; the package does not parse DER back
// into the structured form.
//
// Thread Safety:
//
// Every conversion in this package is a pure function over fixed-size
// integers and byte buffers, safe to call concurrently without
// coordination. Generators serialize internally and may be shared across
// goroutines.
//
// Standards Compliance:
//
// The bit layout follows RFC 9562 for UUID version 7; the serialized form
// follows the Distinguished Encoding Rules (ITU-T X.690).
package uuid7der
