package uuid7der

import (
	"testing"
)

func TestSeeds_Uint128_ZeroRandomness(t *testing.T) {
	seeds := Seeds{
		UnixTsMs:    0x0001_8E2C_1A2B,
		RandomBytes: Uint128{},
	}

	got := seeds.Uint128()
	want := Uint128{Hi: 0x0001_8E2C_1A2B_7000, Lo: 0x8000_0000_0000_0000}
	if got != want {
		t.Fatalf("Seeds.Uint128() = %+v, want %+v", got, want)
	}

	raw := Unverified(got).Raw()
	if raw.UnixTsMs != 0x0001_8E2C_1A2B {
		t.Errorf("UnixTsMs = %#x, want %#x", raw.UnixTsMs, uint64(0x0001_8E2C_1A2B))
	}
	if raw.Version != 7 {
		t.Errorf("Version = %d, want 7", raw.Version)
	}
	if raw.Variant != 2 {
		t.Errorf("Variant = %d, want 2", raw.Variant)
	}
	if raw.RandA != 0 {
		t.Errorf("RandA = %#x, want 0", raw.RandA)
	}
	if raw.RandB != 0 {
		t.Errorf("RandB = %#x, want 0", raw.RandB)
	}
}

func TestSeeds_Uint128_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		seeds Seeds
	}{
		{
			name:  "all zero",
			seeds: Seeds{},
		},
		{
			name: "max timestamp, max randomness",
			seeds: Seeds{
				UnixTsMs:    MaxUnixTsMs,
				RandomBytes: Uint128{Hi: 0xFFFF_FFFF_FFFF_FFFF, Lo: 0xFFFF_FFFF_FFFF_FFFF},
			},
		},
		{
			name: "mixed randomness",
			seeds: Seeds{
				UnixTsMs:    0x0000_0000_0001,
				RandomBytes: Uint128{Hi: 0xDEAD_BEEF_CAFE_F00D, Lo: 0x0123_4567_89AB_CDEF},
			},
		},
		{
			name: "randomness only in rand_b",
			seeds: Seeds{
				UnixTsMs:    42,
				RandomBytes: Uint128{Lo: 0x3FFF_FFFF_FFFF_FFFF},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := Unverified(tt.seeds.Uint128()).Raw()

			if raw.Version != 7 {
				t.Errorf("Version = %d, want 7", raw.Version)
			}
			if raw.Variant != 2 {
				t.Errorf("Variant = %d, want 2", raw.Variant)
			}
			if want := tt.seeds.UnixTsMs & MaxUnixTsMs; raw.UnixTsMs != want {
				t.Errorf("UnixTsMs = %#x, want %#x", raw.UnixTsMs, want)
			}
			// rand_a and rand_b keep the corresponding bits of the seed;
			// the version and variant regions of the seed are overwritten.
			if want := uint16(tt.seeds.RandomBytes.Hi & randAMask); raw.RandA != want {
				t.Errorf("RandA = %#x, want %#x", raw.RandA, want)
			}
			if want := tt.seeds.RandomBytes.Lo & randBMask; raw.RandB != want {
				t.Errorf("RandB = %#x, want %#x", raw.RandB, want)
			}
		})
	}
}

func TestSeeds_Uint128_TruncatesWideTimestamps(t *testing.T) {
	tests := []struct {
		name     string
		unixTsMs uint64
		want     uint64
	}{
		{"one past 48 bits", 1 << 48, 0},
		{"all ones", 0xFFFF_FFFF_FFFF_FFFF, MaxUnixTsMs},
		{"high bit plus payload", 1<<63 | 0x1234, 0x1234},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seeds := Seeds{UnixTsMs: tt.unixTsMs}
			got := Unverified(seeds.Uint128()).UnixTsMs()
			if got != tt.want {
				t.Errorf("UnixTsMs after pack = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestSeeds_Uint128_OverwritesSeedTagBits(t *testing.T) {
	// A seed with every bit set must still come out tagged as version 7,
	// variant 2.
	seeds := Seeds{
		UnixTsMs:    0,
		RandomBytes: Uint128{Hi: 0xFFFF_FFFF_FFFF_FFFF, Lo: 0xFFFF_FFFF_FFFF_FFFF},
	}

	v := Unverified(seeds.Uint128())
	if v.UnixTsMs() != 0 {
		t.Errorf("UnixTsMs = %#x, want 0", v.UnixTsMs())
	}
	if v.Version() != 7 {
		t.Errorf("Version = %d, want 7", v.Version())
	}
	if v.Variant() != 2 {
		t.Errorf("Variant = %d, want 2", v.Variant())
	}
	if v.RandA() != 0xFFF {
		t.Errorf("RandA = %#x, want 0xFFF", v.RandA())
	}
	if v.RandB() != 0x3FFF_FFFF_FFFF_FFFF {
		t.Errorf("RandB = %#x, want 0x3FFF_FFFF_FFFF_FFFF", v.RandB())
	}
}
