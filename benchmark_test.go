package uuid7der

import (
	"testing"
)

func BenchmarkNew(b *testing.B) {
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, err := New()
			if err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkGenerator_New(b *testing.B) {
	gen := NewGenerator()
	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, err := gen.New()
			if err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkSeeds_Uint128(b *testing.B) {
	seeds := Seeds{
		UnixTsMs:    0x0001_8E2C_1A2B,
		RandomBytes: Uint128{Hi: 0xDEAD_BEEF_CAFE_F00D, Lo: 0x0123_4567_89AB_CDEF},
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = seeds.Uint128()
	}
}

func BenchmarkUnverified_Raw(b *testing.B) {
	v := Unverified(validV7())
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = v.Raw()
	}
}

func BenchmarkUnverified_Verify(b *testing.B) {
	v := Unverified(validV7())
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := v.Verify()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRaw_Sequence(b *testing.B) {
	raw := Unverified(validV7()).Raw()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := raw.Sequence()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSequence_MarshalDER(b *testing.B) {
	uuid, _ := New()
	seq, err := uuid.Sequence()
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := seq.MarshalDER()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUUID_DER(b *testing.B) {
	uuid, _ := New()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := uuid.DER()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUUID_Compare(b *testing.B) {
	uuid1, _ := New()
	uuid2, _ := New()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = uuid1.Compare(uuid2)
	}
}

func BenchmarkUUID_Timestamp(b *testing.B) {
	uuid, _ := New()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = uuid.Timestamp()
	}
}

func BenchmarkUUID_Time(b *testing.B) {
	uuid, _ := New()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = uuid.Time()
	}
}

// Benchmark concurrent generation
func BenchmarkGenerator_NewConcurrent(b *testing.B) {
	gen := NewGenerator()
	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, err := gen.New()
			if err != nil {
				b.Fatal(err)
			}
		}
	})
}

// Benchmark for batch generation
func BenchmarkGenerator_NewBatch(b *testing.B) {
	gen := NewGenerator()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for j := 0; j < 100; j++ {
			_, err := gen.New()
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}
