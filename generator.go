package uuid7der

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"sync"
	"time"
)

// Generator is a thread-safe UUIDv7 generator that ensures monotonicity
// within the same millisecond by running a counter in the rand_a field.
type Generator struct {
	mu            sync.Mutex
	lastTimestamp uint64
	clockSeq      uint16 // 12-bit counter for sub-millisecond ordering
	randReader    io.Reader
}

// NewGenerator creates a new UUIDv7 generator with crypto/rand as the random source
func NewGenerator() *Generator {
	return &Generator{
		randReader: rand.Reader,
	}
}

// NewGeneratorWithReader creates a new UUIDv7 generator with a custom random source.
// This is primarily useful for testing with deterministic random sources.
func NewGeneratorWithReader(r io.Reader) *Generator {
	return &Generator{
		randReader: r,
	}
}

// New generates a new UUIDv7 with the current timestamp.
// This method is thread-safe and ensures monotonic ordering of UUIDs
// generated within the same millisecond.
func (g *Generator) New() (UUID, error) {
	return g.NewWithTime(time.Now())
}

// NewWithTime generates a new UUIDv7 with the specified timestamp. The
// timestamp must fit the 48-bit unix_ts_ms field: times before the Unix
// epoch or past MaxUnixTsMs yield ErrTimestampRange. This method is
// thread-safe and ensures monotonic ordering.
func (g *Generator) NewWithTime(t time.Time) (UUID, error) {
	timestamp := uint64(t.UnixMilli())
	if timestamp > MaxUnixTsMs {
		return UUID{}, ErrTimestampRange
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// Fresh randomness for the rand_a and rand_b regions on every call.
	var seed [16]byte
	if _, err := io.ReadFull(g.randReader, seed[:]); err != nil {
		return UUID{}, err
	}
	rnd := Uint128{
		Hi: binary.BigEndian.Uint64(seed[0:8]),
		Lo: binary.BigEndian.Uint64(seed[8:16]),
	}

	// Handle monotonicity: within the same millisecond (or after a clock
	// rollback) the counter advances instead of drawing fresh rand_a bits.
	// A counter overflow (> 12 bits) borrows the next millisecond.
	if timestamp <= g.lastTimestamp {
		timestamp = g.lastTimestamp
		g.clockSeq++
		if g.clockSeq > 0xFFF {
			g.clockSeq = 0
			timestamp++
		}
	} else {
		/*
		 *The 12-bit rand_a field and the 62-bit rand_b field SHOULD be filled with
		 *random data, such as from a cryptographically secure random number generator.
		 */
		// New millisecond, reseed the clock sequence from the random bits
		g.clockSeq = uint16(rnd.Hi & randAMask)
	}
	g.lastTimestamp = timestamp

	// Place the clock sequence in the rand_a region; rand_b keeps the
	// fresh randomness.
	rnd.Hi = (rnd.Hi &^ randAMask) | uint64(g.clockSeq)

	value := Seeds{UnixTsMs: timestamp, RandomBytes: rnd}.Uint128()
	return UUID{value: value}, nil
}

// Must is a helper that wraps a call to a function returning (UUID, error)
// and panics if the error is non-nil. It is intended for use in variable
// initializations such as:
//
//	var id = uuid7der.Must(uuid7der.New())
func Must(id UUID, err error) UUID {
	if err != nil {
		panic(err)
	}
	return id
}

// defaultGenerator is the package-level generator used by the New* functions
var defaultGenerator = NewGenerator()

// New generates a new UUIDv7 using the default generator.
// This is a convenience function that uses the package-level generator.
func New() (UUID, error) {
	return defaultGenerator.New()
}
