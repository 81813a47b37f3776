package main

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/Lzww0608/uuid7der"
)

// Config carries the sink settings. Values come from SINK_* environment
// variables with defaults suitable for a local MySQL.
type Config struct {
	DSN       string
	Workers   int
	Batches   int // batches per worker
	BatchSize int // rows per batch
}

// ConfigFromEnv overlays SINK_* environment variables onto the defaults.
func ConfigFromEnv() Config {
	cfg := Config{
		DSN:       "lzww:123456@tcp(127.0.0.1:3306)/test_db?parseTime=true",
		Workers:   4,
		Batches:   10,
		BatchSize: 100,
	}
	if v := os.Getenv("SINK_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("SINK_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("SINK_BATCHES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Batches = n
		}
	}
	if v := os.Getenv("SINK_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BatchSize = n
		}
	}
	return cfg
}

// Record is one sink row: the packed identifier, its embedded timestamp
// and the DER-encoded ASN.1 projection.
type Record struct {
	ID   []byte
	TsMs int64
	DER  []byte
}

// SinkDAO encapsulates all database operations for the DER sink.
type SinkDAO struct {
	db *sql.DB
}

// NewSinkDAO creates a new DAO with the provided database DSN.
func NewSinkDAO(dsn string) (*SinkDAO, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// DB performance and safety tuning
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return &SinkDAO{
		db: db,
	}, nil
}

// EnsureSchema creates the sink table when it does not exist yet.
func (dao *SinkDAO) EnsureSchema(ctx context.Context) error {
	_, err := dao.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS uuid_der (
			id    BINARY(16)    NOT NULL,
			ts_ms BIGINT        NOT NULL,
			der   VARBINARY(64) NOT NULL,
			PRIMARY KEY (id),
			KEY idx_ts_ms (ts_ms)
		)`)
	return err
}

// InsertBatch writes one batch of records in a single transaction. Either
// the whole batch lands or none of it does.
func (dao *SinkDAO) InsertBatch(ctx context.Context, recs []Record) error {
	tx, err := dao.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO uuid_der (id, ts_ms, der) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range recs {
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.TsMs, rec.DER); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Close releases the underlying connection pool.
func (dao *SinkDAO) Close() error {
	return dao.db.Close()
}

// buildBatch generates n fresh identifiers and their DER projections.
func buildBatch(gen *uuid7der.Generator, n int) ([]Record, error) {
	recs := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		id, err := gen.New()
		if err != nil {
			return nil, err
		}
		der, err := id.DER()
		if err != nil {
			return nil, err
		}
		recs = append(recs, Record{
			ID:   id.Bytes(),
			TsMs: id.Timestamp(),
			DER:  der,
		})
	}
	return recs, nil
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := ConfigFromEnv()
	ctx := context.Background()

	dao, err := NewSinkDAO(cfg.DSN)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer dao.Close()

	if err := dao.EnsureSchema(ctx); err != nil {
		logger.Fatal("ensure schema", zap.Error(err))
	}

	logger.Info("DER sink started",
		zap.Int("workers", cfg.Workers),
		zap.Int("batches", cfg.Batches),
		zap.Int("batch_size", cfg.BatchSize))

	// One generator shared by all workers; it serializes internally.
	gen := uuid7der.NewGenerator()

	var (
		wg       sync.WaitGroup
		inserted int64
		failed   int64
	)
	start := time.Now()

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			log := logger.With(zap.Int("worker", workerID))
			for j := 0; j < cfg.Batches; j++ {
				recs, err := buildBatch(gen, cfg.BatchSize)
				if err != nil {
					log.Error("build batch", zap.Error(err))
					atomic.AddInt64(&failed, int64(cfg.BatchSize))
					continue
				}
				if err := dao.InsertBatch(ctx, recs); err != nil {
					log.Error("insert batch", zap.Error(err))
					atomic.AddInt64(&failed, int64(len(recs)))
					continue
				}
				atomic.AddInt64(&inserted, int64(len(recs)))
			}
		}(i)
	}

	wg.Wait()
	logger.Info("DER sink finished",
		zap.Int64("rows_inserted", atomic.LoadInt64(&inserted)),
		zap.Int64("rows_failed", atomic.LoadInt64(&failed)),
		zap.Duration("elapsed", time.Since(start)))
}
