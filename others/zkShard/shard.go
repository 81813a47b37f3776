package main

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-zookeeper/zk"
	"go.uber.org/zap"

	"github.com/Lzww0608/uuid7der"
)

// A fleet of generators shares the 12-bit rand_a region: the top 4 bits
// carry a ZooKeeper-assigned shard ID, the low 8 bits a per-millisecond
// counter. UUIDs from distinct nodes can then never collide on rand_a
// within the same millisecond.
const (
	shardBits   = 4
	counterBits = 8

	shardShift  = counterBits
	counterMask = 1<<counterBits - 1
	maxShardID  = 1<<shardBits - 1

	zkRootPath = "/uuid7der_shard" // Root path in ZooKeeper for node registration
)

// ShardDriver maintains generation state and the ZooKeeper session.
type ShardDriver struct {
	mu       sync.Mutex
	lastTime int64  // Last timestamp a UUID was generated, in ms
	counter  uint16 // Per-millisecond counter in the low bits of rand_a
	shardID  uint8  // ZooKeeper-assigned shard in the top bits of rand_a

	zkClient *zk.Conn
	service  string
	port     int
	logger   *zap.Logger
}

// NodeInfo is the per-node state stored in both ZooKeeper and the local
// cache file.
type NodeInfo struct {
	ShardID    uint8 `json:"shard_id"`
	LastTime   int64 `json:"last_time"`
	CreateTime int64 `json:"create_time"`
}

// NewShardDriver connects to ZooKeeper and registers this node, recovering
// a previously assigned shard ID when one exists.
func NewShardDriver(zkServers []string, serviceName string, port int, logger *zap.Logger) (*ShardDriver, error) {
	driver := &ShardDriver{
		service: serviceName,
		port:    port,
		logger:  logger,
	}

	c, _, err := zk.Connect(zkServers, time.Second*5)
	if err != nil {
		return nil, fmt.Errorf("connect zk: %w", err)
	}
	driver.zkClient = c

	shardID, err := driver.registerOrRecover()
	if err != nil {
		c.Close()
		return nil, err
	}
	driver.shardID = shardID
	logger.Info("shard driver initialized", zap.Uint8("shard_id", shardID))

	// Periodically upload heartbeat and update state in ZooKeeper and cache
	go driver.scheduledUploadTime()
	return driver, nil
}

func (d *ShardDriver) nodeKey() string {
	return fmt.Sprintf("%s/%s/node-%d", zkRootPath, d.service, d.port)
}

// registerOrRecover registers this node in ZooKeeper or recovers its shard
// assignment from ZooKeeper or the local cache.
func (d *ShardDriver) registerOrRecover() (uint8, error) {
	if err := d.ensurePath(fmt.Sprintf("%s/%s", zkRootPath, d.service)); err != nil {
		return 0, fmt.Errorf("ensure zk path: %w", err)
	}

	nodeKey := d.nodeKey()
	var info NodeInfo

	exists, _, err := d.zkClient.Exists(nodeKey)
	if err != nil {
		return 0, fmt.Errorf("check node existence: %w", err)
	}

	now := time.Now().UnixMilli()
	if exists {
		data, _, err := d.zkClient.Get(nodeKey)
		if err != nil {
			return 0, fmt.Errorf("get node info: %w", err)
		}
		if err := json.Unmarshal(data, &info); err != nil {
			return 0, fmt.Errorf("decode node info: %w", err)
		}

		// Detect system clock rollback against the registered state
		if now < info.LastTime {
			return 0, fmt.Errorf("clock moved backwards: %d < %d", now, info.LastTime)
		}
		d.logger.Info("recovered shard from zk", zap.Uint8("shard_id", info.ShardID))
	} else {
		// Not registered in ZooKeeper, try the local cache first
		if cached, err := d.loadLocalCache(); err == nil {
			if now < cached.LastTime {
				return 0, fmt.Errorf("clock moved backwards: %d < %d", now, cached.LastTime)
			}
			info = cached
			d.logger.Info("recovered shard from local cache", zap.Uint8("shard_id", info.ShardID))
		} else {
			info = NodeInfo{
				ShardID:    uint8(d.port % (maxShardID + 1)),
				CreateTime: now,
			}
		}
		info.LastTime = now
	}

	data, err := json.Marshal(info)
	if err != nil {
		return 0, err
	}
	if exists {
		_, err = d.zkClient.Set(nodeKey, data, -1)
	} else {
		_, err = d.zkClient.Create(nodeKey, data, 0, zk.WorldACL(zk.PermAll))
	}
	if err != nil {
		return 0, fmt.Errorf("register node info: %w", err)
	}

	d.saveLocalCache(info)
	return info.ShardID, nil
}

// NextUUID generates the next UUIDv7 with this node's shard ID pinned into
// the top of rand_a and the per-millisecond counter in its low bits.
func (d *ShardDriver) NextUUID() (uuid7der.UUID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now().UnixMilli()

	// Runtime clock rollback check
	if now < d.lastTime {
		offset := d.lastTime - now
		// For small offsets (<=5ms), wait for the clock to catch up
		if offset > 5 {
			return uuid7der.UUID{}, fmt.Errorf("clock moved backwards too much (%d ms)", offset)
		}
		time.Sleep(time.Duration(offset) * time.Millisecond)
		now = time.Now().UnixMilli()
		if now < d.lastTime {
			return uuid7der.UUID{}, fmt.Errorf("clock moved backwards, refused to generate id")
		}
	}

	if now == d.lastTime {
		d.counter = (d.counter + 1) & counterMask
		// Counter wrapped: per-ms capacity exhausted, wait for the next ms
		if d.counter == 0 {
			for now <= d.lastTime {
				now = time.Now().UnixMilli()
			}
		}
	} else {
		d.counter = 0
	}
	d.lastTime = now

	var buf [16]byte
	if _, err := io.ReadFull(rand.Reader, buf[:]); err != nil {
		return uuid7der.UUID{}, fmt.Errorf("read randomness: %w", err)
	}

	seeds := uuid7der.Seeds{
		UnixTsMs:    uint64(now),
		RandomBytes: uuid7der.MustUint128FromBytes(buf[:]),
	}
	v := seeds.Uint128()

	// Replace the random rand_a with shard ID and counter
	v.Hi = v.Hi&^uint64(0xFFF) |
		uint64(d.shardID)<<shardShift |
		uint64(d.counter)

	return uuid7der.Unverified(v).Verify()
}

// NextDER generates the next UUID and returns its DER-encoded ASN.1
// projection.
func (d *ShardDriver) NextDER() ([]byte, error) {
	id, err := d.NextUUID()
	if err != nil {
		return nil, err
	}
	return id.DER()
}

// scheduledUploadTime periodically updates this node's info in ZooKeeper
// and the local cache.
func (d *ShardDriver) scheduledUploadTime() {
	ticker := time.NewTicker(3 * time.Second)
	nodeKey := d.nodeKey()

	for range ticker.C {
		now := time.Now().UnixMilli()

		d.mu.Lock()
		last := d.lastTime
		d.mu.Unlock()

		// A backwards clock during heartbeat means the registered state
		// would regress; skip the update and alert.
		if now < last {
			d.logger.Warn("clock rollback detected during heartbeat",
				zap.Int64("local_ms", now), zap.Int64("last_ms", last))
			continue
		}

		info := NodeInfo{
			ShardID:  d.shardID,
			LastTime: now,
		}
		data, _ := json.Marshal(info)

		// Ignore errors, ZooKeeper may be briefly unavailable
		d.zkClient.Set(nodeKey, data, -1)
		d.saveLocalCache(info)
	}
}

// ensurePath creates each segment of a ZooKeeper path that does not exist
// yet.
func (d *ShardDriver) ensurePath(path string) error {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	current := ""
	for _, seg := range segments {
		current += "/" + seg
		exists, _, err := d.zkClient.Exists(current)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := d.zkClient.Create(current, []byte{}, 0, zk.WorldACL(zk.PermAll)); err != nil && err != zk.ErrNodeExists {
			return err
		}
	}
	return nil
}

func (d *ShardDriver) cacheFile() string {
	return fmt.Sprintf(".zkshard_cache_%d", d.port)
}

// saveLocalCache writes NodeInfo to a file for local state recovery.
func (d *ShardDriver) saveLocalCache(info NodeInfo) {
	data, _ := json.Marshal(info)
	os.WriteFile(d.cacheFile(), data, 0644)
}

// loadLocalCache loads NodeInfo from the local cache file, if present.
func (d *ShardDriver) loadLocalCache() (NodeInfo, error) {
	data, err := os.ReadFile(d.cacheFile())
	if err != nil {
		return NodeInfo{}, err
	}
	var info NodeInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return NodeInfo{}, err
	}
	return info, nil
}

func main() {
	// NOTE: This code requires a ZooKeeper at ZKSHARD_SERVERS to run.
	// You can use Docker to start ZooKeeper for local testing:
	// docker run --name some-zookeeper -p 2181:2181 -d zookeeper

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	servers := []string{"127.0.0.1:2181"}
	if v := os.Getenv("ZKSHARD_SERVERS"); v != "" {
		servers = strings.Split(v, ",")
	}
	service := "uuid-service"
	if v := os.Getenv("ZKSHARD_SERVICE"); v != "" {
		service = v
	}
	port := 8080
	if v := os.Getenv("ZKSHARD_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			port = n
		}
	}

	driver, err := NewShardDriver(servers, service, port, logger)
	if err != nil {
		logger.Fatal("init shard driver", zap.Error(err))
	}

	logger.Info("start generating DER-encoded UUIDs")

	var wg sync.WaitGroup
	start := time.Now()
	// Launch 10 goroutines concurrently, each generating 100 UUIDs
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				der, err := driver.NextDER()
				if err != nil {
					logger.Error("generate", zap.Error(err))
					continue
				}
				fmt.Printf("%x\n", der)
			}
		}()
	}
	wg.Wait()

	logger.Info("done",
		zap.Uint8("shard_id", driver.shardID),
		zap.Duration("elapsed", time.Since(start)))
}
