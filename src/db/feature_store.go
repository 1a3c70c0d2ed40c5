// Package db persists vectorized rows in an embedded bbolt store, as an
// alternative to the flat gzip stream when rows need keyed access.
package db

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	farmhash "github.com/leemcloughlin/gofarmhash"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"SentiVec/src/features"
	"SentiVec/src/metrics"
)

const defaultShards = 16

// FeatureStore maps record ids to vectorized rows across farmhash-sharded
// buckets, spreading big corpora over multiple b-trees.
type FeatureStore struct {
	db     *bolt.DB
	shards int
}

// OpenFeatureStore opens (or creates) the store file and its shard buckets.
func OpenFeatureStore(path string, shards int, noSync bool) (*FeatureStore, error) {
	if shards <= 0 {
		shards = defaultShards
	}
	db, err := bolt.Open(path, 0644, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "opening feature store %s", path)
	}
	db.NoSync = noSync
	err = db.Update(func(tx *bolt.Tx) error {
		for i := 0; i < shards; i++ {
			if _, err := tx.CreateBucketIfNotExists(shardName(i)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating shard buckets")
	}
	return &FeatureStore{db: db, shards: shards}, nil
}

func shardName(i int) []byte {
	return []byte(fmt.Sprintf("rows_%02d", i))
}

func (s *FeatureStore) shardFor(id uint64) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], id)
	n := int(farmhash.Hash32WithSeed(key[:], 0))
	return shardName(n % s.shards)
}

// Put stores one vectorized row under the record id.
func (s *FeatureStore) Put(id uint64, sample features.Sample) error {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], id)
	value := encodeRow(sample)
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.shardFor(id)).Put(key[:], value)
	})
	if err != nil {
		return errors.Wrapf(err, "storing row %d", id)
	}
	metrics.RowsStored.Inc()
	return nil
}

// Get returns the row stored under id, or ok=false.
func (s *FeatureStore) Get(id uint64) (features.Sample, bool, error) {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], id)
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(s.shardFor(id)).Get(key[:]); v != nil {
			value = bytes.Clone(v)
		}
		return nil
	})
	if err != nil {
		return features.Sample{}, false, errors.Wrapf(err, "loading row %d", id)
	}
	if value == nil {
		return features.Sample{}, false, nil
	}
	return decodeRow(value), true, nil
}

// Count sums the stored rows across all shards.
func (s *FeatureStore) Count() (int, error) {
	total := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		for i := 0; i < s.shards; i++ {
			total += tx.Bucket(shardName(i)).Stats().KeyN
		}
		return nil
	})
	return total, err
}

// Close flushes and releases the store.
func (s *FeatureStore) Close() error { return s.db.Close() }

// Rows are framed as featureLen uint32 followed by little-endian float64s
// (features, then label), matching the flat-file row layout.
func encodeRow(s features.Sample) []byte {
	buf := make([]byte, 4+8*(len(s.Features)+len(s.Label)))
	binary.LittleEndian.PutUint32(buf, uint32(len(s.Features)))
	off := 4
	for _, v := range s.Features {
		binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(v))
		off += 8
	}
	for _, v := range s.Label {
		binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(v))
		off += 8
	}
	return buf
}

func decodeRow(buf []byte) features.Sample {
	featLen := int(binary.LittleEndian.Uint32(buf))
	vals := make([]float64, (len(buf)-4)/8)
	for i := range vals {
		vals[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[4+i*8:]))
	}
	return features.Sample{Features: vals[:featLen], Label: vals[featLen:]}
}
