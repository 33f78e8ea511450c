// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/aitoothbrush/brusho-vsr/kv"
)

var _ kv.Store = (*DB)(nil)

const (
	minCacheSize = 16
	minOpenFiles = 16
)

// every committed operation is durable once its batch is written
var (
	writeOpt = opt.WriteOptions{Sync: true}
	readOpt  = opt.ReadOptions{}
)

// Options tunes a DB. Values below the minimums are raised to them.
type Options struct {
	CacheSize int // megabytes, half block cache and a quarter per write buffer
	OpenFiles int
}

func (o Options) leveldb() *opt.Options {
	cache := max(o.CacheSize, minCacheSize)
	return &opt.Options{
		OpenFilesCacheCapacity: max(o.OpenFiles, minOpenFiles),
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	}
}

// DB is the goleveldb backed registry store. It owns the storage it was
// opened on and releases it, file lock included, on Close.
type DB struct {
	ldb *leveldb.DB
	stg storage.Storage
}

// New opens the database at path, creating it when absent. Only one DB may
// hold a path at a time.
func New(path string, opts Options) (*DB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrapf(err, "lock database at '%v'", path)
	}
	return open(stg, opts)
}

// NewMem opens an empty in-memory database.
func NewMem() (*DB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*DB, error) {
	ldb, err := leveldb.Open(stg, opts.leveldb())
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open level db")
	}
	return &DB{ldb: ldb, stg: stg}, nil
}

func (db *DB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

// Get fails with an error matched by IsNotFound when key is absent.
func (db *DB) Get(key []byte) ([]byte, error) {
	return db.ldb.Get(key, &readOpt)
}

func (db *DB) Has(key []byte) (bool, error) {
	return db.ldb.Has(key, &readOpt)
}

func (db *DB) Put(key, val []byte) error {
	return db.ldb.Put(key, val, &writeOpt)
}

func (db *DB) Delete(key []byte) error {
	return db.ldb.Delete(key, &writeOpt)
}

// NewBatch starts a batch that is applied atomically by its Write.
func (db *DB) NewBatch() kv.Batch {
	return &batch{db: db.ldb}
}

// Iterate walks r in key order. The iterator must be released.
func (db *DB) Iterate(r kv.Range) kv.Iterator {
	return db.ldb.NewIterator(&util.Range{Start: r.Start, Limit: r.Limit}, &readOpt)
}

// Close shuts the database down, then releases its storage. Later calls fail.
func (db *DB) Close() error {
	if err := db.ldb.Close(); err != nil {
		db.stg.Close()
		return errors.Wrap(err, "close level db")
	}
	return errors.Wrap(db.stg.Close(), "release level db storage")
}

type batch struct {
	leveldb.Batch
	db *leveldb.DB
}

func (b *batch) Put(key, val []byte) error {
	b.Batch.Put(key, val)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.Batch.Delete(key)
	return nil
}

func (b *batch) Write() error {
	return b.db.Write(&b.Batch, &writeOpt)
}
