package sheetdb

import (
	"fmt"
	"log"
	"time"

	"go.etcd.io/bbolt"
)

// DB is a spreadsheet store over a key-value backend. All methods are safe
// for concurrent use; the backend serializes writers.
type DB struct {
	store   storage
	logf    func(format string, args ...any)
	verbose bool
	now     func() time.Time
}

type Options struct {
	Logf      func(format string, args ...any)
	Verbose   bool
	IsTesting bool
	MmapSize  int
}

// Open opens or creates a Bolt-backed store at path.
func Open(path string, opt Options) (*DB, error) {
	bopt := *bbolt.DefaultOptions
	bopt.Timeout = 10 * time.Second
	if opt.IsTesting {
		bopt.NoSync = true
		bopt.NoFreelistSync = true
		bopt.InitialMmapSize = 1024 * 1024 * 5
	} else {
		bopt.InitialMmapSize = 1024 * 1024 * 1024
		bopt.FreelistType = bbolt.FreelistMapType
	}
	if opt.MmapSize != 0 {
		bopt.InitialMmapSize = opt.MmapSize
	}

	bdb, err := bbolt.Open(path, 0666, &bopt)
	if err != nil {
		return nil, fmt.Errorf("sheetdb: %w", err)
	}

	db := newDB(newBoltStorage(bdb), opt)
	if err := db.init(); err != nil {
		bdb.Close()
		return nil, err
	}
	return db, nil
}

// OpenMemory returns a transient in-memory store, intended for tests.
func OpenMemory(opt Options) *DB {
	db := newDB(newMemStorage(), opt)
	ensure(db.init())
	return db
}

func newDB(store storage, opt Options) *DB {
	logf := opt.Logf
	if logf == nil {
		logf = log.Printf
	}
	return &DB{
		store:   store,
		logf:    logf,
		verbose: opt.Verbose,
		now:     time.Now,
	}
}

func (db *DB) init() error {
	return db.update(func(tx storageTx) error {
		for _, name := range []string{spreadsheetsBucket, sheetsBucket, cellsBucket, permissionsBucket, metaBucket} {
			if _, err := tx.CreateBucket(name); err != nil {
				return fmt.Errorf("sheetdb: creating bucket %s: %w", name, err)
			}
		}
		return nil
	})
}

func (db *DB) Close() error {
	return db.store.Close()
}

// view runs f inside a read-only transaction.
func (db *DB) view(f func(tx storageTx) error) error {
	tx, err := db.store.Begin(false)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	return f(tx)
}

// update runs f inside a writable transaction, committing on success and
// rolling back on error, so the prior state is retained on failure.
func (db *DB) update(f func(tx storageTx) error) error {
	tx, err := db.store.Begin(true)
	if err != nil {
		return err
	}
	if err := f(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (db *DB) bucket(tx storageTx, name string) storageBucket {
	b := tx.Bucket(name)
	if b == nil {
		panic(fmt.Errorf("sheetdb: missing bucket %s", name))
	}
	return b
}

func ensure(err error) {
	if err != nil {
		panic(err)
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
