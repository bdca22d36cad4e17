// Package kv implements an ordered, durable byte-to-byte store backed by
// Badger: point reads/writes/deletes, bidirectional range iteration, and a
// chunked export/import stream for moving an engine's entire key-space
// between processes.
//
// © 2025 arclet authors. MIT License.
package kv

import (
	"bytes"
	"os"

	badger "github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/arclet/arclet/internal/filestring"
	"github.com/arclet/arclet/pkg/arcerr"
	"github.com/arclet/arclet/pkg/concurrent"
)

// recordSeparator delimits adjacent records within one exported chunk.
const recordSeparator = 0x7E // '~'

// Engine is an ordered key-value store persisted under a directory. It holds
// no mutex of its own: Add and Delete each run their existence check and
// their write inside one Badger read-write transaction, which makes each of
// them atomic; a sequence of several calls is not serialized as a whole.
type Engine struct {
	db     *badger.DB
	dir    string
	logger *zap.Logger
}

// Option configures Open.
type Option func(*options)

type options struct {
	recreate bool
	logger   *zap.Logger
}

// WithRecreate deletes the target directory before opening.
func WithRecreate(recreate bool) Option {
	return func(o *options) { o.recreate = recreate }
}

// WithLogger plugs an external zap.Logger; Open without this option is a
// no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Open opens (or creates) an engine rooted at dir.
func Open(dir string, opts ...Option) (*Engine, error) {
	cfg := &options{logger: zap.NewNop()}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.recreate {
		if err := os.RemoveAll(dir); err != nil {
			return nil, arcerr.Wrap(arcerr.IO, "kv: recreate directory", err)
		}
	}

	handle := concurrent.DefaultLockRegistry().Acquire("kv_engine:" + dir)
	defer handle.Release()

	bopts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, arcerr.Wrap(arcerr.IO, "kv: open badger", err)
	}

	return &Engine{db: db, dir: dir, logger: cfg.logger}, nil
}

// Dir returns the directory this engine is rooted at.
func (e *Engine) Dir() string { return e.dir }

// Close closes the underlying store.
func (e *Engine) Close() error {
	if err := e.db.Close(); err != nil {
		return arcerr.Wrap(arcerr.IO, "kv: close", err)
	}
	return nil
}

// Add writes key/value. If the key already exists and overwrite is false,
// Add fails with AlreadyExists and performs no write. The existence check
// and write happen inside a single Badger transaction for atomicity.
func (e *Engine) Add(key, value []byte, overwrite bool) error {
	err := e.db.Update(func(txn *badger.Txn) error {
		if !overwrite {
			if _, err := txn.Get(key); err == nil {
				return arcerr.New(arcerr.AlreadyExists, "kv: key already exists")
			} else if err != badger.ErrKeyNotFound {
				return err
			}
		}
		return txn.Set(key, value)
	})
	if err == nil {
		return nil
	}
	if arcerr.Is(err, arcerr.AlreadyExists) {
		return err
	}
	return arcerr.Wrap(arcerr.IO, "kv: add", err)
}

// Get returns the value for key, or def if absent.
func (e *Engine) Get(key, def []byte) []byte {
	var out []byte
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		return def
	}
	return out
}

// Delete removes key. Returns false if key was absent.
func (e *Engine) Delete(key []byte) bool {
	existed := false
	_ = e.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			existed = true
		} else {
			return nil
		}
		return txn.Delete(key)
	})
	return existed
}

// NextIter returns a generator walking keys in ascending lexicographic order
// starting at refKey (inclusive, if present).
func (e *Engine) NextIter(refKey []byte) *concurrent.Generator[KV] {
	return e.iter(refKey, false)
}

// PrevIter returns a generator walking keys in descending lexicographic order
// starting at refKey (inclusive, if present).
func (e *Engine) PrevIter(refKey []byte) *concurrent.Generator[KV] {
	return e.iter(refKey, true)
}

// KV is a single key/value pair yielded by NextIter/PrevIter.
type KV struct {
	Key   []byte
	Value []byte
}

func (e *Engine) iter(refKey []byte, reverse bool) *concurrent.Generator[KV] {
	return concurrent.NewGenerator(func(yield func(KV) bool) {
		_ = e.db.View(func(txn *badger.Txn) error {
			iopts := badger.DefaultIteratorOptions
			iopts.Reverse = reverse
			it := txn.NewIterator(iopts)
			defer it.Close()

			seek := refKey
			if reverse && len(refKey) == 0 {
				seek = nil
			}
			if seek != nil {
				it.Seek(seek)
			} else {
				it.Rewind()
			}

			for ; it.Valid(); it.Next() {
				item := it.Item()
				k := append([]byte(nil), item.Key()...)
				var v []byte
				if err := item.Value(func(val []byte) error {
					v = append([]byte(nil), val...)
					return nil
				}); err != nil {
					return err
				}
				if !yield(KV{Key: k, Value: v}) {
					return nil
				}
			}
			return nil
		})
	})
}

// ChunkedExport streams the engine's full key-space as opaque byte chunks,
// each at most chunkSizeBytes unless a single record exceeds that, in which
// case that record is emitted alone as its own chunk.
func (e *Engine) ChunkedExport(chunkSizeBytes int) *concurrent.Generator[[]byte] {
	return concurrent.NewGenerator(func(yield func([]byte) bool) {
		var buf bytes.Buffer
		flush := func() bool {
			if buf.Len() == 0 {
				return true
			}
			ok := yield(append([]byte(nil), buf.Bytes()...))
			buf.Reset()
			return ok
		}

		_ = e.db.View(func(txn *badger.Txn) error {
			iopts := badger.DefaultIteratorOptions
			it := txn.NewIterator(iopts)
			defer it.Close()

			for it.Rewind(); it.Valid(); it.Next() {
				item := it.Item()
				k := append([]byte(nil), item.Key()...)
				var v []byte
				if err := item.Value(func(val []byte) error {
					v = append([]byte(nil), val...)
					return nil
				}); err != nil {
					return err
				}
				record := filestring.Pack([][]byte{k, v})

				if len(record) > chunkSizeBytes {
					if !flush() {
						return nil
					}
					if !yield(record) {
						return nil
					}
					continue
				}

				if buf.Len() > 0 && buf.Len()+1+len(record) > chunkSizeBytes {
					if !flush() {
						return nil
					}
				}
				if buf.Len() > 0 {
					buf.WriteByte(recordSeparator)
				}
				buf.Write(record)
			}
			flush()
			return nil
		})
	})
}

// ChunkedImport consumes a generator of byte chunks previously produced by
// ChunkedExport, writing every record into this engine with overwrite=true.
func (e *Engine) ChunkedImport(chunks *concurrent.Generator[[]byte]) error {
	for chunks.HasMore() {
		chunk := chunks.Next()
		if len(chunk) == 0 {
			continue
		}
		// Records are length-prefixed, so each one is parsed by its own length
		// and '~' is only expected between records, never looked for inside one.
		for rest := chunk; len(rest) > 0; {
			fields, err := filestring.Unpack(rest)
			if err != nil {
				return arcerr.Wrap(arcerr.Corruption, "kv: chunked import record", err)
			}
			if len(fields) != 2 {
				return arcerr.New(arcerr.Corruption, "kv: chunked import record field count")
			}
			if err := e.Add(fields[0], fields[1], true); err != nil {
				return err
			}
			rest = rest[len(filestring.Pack(fields)):]
			if len(rest) > 0 {
				if rest[0] != recordSeparator {
					return arcerr.New(arcerr.Corruption, "kv: chunked import missing record separator")
				}
				rest = rest[1:]
			}
		}
	}
	return nil
}
