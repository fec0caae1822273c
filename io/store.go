package io

import (
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/hashicorp/go-hclog"

	"github.com/regdesk/regdesk/memdb"
)

// ErrStoreConflict signals that a transaction was invalidated by a concurrent
// commit. The whole operation is safe to retry from scratch.
var ErrStoreConflict = fmt.Errorf("store conflict")

const maxTxnRetries = 3

type MemoryStorableObject interface {
	ObjType() string
	ObjId() string
}

type MemoryStore struct {
	*memdb.MemDB

	journal Journal
	logger  log.Logger
}

type MemoryStoreTxn struct {
	*memdb.Txn

	memstore *MemoryStore // crosslink
}

func NewMemoryStore(schema *memdb.DBSchema, journal Journal, parentLogger log.Logger) (*MemoryStore, error) {
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, err
	}
	if journal == nil {
		journal = NopJournal{}
	}
	return &MemoryStore{
		MemDB:   db,
		journal: journal,
		logger:  parentLogger.Named("MemoryStore"),
	}, nil
}

func (ms *MemoryStore) Txn(write bool) *MemoryStoreTxn {
	return &MemoryStoreTxn{ms.MemDB.Txn(write), ms}
}

// journalChanges converts tracked txn changes into journal records.
func (mst *MemoryStoreTxn) journalChanges() ([]Record, error) {
	changes := mst.Txn.Changes()
	records := make([]Record, 0, len(changes))
	for _, change := range changes {
		obj := change.After
		deleted := false
		if obj == nil {
			obj = change.Before
			deleted = true
		}
		storable, ok := obj.(MemoryStorableObject)
		if !ok {
			return nil, fmt.Errorf("object at table %q does not implement MemoryStorableObject", change.Table)
		}
		data, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("marshalling %q object: %w", change.Table, err)
		}
		records = append(records, Record{
			Table:   change.Table,
			ObjID:   storable.ObjId(),
			Deleted: deleted,
			Data:    data,
		})
	}
	return records, nil
}

// Commit appends the tracked changes to the journal, then commits the memdb
// transaction. A journal failure aborts the whole transaction: either both
// the journal and the store see the changes, or neither does.
func (mst *MemoryStoreTxn) Commit() error {
	records, err := mst.journalChanges()
	if err == nil && len(records) > 0 {
		err = mst.memstore.journal.Append(records...)
	}
	if err != nil {
		mst.memstore.logger.Error("transaction aborted", "err", err)
		mst.Txn.Abort()
		return err
	}

	mst.Txn.Commit()
	return nil
}

func (mst *MemoryStoreTxn) Abort() {
	mst.Txn.Abort()
}

// RestoreFunc applies one journal record of a specific table during replay.
type RestoreFunc func(txn *MemoryStoreTxn, rec Record) error

// Restore replays the journal into the store. handlers maps a table name to
// the function applying its records; records of unknown tables fail the
// restore rather than being dropped silently.
func (ms *MemoryStore) Restore(handlers map[string]RestoreFunc) error {
	txn := ms.Txn(true)

	err := ms.journal.Replay(func(rec Record) error {
		handler, ok := handlers[rec.Table]
		if !ok {
			return fmt.Errorf("no restore handler for table %q", rec.Table)
		}
		return handler(txn, rec)
	})
	if err != nil {
		txn.Abort()
		return fmt.Errorf("journal replay: %w", err)
	}

	// replayed records must not be re-journaled
	txn.Txn.Commit()
	return nil
}

// RunTransaction is the transaction boundary of every write operation: it runs
// fn inside a single write transaction and commits it, retrying the whole
// callback when the commit was invalidated by a concurrent one.
func RunTransaction(ms *MemoryStore, fn func(txn *MemoryStoreTxn) error) error {
	var err error
	for attempt := 0; attempt < maxTxnRetries; attempt++ {
		txn := ms.Txn(true)
		err = fn(txn)
		if err != nil {
			txn.Abort()
		} else {
			err = txn.Commit()
		}
		if err == nil || !errors.Is(err, ErrStoreConflict) {
			return err
		}
		ms.logger.Warn("retrying conflicted transaction", "attempt", attempt+1)
	}
	return err
}
