package repo

import (
	"encoding/json"
	"fmt"

	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/regdesk/regdesk/io"
	"github.com/regdesk/regdesk/memdb"
	"github.com/regdesk/regdesk/model"
)

func SeatCounterSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.SeatCounterType: {
				Name: model.SeatCounterType,
				Indexes: map[string]*hcmemdb.IndexSchema{
					memdb.PK: {
						Name:    memdb.PK,
						Unique:  true,
						Indexer: &hcmemdb.UUIDFieldIndex{Field: "UUID"},
					},
				},
			},
		},
	}
}

type SeatCounterRepository struct {
	db *io.MemoryStoreTxn
}

func NewSeatCounterRepository(tx *io.MemoryStoreTxn) *SeatCounterRepository {
	return &SeatCounterRepository{db: tx}
}

// Get returns the counter record, nil while nothing was allocated yet.
func (r *SeatCounterRepository) Get() (*model.SeatCounter, error) {
	raw, err := r.db.First(model.SeatCounterType, memdb.PK, model.SeatCounterUUID)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return raw.(*model.SeatCounter), nil
}

// Current returns the last allocated seat number, zero if nothing was
// allocated yet.
func (r *SeatCounterRepository) Current() (int64, error) {
	counter, err := r.Get()
	if err != nil {
		return 0, err
	}
	if counter == nil {
		return 0, nil
	}
	return counter.LastSeatNumber, nil
}

// Increment bumps the counter inside the current transaction and returns the
// newly allocated seat number. The record is created lazily on first use.
func (r *SeatCounterRepository) Increment(now model.UnixTime) (int64, error) {
	counter, err := r.Get()
	if err != nil {
		return 0, err
	}
	if counter == nil {
		counter = &model.SeatCounter{UUID: model.SeatCounterUUID}
	} else {
		clone := *counter
		counter = &clone
	}
	counter.LastSeatNumber++
	counter.Version = NewResourceVersion()
	counter.UpdatedAt = now
	if err := r.db.Insert(model.SeatCounterType, counter); err != nil {
		return 0, err
	}
	return counter.LastSeatNumber, nil
}

func (r *SeatCounterRepository) Sync(rec io.Record) error {
	counter := &model.SeatCounter{}
	if err := json.Unmarshal(rec.Data, counter); err != nil {
		return fmt.Errorf("unmarshalling seat counter %q: %w", rec.ObjID, err)
	}
	if rec.Deleted {
		return r.db.Txn.Txn.Delete(model.SeatCounterType, counter)
	}
	return r.db.Txn.Txn.Insert(model.SeatCounterType, counter)
}
