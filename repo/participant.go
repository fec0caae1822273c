package repo

import (
	"encoding/json"
	"fmt"

	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/regdesk/regdesk/io"
	"github.com/regdesk/regdesk/memdb"
	"github.com/regdesk/regdesk/model"
	"github.com/regdesk/regdesk/uuid"
)

const ParticipantByTeamIndex = "team_uuid"

func ParticipantSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.ParticipantType: {
				Name: model.ParticipantType,
				Indexes: map[string]*hcmemdb.IndexSchema{
					memdb.PK: {
						Name:    memdb.PK,
						Unique:  true,
						Indexer: &hcmemdb.UUIDFieldIndex{Field: "UUID"},
					},
					ParticipantByTeamIndex: {
						Name:    ParticipantByTeamIndex,
						Indexer: &hcmemdb.UUIDFieldIndex{Field: "TeamUUID"},
					},
				},
			},
		},
		MandatoryForeignKeys: map[string][]memdb.Relation{
			model.ParticipantType: {
				{
					OriginalDataTypeFieldName:     "TeamUUID",
					RelatedDataType:               model.TeamType,
					RelatedDataTypeFieldIndexName: memdb.PK,
				},
			},
		},
	}
}

type ParticipantRepository struct {
	db *io.MemoryStoreTxn
}

func NewParticipantRepository(tx *io.MemoryStoreTxn) *ParticipantRepository {
	return &ParticipantRepository{db: tx}
}

func (r *ParticipantRepository) save(participant *model.Participant) error {
	return r.db.Insert(model.ParticipantType, participant)
}

func (r *ParticipantRepository) Create(participant *model.Participant) error {
	return r.save(participant)
}

func (r *ParticipantRepository) GetRawByID(id model.ParticipantUUID) (interface{}, error) {
	if !uuid.IsValid(id) {
		return nil, model.ErrNotFound
	}
	raw, err := r.db.First(model.ParticipantType, memdb.PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrNotFound
	}
	return raw, nil
}

func (r *ParticipantRepository) GetByID(id model.ParticipantUUID) (*model.Participant, error) {
	raw, err := r.GetRawByID(id)
	if raw == nil {
		return nil, err
	}
	return raw.(*model.Participant), err
}

func (r *ParticipantRepository) Update(updated *model.Participant) error {
	stored, err := r.GetByID(updated.UUID)
	if err != nil {
		return err
	}
	if stored.Archived() {
		return model.ErrIsArchived
	}
	return r.save(updated)
}

// ListByTeam returns the active participants of one team, in memdb index
// order. The caller sorts for presentation.
func (r *ParticipantRepository) ListByTeam(teamUUID model.TeamUUID) ([]*model.Participant, error) {
	iter, err := r.db.Get(model.ParticipantType, ParticipantByTeamIndex, teamUUID)
	if err != nil {
		return nil, err
	}
	list := []*model.Participant{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		participant := raw.(*model.Participant)
		if participant.NotArchived() {
			list = append(list, participant)
		}
	}
	return list, nil
}

func (r *ParticipantRepository) Iter(action func(*model.Participant) (bool, error)) error {
	iter, err := r.db.Get(model.ParticipantType, memdb.PK)
	if err != nil {
		return err
	}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		next, err := action(raw.(*model.Participant))
		if err != nil {
			return err
		}
		if !next {
			break
		}
	}
	return nil
}

func (r *ParticipantRepository) Sync(rec io.Record) error {
	participant := &model.Participant{}
	if err := json.Unmarshal(rec.Data, participant); err != nil {
		return fmt.Errorf("unmarshalling participant %q: %w", rec.ObjID, err)
	}
	if rec.Deleted {
		return r.db.Txn.Txn.Delete(model.ParticipantType, participant)
	}
	return r.db.Txn.Txn.Insert(model.ParticipantType, participant)
}
