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

const (
	TeamStatusIndex = "status"
	TeamSourceIndex = "source"
)

func TeamSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.TeamType: {
				Name: model.TeamType,
				Indexes: map[string]*hcmemdb.IndexSchema{
					memdb.PK: {
						Name:    memdb.PK,
						Unique:  true,
						Indexer: &hcmemdb.UUIDFieldIndex{Field: "UUID"},
					},
					TeamStatusIndex: stringIndexer(TeamStatusIndex, "Status"),
					TeamSourceIndex: stringIndexer(TeamSourceIndex, "Source"),
				},
			},
		},
		CheckingRelations: map[string][]memdb.Relation{
			model.TeamType: {
				{
					OriginalDataTypeFieldName:     "UUID",
					RelatedDataType:               model.ParticipantType,
					RelatedDataTypeFieldIndexName: ParticipantByTeamIndex,
				},
			},
		},
	}
}

type TeamRepository struct {
	db *io.MemoryStoreTxn
}

func NewTeamRepository(tx *io.MemoryStoreTxn) *TeamRepository {
	return &TeamRepository{db: tx}
}

func (r *TeamRepository) save(team *model.Team) error {
	return r.db.Insert(model.TeamType, team)
}

func (r *TeamRepository) Create(team *model.Team) error {
	return r.save(team)
}

func (r *TeamRepository) GetRawByID(id model.TeamUUID) (interface{}, error) {
	// UUIDFieldIndex errors on malformed ids; treat those as missing records.
	if !uuid.IsValid(id) {
		return nil, model.ErrNotFound
	}
	raw, err := r.db.First(model.TeamType, memdb.PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrNotFound
	}
	return raw, nil
}

func (r *TeamRepository) GetByID(id model.TeamUUID) (*model.Team, error) {
	raw, err := r.GetRawByID(id)
	if raw == nil {
		return nil, err
	}
	return raw.(*model.Team), err
}

func (r *TeamRepository) Update(updated *model.Team) error {
	stored, err := r.GetByID(updated.UUID)
	if err != nil {
		return err
	}
	if stored.Archived() {
		return model.ErrIsArchived
	}
	return r.save(updated)
}

// Convert soft-deletes a team: the status flips to converted and the record
// is archived, leaving it visible to history-aware reads only. All its
// participants must be re-attached elsewhere beforehand.
func (r *TeamRepository) Convert(team *model.Team, mark memdb.ArchiveMark) error {
	team.Status = model.StatusConverted
	return r.db.Archive(model.TeamType, team, mark)
}

// List returns teams ordered by memdb PK iteration. Archived records are
// skipped unless showArchived is set.
func (r *TeamRepository) List(showArchived bool) ([]*model.Team, error) {
	iter, err := r.db.Get(model.TeamType, memdb.PK)
	if err != nil {
		return nil, err
	}
	list := []*model.Team{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		team := raw.(*model.Team)
		if showArchived || team.NotArchived() {
			list = append(list, team)
		}
	}
	return list, nil
}

func (r *TeamRepository) ListIDs(showArchived bool) ([]model.TeamUUID, error) {
	teams, err := r.List(showArchived)
	if err != nil {
		return nil, err
	}
	ids := make([]model.TeamUUID, 0, len(teams))
	for _, team := range teams {
		ids = append(ids, team.UUID)
	}
	return ids, nil
}

func (r *TeamRepository) Iter(action func(*model.Team) (bool, error)) error {
	iter, err := r.db.Get(model.TeamType, memdb.PK)
	if err != nil {
		return err
	}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		next, err := action(raw.(*model.Team))
		if err != nil {
			return err
		}
		if !next {
			break
		}
	}
	return nil
}

func (r *TeamRepository) Sync(rec io.Record) error {
	team := &model.Team{}
	if err := json.Unmarshal(rec.Data, team); err != nil {
		return fmt.Errorf("unmarshalling team %q: %w", rec.ObjID, err)
	}
	if rec.Deleted {
		return r.db.Txn.Txn.Delete(model.TeamType, team)
	}
	return r.db.Txn.Txn.Insert(model.TeamType, team)
}
