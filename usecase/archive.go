package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/regdesk/regdesk/io"
	"github.com/regdesk/regdesk/model"
	"github.com/regdesk/regdesk/repo"
)

// ArchiveExtract is what the offline archiver pulls out of the store: the
// converted teams with any participants still attached to them, plus a
// compacted snapshot of everything that stays.
type ArchiveExtract struct {
	Archived []io.Record
	Kept     []io.Record
}

func makeRecord(obj io.MemoryStorableObject) (io.Record, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return io.Record{}, fmt.Errorf("marshalling %s %q: %w", obj.ObjType(), obj.ObjId(), err)
	}
	return io.Record{Table: obj.ObjType(), ObjID: obj.ObjId(), Data: data}, nil
}

// ExtractConverted splits the current store contents into converted teams
// (with their leftover participants) and the records a rewritten journal
// keeps. Read-only, the live store is never touched.
func (s *Service) ExtractConverted() (ArchiveExtract, error) {
	txn := s.store.Txn(false)
	defer txn.Abort()

	teamsRepo := repo.NewTeamRepository(txn)
	participantsRepo := repo.NewParticipantRepository(txn)

	teams, err := teamsRepo.List(true)
	if err != nil {
		return ArchiveExtract{}, err
	}

	var extract ArchiveExtract
	convertedTeams := map[model.TeamUUID]struct{}{}
	for _, team := range teams {
		record, err := makeRecord(team)
		if err != nil {
			return ArchiveExtract{}, err
		}
		if team.Status == model.StatusConverted {
			convertedTeams[team.UUID] = struct{}{}
			extract.Archived = append(extract.Archived, record)
		} else {
			extract.Kept = append(extract.Kept, record)
		}
	}

	err = participantsRepo.Iter(func(participant *model.Participant) (bool, error) {
		record, err := makeRecord(participant)
		if err != nil {
			return false, err
		}
		if _, converted := convertedTeams[participant.TeamUUID]; converted {
			extract.Archived = append(extract.Archived, record)
		} else {
			extract.Kept = append(extract.Kept, record)
		}
		return true, nil
	})
	if err != nil {
		return ArchiveExtract{}, err
	}

	counter, err := repo.NewSeatCounterRepository(txn).Get()
	if err != nil {
		return ArchiveExtract{}, err
	}
	if counter != nil {
		record, err := makeRecord(counter)
		if err != nil {
			return ArchiveExtract{}, err
		}
		extract.Kept = append(extract.Kept, record)
	}

	return extract, nil
}
