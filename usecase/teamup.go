package usecase

import (
	"errors"
	"fmt"

	"github.com/regdesk/regdesk/io"
	"github.com/regdesk/regdesk/memdb"
	"github.com/regdesk/regdesk/model"
	"github.com/regdesk/regdesk/repo"
	"github.com/regdesk/regdesk/uuid"
)

type TeamUpInput struct {
	ParticipantUUIDs []model.ParticipantUUID
	TeamName         string
	// ContactParticipantUUID designates the leader. When absent or not among
	// ParticipantUUIDs, the first listed participant leads.
	ContactParticipantUUID model.ParticipantUUID
	Notes                  string
}

// TeamUpIndividuals merges 2..MaxTeamUpSelection solo participants into one
// new team and retires their original solo teams. Eligibility of every source
// team is re-checked inside the transaction, so two team-ups racing over
// overlapping selections cannot both commit.
func (s *Service) TeamUpIndividuals(in TeamUpInput) (model.TeamUUID, error) {
	if len(in.ParticipantUUIDs) < 2 {
		return "", fmt.Errorf("%w: at least two participants are required to form a team", model.ErrInvalidArg)
	}
	if len(in.ParticipantUUIDs) > MaxTeamUpSelection {
		return "", fmt.Errorf("%w: you can only combine up to %d solo participants", model.ErrInvalidArg, MaxTeamUpSelection)
	}
	seen := map[model.ParticipantUUID]struct{}{}
	for _, id := range in.ParticipantUUIDs {
		if _, doubled := seen[id]; doubled {
			return "", fmt.Errorf("%w: participant ids must be distinct", model.ErrInvalidArg)
		}
		seen[id] = struct{}{}
	}
	teamName := sanitizeString(in.TeamName)
	if teamName == "" {
		return "", fmt.Errorf("%w: team name is required", model.ErrInvalidArg)
	}
	notes := sanitizeString(in.Notes)

	var newTeamUUID model.TeamUUID
	err := io.RunTransaction(s.store, func(txn *io.MemoryStoreTxn) error {
		participantsRepo := repo.NewParticipantRepository(txn)
		teamsRepo := repo.NewTeamRepository(txn)

		selected := make([]*model.Participant, 0, len(in.ParticipantUUIDs))
		for _, id := range in.ParticipantUUIDs {
			participant, err := participantsRepo.GetByID(id)
			if errors.Is(err, model.ErrNotFound) || (err == nil && participant.Archived()) {
				return fmt.Errorf("%w: one or more participants could not be found", model.ErrNotFound)
			}
			if err != nil {
				return err
			}
			selected = append(selected, participant)
		}

		sourceTeams := make([]*model.Team, 0, len(selected))
		sourceSeen := map[model.TeamUUID]struct{}{}
		for _, participant := range selected {
			if _, done := sourceSeen[participant.TeamUUID]; done {
				continue
			}
			sourceSeen[participant.TeamUUID] = struct{}{}
			team, err := teamsRepo.GetByID(participant.TeamUUID)
			if errors.Is(err, model.ErrNotFound) {
				return fmt.Errorf("%w: original team not found for a participant", model.ErrNotFound)
			}
			if err != nil {
				return err
			}
			if team.Archived() || !team.IsActive() || team.Source != model.SourceIndividualForm {
				return fmt.Errorf("%w: only active individual registrations can be teamed up", model.ErrNotTeamable)
			}
			sourceTeams = append(sourceTeams, team)
		}

		leader := selected[0]
		for _, participant := range selected {
			if participant.UUID == in.ContactParticipantUUID {
				leader = participant
				break
			}
		}

		now := s.clock.Now()
		newTeam := &model.Team{
			UUID:           uuid.New(),
			Version:        repo.NewResourceVersion(),
			Name:           teamName,
			Source:         model.SourceAdminTeamUp,
			Status:         model.StatusActive,
			ContactName:    leader.Name,
			ContactEmail:   leader.Email,
			ContactPhone:   leader.Phone,
			ContactProfile: leader.Profile,
			Notes:          notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := teamsRepo.Create(newTeam); err != nil {
			return err
		}

		for _, participant := range selected {
			moved := *participant
			moved.TeamUUID = newTeam.UUID
			moved.Role = model.RoleMember
			if participant.UUID == leader.UUID {
				moved.Role = model.RoleLeader
			}
			moved.Version = repo.NewResourceVersion()
			moved.UpdatedAt = now
			if err := participantsRepo.Update(&moved); err != nil {
				return err
			}
		}

		mark := memdb.NewArchiveMark()
		for _, team := range sourceTeams {
			converted := *team
			converted.Version = repo.NewResourceVersion()
			converted.UpdatedAt = now
			if err := teamsRepo.Convert(&converted, mark); err != nil {
				return err
			}
		}

		newTeamUUID = newTeam.UUID
		return nil
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("team-up committed", "team", newTeamUUID, "participants", len(in.ParticipantUUIDs))
	return newTeamUUID, nil
}
