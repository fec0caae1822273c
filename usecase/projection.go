package usecase

import (
	"fmt"
	"sort"

	"github.com/regdesk/regdesk/model"
	"github.com/regdesk/regdesk/repo"
)

// View selects which registrations a listing or export covers.
type View string

const (
	ViewIndividuals View = "individuals"
	ViewTeams       View = "teams"
	ViewAll         View = "all"
)

func ParseView(raw string) (View, error) {
	switch View(sanitizeString(raw)) {
	case "":
		return ViewAll, nil
	case ViewIndividuals:
		return ViewIndividuals, nil
	case ViewTeams:
		return ViewTeams, nil
	case ViewAll:
		return ViewAll, nil
	default:
		return "", fmt.Errorf("%w: unknown view %q", model.ErrInvalidArg, raw)
	}
}

func (v View) matches(team *model.Team) bool {
	switch v {
	case ViewIndividuals:
		return team.Source == model.SourceIndividualForm
	case ViewTeams:
		return team.Source != model.SourceIndividualForm
	default:
		return true
	}
}

type ParticipantView struct {
	UUID                       model.ParticipantUUID    `json:"id"`
	Name                       string                   `json:"name"`
	Email                      string                   `json:"email"`
	Phone                      *string                  `json:"phone"`
	Profile                    *string                  `json:"profile"`
	Role                       model.ParticipantRole    `json:"role"`
	OriginalRegistrationSource model.RegistrationSource `json:"original_registration_source"`
	CreatedAt                  string                   `json:"created_at"`
	UpdatedAt                  string                   `json:"updated_at"`
}

type TeamView struct {
	UUID             model.TeamUUID           `json:"id"`
	Name             string                   `json:"name"`
	Source           model.RegistrationSource `json:"source"`
	Status           model.TeamStatus         `json:"status"`
	ContactName      string                   `json:"contact_name"`
	ContactEmail     string                   `json:"contact_email"`
	ContactPhone     *string                  `json:"contact_phone"`
	ContactProfile   *string                  `json:"contact_profile"`
	AttendanceMarked bool                     `json:"attendance_marked"`
	SeatNumber       *string                  `json:"seat_number"`
	Notes            *string                  `json:"notes"`
	CreatedAt        string                   `json:"created_at"`
	UpdatedAt        string                   `json:"updated_at"`
	Participants     []ParticipantView        `json:"participants"`
}

// ListTeams returns the active teams of a view with their participants
// joined in, teams by creation time, participants leader-first then by
// creation time. Converted teams never appear.
func (s *Service) ListTeams(view View) ([]TeamView, error) {
	txn := s.store.Txn(false)
	defer txn.Abort()

	teams, err := repo.NewTeamRepository(txn).List(false)
	if err != nil {
		return nil, err
	}
	participantsRepo := repo.NewParticipantRepository(txn)

	filtered := make([]*model.Team, 0, len(teams))
	for _, team := range teams {
		if team.IsActive() && view.matches(team) {
			filtered = append(filtered, team)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt < filtered[j].CreatedAt
	})

	result := []TeamView{}
	for _, team := range filtered {
		participants, err := participantsRepo.ListByTeam(team.UUID)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(participants, func(i, j int) bool {
			if participants[i].Role != participants[j].Role {
				return participants[i].Role == model.RoleLeader
			}
			return participants[i].CreatedAt < participants[j].CreatedAt
		})
		result = append(result, makeTeamView(team, participants))
	}
	return result, nil
}

func makeTeamView(team *model.Team, participants []*model.Participant) TeamView {
	view := TeamView{
		UUID:             team.UUID,
		Name:             team.Name,
		Source:           team.Source,
		Status:           team.Status,
		ContactName:      team.ContactName,
		ContactEmail:     team.ContactEmail,
		ContactPhone:     optional(team.ContactPhone),
		ContactProfile:   optional(team.ContactProfile),
		AttendanceMarked: team.AttendanceMarked,
		SeatNumber:       optional(team.SeatNumber),
		Notes:            optional(team.Notes),
		CreatedAt:        isoTime(team.CreatedAt),
		UpdatedAt:        isoTime(team.UpdatedAt),
		Participants:     []ParticipantView{},
	}
	for _, participant := range participants {
		view.Participants = append(view.Participants, ParticipantView{
			UUID:                       participant.UUID,
			Name:                       participant.Name,
			Email:                      participant.Email,
			Phone:                      optional(participant.Phone),
			Profile:                    optional(participant.Profile),
			Role:                       participant.Role,
			OriginalRegistrationSource: participant.RegistrationSource,
			CreatedAt:                  isoTime(participant.CreatedAt),
			UpdatedAt:                  isoTime(participant.UpdatedAt),
		})
	}
	return view
}
