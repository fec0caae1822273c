package usecase

import (
	"fmt"

	"github.com/regdesk/regdesk/io"
	"github.com/regdesk/regdesk/model"
	"github.com/regdesk/regdesk/repo"
	"github.com/regdesk/regdesk/uuid"
)

type PersonInput struct {
	Name    string
	Email   string
	Phone   string
	Profile string
}

func (p PersonInput) sanitized() PersonInput {
	return PersonInput{
		Name:    sanitizeString(p.Name),
		Email:   sanitizeString(p.Email),
		Phone:   sanitizeString(p.Phone),
		Profile: sanitizeString(p.Profile),
	}
}

func (p PersonInput) empty() bool {
	return p.Name == "" && p.Email == "" && p.Phone == "" && p.Profile == ""
}

type IndividualRegistrationInput struct {
	Name    string
	Email   string
	Phone   string
	Profile string
	Notes   string
}

type TeamRegistrationInput struct {
	TeamName string
	Leader   PersonInput
	Members  []PersonInput
	Notes    string
}

// CreateIndividualRegistration registers one solo entrant: a single-member
// team holding the entrant as its leader, created atomically.
func (s *Service) CreateIndividualRegistration(in IndividualRegistrationInput) (model.TeamUUID, error) {
	name := sanitizeString(in.Name)
	email := sanitizeString(in.Email)
	if name == "" || email == "" {
		return "", fmt.Errorf("%w: name and email are required", model.ErrInvalidArg)
	}
	if !validEmail(email) {
		return "", fmt.Errorf("%w: a valid email is required", model.ErrInvalidArg)
	}
	phone := sanitizeString(in.Phone)
	profile := sanitizeString(in.Profile)
	notes := sanitizeString(in.Notes)

	var teamUUID model.TeamUUID
	err := io.RunTransaction(s.store, func(txn *io.MemoryStoreTxn) error {
		now := s.clock.Now()
		team := &model.Team{
			UUID:           uuid.New(),
			Version:        repo.NewResourceVersion(),
			Name:           name,
			Source:         model.SourceIndividualForm,
			Status:         model.StatusActive,
			ContactName:    name,
			ContactEmail:   email,
			ContactPhone:   phone,
			ContactProfile: profile,
			Notes:          notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := repo.NewTeamRepository(txn).Create(team); err != nil {
			return err
		}
		leader := &model.Participant{
			UUID:               uuid.New(),
			Version:            repo.NewResourceVersion(),
			TeamUUID:           team.UUID,
			Name:               name,
			Email:              email,
			Phone:              phone,
			Profile:            profile,
			Role:               model.RoleLeader,
			RegistrationSource: model.SourceIndividualForm,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := repo.NewParticipantRepository(txn).Create(leader); err != nil {
			return err
		}
		teamUUID = team.UUID
		return nil
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("individual registration created", "team", teamUUID)
	return teamUUID, nil
}

// CreateTeamRegistration registers a pre-formed team: the leader plus up to
// MaxTeamUpSelection-1 members. Extra member entries are silently dropped,
// entries with no non-empty field are not persisted at all.
func (s *Service) CreateTeamRegistration(in TeamRegistrationInput) (model.TeamUUID, error) {
	teamName := sanitizeString(in.TeamName)
	if teamName == "" {
		return "", fmt.Errorf("%w: team name is required", model.ErrInvalidArg)
	}
	leader := in.Leader.sanitized()
	if leader.Name == "" || leader.Email == "" {
		return "", fmt.Errorf("%w: leader name and email are required", model.ErrInvalidArg)
	}
	if !validEmail(leader.Email) {
		return "", fmt.Errorf("%w: a valid leader email is required", model.ErrInvalidArg)
	}
	notes := sanitizeString(in.Notes)

	members := make([]PersonInput, 0, MaxTeamUpSelection-1)
	for _, member := range in.Members {
		if len(members) == MaxTeamUpSelection-1 {
			break
		}
		member = member.sanitized()
		if member.empty() {
			continue
		}
		members = append(members, member)
	}

	var teamUUID model.TeamUUID
	err := io.RunTransaction(s.store, func(txn *io.MemoryStoreTxn) error {
		now := s.clock.Now()
		team := &model.Team{
			UUID:           uuid.New(),
			Version:        repo.NewResourceVersion(),
			Name:           teamName,
			Source:         model.SourceTeamForm,
			Status:         model.StatusActive,
			ContactName:    leader.Name,
			ContactEmail:   leader.Email,
			ContactPhone:   leader.Phone,
			ContactProfile: leader.Profile,
			Notes:          notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := repo.NewTeamRepository(txn).Create(team); err != nil {
			return err
		}
		participants := repo.NewParticipantRepository(txn)
		newParticipant := func(person PersonInput, role model.ParticipantRole) *model.Participant {
			return &model.Participant{
				UUID:               uuid.New(),
				Version:            repo.NewResourceVersion(),
				TeamUUID:           team.UUID,
				Name:               person.Name,
				Email:              person.Email,
				Phone:              person.Phone,
				Profile:            person.Profile,
				Role:               role,
				RegistrationSource: model.SourceTeamForm,
				CreatedAt:          now,
				UpdatedAt:          now,
			}
		}
		if err := participants.Create(newParticipant(leader, model.RoleLeader)); err != nil {
			return err
		}
		for _, member := range members {
			if err := participants.Create(newParticipant(member, model.RoleMember)); err != nil {
				return err
			}
		}
		teamUUID = team.UUID
		return nil
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("team registration created", "team", teamUUID, "members", len(members))
	return teamUUID, nil
}
