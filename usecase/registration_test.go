package usecase

import (
	"fmt"
	"testing"

	log "github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/regdesk/regdesk/io"
	"github.com/regdesk/regdesk/model"
	"github.com/regdesk/regdesk/repo"
)

func testService(t *testing.T) *Service {
	return testServiceWithJournal(t, nil)
}

func testServiceWithJournal(t *testing.T, journal io.Journal) *Service {
	schema, err := repo.GetSchema()
	require.NoError(t, err)
	store, err := io.NewMemoryStore(schema, journal, log.NewNullLogger())
	require.NoError(t, err)
	return NewService(store, io.NewClock(), log.NewNullLogger())
}

type brokenJournal struct{}

func (brokenJournal) Append(...io.Record) error         { return fmt.Errorf("journal is gone") }
func (brokenJournal) Replay(func(io.Record) error) error { return nil }

func Test_CreateIndividualRegistration(t *testing.T) {
	service := testService(t)

	teamUUID, err := service.CreateIndividualRegistration(IndividualRegistrationInput{
		Name:    "  Alice  ",
		Email:   "a@x.com",
		Phone:   "555-0100",
		Profile: "",
		Notes:   "late arrival",
	})
	require.NoError(t, err)
	require.NotEmpty(t, teamUUID)

	teams, err := service.ListTeams(ViewIndividuals)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	team := teams[0]
	require.Equal(t, teamUUID, team.UUID)
	require.Equal(t, model.SourceIndividualForm, team.Source)
	require.Equal(t, "Alice", team.Name)
	require.Equal(t, "Alice", team.ContactName)
	require.Equal(t, "a@x.com", team.ContactEmail)
	require.False(t, team.AttendanceMarked)
	require.Nil(t, team.SeatNumber)
	require.Nil(t, team.ContactProfile)

	require.Len(t, team.Participants, 1)
	leader := team.Participants[0]
	require.Equal(t, model.RoleLeader, leader.Role)
	require.Equal(t, team.ContactName, leader.Name)
	require.Equal(t, team.ContactEmail, leader.Email)
	require.Equal(t, model.SourceIndividualForm, leader.OriginalRegistrationSource)
	require.Equal(t, team.CreatedAt, leader.CreatedAt)
}

func Test_CreateIndividualRegistration_Validation(t *testing.T) {
	service := testService(t)

	cases := map[string]IndividualRegistrationInput{
		"missing name":    {Email: "a@x.com"},
		"blank name":      {Name: "   ", Email: "a@x.com"},
		"missing email":   {Name: "Alice"},
		"malformed email": {Name: "Alice", Email: "not-an-email"},
		"tld-less email":  {Name: "Alice", Email: "a@x"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := service.CreateIndividualRegistration(input)
			require.ErrorIs(t, err, model.ErrInvalidArg)
		})
	}

	teams, err := service.ListTeams(ViewAll)
	require.NoError(t, err)
	require.Empty(t, teams)
}

func Test_CreateIndividualRegistration_FailedCommitWritesNothing(t *testing.T) {
	service := testServiceWithJournal(t, brokenJournal{})

	_, err := service.CreateIndividualRegistration(IndividualRegistrationInput{
		Name:  "Alice",
		Email: "a@x.com",
	})
	require.Error(t, err)

	teams, listErr := service.ListTeams(ViewAll)
	require.NoError(t, listErr)
	require.Empty(t, teams)
}

func Test_CreateTeamRegistration(t *testing.T) {
	service := testService(t)

	teamUUID, err := service.CreateTeamRegistration(TeamRegistrationInput{
		TeamName: "Pair",
		Leader:   PersonInput{Name: "Bob", Email: "b@x.com", Phone: "555-0200"},
		Members: []PersonInput{
			{Name: "Carol", Email: "c@x.com"},
			{}, // no fields, dropped
			{Phone: "555-0300"}, // kept, one non-empty field is enough
		},
		Notes: "arrives together",
	})
	require.NoError(t, err)

	teams, err := service.ListTeams(ViewTeams)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	team := teams[0]
	require.Equal(t, teamUUID, team.UUID)
	require.Equal(t, model.SourceTeamForm, team.Source)
	require.Equal(t, "Pair", team.Name)
	require.Equal(t, "Bob", team.ContactName)

	require.Len(t, team.Participants, 3)
	require.Equal(t, model.RoleLeader, team.Participants[0].Role)
	require.Equal(t, "Bob", team.Participants[0].Name)
	require.Equal(t, model.RoleMember, team.Participants[1].Role)
	require.Equal(t, model.RoleMember, team.Participants[2].Role)
}

func Test_CreateTeamRegistration_ExtraMembersDropped(t *testing.T) {
	service := testService(t)

	teamUUID, err := service.CreateTeamRegistration(TeamRegistrationInput{
		TeamName: "Crowd",
		Leader:   PersonInput{Name: "Bob", Email: "b@x.com"},
		Members: []PersonInput{
			{Name: "M1"}, {Name: "M2"}, {Name: "M3"}, {Name: "M4"}, {Name: "M5"},
		},
	})
	require.NoError(t, err)

	teams, err := service.ListTeams(ViewTeams)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	require.Equal(t, teamUUID, teams[0].UUID)
	// leader + at most 3 members
	require.Len(t, teams[0].Participants, MaxTeamUpSelection)
}

func Test_CreateTeamRegistration_Validation(t *testing.T) {
	service := testService(t)

	cases := map[string]TeamRegistrationInput{
		"missing team name":    {Leader: PersonInput{Name: "Bob", Email: "b@x.com"}},
		"missing leader name":  {TeamName: "Pair", Leader: PersonInput{Email: "b@x.com"}},
		"missing leader email": {TeamName: "Pair", Leader: PersonInput{Name: "Bob"}},
		"bad leader email":     {TeamName: "Pair", Leader: PersonInput{Name: "Bob", Email: "bob"}},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := service.CreateTeamRegistration(input)
			require.ErrorIs(t, err, model.ErrInvalidArg)
		})
	}
}
