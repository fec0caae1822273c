package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/regdesk/regdesk/model"
	"github.com/regdesk/regdesk/uuid"
)

// registerSolo creates one individual registration and returns its team and
// leader-participant uuids.
func registerSolo(t *testing.T, service *Service, name, email string) (model.TeamUUID, model.ParticipantUUID) {
	t.Helper()
	teamUUID, err := service.CreateIndividualRegistration(IndividualRegistrationInput{Name: name, Email: email})
	require.NoError(t, err)

	teams, err := service.ListTeams(ViewIndividuals)
	require.NoError(t, err)
	for _, team := range teams {
		if team.UUID == teamUUID {
			require.Len(t, team.Participants, 1)
			return teamUUID, team.Participants[0].UUID
		}
	}
	t.Fatalf("team %s not listed", teamUUID)
	return "", ""
}

func Test_TeamUpIndividuals(t *testing.T) {
	service := testService(t)
	aliceTeam, alice := registerSolo(t, service, "Alice", "a@x.com")
	bobTeam, bob := registerSolo(t, service, "Bob", "b@x.com")

	newTeamUUID, err := service.TeamUpIndividuals(TeamUpInput{
		ParticipantUUIDs: []model.ParticipantUUID{alice, bob},
		TeamName:         "Pair",
	})
	require.NoError(t, err)
	require.NotEqual(t, aliceTeam, newTeamUUID)
	require.NotEqual(t, bobTeam, newTeamUUID)

	teams, err := service.ListTeams(ViewAll)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	merged := teams[0]
	require.Equal(t, newTeamUUID, merged.UUID)
	require.Equal(t, model.SourceAdminTeamUp, merged.Source)
	require.Equal(t, "Pair", merged.Name)
	// first listed participant leads by default
	require.Equal(t, "Alice", merged.ContactName)

	require.Len(t, merged.Participants, 2)
	leaders := 0
	for _, participant := range merged.Participants {
		if participant.Role == model.RoleLeader {
			leaders++
		}
		// provenance survives the move
		require.Equal(t, model.SourceIndividualForm, participant.OriginalRegistrationSource)
	}
	require.Equal(t, 1, leaders)
	require.Equal(t, model.RoleLeader, merged.Participants[0].Role)
	require.Equal(t, alice, merged.Participants[0].UUID)
}

func Test_TeamUpIndividuals_ExplicitContact(t *testing.T) {
	service := testService(t)
	_, alice := registerSolo(t, service, "Alice", "a@x.com")
	_, bob := registerSolo(t, service, "Bob", "b@x.com")

	newTeamUUID, err := service.TeamUpIndividuals(TeamUpInput{
		ParticipantUUIDs:       []model.ParticipantUUID{alice, bob},
		TeamName:               "Pair",
		ContactParticipantUUID: bob,
	})
	require.NoError(t, err)

	teams, err := service.ListTeams(ViewAll)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	require.Equal(t, newTeamUUID, teams[0].UUID)
	require.Equal(t, "Bob", teams[0].ContactName)
	require.Equal(t, bob, teams[0].Participants[0].UUID)
}

func Test_TeamUpIndividuals_UnknownContactFallsBackToFirst(t *testing.T) {
	service := testService(t)
	_, alice := registerSolo(t, service, "Alice", "a@x.com")
	_, bob := registerSolo(t, service, "Bob", "b@x.com")

	_, err := service.TeamUpIndividuals(TeamUpInput{
		ParticipantUUIDs:       []model.ParticipantUUID{alice, bob},
		TeamName:               "Pair",
		ContactParticipantUUID: uuid.New(), // not in the selection
	})
	require.NoError(t, err)

	teams, err := service.ListTeams(ViewAll)
	require.NoError(t, err)
	require.Equal(t, "Alice", teams[0].ContactName)
}

func Test_TeamUpIndividuals_Validation(t *testing.T) {
	service := testService(t)
	_, alice := registerSolo(t, service, "Alice", "a@x.com")
	_, bob := registerSolo(t, service, "Bob", "b@x.com")

	cases := map[string]TeamUpInput{
		"no participants":  {TeamName: "Pair"},
		"one participant":  {TeamName: "Pair", ParticipantUUIDs: []model.ParticipantUUID{alice}},
		"five participants": {TeamName: "Pair", ParticipantUUIDs: []model.ParticipantUUID{
			alice, bob, uuid.New(), uuid.New(), uuid.New(),
		}},
		"doubled ids":       {TeamName: "Pair", ParticipantUUIDs: []model.ParticipantUUID{alice, alice}},
		"missing team name": {ParticipantUUIDs: []model.ParticipantUUID{alice, bob}},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := service.TeamUpIndividuals(input)
			require.ErrorIs(t, err, model.ErrInvalidArg)
		})
	}

	// no partial effect: both solos still active
	teams, err := service.ListTeams(ViewIndividuals)
	require.NoError(t, err)
	require.Len(t, teams, 2)
}

func Test_TeamUpIndividuals_UnknownParticipant(t *testing.T) {
	service := testService(t)
	_, alice := registerSolo(t, service, "Alice", "a@x.com")

	_, err := service.TeamUpIndividuals(TeamUpInput{
		ParticipantUUIDs: []model.ParticipantUUID{alice, uuid.New()},
		TeamName:         "Pair",
	})

	require.ErrorIs(t, err, model.ErrNotFound)
}

func Test_TeamUpIndividuals_MalformedParticipantID(t *testing.T) {
	service := testService(t)
	_, alice := registerSolo(t, service, "Alice", "a@x.com")

	_, err := service.TeamUpIndividuals(TeamUpInput{
		ParticipantUUIDs: []model.ParticipantUUID{alice, "not-a-uuid"},
		TeamName:         "Pair",
	})

	require.ErrorIs(t, err, model.ErrNotFound)
}

func Test_TeamUpIndividuals_RejectsTeamFormParticipant(t *testing.T) {
	service := testService(t)
	_, alice := registerSolo(t, service, "Alice", "a@x.com")
	_, err := service.CreateTeamRegistration(TeamRegistrationInput{
		TeamName: "Squad",
		Leader:   PersonInput{Name: "Lena", Email: "l@x.com"},
	})
	require.NoError(t, err)
	teams, err := service.ListTeams(ViewTeams)
	require.NoError(t, err)
	lena := teams[0].Participants[0].UUID

	_, err = service.TeamUpIndividuals(TeamUpInput{
		ParticipantUUIDs: []model.ParticipantUUID{alice, lena},
		TeamName:         "Mixed",
	})

	require.ErrorIs(t, err, model.ErrNotTeamable)
}

func Test_TeamUpIndividuals_RejectsConvertedSource(t *testing.T) {
	service := testService(t)
	_, alice := registerSolo(t, service, "Alice", "a@x.com")
	_, bob := registerSolo(t, service, "Bob", "b@x.com")
	_, carol := registerSolo(t, service, "Carol", "c@x.com")

	_, err := service.TeamUpIndividuals(TeamUpInput{
		ParticipantUUIDs: []model.ParticipantUUID{alice, bob},
		TeamName:         "First",
	})
	require.NoError(t, err)

	// alice's solo team is converted now, and her current team is not an
	// individual registration either
	_, err = service.TeamUpIndividuals(TeamUpInput{
		ParticipantUUIDs: []model.ParticipantUUID{alice, carol},
		TeamName:         "Second",
	})

	require.ErrorIs(t, err, model.ErrNotTeamable)
}
