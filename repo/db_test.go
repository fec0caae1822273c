package repo

import (
	"testing"

	log "github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/regdesk/regdesk/io"
	"github.com/regdesk/regdesk/memdb"
	"github.com/regdesk/regdesk/model"
	"github.com/regdesk/regdesk/uuid"
)

func testStore(t *testing.T) *io.MemoryStore {
	schema, err := GetSchema()
	require.NoError(t, err)
	store, err := io.NewMemoryStore(schema, nil, log.NewNullLogger())
	require.NoError(t, err)
	return store
}

func sampleTeam(source model.RegistrationSource) *model.Team {
	return &model.Team{
		UUID:         uuid.New(),
		Version:      NewResourceVersion(),
		Name:         "North Ridge",
		Source:       source,
		Status:       model.StatusActive,
		ContactName:  "Ayo Balogun",
		ContactEmail: "ayo@example.com",
	}
}

func sampleParticipant(teamUUID model.TeamUUID, role model.ParticipantRole) *model.Participant {
	return &model.Participant{
		UUID:               uuid.New(),
		Version:            NewResourceVersion(),
		TeamUUID:           teamUUID,
		Name:               "Ayo Balogun",
		Email:              "ayo@example.com",
		Role:               role,
		RegistrationSource: model.SourceTeamForm,
	}
}

func Test_GetSchema(t *testing.T) {
	schema, err := GetSchema()

	require.NoError(t, err)
	require.NoError(t, schema.Validate())
}

func Test_TeamCreateAndGet(t *testing.T) {
	store := testStore(t)
	txn := store.Txn(true)
	team := sampleTeam(model.SourceTeamForm)

	err := NewTeamRepository(txn).Create(team)
	require.NoError(t, err)
	require.NoError(t, txn.Commit())

	readTxn := store.Txn(false)
	got, err := NewTeamRepository(readTxn).GetByID(team.UUID)
	require.NoError(t, err)
	require.Equal(t, team.Name, got.Name)
}

func Test_TeamGetNotFound(t *testing.T) {
	store := testStore(t)
	txn := store.Txn(false)

	_, err := NewTeamRepository(txn).GetByID(uuid.New())

	require.ErrorIs(t, err, model.ErrNotFound)
}

func Test_GetByIDMalformedID(t *testing.T) {
	store := testStore(t)
	txn := store.Txn(false)

	_, err := NewTeamRepository(txn).GetByID("not-a-uuid")
	require.ErrorIs(t, err, model.ErrNotFound)

	_, err = NewParticipantRepository(txn).GetByID("not-a-uuid")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func Test_ParticipantRequiresExistingTeam(t *testing.T) {
	store := testStore(t)
	txn := store.Txn(true)

	err := NewParticipantRepository(txn).Create(sampleParticipant(uuid.New(), model.RoleLeader))

	require.ErrorIs(t, err, memdb.ErrForeignKey)
}

func Test_ConvertFailsWithActiveParticipants(t *testing.T) {
	store := testStore(t)
	txn := store.Txn(true)
	teamRepo := NewTeamRepository(txn)
	team := sampleTeam(model.SourceIndividualForm)
	require.NoError(t, teamRepo.Create(team))
	require.NoError(t, NewParticipantRepository(txn).Create(sampleParticipant(team.UUID, model.RoleLeader)))

	err := teamRepo.Convert(team, memdb.NewArchiveMark())

	require.ErrorIs(t, err, memdb.ErrNotEmptyRelation)
}

func Test_ConvertArchivesTeam(t *testing.T) {
	store := testStore(t)
	txn := store.Txn(true)
	teamRepo := NewTeamRepository(txn)
	team := sampleTeam(model.SourceIndividualForm)
	require.NoError(t, teamRepo.Create(team))

	err := teamRepo.Convert(team, memdb.NewArchiveMark())
	require.NoError(t, err)
	require.NoError(t, txn.Commit())

	readTxn := store.Txn(false)
	got, err := NewTeamRepository(readTxn).GetByID(team.UUID)
	require.NoError(t, err)
	require.Equal(t, model.StatusConverted, got.Status)
	require.True(t, got.Archived())

	active, err := NewTeamRepository(readTxn).List(false)
	require.NoError(t, err)
	require.Empty(t, active)
}

func Test_SeatCounterIncrement(t *testing.T) {
	store := testStore(t)
	txn := store.Txn(true)
	counters := NewSeatCounterRepository(txn)

	first, err := counters.Increment(1)
	require.NoError(t, err)
	second, err := counters.Increment(2)
	require.NoError(t, err)
	require.NoError(t, txn.Commit())

	require.Equal(t, int64(1), first)
	require.Equal(t, int64(2), second)

	current, err := NewSeatCounterRepository(store.Txn(false)).Current()
	require.NoError(t, err)
	require.Equal(t, int64(2), current)
}

func Test_JournalRestoreRebuildsState(t *testing.T) {
	path := t.TempDir() + "/journal.jsonl"
	journal, err := io.OpenFileJournal(path)
	require.NoError(t, err)

	schema, err := GetSchema()
	require.NoError(t, err)
	store, err := io.NewMemoryStore(schema, journal, log.NewNullLogger())
	require.NoError(t, err)

	team := sampleTeam(model.SourceTeamForm)
	participant := sampleParticipant(team.UUID, model.RoleLeader)
	txn := store.Txn(true)
	require.NoError(t, NewTeamRepository(txn).Create(team))
	require.NoError(t, NewParticipantRepository(txn).Create(participant))
	require.NoError(t, txn.Commit())
	require.NoError(t, journal.Close())

	reopened, err := io.OpenFileJournal(path)
	require.NoError(t, err)
	restored, err := io.NewMemoryStore(schema, reopened, log.NewNullLogger())
	require.NoError(t, err)
	require.NoError(t, restored.Restore(RestoreHandlers()))

	readTxn := restored.Txn(false)
	gotTeam, err := NewTeamRepository(readTxn).GetByID(team.UUID)
	require.NoError(t, err)
	require.Equal(t, team.Name, gotTeam.Name)
	members, err := NewParticipantRepository(readTxn).ListByTeam(team.UUID)
	require.NoError(t, err)
	require.Len(t, members, 1)
}
