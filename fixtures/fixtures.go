// Package fixtures provides fixed-uuid model objects shared by tests.
package fixtures

import (
	"github.com/regdesk/regdesk/model"
)

const (
	TeamSolo1UUID = "00000001-0000-4000-8000-000000000001"
	TeamSolo2UUID = "00000001-0000-4000-8000-000000000002"
	TeamSquadUUID = "00000001-0000-4000-8000-000000000003"

	ParticipantSolo1UUID       = "00000002-0000-4000-8000-000000000001"
	ParticipantSolo2UUID       = "00000002-0000-4000-8000-000000000002"
	ParticipantSquadLeaderUUID = "00000002-0000-4000-8000-000000000003"
	ParticipantSquadMemberUUID = "00000002-0000-4000-8000-000000000004"
)

func TeamSolo1(ts model.UnixTime) model.Team {
	return model.Team{
		UUID:         TeamSolo1UUID,
		Version:      "v1",
		Name:         "Dana Iwu",
		Source:       model.SourceIndividualForm,
		Status:       model.StatusActive,
		ContactName:  "Dana Iwu",
		ContactEmail: "dana@example.com",
		ContactPhone: "555-0101",
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}

func TeamSolo2(ts model.UnixTime) model.Team {
	return model.Team{
		UUID:         TeamSolo2UUID,
		Version:      "v1",
		Name:         "Miro Sato",
		Source:       model.SourceIndividualForm,
		Status:       model.StatusActive,
		ContactName:  "Miro Sato",
		ContactEmail: "miro@example.com",
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}

func TeamSquad(ts model.UnixTime) model.Team {
	return model.Team{
		UUID:         TeamSquadUUID,
		Version:      "v1",
		Name:         "Night Owls",
		Source:       model.SourceTeamForm,
		Status:       model.StatusActive,
		ContactName:  "Lena Ortiz",
		ContactEmail: "lena@example.com",
		Notes:        "prefers late slot",
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}

func ParticipantSolo1(ts model.UnixTime) model.Participant {
	return model.Participant{
		UUID:               ParticipantSolo1UUID,
		Version:            "v1",
		TeamUUID:           TeamSolo1UUID,
		Name:               "Dana Iwu",
		Email:              "dana@example.com",
		Phone:              "555-0101",
		Role:               model.RoleLeader,
		RegistrationSource: model.SourceIndividualForm,
		CreatedAt:          ts,
		UpdatedAt:          ts,
	}
}

func ParticipantSolo2(ts model.UnixTime) model.Participant {
	return model.Participant{
		UUID:               ParticipantSolo2UUID,
		Version:            "v1",
		TeamUUID:           TeamSolo2UUID,
		Name:               "Miro Sato",
		Email:              "miro@example.com",
		Role:               model.RoleLeader,
		RegistrationSource: model.SourceIndividualForm,
		CreatedAt:          ts,
		UpdatedAt:          ts,
	}
}

func ParticipantSquadLeader(ts model.UnixTime) model.Participant {
	return model.Participant{
		UUID:               ParticipantSquadLeaderUUID,
		Version:            "v1",
		TeamUUID:           TeamSquadUUID,
		Name:               "Lena Ortiz",
		Email:              "lena@example.com",
		Role:               model.RoleLeader,
		RegistrationSource: model.SourceTeamForm,
		CreatedAt:          ts,
		UpdatedAt:          ts,
	}
}

func ParticipantSquadMember(ts model.UnixTime) model.Participant {
	return model.Participant{
		UUID:               ParticipantSquadMemberUUID,
		Version:            "v1",
		TeamUUID:           TeamSquadUUID,
		Name:               "Ravi Puri",
		Email:              "ravi@example.com",
		Role:               model.RoleMember,
		RegistrationSource: model.SourceTeamForm,
		CreatedAt:          ts,
		UpdatedAt:          ts,
	}
}
