package model

import (
	"github.com/regdesk/regdesk/memdb"
)

const ParticipantType = "participant" // also, memdb schema name

type ParticipantRole string

const (
	RoleLeader ParticipantRole = "leader"
	RoleMember ParticipantRole = "member"
)

// Participant is one named person, attached to exactly one team at a time.
// A team-up reassigns TeamUUID and Role; RegistrationSource keeps the
// original provenance forever.
type Participant struct {
	UUID    ParticipantUUID `json:"uuid"` // PK
	Version string          `json:"resource_version"`

	TeamUUID TeamUUID `json:"team_uuid"`

	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Profile string `json:"profile"`

	Role               ParticipantRole    `json:"role"`
	RegistrationSource RegistrationSource `json:"original_registration_source"`

	CreatedAt UnixTime `json:"created_at"`
	UpdatedAt UnixTime `json:"updated_at"`

	memdb.ArchiveMark
}

func (p *Participant) ObjType() string {
	return ParticipantType
}

func (p *Participant) ObjId() string {
	return p.UUID
}
