package model

import (
	"github.com/regdesk/regdesk/memdb"
)

const TeamType = "team" // also, memdb schema name

// RegistrationSource records how a registration entered the system. It is
// immutable after creation.
type RegistrationSource string

const (
	SourceIndividualForm RegistrationSource = "individual_form"
	SourceTeamForm       RegistrationSource = "team_form"
	SourceAdminTeamUp    RegistrationSource = "admin_team_up"
)

func (s RegistrationSource) Valid() bool {
	switch s {
	case SourceIndividualForm, SourceTeamForm, SourceAdminTeamUp:
		return true
	}
	return false
}

// TeamStatus is the team lifecycle state. The only transition is
// active → converted, performed by a team-up; it is never reversed.
type TeamStatus string

const (
	StatusActive    TeamStatus = "active"
	StatusConverted TeamStatus = "converted"
)

// Team is one registration unit eligible for a single check-in: a solo
// entrant, a self-registered team, or a team merged by an admin.
type Team struct {
	UUID    TeamUUID `json:"uuid"` // PK
	Version string   `json:"resource_version"`

	Name   string             `json:"name"`
	Source RegistrationSource `json:"source"`
	Status TeamStatus         `json:"status"`

	// denormalized snapshot of the current leader
	ContactName    string `json:"contact_name"`
	ContactEmail   string `json:"contact_email"`
	ContactPhone   string `json:"contact_phone"`
	ContactProfile string `json:"contact_profile"`

	// AttendanceMarked==true iff SeatNumber is non-empty
	AttendanceMarked bool   `json:"attendance_marked"`
	SeatNumber       string `json:"seat_number"`

	Notes string `json:"notes"`

	CreatedAt UnixTime `json:"created_at"`
	UpdatedAt UnixTime `json:"updated_at"`

	memdb.ArchiveMark
}

func (t *Team) IsActive() bool {
	return t.Status == StatusActive
}

func (t *Team) ObjType() string {
	return TeamType
}

func (t *Team) ObjId() string {
	return t.UUID
}
