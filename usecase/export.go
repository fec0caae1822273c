package usecase

// exportHeader is fixed so exported files stay bit-stable across runs.
var exportHeader = []string{
	"Team ID",
	"Team Name",
	"Team Source",
	"Team Status",
	"Contact Name",
	"Contact Email",
	"Contact Phone",
	"Contact Profile",
	"Attendance Marked",
	"Seat / Room",
	"Participant Role",
	"Participant ID",
	"Participant Name",
	"Participant Email",
	"Participant Phone",
	"Participant Profile",
	"Participant Origin",
	"Team Notes",
	"Created At",
	"Updated At",
}

// ExportTeams flattens a view into one row per (team, participant) pair,
// header first. A team with no participants still yields one row with empty
// participant columns.
func (s *Service) ExportTeams(view View) ([][]string, error) {
	teams, err := s.ListTeams(view)
	if err != nil {
		return nil, err
	}

	rows := [][]string{exportHeader}
	for _, team := range teams {
		if len(team.Participants) == 0 {
			rows = append(rows, exportRow(team, nil))
			continue
		}
		for i := range team.Participants {
			rows = append(rows, exportRow(team, &team.Participants[i]))
		}
	}
	return rows, nil
}

func exportRow(team TeamView, participant *ParticipantView) []string {
	attendance := "No"
	if team.AttendanceMarked {
		attendance = "Yes"
	}
	row := []string{
		team.UUID,
		team.Name,
		string(team.Source),
		string(team.Status),
		team.ContactName,
		team.ContactEmail,
		deref(team.ContactPhone),
		deref(team.ContactProfile),
		attendance,
		deref(team.SeatNumber),
	}
	if participant != nil {
		row = append(row,
			string(participant.Role),
			participant.UUID,
			participant.Name,
			participant.Email,
			deref(participant.Phone),
			deref(participant.Profile),
			string(participant.OriginalRegistrationSource),
		)
	} else {
		row = append(row, "", "", "", "", "", "", "")
	}
	return append(row,
		deref(team.Notes),
		team.CreatedAt,
		team.UpdatedAt,
	)
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
