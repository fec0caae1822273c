package usecase

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/regdesk/regdesk/io"
	"github.com/regdesk/regdesk/model"
	"github.com/regdesk/regdesk/repo"
)

type AttendanceInput struct {
	TeamUUID model.TeamUUID
	Present  bool
	// SeatNumber is used verbatim when non-empty; otherwise the shared
	// counter assigns the next sequential seat.
	SeatNumber string
}

type AttendanceResult struct {
	TeamUUID         model.TeamUUID `json:"teamId"`
	AttendanceMarked bool           `json:"attendanceMarked"`
	SeatNumber       *string        `json:"seatNumber"`
}

// MarkAttendance checks a team in (or clears its check-in). The counter
// increment and the team update share one transaction, so concurrent
// auto-assigns always end up with distinct seats.
func (s *Service) MarkAttendance(in AttendanceInput) (AttendanceResult, error) {
	teamUUID := sanitizeString(in.TeamUUID)
	if teamUUID == "" {
		return AttendanceResult{}, fmt.Errorf("%w: team id is required", model.ErrInvalidArg)
	}
	seatInput := sanitizeString(in.SeatNumber)

	var result AttendanceResult
	err := io.RunTransaction(s.store, func(txn *io.MemoryStoreTxn) error {
		teamsRepo := repo.NewTeamRepository(txn)
		team, err := teamsRepo.GetByID(teamUUID)
		if errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("%w: team %q", model.ErrNotFound, teamUUID)
		}
		if err != nil {
			return err
		}
		if team.Archived() || !team.IsActive() {
			return fmt.Errorf("%w: cannot mark attendance for inactive teams", model.ErrTeamInactive)
		}

		now := s.clock.Now()
		updated := *team
		if in.Present {
			seat := seatInput
			if seat == "" {
				next, err := repo.NewSeatCounterRepository(txn).Increment(now)
				if err != nil {
					return err
				}
				seat = strconv.FormatInt(next, 10)
			}
			updated.AttendanceMarked = true
			updated.SeatNumber = seat
		} else {
			updated.AttendanceMarked = false
			updated.SeatNumber = ""
		}
		updated.Version = repo.NewResourceVersion()
		updated.UpdatedAt = now
		if err := teamsRepo.Update(&updated); err != nil {
			return err
		}

		result = AttendanceResult{
			TeamUUID:         updated.UUID,
			AttendanceMarked: updated.AttendanceMarked,
			SeatNumber:       optional(updated.SeatNumber),
		}
		return nil
	})
	if err != nil {
		return AttendanceResult{}, err
	}
	s.logger.Info("attendance updated", "team", result.TeamUUID, "marked", result.AttendanceMarked)
	return result, nil
}
