package backend

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/regdesk/regdesk/model"
	"github.com/regdesk/regdesk/usecase"
)

// queryView coerces the view query parameter, unknown values fall back to
// the all view the way the admin UI expects.
func queryView(c *fiber.Ctx) usecase.View {
	view, err := usecase.ParseView(c.Query("view"))
	if err != nil {
		return usecase.ViewAll
	}
	return view
}

func (h *Handler) ListRegistrations(c *fiber.Ctx) error {
	teams, err := h.service.ListTeams(queryView(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"teams": teams})
}

type teamUpRequest struct {
	ParticipantIDs      []model.ParticipantUUID `json:"participantIds"`
	TeamName            string                  `json:"teamName"`
	LeaderParticipantID model.ParticipantUUID   `json:"leaderParticipantId"`
	Notes               string                  `json:"notes"`
}

func (h *Handler) TeamUp(c *fiber.Ctx) error {
	var body teamUpRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse("validation", "invalid body"))
	}
	if len(body.ParticipantIDs) == 0 {
		return c.Status(http.StatusBadRequest).JSON(errorResponse("validation", "participants are required"))
	}

	newTeamUUID, err := h.service.TeamUpIndividuals(usecase.TeamUpInput{
		ParticipantUUIDs:       body.ParticipantIDs,
		TeamName:               body.TeamName,
		ContactParticipantUUID: body.LeaderParticipantID,
		Notes:                  body.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Team created from individuals.",
		"teamId":  newTeamUUID,
	})
}

type attendanceRequest struct {
	TeamID     model.TeamUUID `json:"teamId"`
	Present    *bool          `json:"present"`
	SeatNumber string         `json:"seatNumber"`
}

func (h *Handler) Attendance(c *fiber.Ctx) error {
	var body attendanceRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse("validation", "invalid body"))
	}
	present := true
	if body.Present != nil {
		present = *body.Present
	}

	result, err := h.service.MarkAttendance(usecase.AttendanceInput{
		TeamUUID:   body.TeamID,
		Present:    present,
		SeatNumber: body.SeatNumber,
	})
	if err != nil {
		return writeError(c, err)
	}

	message := "Attendance cleared."
	if result.AttendanceMarked {
		message = "Attendance marked."
	}
	return c.JSON(fiber.Map{
		"message":          message,
		"teamId":           result.TeamUUID,
		"attendanceMarked": result.AttendanceMarked,
		"seatNumber":       result.SeatNumber,
	})
}
