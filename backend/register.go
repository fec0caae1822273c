package backend

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/regdesk/regdesk/usecase"
)

type personPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Profile string `json:"profile"`
	// ProfileLink is the historical field name still sent by the forms.
	ProfileLink string `json:"profileLink"`
	Notes       string `json:"notes"`
}

func (p personPayload) profile() string {
	if p.ProfileLink != "" {
		return p.ProfileLink
	}
	return p.Profile
}

func (p personPayload) person() usecase.PersonInput {
	return usecase.PersonInput{
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Profile: p.profile(),
	}
}

type registerRequest struct {
	Type        string          `json:"type"`
	Participant *personPayload  `json:"participant"`
	TeamName    string          `json:"teamName"`
	Leader      *personPayload  `json:"leader"`
	Members     []personPayload `json:"members"`
	Notes       string          `json:"notes"`
}

// Register accepts both public registration forms behind one endpoint,
// dispatched on the type field.
func (h *Handler) Register(c *fiber.Ctx) error {
	var body registerRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse("validation", "invalid body"))
	}

	switch body.Type {
	case "individual":
		if body.Participant == nil {
			return c.Status(http.StatusBadRequest).JSON(errorResponse("validation", "participant details are required"))
		}
		teamUUID, err := h.service.CreateIndividualRegistration(usecase.IndividualRegistrationInput{
			Name:    body.Participant.Name,
			Email:   body.Participant.Email,
			Phone:   body.Participant.Phone,
			Profile: body.Participant.profile(),
			Notes:   body.Participant.Notes,
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(http.StatusCreated).JSON(fiber.Map{
			"message": "Individual registration received.",
			"teamId":  teamUUID,
		})

	case "team":
		if body.Leader == nil {
			return c.Status(http.StatusBadRequest).JSON(errorResponse("validation", "team name and leader details are required"))
		}
		members := make([]usecase.PersonInput, 0, len(body.Members))
		for _, member := range body.Members {
			// the forms send placeholder member rows, only named ones count
			if member.Name == "" {
				continue
			}
			members = append(members, member.person())
		}
		teamUUID, err := h.service.CreateTeamRegistration(usecase.TeamRegistrationInput{
			TeamName: body.TeamName,
			Leader:   body.Leader.person(),
			Members:  members,
			Notes:    body.Notes,
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(http.StatusCreated).JSON(fiber.Map{
			"message": "Team registration received.",
			"teamId":  teamUUID,
		})

	default:
		return c.Status(http.StatusBadRequest).JSON(errorResponse("validation", "unsupported registration type"))
	}
}
