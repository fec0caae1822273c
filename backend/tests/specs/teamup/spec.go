package teamup

import (
	"net/http"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/tidwall/gjson"

	"github.com/regdesk/regdesk/backend/tests/api"
)

var testAPI *api.TestAPI

func registerIndividual(name, email string) string {
	resp := testAPI.Public(http.MethodPost, "/api/register", map[string]interface{}{
		"type":        "individual",
		"participant": map[string]interface{}{"name": name, "email": email},
	})
	Expect(resp.Status).To(Equal(http.StatusCreated))
	return resp.JSON.Get("teamId").String()
}

func participantOfTeam(teamID string) string {
	list := testAPI.Admin(http.MethodGet, "/api/admin/registrations?view=individuals", nil)
	Expect(list.Status).To(Equal(http.StatusOK))
	var participantID string
	list.JSON.Get("teams").ForEach(func(_, team gjson.Result) bool {
		if team.Get("id").String() == teamID {
			participantID = team.Get("participants.0.id").String()
			return false
		}
		return true
	})
	Expect(participantID).ToNot(BeEmpty())
	return participantID
}

var _ = Describe("Team-up", func() {
	BeforeEach(func() {
		testAPI = api.NewTestAPI()
	})

	It("requires the admin key", func() {
		resp := testAPI.Public(http.MethodPost, "/api/admin/team-up", map[string]interface{}{})
		Expect(resp.Status).To(Equal(http.StatusUnauthorized))

		resp = testAPI.Do(http.MethodPost, "/api/admin/team-up", map[string]interface{}{},
			map[string]string{"X-Admin-Key": "wrong"})
		Expect(resp.Status).To(Equal(http.StatusUnauthorized))
	})

	It("merges solo participants and retires their teams", func() {
		aliceTeam := registerIndividual("Alice", "a@x.com")
		bobTeam := registerIndividual("Bob", "b@x.com")
		alice := participantOfTeam(aliceTeam)
		bob := participantOfTeam(bobTeam)

		resp := testAPI.Admin(http.MethodPost, "/api/admin/team-up", map[string]interface{}{
			"participantIds":      []string{alice, bob},
			"teamName":            "Pair",
			"leaderParticipantId": bob,
		})
		Expect(resp.Status).To(Equal(http.StatusCreated))
		newTeamID := resp.JSON.Get("teamId").String()
		Expect(newTeamID).ToNot(BeEmpty())

		all := testAPI.Admin(http.MethodGet, "/api/admin/registrations?view=all", nil)
		teams := all.JSON.Get("teams").Array()
		Expect(teams).To(HaveLen(1))
		merged := teams[0]
		Expect(merged.Get("id").String()).To(Equal(newTeamID))
		Expect(merged.Get("source").String()).To(Equal("admin_team_up"))
		Expect(merged.Get("contact_name").String()).To(Equal("Bob"))

		participants := merged.Get("participants").Array()
		Expect(participants).To(HaveLen(2))
		Expect(participants[0].Get("id").String()).To(Equal(bob))
		Expect(participants[0].Get("role").String()).To(Equal("leader"))
		Expect(participants[1].Get("role").String()).To(Equal("member"))
		// provenance of moved participants is untouched
		Expect(participants[0].Get("original_registration_source").String()).To(Equal("individual_form"))
	})

	It("rejects bad selections", func() {
		aliceTeam := registerIndividual("Alice", "a@x.com")
		alice := participantOfTeam(aliceTeam)

		byOne := testAPI.Admin(http.MethodPost, "/api/admin/team-up", map[string]interface{}{
			"participantIds": []string{alice},
			"teamName":       "Solo",
		})
		Expect(byOne.Status).To(Equal(http.StatusBadRequest))

		unknown := testAPI.Admin(http.MethodPost, "/api/admin/team-up", map[string]interface{}{
			"participantIds": []string{alice, "00000000-0000-4000-8000-00000000dead"},
			"teamName":       "Ghost",
		})
		Expect(unknown.Status).To(Equal(http.StatusNotFound))

		noName := testAPI.Admin(http.MethodPost, "/api/admin/team-up", map[string]interface{}{
			"participantIds": []string{alice, alice},
		})
		Expect(noName.Status).To(Equal(http.StatusBadRequest))
	})

	It("rejects already converted sources with a conflict", func() {
		aliceTeam := registerIndividual("Alice", "a@x.com")
		bobTeam := registerIndividual("Bob", "b@x.com")
		carolTeam := registerIndividual("Carol", "c@x.com")
		alice := participantOfTeam(aliceTeam)
		bob := participantOfTeam(bobTeam)
		carol := participantOfTeam(carolTeam)

		first := testAPI.Admin(http.MethodPost, "/api/admin/team-up", map[string]interface{}{
			"participantIds": []string{alice, bob},
			"teamName":       "First",
		})
		Expect(first.Status).To(Equal(http.StatusCreated))

		second := testAPI.Admin(http.MethodPost, "/api/admin/team-up", map[string]interface{}{
			"participantIds": []string{alice, carol},
			"teamName":       "Second",
		})
		Expect(second.Status).To(Equal(http.StatusConflict))
		Expect(second.JSON.Get("kind").String()).To(Equal("conflict"))
	})
})
