package register

import (
	"net/http"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/regdesk/regdesk/backend/tests/api"
)

var testAPI *api.TestAPI

var _ = Describe("Register", func() {
	BeforeEach(func() {
		testAPI = api.NewTestAPI()
	})

	Describe("payload", func() {
		DescribeTable("rejected registrations",
			func(payload map[string]interface{}) {
				resp := testAPI.Public(http.MethodPost, "/api/register", payload)
				Expect(resp.Status).To(Equal(http.StatusBadRequest))
				Expect(resp.JSON.Get("kind").String()).To(Equal("validation"))
				Expect(resp.JSON.Get("error").String()).ToNot(BeEmpty())
			},
			Entry("missing type", map[string]interface{}{}),
			Entry("unknown type", map[string]interface{}{"type": "corporate"}),
			Entry("individual without participant", map[string]interface{}{"type": "individual"}),
			Entry("individual without email", map[string]interface{}{
				"type":        "individual",
				"participant": map[string]interface{}{"name": "Alice"},
			}),
			Entry("individual with malformed email", map[string]interface{}{
				"type":        "individual",
				"participant": map[string]interface{}{"name": "Alice", "email": "alice_at_x"},
			}),
			Entry("team without leader", map[string]interface{}{
				"type":     "team",
				"teamName": "Pair",
			}),
			Entry("team without team name", map[string]interface{}{
				"type":   "team",
				"leader": map[string]interface{}{"name": "Bob", "email": "b@x.com"},
			}),
		)
	})

	It("registers an individual", func() {
		resp := testAPI.Public(http.MethodPost, "/api/register", map[string]interface{}{
			"type": "individual",
			"participant": map[string]interface{}{
				"name":        "Alice",
				"email":       "a@x.com",
				"phone":       "555-0100",
				"profileLink": "https://example.com/alice",
				"notes":       "first-timer",
			},
		})

		Expect(resp.Status).To(Equal(http.StatusCreated))
		Expect(resp.JSON.Get("teamId").String()).ToNot(BeEmpty())
		Expect(resp.JSON.Get("message").String()).To(Equal("Individual registration received."))

		list := testAPI.Admin(http.MethodGet, "/api/admin/registrations?view=individuals", nil)
		Expect(list.Status).To(Equal(http.StatusOK))
		teams := list.JSON.Get("teams").Array()
		Expect(teams).To(HaveLen(1))
		team := teams[0]
		Expect(team.Get("id").String()).To(Equal(resp.JSON.Get("teamId").String()))
		Expect(team.Get("source").String()).To(Equal("individual_form"))
		Expect(team.Get("status").String()).To(Equal("active"))
		Expect(team.Get("attendance_marked").Bool()).To(BeFalse())
		Expect(team.Get("seat_number").Exists()).To(BeTrue())
		Expect(team.Get("seat_number").Type.String()).To(Equal("Null"))
		// the profileLink alias lands in the profile column
		Expect(team.Get("contact_profile").String()).To(Equal("https://example.com/alice"))

		participants := team.Get("participants").Array()
		Expect(participants).To(HaveLen(1))
		Expect(participants[0].Get("role").String()).To(Equal("leader"))
		Expect(participants[0].Get("name").String()).To(Equal(team.Get("contact_name").String()))
		Expect(participants[0].Get("original_registration_source").String()).To(Equal("individual_form"))
	})

	It("registers a team and keeps only named members", func() {
		resp := testAPI.Public(http.MethodPost, "/api/register", map[string]interface{}{
			"type":     "team",
			"teamName": "Night Owls",
			"leader":   map[string]interface{}{"name": "Lena", "email": "lena@x.com"},
			"members": []map[string]interface{}{
				{"name": "Ravi", "email": "ravi@x.com"},
				{"name": "", "email": "ghost@x.com"},
				{"name": "Mika"},
				{"name": "Noor"},
				{"name": "Oda"}, // fourth named member, over the cap
			},
			"notes": "late slot",
		})

		Expect(resp.Status).To(Equal(http.StatusCreated))

		list := testAPI.Admin(http.MethodGet, "/api/admin/registrations?view=teams", nil)
		teams := list.JSON.Get("teams").Array()
		Expect(teams).To(HaveLen(1))
		team := teams[0]
		Expect(team.Get("source").String()).To(Equal("team_form"))
		Expect(team.Get("name").String()).To(Equal("Night Owls"))
		Expect(team.Get("notes").String()).To(Equal("late slot"))

		participants := team.Get("participants").Array()
		// leader + 3 members, the unnamed and the overflow entries dropped
		Expect(participants).To(HaveLen(4))
		Expect(participants[0].Get("role").String()).To(Equal("leader"))
		Expect(participants[0].Get("name").String()).To(Equal("Lena"))
		for _, member := range participants[1:] {
			Expect(member.Get("role").String()).To(Equal("member"))
		}
	})
})
