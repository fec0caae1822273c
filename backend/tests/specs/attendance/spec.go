package attendance

import (
	"net/http"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

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

var _ = Describe("Attendance", func() {
	BeforeEach(func() {
		testAPI = api.NewTestAPI()
	})

	It("auto-assigns sequential seats", func() {
		team1 := registerIndividual("Alice", "a@x.com")
		team2 := registerIndividual("Bob", "b@x.com")

		first := testAPI.Admin(http.MethodPost, "/api/admin/attendance", map[string]interface{}{
			"teamId": team1,
		})
		Expect(first.Status).To(Equal(http.StatusOK))
		Expect(first.JSON.Get("message").String()).To(Equal("Attendance marked."))
		Expect(first.JSON.Get("attendanceMarked").Bool()).To(BeTrue())
		Expect(first.JSON.Get("seatNumber").String()).To(Equal("1"))

		second := testAPI.Admin(http.MethodPost, "/api/admin/attendance", map[string]interface{}{
			"teamId": team2,
		})
		Expect(second.JSON.Get("seatNumber").String()).To(Equal("2"))
	})

	It("uses an explicit seat verbatim without consuming the counter", func() {
		team1 := registerIndividual("Alice", "a@x.com")
		team2 := registerIndividual("Bob", "b@x.com")

		explicit := testAPI.Admin(http.MethodPost, "/api/admin/attendance", map[string]interface{}{
			"teamId":     team1,
			"seatNumber": "A1",
		})
		Expect(explicit.JSON.Get("seatNumber").String()).To(Equal("A1"))

		auto := testAPI.Admin(http.MethodPost, "/api/admin/attendance", map[string]interface{}{
			"teamId": team2,
		})
		Expect(auto.JSON.Get("seatNumber").String()).To(Equal("1"))
	})

	It("clears attendance without rolling the counter back", func() {
		team := registerIndividual("Alice", "a@x.com")

		marked := testAPI.Admin(http.MethodPost, "/api/admin/attendance", map[string]interface{}{
			"teamId": team,
		})
		Expect(marked.JSON.Get("seatNumber").String()).To(Equal("1"))

		cleared := testAPI.Admin(http.MethodPost, "/api/admin/attendance", map[string]interface{}{
			"teamId":  team,
			"present": false,
		})
		Expect(cleared.Status).To(Equal(http.StatusOK))
		Expect(cleared.JSON.Get("message").String()).To(Equal("Attendance cleared."))
		Expect(cleared.JSON.Get("attendanceMarked").Bool()).To(BeFalse())
		Expect(cleared.JSON.Get("seatNumber").Type.String()).To(Equal("Null"))

		again := testAPI.Admin(http.MethodPost, "/api/admin/attendance", map[string]interface{}{
			"teamId": team,
		})
		Expect(again.JSON.Get("seatNumber").String()).To(Equal("2"))
	})

	It("rejects unknown and inactive teams", func() {
		missing := testAPI.Admin(http.MethodPost, "/api/admin/attendance", map[string]interface{}{
			"teamId": "00000000-0000-4000-8000-00000000dead",
		})
		Expect(missing.Status).To(Equal(http.StatusNotFound))

		noID := testAPI.Admin(http.MethodPost, "/api/admin/attendance", map[string]interface{}{})
		Expect(noID.Status).To(Equal(http.StatusBadRequest))
	})
})
