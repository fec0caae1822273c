package export

import (
	"net/http"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/regdesk/regdesk/backend/tests/api"
)

var testAPI *api.TestAPI

var _ = Describe("Export", func() {
	BeforeEach(func() {
		testAPI = api.NewTestAPI()

		resp := testAPI.Public(http.MethodPost, "/api/register", map[string]interface{}{
			"type":        "individual",
			"participant": map[string]interface{}{"name": "Alice", "email": "a@x.com"},
		})
		Expect(resp.Status).To(Equal(http.StatusCreated))

		marked := testAPI.Admin(http.MethodPost, "/api/admin/attendance", map[string]interface{}{
			"teamId":     resp.JSON.Get("teamId").String(),
			"seatNumber": "R-7",
		})
		Expect(marked.Status).To(Equal(http.StatusOK))
	})

	It("serves a BOM-prefixed csv with metadata and header lines", func() {
		resp := testAPI.Admin(http.MethodGet, "/api/admin/export?view=individuals", nil)

		Expect(resp.Status).To(Equal(http.StatusOK))
		Expect(resp.Header.Get("Content-Type")).To(Equal("text/csv"))
		Expect(resp.Header.Get("Content-Disposition")).To(ContainSubstring(`kickstart-individuals-export-`))
		Expect(resp.Header.Get("Content-Disposition")).To(HaveSuffix(`.csv"`))

		body := string(resp.Body)
		Expect(strings.HasPrefix(body, "\uFEFF")).To(BeTrue())

		lines := strings.Split(strings.TrimPrefix(body, "\uFEFF"), "\n")
		Expect(lines[0]).To(HavePrefix("Export Time: "))
		Expect(lines[1]).To(HavePrefix("Team ID,Team Name,Team Source,Team Status"))
		Expect(lines[2]).To(ContainSubstring("Alice"))
		Expect(lines[2]).To(ContainSubstring("Yes"))
		Expect(lines[2]).To(ContainSubstring("R-7"))
	})

	It("answers 501 for xlsx", func() {
		resp := testAPI.Admin(http.MethodGet, "/api/admin/export?format=xlsx", nil)

		Expect(resp.Status).To(Equal(http.StatusNotImplemented))
	})

	It("rejects unknown formats", func() {
		resp := testAPI.Admin(http.MethodGet, "/api/admin/export?format=pdf", nil)

		Expect(resp.Status).To(Equal(http.StatusBadRequest))
	})

	It("is gated by the admin key", func() {
		resp := testAPI.Public(http.MethodGet, "/api/admin/export", nil)

		Expect(resp.Status).To(Equal(http.StatusUnauthorized))
	})
})
