package backend

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// utf8BOM makes Excel detect the encoding of the downloaded file.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func (h *Handler) Export(c *fiber.Ctx) error {
	view := queryView(c)
	format := strings.ToLower(c.Query("format", "csv"))
	if format == "xlsx" {
		return c.Status(http.StatusNotImplemented).
			JSON(errorResponse("not_implemented", "xlsx export is not supported"))
	}
	if format != "csv" {
		return c.Status(http.StatusBadRequest).
			JSON(errorResponse("validation", fmt.Sprintf("unsupported export format %q", format)))
	}

	rows, err := h.service.ExportTeams(view)
	if err != nil {
		return writeError(c, err)
	}

	now := time.Now().UTC()
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	// metadata line first so every run is traceable to its export time
	if err := w.Write([]string{"Export Time: " + now.Format(time.RFC3339)}); err != nil {
		return writeError(c, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return writeError(c, err)
	}

	filename := fmt.Sprintf("kickstart-%s-export-%s.csv", view, now.Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}
