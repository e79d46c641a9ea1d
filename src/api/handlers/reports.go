package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"salesboard/src/api/controllers"
	"salesboard/src/utils"
)

const (
	defaultSeedRunsLimit = 20
	maxSeedRunsLimit     = 100
)

// GetReport serves the combined view as an Excel workbook or an HTML chart page.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	month := r.URL.Query().Get("month")
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = controllers.ReportFormatXLSX
	}

	switch format {
	case controllers.ReportFormatXLSX:
		xlsxFile, err := h.ReportsController.GenerateXLSXReport(ctx, month)
		if err != nil {
			h.HandleErrors(w, err)
			return
		}
		defer xlsxFile.Close()

		var buf bytes.Buffer
		if err := xlsxFile.Write(&buf); err != nil {
			h.HandleErrors(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", reportFilename(month)))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		_, _ = w.Write(buf.Bytes())
	case controllers.ReportFormatHTML:
		var buf bytes.Buffer
		if err := h.ReportsController.RenderHTMLReport(ctx, &buf, month); err != nil {
			h.HandleErrors(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	default:
		h.HandleErrors(w, utils.BadRequest(fmt.Sprintf("unsupported report format '%s'", format)))
	}
}

func reportFilename(month string) string {
	if month == "" {
		return "sales-report.xlsx"
	}
	return "sales-report-" + strings.NewReplacer("/", "-", "\\", "-", "\"", "", " ", "_").Replace(month) + ".xlsx"
}

func (h *Handler) GetSeedRuns(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	limit := defaultSeedRunsLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > maxSeedRunsLimit {
			h.HandleErrors(w, utils.UnprocessableEntity(fmt.Sprintf("limit must be an integer between 1 and %d", maxSeedRunsLimit)))
			return
		}
		limit = parsed
	}

	runs, err := h.ReportsController.GetSeedRuns(ctx, limit)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, runs, http.StatusOK)
}
