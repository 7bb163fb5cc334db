package api

import (
	"encoding/json"
	"net/http"

	"github.com/permitprep/backend/internal/analytics"
	"github.com/permitprep/backend/internal/export"
)

// ── Handlers ────────────────────────────────────────────────────────────────

// exportJSON downloads the full analytics snapshot as JSON.
// @Summary      Export analytics as JSON
// @Tags         Export
// @Produce      json
// @Param        days   query  int  false  "Daily window (default 30)"
// @Param        weeks  query  int  false  "Weekly window (default 12)"
// @Success      200  {object}  export.Document
// @Router       /export [get]
func (h *Handler) exportJSON(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", analytics.DefaultDailyWindow)
	weeks := queryInt(r, "weeks", analytics.DefaultWeeklyWindow)

	doc := export.Build(r.Context(), h.stats, days, weeks)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=permitprep-export.json")
	json.NewEncoder(w).Encode(doc)
}

// exportXLSX downloads the analytics snapshot as an XLSX workbook.
// @Summary      Export analytics as XLSX
// @Tags         Export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        days   query  int  false  "Daily window (default 30)"
// @Param        weeks  query  int  false  "Weekly window (default 12)"
// @Success      200
// @Failure      500  {object}  map[string]string
// @Router       /export/xlsx [get]
func (h *Handler) exportXLSX(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", analytics.DefaultDailyWindow)
	weeks := queryInt(r, "weeks", analytics.DefaultWeeklyWindow)

	doc := export.Build(r.Context(), h.stats, days, weeks)
	workbook, err := export.Workbook(doc)
	if err != nil {
		h.logger.Error("failed to build workbook", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to build workbook")
		return
	}
	defer workbook.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=permitprep-export.xlsx")
	if err := workbook.Write(w); err != nil {
		h.logger.Error("failed to write workbook", "error", err)
	}
}
