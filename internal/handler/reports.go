package handler

import (
	"net/http"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/dto"
	"github.com/heytrackid/heytrack-umkm-sub013/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func (h *ReportsHandler) Profit(c *gin.Context) {
	var q dto.ReportQuery
	if !bindQuery(c, &q) {
		return
	}
	if q.Period == "" {
		q.Period = "daily"
	}
	resp, err := h.svc.Profit(c.Request.Context(), userID(c), q)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

// ProfitExport renders the report as a PDF and streams the file.
func (h *ReportsHandler) ProfitExport(c *gin.Context) {
	var q dto.ReportQuery
	if !bindQuery(c, &q) {
		return
	}
	if q.Period == "" {
		q.Period = "daily"
	}
	path, err := h.svc.ExportProfitPDF(c.Request.Context(), userID(c), q)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.FileAttachment(path, "laporan-laba-rugi.pdf")
}
