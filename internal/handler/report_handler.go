package handler

import (
	"errors"
	"net/http"

	"ebdadmin/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Daily builds the attendance/offering report for one day. Both print
// layouts consume this payload unchanged.
func (h *ReportHandler) Daily(c *gin.Context) {
	day, ok := parseDay(c, "day")
	if !ok {
		return
	}
	report, err := h.reports.BuildReport(day)
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no data for the requested day"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report failed"})
		return
	}
	c.JSON(http.StatusOK, report)
}
