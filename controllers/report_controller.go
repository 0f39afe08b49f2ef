package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/monishpeddapally/hostel-management-system/services"
	"github.com/monishpeddapally/hostel-management-system/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	ReportSvc *services.ReportService
}

func NewReportController(svc *services.ReportService) *ReportController {
	return &ReportController{ReportSvc: svc}
}

// reportQuery reads ?startDate=&endDate=[&groupBy=].
func reportQuery(c *gin.Context) (services.ReportQuery, bool) {
	start, err := utils.ParseDate(c.Query("startDate"))
	if err != nil {
		invalidPayload(c, fmt.Errorf("startDate: %w", err))
		return services.ReportQuery{}, false
	}
	end, err := utils.ParseDate(c.Query("endDate"))
	if err != nil {
		invalidPayload(c, fmt.Errorf("endDate: %w", err))
		return services.ReportQuery{}, false
	}
	return services.ReportQuery{Start: start, End: end, GroupBy: c.Query("groupBy")}, true
}

func (ctrl *ReportController) Occupancy(c *gin.Context) {
	q, ok := reportQuery(c)
	if !ok {
		return
	}
	rows, err := ctrl.ReportSvc.Occupancy(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

func (ctrl *ReportController) Revenue(c *gin.Context) {
	q, ok := reportQuery(c)
	if !ok {
		return
	}
	rows, err := ctrl.ReportSvc.Revenue(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

func (ctrl *ReportController) BookingSources(c *gin.Context) {
	q, ok := reportQuery(c)
	if !ok {
		return
	}
	rows, err := ctrl.ReportSvc.BookingSources(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

func (ctrl *ReportController) RoomTypes(c *gin.Context) {
	q, ok := reportQuery(c)
	if !ok {
		return
	}
	rows, err := ctrl.ReportSvc.RoomTypes(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

// Export streams the requested report as an .xlsx attachment.
func (ctrl *ReportController) Export(c *gin.Context) {
	kind := c.Param("kind")
	q, ok := reportQuery(c)
	if !ok {
		return
	}
	f, err := ctrl.ReportSvc.Export(c.Request.Context(), kind, q)
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("%s_%s_%s.xlsx", kind, q.Start.Format("20060102"), q.End.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
