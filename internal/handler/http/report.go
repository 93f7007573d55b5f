package http

import (
	"net/http"
	"strconv"

	"github.com/angkorhr/hrms-backend-go/internal/domain/report"
	"github.com/angkorhr/hrms-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Headcount(w http.ResponseWriter, r *http.Request)
	AttendanceSummary(w http.ResponseWriter, r *http.Request)
	LeaveUtilization(w http.ResponseWriter, r *http.Request)
	PayrollTotals(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// Headcount implements ReportHandler.
func (h *reportHandlerImpl) Headcount(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.HeadcountByDepartment(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AttendanceSummary implements ReportHandler.
func (h *reportHandlerImpl) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	req := report.AttendanceSummaryRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.reportService.AttendanceSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// LeaveUtilization implements ReportHandler.
func (h *reportHandlerImpl) LeaveUtilization(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	result, err := h.reportService.LeaveUtilization(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// PayrollTotals implements ReportHandler.
func (h *reportHandlerImpl) PayrollTotals(w http.ResponseWriter, r *http.Request) {
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	result, err := h.reportService.PayrollTotals(r.Context(), report.PayrollTotalsRequest{
		Month: month,
		Year:  year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
