package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sekolahku/attendance-backend-go/internal/domain/attendance"
	"github.com/sekolahku/attendance-backend-go/internal/handler/http/middleware"
	"github.com/sekolahku/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMySessions(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	sessionService attendance.SessionService
}

func NewAttendanceHandler(sessionService attendance.SessionService) AttendanceHandler {
	return &attendanceHandlerImpl{
		sessionService: sessionService,
	}
}

// Submit implements AttendanceHandler. One endpoint serves both check-in and
// check-out; the session state decides which transition happens.
func (h *attendanceHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	teacherID, err := middleware.TeacherIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Two photos, up to 10MB each.
	if err := r.ParseMultipartForm(25 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	var req attendance.SubmitRequest
	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}
	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.TeacherID = teacherID

	// Both photos are optional at the form level; the request validation
	// rejects a missing pair so the attempt never reaches storage.
	if file, header, err := r.FormFile("photo1"); err == nil {
		defer file.Close()
		req.Photo1 = file
		req.Photo1Header = header
	}
	if file, header, err := r.FormFile("photo2"); err == nil {
		defer file.Close()
		req.Photo2 = file
		req.Photo2Header = header
	}

	result, err := h.sessionService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Check-in successful"
	if result.Outcome == attendance.OutcomeCheckOut {
		message = "Check-out successful"
	}
	response.Created(w, message, result)
}

// GetStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	teacherID, err := middleware.TeacherIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.sessionService.GetStatus(r.Context(), teacherID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := parseSessionFilter(r)

	if teacherID := r.URL.Query().Get("teacher_id"); teacherID != "" {
		filter.TeacherID = &teacherID
	}

	results, err := h.sessionService.ListSessions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// GetMySessions implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMySessions(w http.ResponseWriter, r *http.Request) {
	teacherID, err := middleware.TeacherIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := parseSessionFilter(r)
	filter.TeacherID = &teacherID

	results, err := h.sessionService.ListSessions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.sessionService.GetSession(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func parseSessionFilter(r *http.Request) attendance.SessionFilter {
	filter := attendance.SessionFilter{}

	if date := r.URL.Query().Get("date"); date != "" {
		filter.Date = &date
	}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	filter.Page = 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}

	filter.Limit = 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	return filter
}
