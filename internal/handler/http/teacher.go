package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sekolahku/attendance-backend-go/internal/domain/teacher"
	"github.com/sekolahku/attendance-backend-go/internal/handler/http/response"
)

type TeacherHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	SetLocation(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type teacherHandlerImpl struct {
	teacherService teacher.TeacherService
}

func NewTeacherHandler(teacherService teacher.TeacherService) TeacherHandler {
	return &teacherHandlerImpl{
		teacherService: teacherService,
	}
}

// Create implements TeacherHandler.
func (h *teacherHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req teacher.CreateTeacherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.teacherService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Teacher created", result)
}

// Get implements TeacherHandler.
func (h *teacherHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.teacherService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements TeacherHandler.
func (h *teacherHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := teacher.TeacherFilter{}

	if name := r.URL.Query().Get("name"); name != "" {
		filter.Name = &name
	}
	if email := r.URL.Query().Get("email"); email != "" {
		filter.Email = &email
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

	results, err := h.teacherService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Update implements TeacherHandler.
func (h *teacherHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req teacher.UpdateTeacherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.teacherService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetLocation implements TeacherHandler.
func (h *teacherHandlerImpl) SetLocation(w http.ResponseWriter, r *http.Request) {
	var req teacher.SetLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.teacherService.SetDesignatedLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Designated location updated", result)
}

// Delete implements TeacherHandler.
func (h *teacherHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.teacherService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Teacher deleted", nil)
}
