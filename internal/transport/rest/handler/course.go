package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"courseforge/internal/model"
	"courseforge/internal/service"
)

// CourseHandler handles published-course endpoints
type CourseHandler struct {
	courseSvc *service.CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseSvc *service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// GetLatest handles GET /v1/courses/latest
func (h *CourseHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	record, err := h.courseSvc.LoadLatest(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "no course found")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Get handles GET /v1/courses/{courseId}
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["courseId"]

	record, err := h.courseSvc.GetByID(r.Context(), courseID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "course not found")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// List handles GET /v1/courses
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.courseSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"courses": records})
}

// Delete handles DELETE /v1/courses/{courseId}
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["courseId"]

	if err := h.courseSvc.Delete(r.Context(), courseID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": courseID})
}

// SubmitQuizRequest is the request body for a quiz answer
type SubmitQuizRequest struct {
	SelectedOption int `json:"selectedOption"`
}

// SubmitQuizResponse annotates every option after submission. Play state is
// transient; nothing about the submission is stored.
type SubmitQuizResponse struct {
	Correct       bool                `json:"correct"`
	CorrectAnswer int                 `json:"correctAnswer"`
	Verdicts      []model.QuizVerdict `json:"verdicts"`
}

// SubmitQuiz handles POST /v1/courses/{courseId}/quiz/{blockId}/submit
func (h *CourseHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.courseSvc.GetByID(r.Context(), vars["courseId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "course not found")
		return
	}

	block, ok := record.Data.FindBlock(vars["blockId"])
	if !ok || block.Kind != model.BlockQuiz {
		writeError(w, http.StatusNotFound, "quiz block not found")
		return
	}

	quiz := model.ParseQuiz(block.Value)
	if req.SelectedOption < 0 || req.SelectedOption >= len(quiz.Options) {
		writeError(w, http.StatusBadRequest, "selected option out of range")
		return
	}

	writeJSON(w, http.StatusOK, SubmitQuizResponse{
		Correct:       req.SelectedOption == quiz.CorrectAnswer,
		CorrectAnswer: quiz.CorrectAnswer,
		Verdicts:      quiz.Grade(req.SelectedOption),
	})
}
