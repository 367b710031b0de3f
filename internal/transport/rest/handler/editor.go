package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"courseforge/internal/editor"
	"courseforge/internal/markup"
	"courseforge/internal/model"
	"courseforge/internal/service"
)

// EditorHandler handles authoring-session endpoints
type EditorHandler struct {
	editorSvc *service.EditorService
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(editorSvc *service.EditorService) *EditorHandler {
	return &EditorHandler{editorSvc: editorSvc}
}

// OpenSessionRequest is the request body for opening a session
type OpenSessionRequest struct {
	CourseID string `json:"courseId,omitempty"`
}

// OpenSession handles POST /v1/editor/sessions
func (h *EditorHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	state, err := h.editorSvc.Open(r.Context(), req.CourseID)
	if err != nil {
		writeEditorError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, state)
}

// CloseSession handles DELETE /v1/editor/sessions/{sessionId}
func (h *EditorHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	h.editorSvc.Close(mux.Vars(r)["sessionId"])
	w.WriteHeader(http.StatusNoContent)
}

// GetSession handles GET /v1/editor/sessions/{sessionId}
func (h *EditorHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.editorSvc.State(mux.Vars(r)["sessionId"])
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// UpdateHeaderRequest is the request body for a header edit
type UpdateHeaderRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// UpdateHeader handles PUT /v1/editor/sessions/{sessionId}/header
func (h *EditorHandler) UpdateHeader(w http.ResponseWriter, r *http.Request) {
	var req UpdateHeaderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.editorSvc.UpdateHeader(mux.Vars(r)["sessionId"], editor.HeaderField(req.Field), req.Value)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// AddChapter handles POST /v1/editor/sessions/{sessionId}/chapters
func (h *EditorHandler) AddChapter(w http.ResponseWriter, r *http.Request) {
	state, err := h.editorSvc.AddChapter(mux.Vars(r)["sessionId"])
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// AddSubChapter handles POST /v1/editor/sessions/{sessionId}/nodes/{nodeId}/children
func (h *EditorHandler) AddSubChapter(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	state, err := h.editorSvc.AddSubChapter(vars["sessionId"], vars["nodeId"])
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// UpdateNode handles PUT /v1/editor/sessions/{sessionId}/nodes
func (h *EditorHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	var node model.CourseNode
	if err := json.NewDecoder(r.Body).Decode(&node); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.editorSvc.UpdateNode(mux.Vars(r)["sessionId"], node)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// DeleteNode handles DELETE /v1/editor/sessions/{sessionId}/nodes/{nodeId}
func (h *EditorHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	state, err := h.editorSvc.DeleteNode(vars["sessionId"], vars["nodeId"])
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// AddBlockRequest is the request body for adding a content block
type AddBlockRequest struct {
	Kind model.BlockKind `json:"type"`
}

// AddBlock handles POST /v1/editor/sessions/{sessionId}/nodes/{nodeId}/blocks
func (h *EditorHandler) AddBlock(w http.ResponseWriter, r *http.Request) {
	var req AddBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vars := mux.Vars(r)
	state, err := h.editorSvc.AddContentBlock(vars["sessionId"], vars["nodeId"], req.Kind)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// UpdateBlock handles PUT /v1/editor/sessions/{sessionId}/blocks
func (h *EditorHandler) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	var block model.ContentBlock
	if err := json.NewDecoder(r.Body).Decode(&block); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.editorSvc.UpdateBlock(mux.Vars(r)["sessionId"], block)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// DeleteBlock handles DELETE /v1/editor/sessions/{sessionId}/blocks/{blockId}
func (h *EditorHandler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	state, err := h.editorSvc.DeleteBlock(vars["sessionId"], vars["blockId"])
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// FormatRequest is the request body for an inline formatting operation
type FormatRequest struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Style string `json:"style"` // bold, italic, spoiler
}

// FormatBlock handles POST /v1/editor/sessions/{sessionId}/blocks/{blockId}/format
func (h *EditorHandler) FormatBlock(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vars := mux.Vars(r)
	state, err := h.editorSvc.FormatText(vars["sessionId"], vars["blockId"], req.Start, req.End, markup.Style(req.Style))
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// QuizQuestionRequest is the request body for replacing the quiz question
type QuizQuestionRequest struct {
	Question string `json:"question"`
}

// QuizSetQuestion handles PUT /v1/editor/sessions/{sessionId}/blocks/{blockId}/quiz/question
func (h *EditorHandler) QuizSetQuestion(w http.ResponseWriter, r *http.Request) {
	var req QuizQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vars := mux.Vars(r)
	state, err := h.editorSvc.QuizSetQuestion(vars["sessionId"], vars["blockId"], req.Question)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// QuizOptionRequest is the request body for quiz option edits
type QuizOptionRequest struct {
	Index int    `json:"index"`
	Text  string `json:"text,omitempty"`
}

// QuizSetOption handles PUT /v1/editor/sessions/{sessionId}/blocks/{blockId}/quiz/options
func (h *EditorHandler) QuizSetOption(w http.ResponseWriter, r *http.Request) {
	var req QuizOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vars := mux.Vars(r)
	state, err := h.editorSvc.QuizSetOption(vars["sessionId"], vars["blockId"], req.Index, req.Text)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// QuizAddOption handles POST /v1/editor/sessions/{sessionId}/blocks/{blockId}/quiz/options
func (h *EditorHandler) QuizAddOption(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	state, err := h.editorSvc.QuizAddOption(vars["sessionId"], vars["blockId"])
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// QuizRemoveOption handles DELETE /v1/editor/sessions/{sessionId}/blocks/{blockId}/quiz/options
func (h *EditorHandler) QuizRemoveOption(w http.ResponseWriter, r *http.Request) {
	var req QuizOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vars := mux.Vars(r)
	state, err := h.editorSvc.QuizRemoveOption(vars["sessionId"], vars["blockId"], req.Index)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// QuizSetCorrect handles PUT /v1/editor/sessions/{sessionId}/blocks/{blockId}/quiz/correct
func (h *EditorHandler) QuizSetCorrect(w http.ResponseWriter, r *http.Request) {
	var req QuizOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vars := mux.Vars(r)
	state, err := h.editorSvc.QuizSetCorrectAnswer(vars["sessionId"], vars["blockId"], req.Index)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Undo handles POST /v1/editor/sessions/{sessionId}/undo
func (h *EditorHandler) Undo(w http.ResponseWriter, r *http.Request) {
	state, err := h.editorSvc.Undo(mux.Vars(r)["sessionId"])
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Redo handles POST /v1/editor/sessions/{sessionId}/redo
func (h *EditorHandler) Redo(w http.ResponseWriter, r *http.Request) {
	state, err := h.editorSvc.Redo(mux.Vars(r)["sessionId"])
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Save handles POST /v1/editor/sessions/{sessionId}/save
func (h *EditorHandler) Save(w http.ResponseWriter, r *http.Request) {
	state, err := h.editorSvc.Save(r.Context(), mux.Vars(r)["sessionId"])
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Load handles POST /v1/editor/sessions/{sessionId}/load. Overwriting a
// dirty session needs ?confirm=true; without it a 409 tells the client to
// ask the user.
func (h *EditorHandler) Load(w http.ResponseWriter, r *http.Request) {
	confirm := r.URL.Query().Get("confirm") == "true"
	state, err := h.editorSvc.LoadLatest(r.Context(), mux.Vars(r)["sessionId"], confirm)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// writeEditorError maps service errors onto HTTP statuses
func writeEditorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, editor.ErrSessionNotFound),
		errors.Is(err, editor.ErrNodeNotFound),
		errors.Is(err, editor.ErrBlockNotFound),
		errors.Is(err, service.ErrNoCourse):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConfirmationRequired):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, markup.ErrSelectionNotSimple):
		// Benign and recoverable: the document is unchanged.
		writeError(w, http.StatusUnprocessableEntity, "Veuillez sélectionner du texte continu (sans traverser d'autres styles) pour appliquer le flou.")
	case errors.Is(err, editor.ErrUnknownField),
		errors.Is(err, service.ErrNotTextBlock),
		errors.Is(err, service.ErrNotQuizBlock),
		errors.Is(err, service.ErrInvalidBlockKind):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
