package editor

import "courseforge/internal/model"

// History holds past and future document snapshots for linear undo/redo.
// Past is ordered oldest first, future nearest first. Growth is unbounded;
// editing sessions are short-lived.
type History struct {
	past   []model.CourseDocument
	future []model.CourseDocument
}

// Record pushes a snapshot of the current document and clears the redo
// stack. Every mutation flows through here exactly once.
func (h *History) Record(current model.CourseDocument) {
	h.past = append(h.past, current)
	h.future = nil
}

// Undo pops the most recent past snapshot. The current document is pushed
// onto the front of the future stack. Returns false when there is nothing
// to undo.
func (h *History) Undo(current model.CourseDocument) (model.CourseDocument, bool) {
	if len(h.past) == 0 {
		return current, false
	}
	previous := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]model.CourseDocument{current}, h.future...)
	return previous, true
}

// Redo takes the nearest future snapshot, pushing current onto the past
// stack. Returns false when there is nothing to redo.
func (h *History) Redo(current model.CourseDocument) (model.CourseDocument, bool) {
	if len(h.future) == 0 {
		return current, false
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, current)
	return next, true
}

// CanUndo reports whether an undo would have any effect.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether a redo would have any effect.
func (h *History) CanRedo() bool { return len(h.future) > 0 }
