package editor

import "courseforge/internal/model"

// Editor is one authoring session: the current document plus its history.
// It is not safe for concurrent use; the Manager serializes access.
type Editor struct {
	current model.CourseDocument
	history History
	dirty   bool
	cloudID string
}

// New starts an editing session on the given document. The document is
// cloned so the caller's copy cannot alias session state.
func New(doc model.CourseDocument) *Editor {
	return &Editor{current: doc.Clone()}
}

// Current returns the document as of the last applied mutation.
func (e *Editor) Current() model.CourseDocument {
	return e.current
}

// Apply is the single checkpoint every mutation flows through: the current
// document is recorded into history, the redo stack is cleared and next
// becomes current. No validation happens here.
func (e *Editor) Apply(next model.CourseDocument) {
	e.history.Record(e.current)
	e.current = next
	e.dirty = true
}

// Undo restores the most recent snapshot. Returns false with no observable
// effect when the undo stack is empty.
func (e *Editor) Undo() bool {
	previous, ok := e.history.Undo(e.current)
	if !ok {
		return false
	}
	e.current = previous
	e.dirty = true
	return true
}

// Redo restores the nearest future snapshot. Returns false with no
// observable effect when the redo stack is empty.
func (e *Editor) Redo() bool {
	next, ok := e.history.Redo(e.current)
	if !ok {
		return false
	}
	e.current = next
	e.dirty = true
	return true
}

// CanUndo reports whether the undo stack is non-empty.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether the redo stack is non-empty.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// Dirty reports whether the session has mutations since the last save or
// load. Loading a remote document over a dirty session requires explicit
// confirmation.
func (e *Editor) Dirty() bool { return e.dirty }

// MarkSaved clears the dirty flag after a successful save.
func (e *Editor) MarkSaved() { e.dirty = false }

// CloudID is the backend record identity of the session's document, empty
// until the first successful save or load.
func (e *Editor) CloudID() string { return e.cloudID }

// SetCloudID records the backend record identity.
func (e *Editor) SetCloudID(id string) { e.cloudID = id }

// Replace installs a loaded document as a normal undoable mutation and
// clears the dirty flag. Used by cloud load, which overwrites in-memory
// state wholesale.
func (e *Editor) Replace(doc model.CourseDocument) {
	e.Apply(doc.Clone())
	e.dirty = false
}
