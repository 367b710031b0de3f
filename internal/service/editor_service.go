package service

import (
	"context"
	"errors"

	"courseforge/internal/editor"
	"courseforge/internal/markup"
	"courseforge/internal/model"
)

var (
	ErrNotTextBlock         = errors.New("block is not a text block")
	ErrNotQuizBlock         = errors.New("block is not a quiz block")
	ErrInvalidBlockKind     = errors.New("invalid block kind")
	ErrNoCourse             = errors.New("no course found")
	ErrConfirmationRequired = errors.New("loading will overwrite unsaved edits; confirmation required")
)

// errNoChange marks mutations with no observable effect, which must not
// reach the history.
var errNoChange = errors.New("no change")

// SessionState is a snapshot of an editing session returned to the caller
// after every operation.
type SessionState struct {
	SessionID string               `json:"sessionId"`
	CloudID   string               `json:"cloudId,omitempty"`
	CanUndo   bool                 `json:"canUndo"`
	CanRedo   bool                 `json:"canRedo"`
	Dirty     bool                 `json:"dirty"`
	Document  model.CourseDocument `json:"document"`
}

// EditorService drives authoring sessions. Every mutation flows through the
// session editor's Apply checkpoint, so each one is individually undoable.
type EditorService struct {
	sessions  *editor.Manager
	courseSvc *CourseService
}

// NewEditorService creates a new editor service
func NewEditorService(sessions *editor.Manager, courseSvc *CourseService) *EditorService {
	return &EditorService{
		sessions:  sessions,
		courseSvc: courseSvc,
	}
}

// Open starts an editing session. With a course id the session starts on
// that record; otherwise it starts on the latest saved course, falling back
// to the built-in default when nothing has ever been saved.
func (s *EditorService) Open(ctx context.Context, courseID string) (*SessionState, error) {
	var record *model.CourseRecord
	var err error
	if courseID != "" {
		record, err = s.courseSvc.GetByID(ctx, courseID)
		if err != nil {
			return nil, err
		}
		if record == nil {
			return nil, ErrNoCourse
		}
	} else {
		// Startup fallback chain: backend, local backup, default course.
		record, err = s.courseSvc.LoadLatest(ctx)
		if err != nil {
			return nil, err
		}
	}

	doc := model.DefaultCourse()
	cloudID := ""
	if record != nil {
		doc = record.Data
		cloudID = record.ID
	}

	sessionID := s.sessions.Open(doc)
	var state *SessionState
	err = s.sessions.With(sessionID, func(e *editor.Editor) error {
		e.SetCloudID(cloudID)
		state = snapshot(sessionID, e)
		return nil
	})
	return state, err
}

// Close drops a session and its history
func (s *EditorService) Close(sessionID string) {
	s.sessions.Close(sessionID)
}

// State returns the current session snapshot
func (s *EditorService) State(sessionID string) (*SessionState, error) {
	var state *SessionState
	err := s.sessions.With(sessionID, func(e *editor.Editor) error {
		state = snapshot(sessionID, e)
		return nil
	})
	return state, err
}

// UpdateHeader replaces one of the root metadata fields
func (s *EditorService) UpdateHeader(sessionID string, field editor.HeaderField, value string) (*SessionState, error) {
	return s.mutate(sessionID, func(doc model.CourseDocument) (model.CourseDocument, error) {
		return editor.UpdateHeader(doc, field, value)
	})
}

// AddChapter appends a new top-level chapter
func (s *EditorService) AddChapter(sessionID string) (*SessionState, error) {
	return s.mutate(sessionID, func(doc model.CourseDocument) (model.CourseDocument, error) {
		next, _ := editor.AddChapter(doc)
		return next, nil
	})
}

// AddSubChapter appends a new child under the given node
func (s *EditorService) AddSubChapter(sessionID, parentID string) (*SessionState, error) {
	return s.mutate(sessionID, func(doc model.CourseDocument) (model.CourseDocument, error) {
		next, _, err := editor.AddSubChapter(doc, parentID)
		return next, err
	})
}

// AddContentBlock appends a block of the given kind to the node's content
func (s *EditorService) AddContentBlock(sessionID, nodeID string, kind model.BlockKind) (*SessionState, error) {
	if !model.ValidKind(kind) {
		return nil, ErrInvalidBlockKind
	}
	return s.mutate(sessionID, func(doc model.CourseDocument) (model.CourseDocument, error) {
		next, _, err := editor.AddContentBlock(doc, nodeID, kind)
		return next, err
	})
}

// UpdateNode replaces the node whose id matches
func (s *EditorService) UpdateNode(sessionID string, node model.CourseNode) (*SessionState, error) {
	return s.mutate(sessionID, func(doc model.CourseDocument) (model.CourseDocument, error) {
		return editor.UpdateNode(doc, node)
	})
}

// DeleteNode removes a node and its entire subtree in one undoable step
func (s *EditorService) DeleteNode(sessionID, nodeID string) (*SessionState, error) {
	return s.mutate(sessionID, func(doc model.CourseDocument) (model.CourseDocument, error) {
		return editor.DeleteNode(doc, nodeID)
	})
}

// UpdateBlock replaces a block's value and caption
func (s *EditorService) UpdateBlock(sessionID string, block model.ContentBlock) (*SessionState, error) {
	return s.mutate(sessionID, func(doc model.CourseDocument) (model.CourseDocument, error) {
		return editor.UpdateBlock(doc, block)
	})
}

// DeleteBlock removes a block from its node
func (s *EditorService) DeleteBlock(sessionID, blockID string) (*SessionState, error) {
	return s.mutate(sessionID, func(doc model.CourseDocument) (model.CourseDocument, error) {
		return editor.DeleteBlock(doc, blockID)
	})
}

// FormatText toggles an inline style over a rune range of a text block. A
// spoiler wrap over a range crossing a style boundary returns
// markup.ErrSelectionNotSimple with the document unchanged.
func (s *EditorService) FormatText(sessionID, blockID string, start, end int, style markup.Style) (*SessionState, error) {
	return s.mutate(sessionID, func(doc model.CourseDocument) (model.CourseDocument, error) {
		block, ok := doc.FindBlock(blockID)
		if !ok {
			return doc, editor.ErrBlockNotFound
		}
		if block.Kind != model.BlockText {
			return doc, ErrNotTextBlock
		}
		value, err := markup.Toggle(block.Value, start, end, style)
		if err != nil {
			return doc, err
		}
		if value == block.Value {
			return doc, errNoChange
		}
		block.Value = value
		return editor.UpdateBlock(doc, block)
	})
}

// QuizSetQuestion replaces the question of a quiz block
func (s *EditorService) QuizSetQuestion(sessionID, blockID, question string) (*SessionState, error) {
	return s.mutateQuiz(sessionID, blockID, func(q model.QuizData) model.QuizData {
		return q.SetQuestion(question)
	})
}

// QuizSetOption replaces one option's text
func (s *EditorService) QuizSetOption(sessionID, blockID string, index int, text string) (*SessionState, error) {
	return s.mutateQuiz(sessionID, blockID, func(q model.QuizData) model.QuizData {
		return q.SetOption(index, text)
	})
}

// QuizAddOption appends a default-labeled option
func (s *EditorService) QuizAddOption(sessionID, blockID string) (*SessionState, error) {
	return s.mutateQuiz(sessionID, blockID, func(q model.QuizData) model.QuizData {
		return q.AddOption()
	})
}

// QuizRemoveOption removes one option, keeping at least two and shifting
// the correct-answer index as needed. Removing below the floor is a no-op.
func (s *EditorService) QuizRemoveOption(sessionID, blockID string, index int) (*SessionState, error) {
	return s.mutateQuiz(sessionID, blockID, func(q model.QuizData) model.QuizData {
		return q.RemoveOption(index)
	})
}

// QuizSetCorrectAnswer marks one option as correct
func (s *EditorService) QuizSetCorrectAnswer(sessionID, blockID string, index int) (*SessionState, error) {
	return s.mutateQuiz(sessionID, blockID, func(q model.QuizData) model.QuizData {
		return q.SetCorrectAnswer(index)
	})
}

// Undo restores the previous snapshot; a no-op on an empty undo stack
func (s *EditorService) Undo(sessionID string) (*SessionState, error) {
	var state *SessionState
	err := s.sessions.With(sessionID, func(e *editor.Editor) error {
		e.Undo()
		state = snapshot(sessionID, e)
		return nil
	})
	return state, err
}

// Redo restores the next snapshot; a no-op on an empty redo stack
func (s *EditorService) Redo(sessionID string) (*SessionState, error) {
	var state *SessionState
	err := s.sessions.With(sessionID, func(e *editor.Editor) error {
		e.Redo()
		state = snapshot(sessionID, e)
		return nil
	})
	return state, err
}

// Save pushes the session's document to the backend, keeping the session's
// cloud id so repeated saves update the same record.
func (s *EditorService) Save(ctx context.Context, sessionID string) (*SessionState, error) {
	var state *SessionState
	err := s.sessions.With(sessionID, func(e *editor.Editor) error {
		id, err := s.courseSvc.Save(ctx, e.Current(), e.CloudID())
		if err != nil {
			return err
		}
		e.SetCloudID(id)
		e.MarkSaved()
		state = snapshot(sessionID, e)
		return nil
	})
	return state, err
}

// LoadLatest overwrites the session's document with the most recently saved
// course. Overwriting unsaved edits is destructive, so a dirty session
// requires confirm to be set; declining leaves the session untouched. The
// load itself is recorded in history like any other mutation.
func (s *EditorService) LoadLatest(ctx context.Context, sessionID string, confirm bool) (*SessionState, error) {
	record, err := s.courseSvc.LoadLatest(ctx)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNoCourse
	}

	var state *SessionState
	err = s.sessions.With(sessionID, func(e *editor.Editor) error {
		if e.Dirty() && !confirm {
			return ErrConfirmationRequired
		}
		e.Replace(record.Data)
		e.SetCloudID(record.ID)
		state = snapshot(sessionID, e)
		return nil
	})
	return state, err
}

func (s *EditorService) mutate(sessionID string, fn func(model.CourseDocument) (model.CourseDocument, error)) (*SessionState, error) {
	var state *SessionState
	err := s.sessions.With(sessionID, func(e *editor.Editor) error {
		next, err := fn(e.Current())
		if err == errNoChange {
			state = snapshot(sessionID, e)
			return nil
		}
		if err != nil {
			return err
		}
		e.Apply(next)
		state = snapshot(sessionID, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *EditorService) mutateQuiz(sessionID, blockID string, fn func(model.QuizData) model.QuizData) (*SessionState, error) {
	return s.mutate(sessionID, func(doc model.CourseDocument) (model.CourseDocument, error) {
		block, ok := doc.FindBlock(blockID)
		if !ok {
			return doc, editor.ErrBlockNotFound
		}
		if block.Kind != model.BlockQuiz {
			return doc, ErrNotQuizBlock
		}
		quiz := fn(model.ParseQuiz(block.Value))
		value := quiz.Encode()
		if value == block.Value {
			return doc, errNoChange
		}
		block.Value = value
		return editor.UpdateBlock(doc, block)
	})
}

func snapshot(sessionID string, e *editor.Editor) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		CloudID:   e.CloudID(),
		CanUndo:   e.CanUndo(),
		CanRedo:   e.CanRedo(),
		Dirty:     e.Dirty(),
		Document:  e.Current(),
	}
}
