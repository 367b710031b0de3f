package service

import (
	"context"
	"log"
	"time"

	"courseforge/internal/cache"
	"courseforge/internal/model"
	"courseforge/internal/repository"
)

// Broadcaster pushes course events to connected viewers (implemented by
// ws.Hub)
type Broadcaster interface {
	BroadcastCourse(courseID string, msgType string, payload interface{})
}

// CourseService orchestrates course persistence: MongoDB as the backend of
// record, an unconditional local JSON backup, and a Redis cache for
// view-mode reads.
type CourseService struct {
	courseRepo  repository.CourseRepo
	local       *repository.LocalStore
	courseCache cache.CourseCache
	broadcaster Broadcaster
}

// NewCourseService creates a new course service
func NewCourseService(courseRepo repository.CourseRepo, local *repository.LocalStore, courseCache cache.CourseCache) *CourseService {
	return &CourseService{
		courseRepo:  courseRepo,
		local:       local,
		courseCache: courseCache,
	}
}

// SetBroadcaster injects the viewer hub
func (s *CourseService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Save upserts the document in the backend and always writes the local
// backup, whether or not the backend call succeeded. The backend error, if
// any, is returned so the caller can surface a status message; edits still
// reach the backup.
func (s *CourseService) Save(ctx context.Context, doc model.CourseDocument, id string) (string, error) {
	savedID, saveErr := s.courseRepo.Save(ctx, doc, id)
	if savedID == "" {
		savedID = id
	}

	record := &model.CourseRecord{
		ID:        savedID,
		Title:     doc.Title,
		Data:      doc,
		UpdatedAt: time.Now(),
	}
	if err := s.local.Write(record); err != nil {
		log.Printf("local backup write failed: %v", err)
	}

	if saveErr != nil {
		return "", saveErr
	}

	if err := s.courseCache.Set(ctx, record); err != nil {
		log.Printf("course cache set failed: %v", err)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastCourse(savedID, "course_saved", record)
	}
	return savedID, nil
}

// LoadLatest returns the most recently saved course. The cache is consulted
// first; when the backend is unreachable or empty, the local backup is the
// fallback. A nil record means nothing has ever been saved.
func (s *CourseService) LoadLatest(ctx context.Context) (*model.CourseRecord, error) {
	if record, err := s.courseCache.GetLatest(ctx); err == nil && record != nil {
		return record, nil
	}

	record, err := s.courseRepo.LoadLatest(ctx)
	if err != nil {
		log.Printf("backend load failed, trying local backup: %v", err)
		return s.local.Read()
	}
	if record == nil {
		return s.local.Read()
	}

	if err := s.courseCache.Set(ctx, record); err != nil {
		log.Printf("course cache set failed: %v", err)
	}
	return record, nil
}

// GetByID retrieves one course record
func (s *CourseService) GetByID(ctx context.Context, id string) (*model.CourseRecord, error) {
	if record, err := s.courseCache.Get(ctx, id); err == nil && record != nil {
		return record, nil
	}

	record, err := s.courseRepo.GetByID(ctx, id)
	if err != nil || record == nil {
		return record, err
	}

	if err := s.courseCache.Set(ctx, record); err != nil {
		log.Printf("course cache set failed: %v", err)
	}
	return record, nil
}

// List returns all course records, most recently updated first
func (s *CourseService) List(ctx context.Context) ([]*model.CourseRecord, error) {
	return s.courseRepo.List(ctx)
}

// Delete removes a course record and drops it from the cache
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.courseCache.Invalidate(ctx, id); err != nil {
		log.Printf("course cache invalidate failed: %v", err)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastCourse(id, "course_deleted", map[string]string{"id": id})
	}
	return nil
}
