package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"courseforge/internal/model"
	"courseforge/internal/repository"
)

// fakeCourseRepo is an in-memory CourseRepo; failErr makes every call fail.
type fakeCourseRepo struct {
	records map[string]*model.CourseRecord
	nextID  int
	latest  string
	failErr error
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{records: map[string]*model.CourseRecord{}}
}

func (r *fakeCourseRepo) Save(ctx context.Context, doc model.CourseDocument, id string) (string, error) {
	if r.failErr != nil {
		return "", r.failErr
	}
	if id == "" {
		r.nextID++
		id = fmt.Sprintf("course-%d", r.nextID)
	}
	r.records[id] = &model.CourseRecord{ID: id, Title: doc.Title, Data: doc}
	r.latest = id
	return id, nil
}

func (r *fakeCourseRepo) LoadLatest(ctx context.Context) (*model.CourseRecord, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	if r.latest == "" {
		return nil, nil
	}
	return r.records[r.latest], nil
}

func (r *fakeCourseRepo) GetByID(ctx context.Context, id string) (*model.CourseRecord, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	return r.records[id], nil
}

func (r *fakeCourseRepo) List(ctx context.Context) ([]*model.CourseRecord, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	out := make([]*model.CourseRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeCourseRepo) Delete(ctx context.Context, id string) error {
	if r.failErr != nil {
		return r.failErr
	}
	delete(r.records, id)
	if r.latest == id {
		r.latest = ""
	}
	return nil
}

// fakeCourseCache is an in-memory CourseCache.
type fakeCourseCache struct {
	byID   map[string]*model.CourseRecord
	latest *model.CourseRecord
}

func newFakeCourseCache() *fakeCourseCache {
	return &fakeCourseCache{byID: map[string]*model.CourseRecord{}}
}

func (c *fakeCourseCache) Set(ctx context.Context, record *model.CourseRecord) error {
	c.byID[record.ID] = record
	c.latest = record
	return nil
}

func (c *fakeCourseCache) Get(ctx context.Context, id string) (*model.CourseRecord, error) {
	return c.byID[id], nil
}

func (c *fakeCourseCache) GetLatest(ctx context.Context) (*model.CourseRecord, error) {
	return c.latest, nil
}

func (c *fakeCourseCache) Invalidate(ctx context.Context, id string) error {
	delete(c.byID, id)
	c.latest = nil
	return nil
}

type recordedEvent struct {
	courseID string
	msgType  string
}

type fakeBroadcaster struct {
	events []recordedEvent
}

func (b *fakeBroadcaster) BroadcastCourse(courseID string, msgType string, payload interface{}) {
	b.events = append(b.events, recordedEvent{courseID: courseID, msgType: msgType})
}

func newTestCourseService(t *testing.T, repo repository.CourseRepo) (*CourseService, *repository.LocalStore, *fakeCourseCache) {
	t.Helper()
	local := repository.NewLocalStore(t.TempDir())
	cch := newFakeCourseCache()
	return NewCourseService(repo, local, cch), local, cch
}

func TestSaveWritesBackupAndCache(t *testing.T) {
	repo := newFakeCourseRepo()
	svc, local, cch := newTestCourseService(t, repo)
	b := &fakeBroadcaster{}
	svc.SetBroadcaster(b)

	doc := model.DefaultCourse()
	id, err := svc.Save(context.Background(), doc, "")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	backup, err := local.Read()
	require.NoError(t, err)
	require.NotNil(t, backup)
	require.Equal(t, doc.Title, backup.Data.Title)

	require.NotNil(t, cch.latest)
	require.Equal(t, id, cch.latest.ID)

	require.Len(t, b.events, 1)
	require.Equal(t, "course_saved", b.events[0].msgType)
}

func TestSaveBackendFailureStillWritesBackup(t *testing.T) {
	repo := newFakeCourseRepo()
	repo.failErr = errors.New("mongo down")
	svc, local, cch := newTestCourseService(t, repo)

	doc := model.DefaultCourse()
	_, err := svc.Save(context.Background(), doc, "existing")
	require.Error(t, err)

	// Edits still reach the backup even when the backend is unreachable.
	backup, readErr := local.Read()
	require.NoError(t, readErr)
	require.NotNil(t, backup)
	require.Equal(t, "existing", backup.ID)
	require.Equal(t, doc.Title, backup.Data.Title)

	require.Nil(t, cch.latest, "failed saves must not populate the cache")
}

func TestLoadLatestPrefersCache(t *testing.T) {
	repo := newFakeCourseRepo()
	svc, _, cch := newTestCourseService(t, repo)

	cached := &model.CourseRecord{ID: "c1", Title: "from cache"}
	require.NoError(t, cch.Set(context.Background(), cached))

	got, err := svc.LoadLatest(context.Background())
	require.NoError(t, err)
	require.Equal(t, "from cache", got.Title)
}

func TestLoadLatestFallsBackToLocal(t *testing.T) {
	repo := newFakeCourseRepo()
	repo.failErr = errors.New("mongo down")
	svc, local, _ := newTestCourseService(t, repo)

	require.NoError(t, local.Write(&model.CourseRecord{ID: "b1", Title: "backup"}))

	got, err := svc.LoadLatest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "backup", got.Title)
}

func TestLoadLatestEmptyEverywhere(t *testing.T) {
	repo := newFakeCourseRepo()
	svc, _, _ := newTestCourseService(t, repo)

	got, err := svc.LoadLatest(context.Background())
	require.NoError(t, err)
	require.Nil(t, got, "nothing ever saved yields a nil record")
}

func TestGetByIDPopulatesCache(t *testing.T) {
	repo := newFakeCourseRepo()
	svc, _, cch := newTestCourseService(t, repo)

	id, err := repo.Save(context.Background(), model.DefaultCourse(), "")
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Contains(t, cch.byID, id)
}

func TestDeleteInvalidatesAndBroadcasts(t *testing.T) {
	repo := newFakeCourseRepo()
	svc, _, cch := newTestCourseService(t, repo)
	b := &fakeBroadcaster{}
	svc.SetBroadcaster(b)

	id, err := svc.Save(context.Background(), model.DefaultCourse(), "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), id))
	require.NotContains(t, cch.byID, id)
	require.Equal(t, "course_deleted", b.events[len(b.events)-1].msgType)
}
