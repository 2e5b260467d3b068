package teacher

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sekolahku/attendance-backend-go/internal/domain/teacher"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/validator"
)

type fakeTeacherRepo struct {
	mu       sync.Mutex
	teachers map[string]teacher.Teacher
}

func newFakeTeacherRepo() *fakeTeacherRepo {
	return &fakeTeacherRepo{teachers: make(map[string]teacher.Teacher)}
}

func (r *fakeTeacherRepo) Create(ctx context.Context, t teacher.Teacher) (teacher.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.teachers {
		if existing.Email == t.Email {
			return teacher.Teacher{}, teacher.ErrEmailExists
		}
		if existing.NIP == t.NIP {
			return teacher.Teacher{}, teacher.ErrNIPExists
		}
	}
	t.ID = "teacher-" + t.NIP
	r.teachers[t.ID] = t
	return t, nil
}

func (r *fakeTeacherRepo) GetByID(ctx context.Context, id string) (teacher.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teachers[id]
	if !ok {
		return teacher.Teacher{}, teacher.ErrTeacherNotFound
	}
	return t, nil
}

func (r *fakeTeacherRepo) GetByEmail(ctx context.Context, email string) (teacher.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teachers {
		if t.Email == email {
			return t, nil
		}
	}
	return teacher.Teacher{}, teacher.ErrTeacherNotFound
}

func (r *fakeTeacherRepo) List(ctx context.Context, filter teacher.TeacherFilter) ([]teacher.Teacher, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []teacher.Teacher
	for _, t := range r.teachers {
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTeacherRepo) Update(ctx context.Context, t teacher.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teachers[t.ID]; !ok {
		return teacher.ErrTeacherNotFound
	}
	r.teachers[t.ID] = t
	return nil
}

func (r *fakeTeacherRepo) SetDesignatedLocation(ctx context.Context, id string, lat, lon float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teachers[id]
	if !ok {
		return teacher.ErrTeacherNotFound
	}
	t.Latitude, t.Longitude = &lat, &lon
	r.teachers[id] = t
	return nil
}

func (r *fakeTeacherRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teachers[id]; !ok {
		return teacher.ErrTeacherNotFound
	}
	delete(r.teachers, id)
	return nil
}

// countingTxRunner records how often work was wrapped in a transaction.
type countingTxRunner struct {
	calls int
}

func (c *countingTxRunner) run(ctx context.Context, fn func(ctx context.Context) error) error {
	c.calls++
	return fn(ctx)
}

func newTeacherFixture(t *testing.T) (teacher.TeacherService, *fakeTeacherRepo, *countingTxRunner) {
	t.Helper()
	repo := newFakeTeacherRepo()
	tx := &countingTxRunner{}
	return NewTeacherService(repo, tx.run), repo, tx
}

func validCreateRequest() teacher.CreateTeacherRequest {
	return teacher.CreateTeacherRequest{
		NIP:      "198709152011011005",
		FullName: "Bu Sari",
		Email:    "sari@sekolah.sch.id",
		Password: "rahasia123",
	}
}

func TestCreate_HashesPassword(t *testing.T) {
	svc, repo, _ := newTeacherFixture(t)

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "Bu Sari", resp.FullName)

	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("rahasia123")))
}

func TestCreate_RejectsShortPasswordAndBadNIP(t *testing.T) {
	svc, _, _ := newTeacherFixture(t)

	req := validCreateRequest()
	req.NIP = "12345"
	req.Password = "short"

	_, err := svc.Create(context.Background(), req)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "nip")
	assert.Contains(t, validationErrs.ToMap(), "password")
}

func TestCreate_DuplicateEmailConflict(t *testing.T) {
	svc, _, _ := newTeacherFixture(t)

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	dup := validCreateRequest()
	dup.NIP = "198001012005011001"
	_, err = svc.Create(context.Background(), dup)
	assert.ErrorIs(t, err, teacher.ErrEmailExists)
}

func TestUpdate_RunsInTransaction(t *testing.T) {
	svc, repo, tx := newTeacherFixture(t)

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	require.Equal(t, 0, tx.calls)

	newName := "Ibu Sari Dewi"
	resp, err := svc.Update(context.Background(), teacher.UpdateTeacherRequest{
		ID:       created.ID,
		FullName: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, resp.FullName)
	assert.Equal(t, 1, tx.calls)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, newName, stored.FullName)
}

func TestUpdate_UnknownTeacher(t *testing.T) {
	svc, _, _ := newTeacherFixture(t)

	newName := "Ibu Sari Dewi"
	_, err := svc.Update(context.Background(), teacher.UpdateTeacherRequest{
		ID:       "ghost",
		FullName: &newName,
	})
	assert.ErrorIs(t, err, teacher.ErrTeacherNotFound)
}

func TestSetDesignatedLocation_RunsInTransaction(t *testing.T) {
	svc, _, tx := newTeacherFixture(t)

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	resp, err := svc.SetDesignatedLocation(context.Background(), teacher.SetLocationRequest{
		ID:        created.ID,
		Latitude:  -6.2088,
		Longitude: 106.8456,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Latitude)
	assert.InDelta(t, -6.2088, *resp.Latitude, 1e-9)
	assert.Equal(t, 1, tx.calls)
}

func TestList_NormalizesPagination(t *testing.T) {
	svc, _, _ := newTeacherFixture(t)

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	// Zero page/limit from a non-HTTP caller must not divide by zero.
	resp, err := svc.List(context.Background(), teacher.TeacherFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Equal(t, int64(1), resp.TotalCount)
}
