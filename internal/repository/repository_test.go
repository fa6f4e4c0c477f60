package repository

import (
	"context"
	"errors"
	"testing"

	"jobswipe/internal/database"
	"jobswipe/internal/domain/swipe"
	"jobswipe/internal/domain/target"
	"jobswipe/internal/domain/user"
	"jobswipe/internal/domain/vacancy"
	"jobswipe/internal/pkg/optional"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type fakeRow struct {
	err error
}

func (r fakeRow) Scan(dest ...any) error { return r.err }

type fakeRows struct {
	raws [][]byte
	i    int
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) Next() bool {
	if r.i >= len(r.raws) {
		return false
	}
	r.i++
	return true
}
func (r *fakeRows) Scan(dest ...any) error {
	*(dest[0].(*[]byte)) = r.raws[r.i-1]
	return nil
}

type fakeDB struct {
	row      fakeRow
	rows     *fakeRows
	execN    int64
	lastArgs []any
}

func (f *fakeDB) Ping(ctx context.Context) error { return nil }
func (f *fakeDB) Close() error                   { return nil }
func (f *fakeDB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	f.lastArgs = args
	return f.execN, nil
}
func (f *fakeDB) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	f.lastArgs = args
	return f.rows, nil
}
func (f *fakeDB) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	f.lastArgs = args
	return f.row
}
func (f *fakeDB) Begin(ctx context.Context) (database.Tx, error) {
	return nil, errors.New("not supported")
}

func TestSwipeRepository_DuplicateIsAlreadySwiped(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
	repo := NewPostgresSwipeRepository(db)

	_, err := repo.Create(context.Background(), swipe.Swipe{
		SwiperID:   uuid.New(),
		TargetID:   uuid.New(),
		TargetType: swipe.TargetVacancy,
		Direction:  swipe.Like,
	})
	if !errors.Is(err, swipe.ErrAlreadySwiped) {
		t.Fatalf("expected ErrAlreadySwiped, got %v", err)
	}
}

func TestUserRepository_NoRowsIsNotFound(t *testing.T) {
	repo := NewPostgresUserRepository(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}})
	if _, err := repo.GetByID(context.Background(), uuid.New()); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_UpdateProfileSalary(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresUserRepository(db)

	if _, err := repo.UpdateProfile(context.Background(), uuid.New(), user.ProfilePatch{SalaryExpectation: optional.Null[int]()}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if set, _ := db.lastArgs[12].(bool); !set {
		t.Fatalf("expected salary marked as set")
	}
	if v, _ := db.lastArgs[5].(*int); v != nil {
		t.Fatalf("expected null salary, got %d", *v)
	}

	if _, err := repo.UpdateProfile(context.Background(), uuid.New(), user.ProfilePatch{SalaryExpectation: optional.Of(150000)}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v, _ := db.lastArgs[5].(*int); v == nil || *v != 150000 {
		t.Fatalf("expected salary 150000, got %v", db.lastArgs[5])
	}

	if _, err := repo.UpdateProfile(context.Background(), uuid.New(), user.ProfilePatch{City: new(string)}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if set, _ := db.lastArgs[12].(bool); set {
		t.Fatalf("absent salary must be left unchanged")
	}
}

func TestVacancyRepository_DeleteMissingIsNotFound(t *testing.T) {
	repo := NewPostgresVacancyRepository(&fakeDB{execN: 0})
	if err := repo.Delete(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, vacancy.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTargetRepository_DecodesVacancyRows(t *testing.T) {
	id, employer := uuid.New(), uuid.New()
	raw := []byte(`{"id":"` + id.String() + `","employer_id":"` + employer.String() + `",` +
		`"title":"Go developer","description":"","city":"Москва","salary_min":150000,"salary_max":null,` +
		`"required_skills":["go","sql"],"recruiter_name":null,"recruiter_photo_url":null,"video_url":"https://v.example/1",` +
		`"is_active":true,"created_at":"2026-03-01T12:00:00.5+00:00","updated_at":"2026-03-01T12:00:00+00:00"}`)
	db := &fakeDB{rows: &fakeRows{raws: [][]byte{raw}}}
	repo := NewPostgresTargetRepository(db)

	got, err := repo.VacanciesForSeeker(context.Background(), uuid.New(), target.Filter{City: " Москва "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 vacancy, got %d", len(got))
	}
	v := got[0]
	if v.ID != id || v.EmployerID != employer {
		t.Fatalf("unexpected ids %s %s", v.ID, v.EmployerID)
	}
	if v.SalaryMin == nil || *v.SalaryMin != 150000 || v.SalaryMax != nil {
		t.Fatalf("unexpected salary %v %v", v.SalaryMin, v.SalaryMax)
	}
	if !v.HasVideo() {
		t.Fatalf("expected video")
	}
	if db.lastArgs[1] != "Москва" {
		t.Fatalf("expected trimmed city arg, got %v", db.lastArgs[1])
	}
	if skills, ok := db.lastArgs[2].([]string); !ok || skills == nil {
		t.Fatalf("expected empty skills slice sentinel, got %#v", db.lastArgs[2])
	}
}

func TestTargetRepository_RejectsMalformedSeekerRow(t *testing.T) {
	raw := []byte(`{"id":"` + uuid.NewString() + `","telegram_id":"oops","role":"seeker"}`)
	repo := NewPostgresTargetRepository(&fakeDB{rows: &fakeRows{raws: [][]byte{raw}}})

	if _, err := repo.SeekersForEmployer(context.Background(), uuid.New(), target.Filter{}); err == nil {
		t.Fatalf("expected decode error")
	}
}
