package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/webtriad/webtriad/internal/app/domain/diary"
	"github.com/webtriad/webtriad/internal/app/domain/member"
	"github.com/webtriad/webtriad/internal/app/domain/qna"
	"github.com/webtriad/webtriad/internal/app/storage"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, "sqlmock")), mock
}

func TestCreateMemberReturnsGeneratedID(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO members`).
		WithArgs("Al", "a@x.com", 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	created, err := store.CreateMember(context.Background(), member.Member{Name: "Al", Email: "a@x.com", Level: 3})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected id 1, got %d", created.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetMemberMissingTranslatesToNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT id, name, email, level`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "level"}))

	_, err := store.GetMember(context.Background(), 42)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMemberMissingTranslatesToNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE members`).
		WithArgs(int64(42), "Al", "a@x.com", 3).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := store.UpdateMember(context.Background(), member.Member{ID: 42, Name: "Al", Email: "a@x.com", Level: 3})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateUserUniqueViolationTranslatesToConflict(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "hash", false, false).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_name_key"})

	_, err := store.CreateUser(context.Background(), qna.User{Name: "alice", PasswordHash: "hash"})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUpsertLogDateReturnsExistingRow(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO log_date`).
		WithArgs("20260115").
		WillReturnRows(sqlmock.NewRows([]string{"id", "entry_date"}).AddRow(int64(7), "20260115"))

	ld, err := store.UpsertLogDate(context.Background(), "20260115")
	if err != nil {
		t.Fatalf("upsert log date: %v", err)
	}
	if ld.ID != 7 || ld.EntryDate != "20260115" {
		t.Fatalf("unexpected log date: %+v", ld)
	}
}

func TestListDaySummariesScansAggregates(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "entry_date", "protein", "carbohydrates", "fat", "calories"}).
		AddRow(int64(2), "20260116", 30, 40, 10, 370).
		AddRow(int64(1), "20260115", 0, 0, 0, 0)
	mock.ExpectQuery(`SELECT ld.id, ld.entry_date`).WillReturnRows(rows)

	summaries, err := store.ListDaySummaries(context.Background())
	if err != nil {
		t.Fatalf("list day summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].Calories != 370 || summaries[1].Calories != 0 {
		t.Fatalf("unexpected calorie sums: %+v", summaries)
	}
}

func TestAnswerQuestionMissingTranslatesToNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE questions`).
		WithArgs(int64(9), "because").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.AnswerQuestion(context.Background(), 9, "because")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping postgres integration test")
	}

	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store := New(db)
	ctx := context.Background()

	m, err := store.CreateMember(ctx, member.Member{Name: "Al", Email: "a@x.com", Level: 3})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	got, err := store.GetMember(ctx, m.ID)
	if err != nil {
		t.Fatalf("get member: %v", err)
	}
	if got != m {
		t.Fatalf("round trip mismatch: %+v != %+v", got, m)
	}

	day, err := store.UpsertLogDate(ctx, "20260115")
	if err != nil {
		t.Fatalf("upsert log date: %v", err)
	}
	again, err := store.UpsertLogDate(ctx, "20260115")
	if err != nil {
		t.Fatalf("upsert log date again: %v", err)
	}
	if day.ID != again.ID {
		t.Fatalf("duplicate entry date produced a second row: %d != %d", day.ID, again.ID)
	}

	f, err := store.CreateFood(ctx, diary.Food{Name: "Egg", Protein: 6, Carbohydrates: 1, Fat: 5, Calories: 73})
	if err != nil {
		t.Fatalf("create food: %v", err)
	}
	if err := store.AddFoodToDay(ctx, day.ID, f.ID); err != nil {
		t.Fatalf("add food to day: %v", err)
	}
	foods, err := store.ListFoodsForDay(ctx, day.ID)
	if err != nil {
		t.Fatalf("list foods for day: %v", err)
	}
	if len(foods) != 1 || foods[0].ID != f.ID {
		t.Fatalf("unexpected foods: %+v", foods)
	}
}
