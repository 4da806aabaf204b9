// Package postgres implements the storage interfaces backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/webtriad/webtriad/internal/app/domain/diary"
	"github.com/webtriad/webtriad/internal/app/domain/member"
	"github.com/webtriad/webtriad/internal/app/domain/qna"
	"github.com/webtriad/webtriad/internal/app/storage"
)

const uniqueViolation = "23505"

// Store implements the storage interfaces over a pooled sqlx handle.
type Store struct {
	db *sqlx.DB
}

var _ storage.MemberStore = (*Store)(nil)
var _ storage.DiaryStore = (*Store)(nil)
var _ storage.UserStore = (*Store)(nil)
var _ storage.QuestionStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open connects to PostgreSQL and verifies the connection.
func Open(dsn string) (*sqlx.DB, error) {
	return sqlx.Connect("postgres", dsn)
}

func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return storage.ErrConflict
	}
	return err
}

// --- MemberStore ------------------------------------------------------------

func (s *Store) CreateMember(ctx context.Context, m member.Member) (member.Member, error) {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO members (name, email, level)
		VALUES ($1, $2, $3)
		RETURNING id
	`, m.Name, m.Email, m.Level).Scan(&m.ID)
	if err != nil {
		return member.Member{}, translate(err)
	}
	return m, nil
}

func (s *Store) UpdateMember(ctx context.Context, m member.Member) (member.Member, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE members
		SET name = $2, email = $3, level = $4
		WHERE id = $1
	`, m.ID, m.Name, m.Email, m.Level)
	if err != nil {
		return member.Member{}, translate(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return member.Member{}, storage.ErrNotFound
	}
	return m, nil
}

func (s *Store) GetMember(ctx context.Context, id int64) (member.Member, error) {
	var m member.Member
	err := s.db.GetContext(ctx, &m, `
		SELECT id, name, email, level
		FROM members
		WHERE id = $1
	`, id)
	if err != nil {
		return member.Member{}, translate(err)
	}
	return m, nil
}

func (s *Store) ListMembers(ctx context.Context) ([]member.Member, error) {
	members := []member.Member{}
	err := s.db.SelectContext(ctx, &members, `
		SELECT id, name, email, level
		FROM members
		ORDER BY id
	`)
	if err != nil {
		return nil, translate(err)
	}
	return members, nil
}

func (s *Store) DeleteMember(ctx context.Context, id int64) error {
	// Deliberately idempotent: deleting an absent id is not an error.
	_, err := s.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	return translate(err)
}

// --- DiaryStore -------------------------------------------------------------

func (s *Store) UpsertLogDate(ctx context.Context, entryDate string) (diary.LogDate, error) {
	var ld diary.LogDate
	// DO UPDATE makes RETURNING yield the existing row on conflict, so
	// duplicate submissions reuse the day instead of double-counting it.
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO log_date (entry_date)
		VALUES ($1)
		ON CONFLICT (entry_date) DO UPDATE SET entry_date = EXCLUDED.entry_date
		RETURNING id, entry_date
	`, entryDate).Scan(&ld.ID, &ld.EntryDate)
	if err != nil {
		return diary.LogDate{}, translate(err)
	}
	return ld, nil
}

func (s *Store) GetLogDateByEntry(ctx context.Context, entryDate string) (diary.LogDate, error) {
	var ld diary.LogDate
	err := s.db.GetContext(ctx, &ld, `
		SELECT id, entry_date
		FROM log_date
		WHERE entry_date = $1
	`, entryDate)
	if err != nil {
		return diary.LogDate{}, translate(err)
	}
	return ld, nil
}

func (s *Store) ListDaySummaries(ctx context.Context) ([]diary.DaySummary, error) {
	summaries := []diary.DaySummary{}
	err := s.db.SelectContext(ctx, &summaries, `
		SELECT ld.id, ld.entry_date,
		       COALESCE(SUM(f.protein), 0)       AS protein,
		       COALESCE(SUM(f.carbohydrates), 0) AS carbohydrates,
		       COALESCE(SUM(f.fat), 0)           AS fat,
		       COALESCE(SUM(f.calories), 0)      AS calories
		FROM log_date ld
		LEFT JOIN food_date fd ON fd.log_date_id = ld.id
		LEFT JOIN food f ON f.id = fd.food_id
		GROUP BY ld.id, ld.entry_date
		ORDER BY ld.entry_date DESC
	`)
	if err != nil {
		return nil, translate(err)
	}
	return summaries, nil
}

func (s *Store) CreateFood(ctx context.Context, f diary.Food) (diary.Food, error) {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO food (name, protein, carbohydrates, fat, calories)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, f.Name, f.Protein, f.Carbohydrates, f.Fat, f.Calories).Scan(&f.ID)
	if err != nil {
		return diary.Food{}, translate(err)
	}
	return f, nil
}

func (s *Store) GetFood(ctx context.Context, id int64) (diary.Food, error) {
	var f diary.Food
	err := s.db.GetContext(ctx, &f, `
		SELECT id, name, protein, carbohydrates, fat, calories
		FROM food
		WHERE id = $1
	`, id)
	if err != nil {
		return diary.Food{}, translate(err)
	}
	return f, nil
}

func (s *Store) ListFoods(ctx context.Context) ([]diary.Food, error) {
	foods := []diary.Food{}
	err := s.db.SelectContext(ctx, &foods, `
		SELECT id, name, protein, carbohydrates, fat, calories
		FROM food
		ORDER BY id
	`)
	if err != nil {
		return nil, translate(err)
	}
	return foods, nil
}

func (s *Store) AddFoodToDay(ctx context.Context, logDateID, foodID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO food_date (food_id, log_date_id)
		VALUES ($1, $2)
	`, foodID, logDateID)
	return translate(err)
}

func (s *Store) ListFoodsForDay(ctx context.Context, logDateID int64) ([]diary.Food, error) {
	foods := []diary.Food{}
	err := s.db.SelectContext(ctx, &foods, `
		SELECT f.id, f.name, f.protein, f.carbohydrates, f.fat, f.calories
		FROM food f
		JOIN food_date fd ON fd.food_id = f.id
		WHERE fd.log_date_id = $1
		ORDER BY f.id
	`, logDateID)
	if err != nil {
		return nil, translate(err)
	}
	return foods, nil
}

// --- UserStore --------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, u qna.User) (qna.User, error) {
	// Uniqueness rides on the users_name_key constraint; a concurrent insert
	// surfaces as ErrConflict instead of a check-then-act race.
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO users (name, password, expert, admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, u.Name, u.PasswordHash, u.Expert, u.Admin).Scan(&u.ID)
	if err != nil {
		return qna.User{}, translate(err)
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (qna.User, error) {
	var u qna.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, name, password, expert, admin
		FROM users
		WHERE id = $1
	`, id)
	if err != nil {
		return qna.User{}, translate(err)
	}
	return u, nil
}

func (s *Store) GetUserByName(ctx context.Context, name string) (qna.User, error) {
	var u qna.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, name, password, expert, admin
		FROM users
		WHERE name = $1
	`, name)
	if err != nil {
		return qna.User{}, translate(err)
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]qna.User, error) {
	users := []qna.User{}
	err := s.db.SelectContext(ctx, &users, `
		SELECT id, name, password, expert, admin
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (s *Store) SetExpert(ctx context.Context, id int64, expert bool) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET expert = $2 WHERE id = $1
	`, id, expert)
	if err != nil {
		return translate(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) SetAdmin(ctx context.Context, id int64, admin bool) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET admin = $2 WHERE id = $1
	`, id, admin)
	if err != nil {
		return translate(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// --- QuestionStore ----------------------------------------------------------

func (s *Store) CreateQuestion(ctx context.Context, q qna.Question) (qna.Question, error) {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO questions (question_text, answer_text, asked_by_id, expert_id)
		VALUES ($1, NULL, $2, $3)
		RETURNING id
	`, q.QuestionText, q.AskedByID, q.ExpertID).Scan(&q.ID)
	if err != nil {
		return qna.Question{}, translate(err)
	}
	q.AnswerText = nil
	return q, nil
}

func (s *Store) GetQuestion(ctx context.Context, id int64) (qna.Question, error) {
	var q qna.Question
	err := s.db.GetContext(ctx, &q, `
		SELECT q.id, q.question_text, q.answer_text, q.asked_by_id, q.expert_id,
		       asker.name AS asked_by_name, expert.name AS expert_name
		FROM questions q
		JOIN users asker ON asker.id = q.asked_by_id
		JOIN users expert ON expert.id = q.expert_id
		WHERE q.id = $1
	`, id)
	if err != nil {
		return qna.Question{}, translate(err)
	}
	return q, nil
}

func (s *Store) AnswerQuestion(ctx context.Context, id int64, answerText string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE questions SET answer_text = $2 WHERE id = $1
	`, id, answerText)
	if err != nil {
		return translate(err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) ListAnswered(ctx context.Context) ([]qna.Question, error) {
	questions := []qna.Question{}
	err := s.db.SelectContext(ctx, &questions, `
		SELECT q.id, q.question_text, q.answer_text, q.asked_by_id, q.expert_id,
		       asker.name AS asked_by_name, expert.name AS expert_name
		FROM questions q
		JOIN users asker ON asker.id = q.asked_by_id
		JOIN users expert ON expert.id = q.expert_id
		WHERE q.answer_text IS NOT NULL
		ORDER BY q.id
	`)
	if err != nil {
		return nil, translate(err)
	}
	return questions, nil
}

func (s *Store) ListUnansweredForExpert(ctx context.Context, expertID int64) ([]qna.Question, error) {
	questions := []qna.Question{}
	err := s.db.SelectContext(ctx, &questions, `
		SELECT q.id, q.question_text, q.answer_text, q.asked_by_id, q.expert_id,
		       asker.name AS asked_by_name, expert.name AS expert_name
		FROM questions q
		JOIN users asker ON asker.id = q.asked_by_id
		JOIN users expert ON expert.id = q.expert_id
		WHERE q.answer_text IS NULL AND q.expert_id = $1
		ORDER BY q.id
	`, expertID)
	if err != nil {
		return nil, translate(err)
	}
	return questions, nil
}
