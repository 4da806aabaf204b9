package storage

import (
	"context"
	"errors"

	"github.com/webtriad/webtriad/internal/app/domain/diary"
	"github.com/webtriad/webtriad/internal/app/domain/member"
	"github.com/webtriad/webtriad/internal/app/domain/qna"
)

// ErrNotFound is returned by Get operations when no row matches.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when an insert violates a uniqueness constraint.
var ErrConflict = errors.New("record already exists")

// MemberStore persists member records.
type MemberStore interface {
	CreateMember(ctx context.Context, m member.Member) (member.Member, error)
	UpdateMember(ctx context.Context, m member.Member) (member.Member, error)
	GetMember(ctx context.Context, id int64) (member.Member, error)
	ListMembers(ctx context.Context) ([]member.Member, error)
	// DeleteMember succeeds even when the id does not exist.
	DeleteMember(ctx context.Context, id int64) error
}

// DiaryStore persists logged days, foods, and their associations.
type DiaryStore interface {
	// UpsertLogDate inserts the day or returns the existing row for the same
	// entry date. entry_date carries a uniqueness constraint.
	UpsertLogDate(ctx context.Context, entryDate string) (diary.LogDate, error)
	GetLogDateByEntry(ctx context.Context, entryDate string) (diary.LogDate, error)
	ListDaySummaries(ctx context.Context) ([]diary.DaySummary, error)

	CreateFood(ctx context.Context, f diary.Food) (diary.Food, error)
	GetFood(ctx context.Context, id int64) (diary.Food, error)
	ListFoods(ctx context.Context) ([]diary.Food, error)

	AddFoodToDay(ctx context.Context, logDateID, foodID int64) error
	ListFoodsForDay(ctx context.Context, logDateID int64) ([]diary.Food, error)
}

// UserStore persists Q&A user accounts.
type UserStore interface {
	// CreateUser fails with ErrConflict when the name is taken.
	CreateUser(ctx context.Context, u qna.User) (qna.User, error)
	GetUser(ctx context.Context, id int64) (qna.User, error)
	GetUserByName(ctx context.Context, name string) (qna.User, error)
	ListUsers(ctx context.Context) ([]qna.User, error)
	SetExpert(ctx context.Context, id int64, expert bool) error
	// SetAdmin is an operator bootstrap operation; there is no HTTP surface
	// that grants the admin flag.
	SetAdmin(ctx context.Context, id int64, admin bool) error
}

// QuestionStore persists questions and answers.
type QuestionStore interface {
	CreateQuestion(ctx context.Context, q qna.Question) (qna.Question, error)
	GetQuestion(ctx context.Context, id int64) (qna.Question, error)
	AnswerQuestion(ctx context.Context, id int64, answerText string) error
	ListAnswered(ctx context.Context) ([]qna.Question, error)
	ListUnansweredForExpert(ctx context.Context, expertID int64) ([]qna.Question, error)
}
