package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/webtriad/webtriad/internal/app/domain/diary"
	"github.com/webtriad/webtriad/internal/app/domain/member"
	"github.com/webtriad/webtriad/internal/app/domain/qna"
	"github.com/webtriad/webtriad/internal/app/storage"
)

// Store is an in-memory implementation of the storage interfaces. It is safe
// for concurrent use and is primarily intended for tests and local
// development.
type Store struct {
	mu     sync.RWMutex
	nextID int64

	members map[int64]member.Member

	logDates       map[int64]diary.LogDate
	logDateByEntry map[string]int64
	foods          map[int64]diary.Food
	foodDates      map[int64][]int64 // log date id -> food ids, append-only

	users        map[int64]qna.User
	userIDByName map[string]int64
	questions    map[int64]qna.Question
}

var _ storage.MemberStore = (*Store)(nil)
var _ storage.DiaryStore = (*Store)(nil)
var _ storage.UserStore = (*Store)(nil)
var _ storage.QuestionStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextID:         1,
		members:        make(map[int64]member.Member),
		logDates:       make(map[int64]diary.LogDate),
		logDateByEntry: make(map[string]int64),
		foods:          make(map[int64]diary.Food),
		foodDates:      make(map[int64][]int64),
		users:          make(map[int64]qna.User),
		userIDByName:   make(map[string]int64),
		questions:      make(map[int64]qna.Question),
	}
}

func (s *Store) nextIDLocked() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// MemberStore implementation -------------------------------------------------

func (s *Store) CreateMember(_ context.Context, m member.Member) (member.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.nextIDLocked()
	s.members[m.ID] = m
	return m, nil
}

func (s *Store) UpdateMember(_ context.Context, m member.Member) (member.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[m.ID]; !ok {
		return member.Member{}, storage.ErrNotFound
	}
	s.members[m.ID] = m
	return m, nil
}

func (s *Store) GetMember(_ context.Context, id int64) (member.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[id]
	if !ok {
		return member.Member{}, storage.ErrNotFound
	}
	return m, nil
}

func (s *Store) ListMembers(_ context.Context) ([]member.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]member.Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) DeleteMember(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.members, id)
	return nil
}

// DiaryStore implementation --------------------------------------------------

func (s *Store) UpsertLogDate(_ context.Context, entryDate string) (diary.LogDate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.logDateByEntry[entryDate]; ok {
		return s.logDates[id], nil
	}
	ld := diary.LogDate{ID: s.nextIDLocked(), EntryDate: entryDate}
	s.logDates[ld.ID] = ld
	s.logDateByEntry[entryDate] = ld.ID
	return ld, nil
}

func (s *Store) GetLogDateByEntry(_ context.Context, entryDate string) (diary.LogDate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.logDateByEntry[entryDate]
	if !ok {
		return diary.LogDate{}, storage.ErrNotFound
	}
	return s.logDates[id], nil
}

func (s *Store) ListDaySummaries(_ context.Context) ([]diary.DaySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]diary.DaySummary, 0, len(s.logDates))
	for _, ld := range s.logDates {
		summary := diary.DaySummary{LogDate: ld}
		for _, foodID := range s.foodDates[ld.ID] {
			f := s.foods[foodID]
			summary.Protein += f.Protein
			summary.Carbohydrates += f.Carbohydrates
			summary.Fat += f.Fat
			summary.Calories += f.Calories
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryDate > out[j].EntryDate })
	return out, nil
}

func (s *Store) CreateFood(_ context.Context, f diary.Food) (diary.Food, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f.ID = s.nextIDLocked()
	s.foods[f.ID] = f
	return f, nil
}

func (s *Store) GetFood(_ context.Context, id int64) (diary.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.foods[id]
	if !ok {
		return diary.Food{}, storage.ErrNotFound
	}
	return f, nil
}

func (s *Store) ListFoods(_ context.Context) ([]diary.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]diary.Food, 0, len(s.foods))
	for _, f := range s.foods {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) AddFoodToDay(_ context.Context, logDateID, foodID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.logDates[logDateID]; !ok {
		return storage.ErrNotFound
	}
	if _, ok := s.foods[foodID]; !ok {
		return storage.ErrNotFound
	}
	s.foodDates[logDateID] = append(s.foodDates[logDateID], foodID)
	return nil
}

func (s *Store) ListFoodsForDay(_ context.Context, logDateID int64) ([]diary.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.foodDates[logDateID]
	out := make([]diary.Food, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.foods[id])
	}
	return out, nil
}

// UserStore implementation ---------------------------------------------------

func (s *Store) CreateUser(_ context.Context, u qna.User) (qna.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.userIDByName[u.Name]; exists {
		return qna.User{}, storage.ErrConflict
	}
	u.ID = s.nextIDLocked()
	s.users[u.ID] = u
	s.userIDByName[u.Name] = u.ID
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id int64) (qna.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return qna.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByName(_ context.Context, name string) (qna.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.userIDByName[name]
	if !ok {
		return qna.User{}, storage.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) ListUsers(_ context.Context) ([]qna.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]qna.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) SetExpert(_ context.Context, id int64, expert bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.Expert = expert
	s.users[id] = u
	return nil
}

func (s *Store) SetAdmin(_ context.Context, id int64, admin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.Admin = admin
	s.users[id] = u
	return nil
}

// QuestionStore implementation -----------------------------------------------

func (s *Store) CreateQuestion(_ context.Context, q qna.Question) (qna.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q.ID = s.nextIDLocked()
	q.AskedByName = s.users[q.AskedByID].Name
	q.ExpertName = s.users[q.ExpertID].Name
	s.questions[q.ID] = q
	return q, nil
}

func (s *Store) GetQuestion(_ context.Context, id int64) (qna.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.questions[id]
	if !ok {
		return qna.Question{}, storage.ErrNotFound
	}
	return q, nil
}

func (s *Store) AnswerQuestion(_ context.Context, id int64, answerText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[id]
	if !ok {
		return storage.ErrNotFound
	}
	q.AnswerText = &answerText
	s.questions[id] = q
	return nil
}

func (s *Store) ListAnswered(_ context.Context) ([]qna.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]qna.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if q.Answered() {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListUnansweredForExpert(_ context.Context, expertID int64) ([]qna.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]qna.Question, 0)
	for _, q := range s.questions {
		if !q.Answered() && q.ExpertID == expertID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
