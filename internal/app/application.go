// Package app wires the domain services over their stores.
package app

import (
	"github.com/webtriad/webtriad/internal/app/services/fooddiary"
	"github.com/webtriad/webtriad/internal/app/services/members"
	"github.com/webtriad/webtriad/internal/app/services/questions"
	"github.com/webtriad/webtriad/internal/app/session"
	"github.com/webtriad/webtriad/internal/app/storage"
	"github.com/webtriad/webtriad/internal/app/storage/memory"
	"github.com/webtriad/webtriad/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Members   storage.MemberStore
	Diary     storage.DiaryStore
	Users     storage.UserStore
	Questions storage.QuestionStore
}

// Application ties the three apps' services together.
type Application struct {
	log *logger.Logger

	Members *members.Service
	Diary   *fooddiary.Service

	// Questions is nil when no session manager was supplied; only the Q&A
	// binary configures one.
	Questions *questions.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, sessions *session.Manager, log *logger.Logger) *Application {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.Members == nil {
		stores.Members = mem
	}
	if stores.Diary == nil {
		stores.Diary = mem
	}
	if stores.Users == nil {
		stores.Users = mem
	}
	if stores.Questions == nil {
		stores.Questions = mem
	}

	a := &Application{
		log:     log,
		Members: members.New(stores.Members, log),
		Diary:   fooddiary.New(stores.Diary, log),
	}
	if sessions != nil {
		a.Questions = questions.New(stores.Users, stores.Questions, sessions, log)
	}
	return a
}
