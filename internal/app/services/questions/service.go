// Package questions implements the Q&A workflows: registration, login,
// session-derived actor resolution, and the question/answer lifecycle.
package questions

import (
	"context"
	stderrors "errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/webtriad/webtriad/internal/app/domain/qna"
	"github.com/webtriad/webtriad/internal/app/session"
	"github.com/webtriad/webtriad/internal/app/storage"
	"github.com/webtriad/webtriad/internal/errors"
	"github.com/webtriad/webtriad/pkg/logger"
)

// Service manages users, sessions, and questions.
type Service struct {
	users     storage.UserStore
	questions storage.QuestionStore
	sessions  *session.Manager
	log       *logger.Logger
}

// New constructs a Q&A service.
func New(users storage.UserStore, questions storage.QuestionStore, sessions *session.Manager, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("questions")
	}
	return &Service{users: users, questions: questions, sessions: sessions, log: log}
}

// Register creates a user with both role flags off, hashes the password, and
// establishes a session. A taken name fails with Conflict; the insert is
// atomic against the uniqueness constraint, not check-then-act.
func (s *Service) Register(ctx context.Context, name, password string) (qna.Actor, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return qna.Actor{}, "", errors.BadRequest("name is required")
	}
	if password == "" {
		return qna.Actor{}, "", errors.BadRequest("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return qna.Actor{}, "", errors.Internal("hash password", err)
	}

	created, err := s.users.CreateUser(ctx, qna.User{Name: name, PasswordHash: string(hash)})
	if err != nil {
		if stderrors.Is(err, storage.ErrConflict) {
			return qna.Actor{}, "", errors.Conflict("name is already taken")
		}
		return qna.Actor{}, "", errors.Internal("create user", err)
	}

	token, err := s.sessions.Issue(created.Name)
	if err != nil {
		return qna.Actor{}, "", errors.Internal("issue session", err)
	}
	s.log.Infof("user %s registered", created.Name)
	return qna.ActorFromUser(created), token, nil
}

// Login verifies credentials and establishes a session. An unknown name is
// NotFound; a hash mismatch is InvalidCredential.
func (s *Service) Login(ctx context.Context, name, password string) (qna.Actor, string, error) {
	u, err := s.users.GetUserByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return qna.Actor{}, "", errors.NotFound("user")
		}
		return qna.Actor{}, "", errors.Internal("get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return qna.Actor{}, "", errors.InvalidCredential()
	}

	token, err := s.sessions.Issue(u.Name)
	if err != nil {
		return qna.Actor{}, "", errors.Internal("issue session", err)
	}
	s.log.Infof("user %s logged in", u.Name)
	return qna.ActorFromUser(u), token, nil
}

// ResolveActor verifies a session token and re-reads the user row, so role
// changes take effect on the next request rather than living in the token.
func (s *Service) ResolveActor(ctx context.Context, token string) (qna.Actor, error) {
	name, err := s.sessions.Verify(token)
	if err != nil {
		return qna.Actor{}, errors.Unauthorized("invalid session")
	}
	u, err := s.users.GetUserByName(ctx, name)
	if err != nil {
		return qna.Actor{}, errors.Unauthorized("unknown session user")
	}
	return qna.ActorFromUser(u), nil
}

// Ask records a question from the actor assigned to the chosen expert.
func (s *Service) Ask(ctx context.Context, actor qna.Actor, questionText string, expertID int64) (qna.Question, error) {
	questionText = strings.TrimSpace(questionText)
	if questionText == "" {
		return qna.Question{}, errors.BadRequest("question text is required")
	}

	expert, err := s.users.GetUser(ctx, expertID)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return qna.Question{}, errors.NotFound("expert")
		}
		return qna.Question{}, errors.Internal("get expert", err)
	}
	if !expert.Expert {
		return qna.Question{}, errors.BadRequest("chosen user is not an expert")
	}

	created, err := s.questions.CreateQuestion(ctx, qna.Question{
		QuestionText: questionText,
		AskedByID:    actor.ID,
		ExpertID:     expert.ID,
	})
	if err != nil {
		return qna.Question{}, errors.Internal("create question", err)
	}
	s.log.Infof("question %d asked by %s", created.ID, actor.Name)
	return created, nil
}

// Answer stores the answer text. Only the assigned expert may answer, which
// keeps the write path consistent with the Unanswered listing scope.
func (s *Service) Answer(ctx context.Context, actor qna.Actor, questionID int64, answerText string) error {
	answerText = strings.TrimSpace(answerText)
	if answerText == "" {
		return errors.BadRequest("answer text is required")
	}

	q, err := s.GetQuestion(ctx, questionID)
	if err != nil {
		return err
	}
	if q.ExpertID != actor.ID {
		return errors.Unauthorized("question is assigned to another expert")
	}

	if err := s.questions.AnswerQuestion(ctx, questionID, answerText); err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return errors.NotFound("question")
		}
		return errors.Internal("answer question", err)
	}
	s.log.Infof("question %d answered by %s", questionID, actor.Name)
	return nil
}

// GetQuestion returns one question with its participant names.
func (s *Service) GetQuestion(ctx context.Context, id int64) (qna.Question, error) {
	q, err := s.questions.GetQuestion(ctx, id)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return qna.Question{}, errors.NotFound("question")
		}
		return qna.Question{}, errors.Internal("get question", err)
	}
	return q, nil
}

// Answered returns all answered questions for the home page.
func (s *Service) Answered(ctx context.Context) ([]qna.Question, error) {
	questions, err := s.questions.ListAnswered(ctx)
	if err != nil {
		return nil, errors.Internal("list answered questions", err)
	}
	return questions, nil
}

// Unanswered returns the open questions assigned to the acting expert.
func (s *Service) Unanswered(ctx context.Context, actor qna.Actor) ([]qna.Question, error) {
	questions, err := s.questions.ListUnansweredForExpert(ctx, actor.ID)
	if err != nil {
		return nil, errors.Internal("list unanswered questions", err)
	}
	return questions, nil
}

// Users returns all registered users.
func (s *Service) Users(ctx context.Context) ([]qna.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, errors.Internal("list users", err)
	}
	return users, nil
}

// Experts returns the users available as ask targets.
func (s *Service) Experts(ctx context.Context) ([]qna.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, errors.Internal("list users", err)
	}
	experts := make([]qna.User, 0, len(users))
	for _, u := range users {
		if u.Expert {
			experts = append(experts, u)
		}
	}
	return experts, nil
}

// Promote sets exactly the target user's expert flag. The admin flag and
// every other row are untouched; there is no demotion path.
func (s *Service) Promote(ctx context.Context, userID int64) error {
	if err := s.users.SetExpert(ctx, userID, true); err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return errors.NotFound("user")
		}
		return errors.Internal("promote user", err)
	}
	s.log.Infof("user %d promoted to expert", userID)
	return nil
}
