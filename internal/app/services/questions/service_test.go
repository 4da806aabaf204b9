package questions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/webtriad/webtriad/internal/app/domain/qna"
	"github.com/webtriad/webtriad/internal/app/session"
	"github.com/webtriad/webtriad/internal/app/storage/memory"
	"github.com/webtriad/webtriad/internal/errors"
)

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	sessions, err := session.NewManager("test-signing-key", time.Hour)
	require.NoError(t, err)
	return New(store, store, sessions, nil), store
}

func TestRegisterEstablishesSession(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	actor, token, err := svc.Register(ctx, "alice", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "alice", actor.Name)
	require.False(t, actor.Expert)
	require.False(t, actor.Admin)

	resolved, err := svc.ResolveActor(ctx, token)
	require.NoError(t, err)
	require.Equal(t, actor, resolved)
}

func TestRegisterDuplicateNameIsConflict(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, firstToken, err := svc.Register(ctx, "alice", "hunter2")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "alice", "other")
	require.True(t, errors.IsCode(err, errors.CodeConflict))

	// The first registration's session is unaffected by the failed second.
	resolved, err := svc.ResolveActor(ctx, firstToken)
	require.NoError(t, err)
	require.Equal(t, "alice", resolved.Name)
}

func TestLoginErrorTaxonomy(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice", "hunter2")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "nobody", "hunter2")
	require.True(t, errors.IsCode(err, errors.CodeNotFound))

	_, _, err = svc.Login(ctx, "alice", "wrong")
	require.True(t, errors.IsCode(err, errors.CodeInvalidCredential))

	actor, token, err := svc.Login(ctx, "alice", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "alice", actor.Name)

	resolved, err := svc.ResolveActor(ctx, token)
	require.NoError(t, err)
	require.Equal(t, actor.ID, resolved.ID)
}

func TestResolveActorRereadsRoleFlags(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	actor, token, err := svc.Register(ctx, "alice", "hunter2")
	require.NoError(t, err)
	require.False(t, actor.Expert)

	// Promotion lands on the existing session because identity is re-read
	// from storage on every request.
	require.NoError(t, store.SetExpert(ctx, actor.ID, true))

	resolved, err := svc.ResolveActor(ctx, token)
	require.NoError(t, err)
	require.True(t, resolved.Expert)
}

func TestResolveActorRejectsGarbage(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.ResolveActor(context.Background(), "bogus")
	require.True(t, errors.IsCode(err, errors.CodeUnauthorized))
}

func registerExpert(t *testing.T, svc *Service, store *memory.Store, name string) qna.Actor {
	t.Helper()
	ctx := context.Background()
	actor, _, err := svc.Register(ctx, name, "password")
	require.NoError(t, err)
	require.NoError(t, store.SetExpert(ctx, actor.ID, true))
	actor.Expert = true
	return actor
}

func TestAskAndAnswerLifecycle(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	asker, _, err := svc.Register(ctx, "asker", "password")
	require.NoError(t, err)
	expert := registerExpert(t, svc, store, "expert")

	q, err := svc.Ask(ctx, asker, "Why is the sky blue?", expert.ID)
	require.NoError(t, err)
	require.False(t, q.Answered())

	open, err := svc.Unanswered(ctx, expert)
	require.NoError(t, err)
	require.Len(t, open, 1)
	require.Equal(t, q.ID, open[0].ID)

	require.NoError(t, svc.Answer(ctx, expert, q.ID, "Rayleigh scattering."))

	answered, err := svc.Answered(ctx)
	require.NoError(t, err)
	require.Len(t, answered, 1)
	require.True(t, answered[0].Answered())

	open, err = svc.Unanswered(ctx, expert)
	require.NoError(t, err)
	require.Empty(t, open)
}

func TestAnswerRestrictedToAssignedExpert(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	asker, _, err := svc.Register(ctx, "asker", "password")
	require.NoError(t, err)
	assigned := registerExpert(t, svc, store, "assigned")
	other := registerExpert(t, svc, store, "other")

	q, err := svc.Ask(ctx, asker, "Why is the sky blue?", assigned.ID)
	require.NoError(t, err)

	err = svc.Answer(ctx, other, q.ID, "Mine now.")
	require.True(t, errors.IsCode(err, errors.CodeUnauthorized))

	got, err := svc.GetQuestion(ctx, q.ID)
	require.NoError(t, err)
	require.False(t, got.Answered())
}

func TestUnansweredScopedToAssignedExpert(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	asker, _, err := svc.Register(ctx, "asker", "password")
	require.NoError(t, err)
	first := registerExpert(t, svc, store, "first")
	second := registerExpert(t, svc, store, "second")

	_, err = svc.Ask(ctx, asker, "For the first expert", first.ID)
	require.NoError(t, err)
	_, err = svc.Ask(ctx, asker, "For the second expert", second.ID)
	require.NoError(t, err)

	open, err := svc.Unanswered(ctx, first)
	require.NoError(t, err)
	require.Len(t, open, 1)
	require.Equal(t, "For the first expert", open[0].QuestionText)
}

func TestAskRejectsNonExpertTarget(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	asker, _, err := svc.Register(ctx, "asker", "password")
	require.NoError(t, err)
	plain, _, err := svc.Register(ctx, "plain", "password")
	require.NoError(t, err)

	_, err = svc.Ask(ctx, asker, "Anyone home?", plain.ID)
	require.True(t, errors.IsCode(err, errors.CodeBadRequest))
}

func TestPromoteTouchesOneFlagOfOneRow(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	target, _, err := svc.Register(ctx, "target", "password")
	require.NoError(t, err)
	bystander, _, err := svc.Register(ctx, "bystander", "password")
	require.NoError(t, err)

	require.NoError(t, svc.Promote(ctx, target.ID))

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	for _, u := range users {
		switch u.ID {
		case target.ID:
			require.True(t, u.Expert)
			require.False(t, u.Admin)
		case bystander.ID:
			require.False(t, u.Expert)
			require.False(t, u.Admin)
		}
	}

	experts, err := svc.Experts(ctx)
	require.NoError(t, err)
	require.Len(t, experts, 1)
	require.Equal(t, target.ID, experts[0].ID)
}

func TestPromoteMissingUserIsNotFound(t *testing.T) {
	svc, _ := newService(t)

	err := svc.Promote(context.Background(), 404)
	require.True(t, errors.IsCode(err, errors.CodeNotFound))
}
