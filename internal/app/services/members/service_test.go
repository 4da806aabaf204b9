package members

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/webtriad/webtriad/internal/app/domain/member"
	"github.com/webtriad/webtriad/internal/app/storage/memory"
	"github.com/webtriad/webtriad/internal/errors"
)

func newService() *Service {
	return New(memory.New(), nil)
}

func TestCreateGetRoundTrip(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, member.Member{Name: "Al", Email: "a@x.com", Level: 3})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestCreateRequiresFields(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, member.Member{Email: "a@x.com", Level: 3})
	require.True(t, errors.IsCode(err, errors.CodeBadRequest))

	_, err = svc.Create(ctx, member.Member{Name: "Al", Level: 3})
	require.True(t, errors.IsCode(err, errors.CodeBadRequest))
}

func TestGetMissingIsNotFound(t *testing.T) {
	svc := newService()

	_, err := svc.Get(context.Background(), 99)
	require.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestUpdateReplacesAllFields(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, member.Member{Name: "Al", Email: "a@x.com", Level: 3})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, member.Member{ID: created.ID, Name: "Alice", Email: "alice@x.com", Level: 5})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, updated, got)
	require.Equal(t, "Alice", got.Name)
	require.Equal(t, 5, got.Level)
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	svc := newService()

	_, err := svc.Update(context.Background(), member.Member{ID: 99, Name: "Al", Email: "a@x.com"})
	require.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, member.Member{Name: "Al", Email: "a@x.com", Level: 3})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	require.True(t, errors.IsCode(err, errors.CodeNotFound))

	// Absent ids delete cleanly, including ones that never existed.
	require.NoError(t, svc.Delete(ctx, created.ID))
	require.NoError(t, svc.Delete(ctx, 12345))
}
