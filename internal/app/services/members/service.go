// Package members implements the member directory CRUD operations.
package members

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/webtriad/webtriad/internal/app/domain/member"
	"github.com/webtriad/webtriad/internal/app/storage"
	"github.com/webtriad/webtriad/internal/errors"
	"github.com/webtriad/webtriad/pkg/logger"
)

// Service manages member records.
type Service struct {
	store storage.MemberStore
	log   *logger.Logger
}

// New constructs a member service.
func New(store storage.MemberStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("members")
	}
	return &Service{store: store, log: log}
}

// Create inserts a member and returns it with its generated id.
func (s *Service) Create(ctx context.Context, m member.Member) (member.Member, error) {
	if strings.TrimSpace(m.Name) == "" {
		return member.Member{}, errors.BadRequest("name is required")
	}
	if strings.TrimSpace(m.Email) == "" {
		return member.Member{}, errors.BadRequest("email is required")
	}

	created, err := s.store.CreateMember(ctx, m)
	if err != nil {
		return member.Member{}, errors.Internal("create member", err)
	}
	s.log.Infof("member %d created", created.ID)
	return created, nil
}

// Get returns one member by id.
func (s *Service) Get(ctx context.Context, id int64) (member.Member, error) {
	m, err := s.store.GetMember(ctx, id)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return member.Member{}, errors.NotFound("member")
		}
		return member.Member{}, errors.Internal("get member", err)
	}
	return m, nil
}

// List returns all members.
func (s *Service) List(ctx context.Context) ([]member.Member, error) {
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return nil, errors.Internal("list members", err)
	}
	return members, nil
}

// Update replaces all mutable fields of a member.
func (s *Service) Update(ctx context.Context, m member.Member) (member.Member, error) {
	if strings.TrimSpace(m.Name) == "" {
		return member.Member{}, errors.BadRequest("name is required")
	}
	if strings.TrimSpace(m.Email) == "" {
		return member.Member{}, errors.BadRequest("email is required")
	}

	updated, err := s.store.UpdateMember(ctx, m)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return member.Member{}, errors.NotFound("member")
		}
		return member.Member{}, errors.Internal("update member", err)
	}
	s.log.Infof("member %d updated", m.ID)
	return updated, nil
}

// Delete removes a member. Deleting an absent id succeeds.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteMember(ctx, id); err != nil {
		return errors.Internal("delete member", err)
	}
	s.log.Infof("member %d deleted", id)
	return nil
}
