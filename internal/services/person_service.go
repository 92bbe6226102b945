package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cooooin/harmony/internal/auth"
	"github.com/cooooin/harmony/internal/models"
	repo "github.com/cooooin/harmony/internal/repository"
)

type PersonService struct {
	persons repo.Persons
	tm      *auth.TokenManager
	auditor *Auditor
}

func NewPersonService(persons repo.Persons, tm *auth.TokenManager, auditor *Auditor) *PersonService {
	return &PersonService{persons: persons, tm: tm, auditor: auditor}
}

// Register creates the person and signs their first claim in one go.
func (s *PersonService) Register(ctx context.Context, nickname, password string) (models.Person, string, time.Time, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.Person{}, "", time.Time{}, err
	}
	p, err := s.persons.Create(ctx, strings.TrimSpace(nickname), hash)
	observe("person", "register", err)
	if err != nil {
		return models.Person{}, "", time.Time{}, err
	}
	claim, expiry, err := s.tm.Issue(p.ID)
	if err != nil {
		return models.Person{}, "", time.Time{}, err
	}
	s.auditor.Record("person", p.ID, "register", p.ID)
	return p, claim, expiry, nil
}

// Claim verifies the password and signs a fresh claim. A missing nickname
// and a wrong password are indistinguishable to the caller, and both cost
// one hash comparison.
func (s *PersonService) Claim(ctx context.Context, nickname, password string) (string, time.Time, error) {
	p, err := s.persons.GetByNickname(ctx, strings.TrimSpace(nickname))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			auth.CompareDummy(password)
			return "", time.Time{}, fmt.Errorf("bad credentials: %w", models.ErrUnauthorized)
		}
		return "", time.Time{}, err
	}
	if err := auth.VerifyPassword(password, p.PasswordHash); err != nil {
		return "", time.Time{}, fmt.Errorf("bad credentials: %w", models.ErrUnauthorized)
	}
	observe("person", "claim", nil)
	return s.tm.Issue(p.ID)
}

func (s *PersonService) Get(ctx context.Context, id int64) (models.Person, error) {
	return s.persons.GetByID(ctx, id)
}

// Update changes the nickname, the password or both. A new password is
// rehashed before it touches the store.
func (s *PersonService) Update(ctx context.Context, id int64, nickname, password *string, expectedVersion int64) (models.Person, error) {
	ch := repo.PersonChanges{Nickname: nickname}
	if password != nil {
		hash, err := auth.HashPassword(*password)
		if err != nil {
			return models.Person{}, err
		}
		ch.PasswordHash = &hash
	}
	p, err := s.persons.Update(ctx, id, ch, expectedVersion)
	observe("person", "update", err)
	if err != nil {
		return models.Person{}, err
	}
	s.auditor.Record("person", id, "update", id)
	return p, nil
}
