package services

import (
	"context"

	"github.com/cooooin/harmony/internal/models"
	repo "github.com/cooooin/harmony/internal/repository"
)

type ObjectService struct {
	objects repo.Objects
	auditor *Auditor
}

func NewObjectService(objects repo.Objects, auditor *Auditor) *ObjectService {
	return &ObjectService{objects: objects, auditor: auditor}
}

func (s *ObjectService) Create(ctx context.Context, o models.Object) (models.Object, error) {
	out, err := s.objects.Create(ctx, o)
	observe("object", "create", err)
	if err != nil {
		return models.Object{}, err
	}
	s.auditor.Record("object", out.ID, "create", out.Owner)
	return out, nil
}

func (s *ObjectService) Get(ctx context.Context, id, owner int64) (models.Object, error) {
	return s.objects.Get(ctx, id, owner)
}

func (s *ObjectService) List(ctx context.Context, owner int64, limit, offset int) ([]models.Object, int64, error) {
	return s.objects.List(ctx, owner, limit, offset)
}

func (s *ObjectService) Update(ctx context.Context, id, owner int64, ch repo.ObjectChanges, expectedVersion int64) (models.Object, error) {
	out, err := s.objects.Update(ctx, id, owner, ch, expectedVersion)
	observe("object", "update", err)
	if err != nil {
		return models.Object{}, err
	}
	s.auditor.Record("object", id, "update", owner)
	return out, nil
}

func (s *ObjectService) Delete(ctx context.Context, id, owner int64) (models.Object, error) {
	out, err := s.objects.Delete(ctx, id, owner)
	observe("object", "delete", err)
	if err != nil {
		return models.Object{}, err
	}
	s.auditor.Record("object", id, "delete", owner)
	return out, nil
}
