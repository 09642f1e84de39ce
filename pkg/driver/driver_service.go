package driver

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetAll(ctx context.Context, includeInactive bool) ([]Driver, error)
	Get(ctx context.Context, id int) (Driver, error)
	Create(ctx context.Context, driver Driver) (Driver, error)
	Update(ctx context.Context, driver Driver) (bool, error)
	ToggleActive(ctx context.Context, id int) (Driver, error)
	Delete(ctx context.Context, id int) (bool, error)
	// Names returns the roster names the reports are keyed by, sorted by the
	// repository's name ordering.
	Names(ctx context.Context, includeInactive bool) ([]string, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAll(ctx context.Context, includeInactive bool) ([]Driver, error) {
	return s.repo.GetAll(ctx, includeInactive)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Driver, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, driver Driver) (Driver, error) {
	driver.Uid = uuid.NewString()
	id, err := s.repo.Store(ctx, driver)
	if err != nil {
		return Driver{}, err
	}
	driver.ID = id
	return driver, nil
}

func (s *ServiceImpl) Update(ctx context.Context, driver Driver) (bool, error) {
	updated, err := s.repo.Update(ctx, driver)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("driver not updated, probably because it does not exist (%d)", driver.ID)
		return false, fmt.Errorf("driver not updated")
	}
	return true, nil
}

func (s *ServiceImpl) ToggleActive(ctx context.Context, id int) (Driver, error) {
	driver, err := s.repo.Get(ctx, id)
	if err != nil {
		return Driver{}, err
	}
	driver.IsActive = !driver.IsActive
	if _, err := s.repo.SetActive(ctx, id, driver.IsActive); err != nil {
		return Driver{}, err
	}
	return driver, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("driver not deleted, probably because it does not exist (%d)", id)
		return false, fmt.Errorf("driver not deleted")
	}
	return true, nil
}

func (s *ServiceImpl) Names(ctx context.Context, includeInactive bool) ([]string, error) {
	drivers, err := s.repo.GetAll(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to load driver roster: %w", err)
	}
	names := make([]string, 0, len(drivers))
	for _, d := range drivers {
		names = append(names, d.Name)
	}
	return names, nil
}
