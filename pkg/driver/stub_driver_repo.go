package driver

import (
	"context"
	"sort"
)

// StubRepo is an in-memory Repo for tests.
type StubRepo struct {
	drivers map[int]Driver
	nextID  int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{drivers: make(map[int]Driver), nextID: 1}
}

func (s *StubRepo) Store(ctx context.Context, driver Driver) (int, error) {
	driver.ID = s.nextID
	s.nextID++
	s.drivers[driver.ID] = driver
	return driver.ID, nil
}

func (s *StubRepo) Get(ctx context.Context, id int) (Driver, error) {
	driver, ok := s.drivers[id]
	if !ok {
		return Driver{}, ErrDriverNotFound
	}
	return driver, nil
}

func (s *StubRepo) GetAll(ctx context.Context, includeInactive bool) ([]Driver, error) {
	var drivers []Driver
	for _, d := range s.drivers {
		if d.IsActive || includeInactive {
			drivers = append(drivers, d)
		}
	}
	sort.Slice(drivers, func(i, j int) bool { return drivers[i].Name < drivers[j].Name })
	return drivers, nil
}

func (s *StubRepo) Update(ctx context.Context, driver Driver) (bool, error) {
	if _, ok := s.drivers[driver.ID]; !ok {
		return false, nil
	}
	s.drivers[driver.ID] = driver
	return true, nil
}

func (s *StubRepo) SetActive(ctx context.Context, id int, active bool) (bool, error) {
	driver, ok := s.drivers[id]
	if !ok {
		return false, nil
	}
	driver.IsActive = active
	s.drivers[id] = driver
	return true, nil
}

func (s *StubRepo) Delete(ctx context.Context, id int) (bool, error) {
	if _, ok := s.drivers[id]; !ok {
		return false, nil
	}
	delete(s.drivers, id)
	return true, nil
}

func (s *StubRepo) Reset() {
	s.drivers = make(map[int]Driver)
	s.nextID = 1
}
