package driver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceImpl_Create(t *testing.T) {
	repo := NewStubRepo()
	service := NewService(repo)

	created, err := service.Create(context.Background(), Driver{Name: "Max", IsActive: true})

	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.NotEmpty(t, created.Uid)
	assert.Equal(t, "Max", created.Name)
}

func TestServiceImpl_Update_missingDriver(t *testing.T) {
	service := NewService(NewStubRepo())

	ok, err := service.Update(context.Background(), Driver{ID: 42, Name: "Max"})

	assert.False(t, ok)
	assert.Error(t, err)
}

func TestServiceImpl_ToggleActive(t *testing.T) {
	repo := NewStubRepo()
	service := NewService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, Driver{Name: "Max", IsActive: true})
	require.NoError(t, err)

	toggled, err := service.ToggleActive(ctx, created.ID)

	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	stored, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestServiceImpl_Delete_missingDriver(t *testing.T) {
	service := NewService(NewStubRepo())

	ok, err := service.Delete(context.Background(), 42)

	assert.False(t, ok)
	assert.Error(t, err)
}

func TestServiceImpl_Names(t *testing.T) {
	repo := NewStubRepo()
	service := NewService(repo)
	ctx := context.Background()

	_, err := service.Create(ctx, Driver{Name: "Moritz", IsActive: true})
	require.NoError(t, err)
	_, err = service.Create(ctx, Driver{Name: "Max", IsActive: true})
	require.NoError(t, err)
	_, err = service.Create(ctx, Driver{Name: "Paul", IsActive: false})
	require.NoError(t, err)

	active, err := service.Names(ctx, false)
	require.NoError(t, err)
	all, err := service.Names(ctx, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"Max", "Moritz"}, active)
	assert.Equal(t, []string{"Max", "Moritz", "Paul"}, all)
}
