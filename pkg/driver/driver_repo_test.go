package driver

import (
	"context"
	"testing"

	"github.com/fahrzeit/fahrzeit/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoImpl(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	max := Driver{
		Uid:        "uid-max",
		Name:       "Max",
		EmployeeID: "1001",
		Role:       "Fahrer",
		Contract:   "Vollzeit",
		Schedule:   "Mo-Fr",
		Pay:        17.5,
		IsActive:   true,
	}

	t.Run("Store and Get", func(t *testing.T) {
		// when
		id, err := repo.Store(ctx, max)

		// then
		require.NoError(t, err)
		assert.Greater(t, id, 0)

		stored, err := repo.Get(ctx, id)
		require.NoError(t, err)
		max.ID = id
		assert.Equal(t, max, stored)
	})

	t.Run("Get missing driver", func(t *testing.T) {
		_, err := repo.Get(ctx, 99999)

		assert.ErrorIs(t, err, ErrDriverNotFound)
	})

	t.Run("GetAll filters inactive drivers", func(t *testing.T) {
		inactive := Driver{Uid: "uid-moritz", Name: "Moritz", IsActive: false}
		_, err := repo.Store(ctx, inactive)
		require.NoError(t, err)

		active, err := repo.GetAll(ctx, false)
		require.NoError(t, err)
		all, err := repo.GetAll(ctx, true)
		require.NoError(t, err)

		assert.Len(t, active, 1)
		assert.Equal(t, "Max", active[0].Name)
		assert.Len(t, all, 2)
	})

	t.Run("GetAll orders by name", func(t *testing.T) {
		all, err := repo.GetAll(ctx, true)

		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Max", all[0].Name)
		assert.Equal(t, "Moritz", all[1].Name)
	})

	t.Run("Update", func(t *testing.T) {
		updated := max
		updated.Role = "Disponent"
		updated.Pay = 19.0

		ok, err := repo.Update(ctx, updated)

		require.NoError(t, err)
		assert.True(t, ok)

		stored, err := repo.Get(ctx, max.ID)
		require.NoError(t, err)
		assert.Equal(t, "Disponent", stored.Role)
		assert.Equal(t, 19.0, stored.Pay)
	})

	t.Run("Update missing driver", func(t *testing.T) {
		missing := max
		missing.ID = 99999

		ok, err := repo.Update(ctx, missing)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("SetActive", func(t *testing.T) {
		ok, err := repo.SetActive(ctx, max.ID, false)

		require.NoError(t, err)
		assert.True(t, ok)

		stored, err := repo.Get(ctx, max.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsActive)
	})

	t.Run("Delete", func(t *testing.T) {
		ok, err := repo.Delete(ctx, max.ID)

		require.NoError(t, err)
		assert.True(t, ok)

		_, err = repo.Get(ctx, max.ID)
		assert.ErrorIs(t, err, ErrDriverNotFound)
	})

	t.Run("Delete missing driver", func(t *testing.T) {
		ok, err := repo.Delete(ctx, 99999)

		require.NoError(t, err)
		assert.False(t, ok)
	})
}
