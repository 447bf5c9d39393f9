package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/whiteslip-api/internal/application/dto"
	"github.com/jhoicas/whiteslip-api/internal/application/usecase"
	"github.com/jhoicas/whiteslip-api/internal/domain"
	"github.com/jhoicas/whiteslip-api/internal/domain/entity"
	"github.com/jhoicas/whiteslip-api/internal/infrastructure/memory"
)

var t0 = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func sampleMenu(price string) dto.PublishMenuRequest {
	return dto.PublishMenuRequest{Categories: []dto.MenuCategoryDTO{
		{Name: "Bebidas", Items: []dto.MenuItemDTO{
			{Name: "Té negro", Price: decimal.RequireFromString(price)},
			{Name: "Café", Price: decimal.RequireFromString("45")},
		}},
	}}
}

func newMenuUseCase() (*usecase.MenuUseCase, *memory.MenuRepo) {
	repo := memory.NewMenuRepo()
	return usecase.NewMenuUseCase(repo, zerolog.Nop()).WithClock(func() time.Time { return t0 }), repo
}

func intPtr(n int) *int { return &n }

func TestMenuPublish_VersionesConsecutivasSinMutar(t *testing.T) {
	uc, repo := newMenuUseCase()
	ctx := context.Background()

	first, err := uc.Publish(ctx, sampleMenu("30"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)

	second, err := uc.Publish(ctx, sampleMenu("35"))
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)

	all := repo.All()
	require.Len(t, all, 2)
	assert.True(t, all[0].Data.Categories[0].Items[0].Price.Equal(decimal.NewFromInt(30)), "la versión 1 queda intacta")
}

func TestMenuPublish_PrimeraViolacion(t *testing.T) {
	uc, _ := newMenuUseCase()
	ctx := context.Background()

	_, err := uc.Publish(ctx, dto.PublishMenuRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "MENU_NO_CATEGORIES", domain.CodeOf(err))

	_, err = uc.Publish(ctx, dto.PublishMenuRequest{Categories: []dto.MenuCategoryDTO{{Name: " "}}})
	assert.Equal(t, "MENU_CATEGORY_NAME", domain.CodeOf(err))

	bad := sampleMenu("0")
	bad.Categories[0].Items[1].Name = ""
	_, err = uc.Publish(ctx, bad)
	assert.Equal(t, "MENU_ITEM_PRICE", domain.CodeOf(err), "el precio del primer producto falla antes")

	_, err = uc.Publish(ctx, sampleMenu("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMenuPublish_ReintentaAnteVersionConcurrente(t *testing.T) {
	uc, repo := newMenuUseCase()
	ctx := context.Background()

	repo.BeforeInsert = func() {
		// Otra instancia publica la versión 1 entre la lectura y el insert.
		require.NoError(t, repo.Insert(ctx, &entity.Menu{Version: 1, LastUpdated: t0}))
	}
	resp, err := uc.Publish(ctx, sampleMenu("30"))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Version)
}

func TestMenuGet_NoModificado(t *testing.T) {
	uc, _ := newMenuUseCase()
	ctx := context.Background()

	_, _, err := uc.Get(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrMenuNotFound)

	for i := 0; i < 3; i++ {
		_, err := uc.Publish(ctx, sampleMenu("30"))
		require.NoError(t, err)
	}

	resp, notModified, err := uc.Get(ctx, intPtr(3))
	require.NoError(t, err)
	assert.True(t, notModified)
	assert.Nil(t, resp)

	resp, notModified, err = uc.Get(ctx, intPtr(2))
	require.NoError(t, err)
	assert.False(t, notModified)
	assert.Equal(t, 3, resp.Version)
	assert.Equal(t, "Bebidas", resp.Categories[0].Name)
}

func TestMenuLatestVersion(t *testing.T) {
	uc, _ := newMenuUseCase()
	ctx := context.Background()

	v, err := uc.LatestVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Version)
	assert.Nil(t, v.LastUpdated)

	_, err = uc.Publish(ctx, sampleMenu("30"))
	require.NoError(t, err)
	v, err = uc.LatestVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Version)
	assert.Equal(t, t0, *v.LastUpdated)
}
