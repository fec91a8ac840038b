package usecase

import (
	"context"
	"testing"

	"github.com/DRSN-tech/autovarka/internal/domain"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/DRSN-tech/autovarka/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductUC(images ImagesInfra) (*ProductUseCase, ProductRepository) {
	repo := newProductStore()
	return NewProductUC(repo, images, NewValidator(), logger.Nop{}), repo
}

func productInput(name string) *ProductInput {
	return &ProductInput{
		Name:        name,
		NameEn:      "Car multicooker 24V",
		Price:       decimal.NewFromInt(1800),
		Description: "Опис",
		Images:      []string{"https://cdn.example.com/products/a.jpg"},
		InStock:     true,
	}
}

func TestProductUseCase_CreateSlugAndSuffix(t *testing.T) {
	ctx := context.Background()
	uc, _ := newProductUC(nil)

	first, err := uc.Create(ctx, productInput("Мультиварка 24V"))
	require.NoError(t, err)
	assert.Equal(t, "multyvarka-24v", first.ID)

	second, err := uc.Create(ctx, productInput("Мультиварка 24V"))
	require.NoError(t, err)
	assert.Equal(t, "multyvarka-24v-1", second.ID)

	third, err := uc.Create(ctx, productInput("Мультиварка 24V"))
	require.NoError(t, err)
	assert.Equal(t, "multyvarka-24v-2", third.ID)

	symbols, err := uc.Create(ctx, productInput("!!!"))
	require.NoError(t, err)
	assert.Equal(t, "product", symbols.ID)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4)
}

func TestProductUseCase_CreateFallbackTranslations(t *testing.T) {
	uc, _ := newProductUC(nil)

	p, err := uc.Create(context.Background(), productInput("Чайник"))
	require.NoError(t, err)

	assert.Equal(t, "Чайник", p.NamePl)
	assert.Equal(t, "Чайник", p.NameDe)
	assert.Equal(t, "Опис", p.DescriptionPl)
	assert.Equal(t, "Опис", p.DescriptionDe)
	assert.Empty(t, p.NameRu)
}

func TestProductUseCase_CreateValidation(t *testing.T) {
	uc, repo := newProductUC(nil)

	in := productInput("")
	_, err := uc.Create(context.Background(), in)
	require.ErrorIs(t, err, e.ErrValidation)
	assert.Equal(t, "name", e.FieldOf(err))

	in = productInput("Чайник")
	in.Price = decimal.NewFromInt(-5)
	_, err = uc.Create(context.Background(), in)
	require.ErrorIs(t, err, e.ErrValidation)
	assert.Equal(t, "price", e.FieldOf(err))

	list, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductUseCase_UpdateKeepsID(t *testing.T) {
	ctx := context.Background()
	uc, _ := newProductUC(nil)

	created, err := uc.Create(ctx, productInput("Мультиварка 24V"))
	require.NoError(t, err)

	newName := "Мультиварка 12V"
	price := decimal.NewFromInt(1500)
	featured := true
	updated, err := uc.Update(ctx, created.ID, &ProductPatch{Name: &newName, Price: &price, Featured: &featured})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, newName, updated.Name)
	assert.True(t, price.Equal(updated.Price))
	assert.True(t, updated.Featured)
	assert.Equal(t, created.NameEn, updated.NameEn, "fields absent from the patch are kept")
	assert.Equal(t, created.Images, updated.Images)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, newName, got.Name)
}

func TestProductUseCase_UpdateOldPrice(t *testing.T) {
	ctx := context.Background()
	uc, _ := newProductUC(nil)

	created, err := uc.Create(ctx, productInput("Чайник"))
	require.NoError(t, err)

	old := decimal.NewFromInt(2000)
	updated, err := uc.Update(ctx, created.ID, &ProductPatch{OldPrice: &old})
	require.NoError(t, err)
	require.NotNil(t, updated.OldPrice)
	assert.True(t, old.Equal(*updated.OldPrice))

	updated, err = uc.Update(ctx, created.ID, &ProductPatch{ClearOldPrice: true})
	require.NoError(t, err)
	assert.Nil(t, updated.OldPrice)
}

func TestProductUseCase_UpdateNotFound(t *testing.T) {
	uc, _ := newProductUC(nil)

	name := "x"
	_, err := uc.Update(context.Background(), "missing", &ProductPatch{Name: &name})
	require.ErrorIs(t, err, e.ErrNotFound)

	empty := ""
	_, err = uc.Update(context.Background(), "missing", &ProductPatch{Name: &empty})
	require.ErrorIs(t, err, e.ErrValidation)
}

func TestProductUseCase_DeleteCleansImages(t *testing.T) {
	ctx := context.Background()
	images := &fakeImages{}
	uc, _ := newProductUC(images)

	created, err := uc.Create(ctx, productInput("Чайник"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, productInput("Мультиварка"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))
	require.ErrorIs(t, uc.Delete(ctx, created.ID), e.ErrNotFound)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "multyvarka", list[0].ID)

	require.Len(t, images.cleaned, 1)
	assert.Equal(t, created.Images, images.cleaned[0])

	_, err = uc.Get(ctx, created.ID)
	require.ErrorIs(t, err, e.ErrNotFound)
}

func TestProductUseCase_Catalog(t *testing.T) {
	ctx := context.Background()
	uc, _ := newProductUC(nil)

	in := productInput("Мультиварка 24V")
	in.Featured = true
	_, err := uc.Create(ctx, in)
	require.NoError(t, err)
	_, err = uc.Create(ctx, productInput("Чайник"))
	require.NoError(t, err)

	views, err := uc.Catalog(ctx, "en", false)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Car multicooker 24V", views[0].Name)
	assert.Equal(t, "en", views[0].Locale)

	featured, err := uc.Catalog(ctx, "ru", true)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Мультиварка 24V", featured[0].Name, "missing translation falls back to the base name")

	fallback, err := uc.Catalog(ctx, "xx", true)
	require.NoError(t, err)
	assert.Equal(t, "uk", fallback[0].Locale)
}

func TestProductUseCase_StorageFailure(t *testing.T) {
	uc := NewProductUC(failingRepo[[]domain.Product]{}, nil, NewValidator(), logger.Nop{})

	_, err := uc.Create(context.Background(), productInput("Чайник"))
	require.Error(t, err)

	_, err = uc.List(context.Background())
	require.Error(t, err)
}
