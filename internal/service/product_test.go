package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/refurbmart/storefront/internal/domain"
	apperrors "github.com/refurbmart/storefront/pkg/errors"
)

func testProductWithVariants() *domain.Product {
	ram16 := 16
	ram8 := 8
	price512 := int64(45999)
	price256 := int64(42000)
	mrp := int64(64999)
	return &domain.Product{
		ID:      7,
		SKU:     "HP-840-G8",
		Brand:   "HP",
		Price:   42000,
		MRP:     &mrp,
		Color:   "Silver",
		RAMGb:   &ram8,
		Storage: "256GB",
		InStock: true,
		Variants: []domain.Variant{
			{ID: 71, SKU: "HP-840-G8-256", Price: &price256, Attributes: domain.VariantAttributes{Color: "Silver", RAMGb: &ram8, Storage: "256GB"}},
			{ID: 72, SKU: "HP-840-G8-512", Price: &price512, Attributes: domain.VariantAttributes{Color: "Silver", RAMGb: &ram16, Storage: "512GB"}},
		},
	}
}

func TestGetDetail_InitialSelection(t *testing.T) {
	cat := new(mockCatalog)
	product := testProductWithVariants()

	cat.On("GetProductBySKU", mock.Anything, product.SKU).Return(product, nil).Once()
	cat.On("GetProductImages", mock.Anything, product.ID).
		Return([]domain.Image{{ID: 1, URL: "https://img/1", IsPrimary: true}}, nil).Once()

	svc := NewProductService(cat, nil, newTestLogger())

	detail, err := svc.GetDetail(context.Background(), product.SKU, nil)

	require.NoError(t, err)
	assert.Equal(t, product.ID, detail.ID)
	require.Len(t, detail.Images, 1)
	// No explicit selection, so the first value per axis is selected and the
	// first matching variant resolves.
	require.NotNil(t, detail.Resolution.SelectedVariant)
	assert.Equal(t, int64(71), detail.Resolution.SelectedVariant.ID)
	require.NotNil(t, detail.Resolution.Effective.Price)
	assert.Equal(t, int64(42000), *detail.Resolution.Effective.Price)
}

func TestGetDetail_ExplicitSelection(t *testing.T) {
	cat := new(mockCatalog)
	product := testProductWithVariants()

	cat.On("GetProductBySKU", mock.Anything, product.SKU).Return(product, nil).Once()
	cat.On("GetProductImages", mock.Anything, product.ID).Return([]domain.Image{}, nil).Once()

	svc := NewProductService(cat, nil, newTestLogger())

	ram := 16
	sel := &domain.Selection{RAMGb: &ram}
	detail, err := svc.GetDetail(context.Background(), product.SKU, sel)

	require.NoError(t, err)
	require.NotNil(t, detail.Resolution.SelectedVariant)
	assert.Equal(t, int64(72), detail.Resolution.SelectedVariant.ID)
	require.NotNil(t, detail.Resolution.Effective.Price)
	assert.Equal(t, int64(45999), *detail.Resolution.Effective.Price)
	require.NotNil(t, detail.Resolution.DiscountPercent)
	assert.Equal(t, 29, *detail.Resolution.DiscountPercent)
}

func TestGetDetail_ImageFailureDegrades(t *testing.T) {
	cat := new(mockCatalog)
	product := testProductWithVariants()

	cat.On("GetProductBySKU", mock.Anything, product.SKU).Return(product, nil).Once()
	cat.On("GetProductImages", mock.Anything, product.ID).
		Return(nil, errors.New("image service down")).Once()

	svc := NewProductService(cat, nil, newTestLogger())

	detail, err := svc.GetDetail(context.Background(), product.SKU, nil)

	require.NoError(t, err)
	assert.Empty(t, detail.Images)
}

func TestGetDetail_ProductNotFound(t *testing.T) {
	cat := new(mockCatalog)

	cat.On("GetProductBySKU", mock.Anything, "MISSING").
		Return(nil, apperrors.NotFound("product", "MISSING")).Once()

	svc := NewProductService(cat, nil, newTestLogger())

	_, err := svc.GetDetail(context.Background(), "MISSING", nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
