package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/refurbmart/storefront/internal/domain"
	"github.com/refurbmart/storefront/internal/event"
)

// ProductService assembles the product detail view: base product, image set
// and the resolved variant selection.
type ProductService struct {
	catalog Catalog
	events  *event.Producer
	logger  *slog.Logger
}

// NewProductService creates a product detail service. events may be nil.
func NewProductService(catalogClient Catalog, events *event.Producer, logger *slog.Logger) *ProductService {
	return &ProductService{
		catalog: catalogClient,
		events:  events,
		logger:  logger,
	}
}

// GetDetail fetches the product with the given SKU and resolves its variant
// selection. When sel is nil the initial selection is derived from the
// product's pre-selected variant or the first value of each axis. A failed
// image fetch degrades to an empty image set rather than failing the view.
func (s *ProductService) GetDetail(ctx context.Context, sku string, sel *domain.Selection) (*domain.ProductDetail, error) {
	product, err := s.catalog.GetProductBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("fetch product: %w", err)
	}

	selection := domain.InitialSelection(product)
	if sel != nil {
		selection = *sel
	}

	detail := &domain.ProductDetail{
		Product:    *product,
		Images:     s.fetchImages(ctx, product.ID),
		Resolution: domain.ResolveSelection(product, selection),
	}

	s.publishViewed(ctx, detail)

	return detail, nil
}

// fetchImages loads the product's image set, degrading to nil on failure.
func (s *ProductService) fetchImages(ctx context.Context, productID int64) []domain.Image {
	images, err := s.catalog.GetProductImages(ctx, productID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to fetch product images",
			slog.Int64("product_id", productID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return images
}

func (s *ProductService) publishViewed(ctx context.Context, detail *domain.ProductDetail) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishProductViewed(ctx, detail); err != nil {
		s.logger.WarnContext(ctx, "failed to publish product.viewed event",
			slog.Int64("product_id", detail.ID),
			slog.String("error", err.Error()),
		)
	}
}
