package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/refurbmart/storefront/internal/catalog"
	"github.com/refurbmart/storefront/internal/domain"
	"github.com/refurbmart/storefront/internal/event"
	apperrors "github.com/refurbmart/storefront/pkg/errors"
)

// Relaxation tier names, in the order they are attempted.
const (
	TierStrict     = "strict"
	TierRelaxSpecs = "relax_specs"
	TierRelaxPrice = "relax_price"
	TierBrandOnly  = "brand_only"
)

// Catalog is the subset of the catalog API client the resolvers need.
type Catalog interface {
	FilterProducts(ctx context.Context, params catalog.FilterParams) ([]domain.Product, error)
	GetProductBySKU(ctx context.Context, sku string) (*domain.Product, error)
	GetProductImages(ctx context.Context, productID int64) ([]domain.Image, error)
}

// RelatedCache caches resolved related lists per anchor product.
type RelatedCache interface {
	Get(ctx context.Context, anchorID int64) (*domain.RelatedResult, error)
	Set(ctx context.Context, anchorID int64, result *domain.RelatedResult) error
}

// tierBuilder constructs the filter criteria for one relaxation tier. ok is
// false when the tier cannot be built for this anchor and the whole search
// must be abandoned (only the first builder reports this, when the anchor
// has no brand).
type tierBuilder struct {
	name  string
	build func(anchor *domain.Product) (catalog.FilterParams, bool)
}

// RelatedResolver finds up to RelatedLimit alternatives for an anchor
// product by progressively relaxing filter criteria until enough candidates
// are found.
type RelatedResolver struct {
	catalog Catalog
	cache   RelatedCache
	events  *event.Producer
	logger  *slog.Logger
	tiers   []tierBuilder

	mu          sync.Mutex
	generations map[int64]uint64
}

// NewRelatedResolver creates a related products resolver. cache and events
// may be nil, in which case lookups are always fresh and no analytics
// events are emitted.
func NewRelatedResolver(catalogClient Catalog, cache RelatedCache, events *event.Producer, logger *slog.Logger) *RelatedResolver {
	return &RelatedResolver{
		catalog: catalogClient,
		cache:   cache,
		events:  events,
		logger:  logger,
		tiers: []tierBuilder{
			{name: TierStrict, build: buildStrictTier},
			{name: TierRelaxSpecs, build: buildRelaxSpecsTier},
			{name: TierRelaxPrice, build: buildRelaxPriceTier},
			{name: TierBrandOnly, build: buildBrandOnlyTier},
		},
		generations: make(map[int64]uint64),
	}
}

// buildStrictTier matches the anchor as closely as possible: same brand and
// condition, in stock, priced within the anchor's band, same RAM and storage
// technology.
func buildStrictTier(anchor *domain.Product) (catalog.FilterParams, bool) {
	if anchor.Brand == "" {
		return catalog.FilterParams{}, false
	}

	inStock := true
	params := catalog.FilterParams{
		Page:      1,
		Limit:     domain.RelatedLimit,
		Brand:     anchor.Brand,
		Condition: anchor.Condition,
		InStock:   &inStock,
	}
	if minPrice, maxPrice, ok := domain.PriceBand(anchor.Price); ok {
		params.MinPrice = &minPrice
		params.MaxPrice = &maxPrice
	}
	if anchor.RAMGb != nil {
		ram := *anchor.RAMGb
		params.RAMGb = &ram
	}
	params.Storage = domain.StorageTokens(anchor.Storage)
	return params, true
}

// buildRelaxSpecsTier drops the RAM and storage filters.
func buildRelaxSpecsTier(anchor *domain.Product) (catalog.FilterParams, bool) {
	params, ok := buildStrictTier(anchor)
	if !ok {
		return catalog.FilterParams{}, false
	}
	params.RAMGb = nil
	params.Storage = ""
	return params, true
}

// buildRelaxPriceTier additionally drops the price band.
func buildRelaxPriceTier(anchor *domain.Product) (catalog.FilterParams, bool) {
	params, ok := buildRelaxSpecsTier(anchor)
	if !ok {
		return catalog.FilterParams{}, false
	}
	params.MinPrice = nil
	params.MaxPrice = nil
	return params, true
}

// buildBrandOnlyTier keeps only the brand and stock filters.
func buildBrandOnlyTier(anchor *domain.Product) (catalog.FilterParams, bool) {
	if anchor.Brand == "" {
		return catalog.FilterParams{}, false
	}
	inStock := true
	return catalog.FilterParams{
		Page:    1,
		Limit:   domain.RelatedLimit,
		Brand:   anchor.Brand,
		InStock: &inStock,
	}, true
}

// GetRelated resolves the related products list for the product with the
// given SKU. Results are served from cache when available; fresh resolutions
// are tagged with a per-anchor generation so that a run superseded by a
// newer one for the same anchor is discarded rather than cached.
func (r *RelatedResolver) GetRelated(ctx context.Context, sku string) (*domain.RelatedResult, error) {
	anchor, err := r.catalog.GetProductBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("fetch anchor product: %w", err)
	}

	if cached := r.cacheGet(ctx, anchor.ID); cached != nil {
		r.publishResolved(ctx, anchor, cached, true)
		return cached, nil
	}

	gen := r.beginResolution(anchor.ID)

	result, err := r.resolveTiers(ctx, anchor)
	if err != nil {
		r.finishResolution(anchor.ID, gen)
		return nil, err
	}

	r.attachPrimaryImages(ctx, result.Items)

	if !r.finishResolution(anchor.ID, gen) {
		staleResolutions.Inc()
		return nil, apperrors.ErrStaleResult
	}

	if result.Tier == "" {
		return result, nil
	}

	relatedResolutions.WithLabelValues(result.Tier).Inc()
	r.cacheSet(ctx, anchor.ID, result)
	r.publishResolved(ctx, anchor, result, false)

	return result, nil
}

// resolveTiers runs the relaxation cascade. Tiers are attempted strictly in
// order and each tier's results replace the previous tier's; the cascade
// stops once a tier yields RelatedLimit candidates, otherwise the last
// tier's results are returned as-is.
func (r *RelatedResolver) resolveTiers(ctx context.Context, anchor *domain.Product) (*domain.RelatedResult, error) {
	result := &domain.RelatedResult{Items: []domain.RelatedProduct{}}

	for i, tier := range r.tiers {
		if i > 0 && len(result.Items) >= domain.RelatedLimit {
			break
		}

		params, ok := tier.build(anchor)
		if !ok {
			r.logger.DebugContext(ctx, "related search skipped, anchor has no brand",
				slog.Int64("anchor_id", anchor.ID),
			)
			return result, nil
		}

		products, err := r.catalog.FilterProducts(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("related tier %s: %w", tier.name, err)
		}

		result.Tier = tier.name
		result.Items = excludeAnchor(products, anchor.ID)
	}

	return result, nil
}

// excludeAnchor converts candidates to related products, dropping the anchor
// itself if the catalog returned it.
func excludeAnchor(products []domain.Product, anchorID int64) []domain.RelatedProduct {
	items := make([]domain.RelatedProduct, 0, len(products))
	for _, p := range products {
		if p.ID == anchorID {
			continue
		}
		items = append(items, domain.RelatedProduct{Product: p})
	}
	return items
}

// attachPrimaryImages fetches each item's image set concurrently and attaches
// the primary image. Failures are logged per item and leave the item without
// an image; they never fail the resolution.
func (r *RelatedResolver) attachPrimaryImages(ctx context.Context, items []domain.RelatedProduct) {
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(item *domain.RelatedProduct) {
			defer wg.Done()

			images, err := r.catalog.GetProductImages(ctx, item.ID)
			if err != nil {
				r.logger.WarnContext(ctx, "failed to fetch related product images",
					slog.Int64("product_id", item.ID),
					slog.String("error", err.Error()),
				)
				return
			}
			item.PrimaryImage = domain.PrimaryOrFirst(images)
		}(&items[i])
	}
	wg.Wait()
}

// beginResolution bumps the anchor's generation and returns the new value.
func (r *RelatedResolver) beginResolution(anchorID int64) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generations[anchorID]++
	return r.generations[anchorID]
}

// finishResolution reports whether gen is still the latest resolution run
// for the anchor and, when it is, releases the anchor's tracking entry so
// the map does not accumulate an entry per anchor ever resolved. A
// superseded run leaves the newer run's entry in place.
func (r *RelatedResolver) finishResolution(anchorID int64, gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generations[anchorID] != gen {
		return false
	}
	delete(r.generations, anchorID)
	return true
}

func (r *RelatedResolver) cacheGet(ctx context.Context, anchorID int64) *domain.RelatedResult {
	if r.cache == nil {
		return nil
	}
	cached, err := r.cache.Get(ctx, anchorID)
	if err != nil {
		relatedCacheLookups.WithLabelValues("miss").Inc()
		if !errors.Is(err, apperrors.ErrNotFound) {
			r.logger.WarnContext(ctx, "related cache get failed",
				slog.Int64("anchor_id", anchorID),
				slog.String("error", err.Error()),
			)
		}
		return nil
	}
	relatedCacheLookups.WithLabelValues("hit").Inc()
	return cached
}

func (r *RelatedResolver) cacheSet(ctx context.Context, anchorID int64, result *domain.RelatedResult) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, anchorID, result); err != nil {
		r.logger.WarnContext(ctx, "related cache set failed",
			slog.Int64("anchor_id", anchorID),
			slog.String("error", err.Error()),
		)
	}
}

func (r *RelatedResolver) publishResolved(ctx context.Context, anchor *domain.Product, result *domain.RelatedResult, cacheHit bool) {
	if r.events == nil {
		return
	}
	if err := r.events.PublishRelatedResolved(ctx, anchor, result.Tier, len(result.Items), cacheHit); err != nil {
		r.logger.WarnContext(ctx, "failed to publish related.resolved event",
			slog.Int64("anchor_id", anchor.ID),
			slog.String("error", err.Error()),
		)
	}
}
