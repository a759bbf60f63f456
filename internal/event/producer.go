// Package event publishes storefront analytics events to Kafka. Publishing
// is best effort: callers log failures and carry on, a lost analytics event
// never fails a storefront request.
package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/refurbmart/storefront/internal/domain"
	pkgkafka "github.com/refurbmart/storefront/pkg/kafka"
)

// Kafka topic constants for storefront analytics events.
const (
	TopicProductViewed   = "storefront.product.viewed"
	TopicRelatedResolved = "storefront.related.resolved"
)

// Aggregate type constant.
const AggregateTypeProduct = "product"

// Source identifier for events originating from the storefront BFF.
const SourceStorefront = "storefront-bff"

// ProductViewedData is the payload for a product.viewed event.
type ProductViewedData struct {
	ProductID       int64  `json:"product_id"`
	SKU             string `json:"sku"`
	Brand           string `json:"brand"`
	Condition       string `json:"condition"`
	SelectedVariant *int64 `json:"selected_variant,omitempty"`
	Price           *int64 `json:"price,omitempty"`
}

// RelatedResolvedData is the payload for a related.resolved event.
type RelatedResolvedData struct {
	AnchorID    int64  `json:"anchor_id"`
	AnchorSKU   string `json:"anchor_sku"`
	Tier        string `json:"tier"`
	ResultCount int    `json:"result_count"`
	CacheHit    bool   `json:"cache_hit"`
}

// Producer publishes storefront analytics events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishProductViewed publishes a product.viewed event.
func (p *Producer) PublishProductViewed(ctx context.Context, detail *domain.ProductDetail) error {
	data := ProductViewedData{
		ProductID: detail.ID,
		SKU:       detail.SKU,
		Brand:     detail.Brand,
		Condition: detail.Condition,
		Price:     detail.Resolution.Effective.Price,
	}
	if v := detail.Resolution.SelectedVariant; v != nil {
		data.SelectedVariant = &v.ID
	}

	event, err := pkgkafka.NewEvent(TopicProductViewed, strconv.FormatInt(detail.ID, 10), AggregateTypeProduct, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create product.viewed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductViewed, event); err != nil {
		return fmt.Errorf("publish product.viewed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.viewed event",
		slog.Int64("product_id", detail.ID),
		slog.String("sku", detail.SKU),
	)

	return nil
}

// PublishRelatedResolved publishes a related.resolved event describing how a
// related products lookup was satisfied.
func (p *Producer) PublishRelatedResolved(ctx context.Context, anchor *domain.Product, tier string, resultCount int, cacheHit bool) error {
	data := RelatedResolvedData{
		AnchorID:    anchor.ID,
		AnchorSKU:   anchor.SKU,
		Tier:        tier,
		ResultCount: resultCount,
		CacheHit:    cacheHit,
	}

	event, err := pkgkafka.NewEvent(TopicRelatedResolved, strconv.FormatInt(anchor.ID, 10), AggregateTypeProduct, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create related.resolved event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicRelatedResolved, event); err != nil {
		return fmt.Errorf("publish related.resolved event: %w", err)
	}

	p.logger.DebugContext(ctx, "published related.resolved event",
		slog.Int64("anchor_id", anchor.ID),
		slog.String("tier", tier),
		slog.Int("result_count", resultCount),
	)

	return nil
}
