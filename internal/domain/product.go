package domain

// Condition grades carried by refurbished inventory. The catalog API owns
// the authoritative list; these constants cover the grades the storefront
// renders badges for.
const (
	ConditionRefurbishedA = "Refurbished-A"
	ConditionRefurbishedB = "Refurbished-B"
	ConditionRefurbishedC = "Refurbished-C"
)

// Product is a catalog product as consumed from the catalog API. The
// storefront never mutates products; they are read-only inputs to the
// resolvers.
type Product struct {
	ID                int64     `json:"id"`
	SKU               string    `json:"sku"`
	Brand             string    `json:"brand"`
	Title             string    `json:"title"`
	Price             int64     `json:"price"`
	MRP               *int64    `json:"mrp,omitempty"`
	DiscountPercent   *int      `json:"discount_percent,omitempty"`
	Condition         string    `json:"condition,omitempty"`
	Color             string    `json:"color,omitempty"`
	RAMGb             *int      `json:"ram_gb,omitempty"`
	Storage           string    `json:"storage,omitempty"`
	InStock           bool      `json:"in_stock"`
	StockQty          *int      `json:"stock_qty,omitempty"`
	SelectedVariantID *int64    `json:"selected_variant_id,omitempty"`
	Variants          []Variant `json:"variants,omitempty"`
}

// Variant is a purchasable configuration of a product. The variant list is
// supplied wholesale by the catalog API and never mutated here.
type Variant struct {
	ID         int64             `json:"id"`
	SKU        string            `json:"sku"`
	Price      *int64            `json:"price,omitempty"`
	Attributes VariantAttributes `json:"attributes"`
}

// VariantAttributes holds the selectable attribute axes of a variant.
type VariantAttributes struct {
	Color   string `json:"color,omitempty"`
	RAMGb   *int   `json:"ram_gb,omitempty"`
	Storage string `json:"storage,omitempty"`
}

// Image is a product image. URLs are opaque; the storefront does not host
// or transform images.
type Image struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	AltText   string `json:"alt_text,omitempty"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

// PrimaryOrFirst returns the image flagged primary, or the first image when
// none is flagged, or nil for an empty list.
func PrimaryOrFirst(images []Image) *Image {
	for i := range images {
		if images[i].IsPrimary {
			return &images[i]
		}
	}
	if len(images) > 0 {
		return &images[0]
	}
	return nil
}

// RelatedProduct is a related-products list entry: a product summary with
// its primary image when one could be loaded.
type RelatedProduct struct {
	Product
	PrimaryImage *Image `json:"primary_image,omitempty"`
}

// ProductDetail is the enriched product response for the detail view:
// the product, its images, and the variant resolution for the current
// selection.
type ProductDetail struct {
	Product
	Images     []Image           `json:"images"`
	Resolution VariantResolution `json:"resolution"`
}
