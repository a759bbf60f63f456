package catalog

import "github.com/refurbmart/storefront/internal/domain"

// Wire types mirror the catalog API's camelCase JSON contract. They are
// converted to domain types at the client boundary so the rest of the
// service never sees upstream field names.

type productListResponse struct {
	Products []wireProduct `json:"products"`
}

type productResponse struct {
	Product wireProduct `json:"product"`
}

type imageListResponse struct {
	Images []wireImage `json:"images"`
}

type wireProduct struct {
	ID                int64         `json:"id"`
	SKU               string        `json:"sku"`
	Brand             string        `json:"brand"`
	Title             string        `json:"title"`
	Price             int64         `json:"price"`
	MRP               *int64        `json:"mrp"`
	DiscountPercent   *int          `json:"discountPercent"`
	Condition         string        `json:"condition"`
	Color             string        `json:"color"`
	RAMGb             *int          `json:"ramGb"`
	Storage           string        `json:"storage"`
	InStock           bool          `json:"inStock"`
	StockQty          *int          `json:"stockQty"`
	SelectedVariantID *int64        `json:"selectedVariantId"`
	Variants          []wireVariant `json:"variants"`
}

type wireVariant struct {
	ID         int64              `json:"id"`
	SKU        string             `json:"sku"`
	Price      *int64             `json:"price"`
	Attributes wireVariantAttribs `json:"attributes"`
}

type wireVariantAttribs struct {
	Color   string `json:"color"`
	RAMGb   *int   `json:"ramGb"`
	Storage string `json:"storage"`
}

type wireImage struct {
	ID            int64  `json:"id"`
	CloudinaryURL string `json:"cloudinaryUrl"`
	AltText       string `json:"altText"`
	IsPrimary     bool   `json:"isPrimary"`
}

func (w wireProduct) toDomain() domain.Product {
	p := domain.Product{
		ID:                w.ID,
		SKU:               w.SKU,
		Brand:             w.Brand,
		Title:             w.Title,
		Price:             w.Price,
		MRP:               w.MRP,
		DiscountPercent:   w.DiscountPercent,
		Condition:         w.Condition,
		Color:             w.Color,
		RAMGb:             w.RAMGb,
		Storage:           w.Storage,
		InStock:           w.InStock,
		StockQty:          w.StockQty,
		SelectedVariantID: w.SelectedVariantID,
	}
	if len(w.Variants) > 0 {
		p.Variants = make([]domain.Variant, len(w.Variants))
		for i, v := range w.Variants {
			p.Variants[i] = v.toDomain()
		}
	}
	return p
}

func (w wireVariant) toDomain() domain.Variant {
	return domain.Variant{
		ID:    w.ID,
		SKU:   w.SKU,
		Price: w.Price,
		Attributes: domain.VariantAttributes{
			Color:   w.Attributes.Color,
			RAMGb:   w.Attributes.RAMGb,
			Storage: w.Attributes.Storage,
		},
	}
}

func (w wireImage) toDomain() domain.Image {
	return domain.Image{
		ID:        w.ID,
		URL:       w.CloudinaryURL,
		AltText:   w.AltText,
		IsPrimary: w.IsPrimary,
	}
}
