package pricing

import (
	"context"
	"sync"

	"github.com/northlight-prints/storefront-backend/internal/catalog"
	"github.com/northlight-prints/storefront-backend/internal/media"
	"github.com/northlight-prints/storefront-backend/pkg/enums"
	"github.com/northlight-prints/storefront-backend/pkg/logger"
)

// Fixed, global prices per size, in cents. One canonical price per size
// label, never per product.
var priceBySize = map[enums.PrintSize]int{
	enums.PrintSize4x6:   500,
	enums.PrintSize5x7:   1000,
	enums.PrintSize8x10:  1500,
	enums.PrintSize11x14: 2000,
	enums.PrintSize12x16: 3000,
	enums.PrintSize16x20: 3500,
	enums.PrintSize20x30: 6500,
}

// fallbackSize prices unknown labels. Mirrors the storefront behavior of
// quoting 8x10 for anything it does not recognize.
const fallbackSize = enums.PrintSize8x10

// PriceForSize returns the price in cents for a size label. Total over all
// string inputs: unknown sizes quote the 8x10 price, never an error.
func PriceForSize(size string) int {
	parsed, err := enums.ParsePrintSize(size)
	if err != nil {
		return priceBySize[fallbackSize]
	}
	return priceBySize[parsed]
}

// PriceFor returns the price for an already-validated size.
func PriceFor(size enums.PrintSize) int {
	if price, ok := priceBySize[size]; ok {
		return price
	}
	return priceBySize[fallbackSize]
}

// PricedProduct is a catalog product with its current default display price.
type PricedProduct struct {
	catalog.Product
	PriceCents  int             `json:"price"`
	DefaultSize enums.PrintSize `json:"defaultSize"`
}

// AspectMeasurer is the slice of internal/media the engine needs.
type AspectMeasurer interface {
	Measure(ctx context.Context, src string) (media.AspectInfo, error)
	AverageColor(ctx context.Context, src string) (media.RGB, error)
}

// Engine derives default sizes and display prices from measured image
// aspects. Measurement runs once per process in the background; until a
// product's aspect resolves, the smallest size's price is shown.
type Engine struct {
	catalog  *catalog.Catalog
	measurer AspectMeasurer
	logg     *logger.Logger

	once sync.Once

	mu         sync.RWMutex
	fourByFive map[string]bool
	colors     map[string]media.RGB
}

// NewEngine wires the pricing engine; measurer may be nil, which leaves
// every product on the default size.
func NewEngine(cat *catalog.Catalog, measurer AspectMeasurer, logg *logger.Logger) *Engine {
	return &Engine{
		catalog:    cat,
		measurer:   measurer,
		logg:       logg,
		fourByFive: make(map[string]bool),
		colors:     make(map[string]media.RGB),
	}
}

// PricedCatalog returns every product with its current default size/price,
// kicking off aspect measurement on first use.
func (e *Engine) PricedCatalog(ctx context.Context) []PricedProduct {
	e.ensureMeasured(ctx)

	products := e.catalog.All()
	out := make([]PricedProduct, 0, len(products))
	for _, p := range products {
		size := e.RecommendedSize(p.ID)
		out = append(out, PricedProduct{
			Product:     p,
			PriceCents:  PriceFor(size),
			DefaultSize: size,
		})
	}
	return out
}

// RecommendedSize returns 8x10 for products in the 4:5 aspect family and
// 4x6 otherwise; 4x6 while measurement is pending or unavailable.
func (e *Engine) RecommendedSize(productID string) enums.PrintSize {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.fourByFive[productID] {
		return enums.PrintSize8x10
	}
	return enums.PrintSize4x6
}

// PlaceholderColor returns the sampled average image color, when measured.
func (e *Engine) PlaceholderColor(productID string) (media.RGB, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	rgb, ok := e.colors[productID]
	return rgb, ok
}

// ensureMeasured starts the one-shot background measurement pass. Decode
// failures leave products classified as unknown aspect.
func (e *Engine) ensureMeasured(ctx context.Context) {
	if e.measurer == nil {
		return
	}
	e.once.Do(func() {
		products := e.catalog.All()
		go func() {
			for _, p := range products {
				src := p.Image
				if src == "" {
					src = p.Thumbnail
				}
				if src == "" {
					continue
				}
				info, err := e.measurer.Measure(context.WithoutCancel(ctx), src)
				if err != nil {
					if e.logg != nil {
						e.logg.Warn(e.logg.WithField(context.Background(), "product_id", p.ID), "aspect measurement failed")
					}
					continue
				}
				if info.Ratio > 0 && media.IsFourByFive(info.Ratio) {
					e.mu.Lock()
					e.fourByFive[p.ID] = true
					e.mu.Unlock()
				}
				// Placeholder color is best effort; cards render without it.
				if rgb, err := e.measurer.AverageColor(context.WithoutCancel(ctx), src); err == nil {
					e.mu.Lock()
					e.colors[p.ID] = rgb
					e.mu.Unlock()
				}
			}
		}()
	})
}
