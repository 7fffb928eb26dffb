// Package catalog implements the product list pipeline: supplier filter,
// text search, stock sort and the ProductView projection. It is a pure
// transform over an in-memory snapshot; it issues no repository calls.
package catalog

import (
	"sort"
	"strings"

	"bootstore-backoffice/internal/media"
	"bootstore-backoffice/internal/models"
)

// AllSuppliers is the filter sentinel meaning "do not filter by supplier".
// An empty supplier value means the same.
const AllSuppliers = "All suppliers"

// Unknown substitutes the name of a lookup row that no longer resolves.
// A dangling reference must not break the listing.
const Unknown = "unknown"

type SortMode int

const (
	SortNone SortMode = iota
	SortQuantityAsc
	SortQuantityDesc
)

// QueryOptions selects and orders the snapshot. The zero value is the
// identity transform.
type QueryOptions struct {
	Supplier string
	Search   string
	Sort     SortMode
}

// Engine projects product snapshots into view models. The photo resolver is
// the only collaborator; a nil resolver makes every photo fall back to the
// placeholder.
type Engine struct {
	photos media.Resolver
}

func NewEngine(photos media.Resolver) *Engine {
	return &Engine{photos: photos}
}

// Query applies filter, search and sort in that order, then projects each
// surviving product. The sort is stable; SortNone preserves snapshot order.
func (e *Engine) Query(products []models.Product, opts QueryOptions) []ProductView {
	kept := make([]models.Product, 0, len(products))

	supplier := strings.TrimSpace(opts.Supplier)
	filterBySupplier := supplier != "" && supplier != AllSuppliers
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	for _, p := range products {
		if filterBySupplier && p.Supplier.Name != supplier {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		kept = append(kept, p)
	}

	switch opts.Sort {
	case SortQuantityAsc:
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].QuantityInStock < kept[j].QuantityInStock
		})
	case SortQuantityDesc:
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].QuantityInStock > kept[j].QuantityInStock
		})
	}

	views := make([]ProductView, 0, len(kept))
	for _, p := range kept {
		views = append(views, e.project(p))
	}
	return views
}

func (e *Engine) project(p models.Product) ProductView {
	return ProductView{
		Article:          p.Article,
		Name:             p.Name,
		Description:      p.Description,
		CategoryName:     lookupName(p.Category.Name),
		ManufacturerName: lookupName(p.Manufacturer.Name),
		SupplierName:     lookupName(p.Supplier.Name),
		UnitName:         lookupName(p.Unit.Name),
		Price:            p.Price,
		DiscountPercent:  p.DiscountPercent,
		FinalPrice:       FinalPrice(p.Price, p.DiscountPercent),
		QuantityInStock:  p.QuantityInStock,
		PhotoPath:        e.photoPath(p.PhotoFileName),
	}
}

func lookupName(name string) string {
	if name == "" {
		return Unknown
	}
	return name
}

func (e *Engine) photoPath(fileName string) string {
	if fileName == "" || e.photos == nil {
		return media.Placeholder
	}
	path, ok := e.photos.Resolve(fileName)
	if !ok {
		return media.Placeholder
	}
	return path
}
