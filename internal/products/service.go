// Package products edits the catalog: validated create/update/delete of
// products and photo attachment. Browsing goes through the catalog engine.
package products

import (
	"context"
	"errors"
	"fmt"

	"bootstore-backoffice/gate"
	"bootstore-backoffice/internal/catalog"
	"bootstore-backoffice/internal/media"
	"bootstore-backoffice/internal/models"
	"bootstore-backoffice/internal/policy"
	"bootstore-backoffice/internal/store"
	"bootstore-backoffice/session"
	"bootstore-backoffice/validation"
)

// Draft is the input for a new product.
type Draft struct {
	Article         string
	Name            string
	Description     string
	CategoryID      uint
	ManufacturerID  uint
	SupplierID      uint
	UnitID          uint
	Price           float64
	DiscountPercent float64
	QuantityInStock int
	PhotoFileName   string
}

// Edits carries the changes of a product update; nil fields stay untouched.
// The article is immutable and deliberately absent.
type Edits struct {
	Name            *string
	Description     *string
	CategoryID      *uint
	ManufacturerID  *uint
	SupplierID      *uint
	UnitID          *uint
	Price           *float64
	DiscountPercent *float64
	QuantityInStock *int
	PhotoFileName   *string
}

type Service struct {
	store  *store.Store
	access *policy.Access
	engine *catalog.Engine
	photos media.Store
}

func NewService(st *store.Store, access *policy.Access, engine *catalog.Engine, photos media.Store) *Service {
	return &Service{store: st, access: access, engine: engine, photos: photos}
}

func (s *Service) authorize(ctx context.Context, action gate.Action) error {
	sess, ok := session.FromContext(ctx)
	if !ok {
		sess = session.Guest()
	}
	return s.access.Authorize(ctx, sess.RoleID, action, policy.ResourceProduct)
}

// Browse loads the catalog snapshot and runs it through the query engine.
// Guests may browse.
func (s *Service) Browse(ctx context.Context, opts catalog.QueryOptions) ([]catalog.ProductView, error) {
	if err := s.authorize(ctx, gate.ActionList); err != nil {
		return nil, fmt.Errorf("browse catalog: %w", err)
	}
	snapshot, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.Query(snapshot, opts), nil
}

// Get returns a single product with its lookups preloaded.
func (s *Service) Get(ctx context.Context, article string) (models.Product, error) {
	if err := s.authorize(ctx, gate.ActionView); err != nil {
		return models.Product{}, fmt.Errorf("get product %q: %w", article, err)
	}
	return s.store.FindProductByArticle(ctx, article)
}

// Create validates the draft and persists a new product. A taken article is
// a validation failure, not a storage fault.
func (s *Service) Create(ctx context.Context, draft Draft) (models.Product, error) {
	if err := s.authorize(ctx, gate.ActionCreate); err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}
	v := validation.Violations{}
	validation.Required("article", draft.Article, v)
	if err := s.validateShared(ctx, sharedFields{
		name: draft.Name, categoryID: draft.CategoryID, manufacturerID: draft.ManufacturerID,
		supplierID: draft.SupplierID, unitID: draft.UnitID,
		price: draft.Price, discount: draft.DiscountPercent, quantity: draft.QuantityInStock,
	}, v); err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		Article:         draft.Article,
		Name:            draft.Name,
		Description:     draft.Description,
		CategoryID:      draft.CategoryID,
		ManufacturerID:  draft.ManufacturerID,
		SupplierID:      draft.SupplierID,
		UnitID:          draft.UnitID,
		Price:           draft.Price,
		DiscountPercent: draft.DiscountPercent,
		QuantityInStock: draft.QuantityInStock,
		PhotoFileName:   draft.PhotoFileName,
	}
	if err := s.store.CreateProduct(ctx, &product); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			v["article"] = "already_exists"
			return models.Product{}, v.Err()
		}
		return models.Product{}, err
	}
	return s.store.FindProductByArticle(ctx, product.Article)
}

// Update loads the product, applies the edits, re-validates and writes the
// result back.
func (s *Service) Update(ctx context.Context, article string, edits Edits) (models.Product, error) {
	if err := s.authorize(ctx, gate.ActionUpdate); err != nil {
		return models.Product{}, fmt.Errorf("update product %q: %w", article, err)
	}
	current, err := s.store.FindProductByArticle(ctx, article)
	if err != nil {
		return models.Product{}, err
	}

	if edits.Name != nil {
		current.Name = *edits.Name
	}
	if edits.Description != nil {
		current.Description = *edits.Description
	}
	if edits.CategoryID != nil {
		current.CategoryID = *edits.CategoryID
	}
	if edits.ManufacturerID != nil {
		current.ManufacturerID = *edits.ManufacturerID
	}
	if edits.SupplierID != nil {
		current.SupplierID = *edits.SupplierID
	}
	if edits.UnitID != nil {
		current.UnitID = *edits.UnitID
	}
	if edits.Price != nil {
		current.Price = *edits.Price
	}
	if edits.DiscountPercent != nil {
		current.DiscountPercent = *edits.DiscountPercent
	}
	if edits.QuantityInStock != nil {
		current.QuantityInStock = *edits.QuantityInStock
	}
	if edits.PhotoFileName != nil {
		current.PhotoFileName = *edits.PhotoFileName
	}

	v := validation.Violations{}
	if err := s.validateShared(ctx, sharedFields{
		name: current.Name, categoryID: current.CategoryID, manufacturerID: current.ManufacturerID,
		supplierID: current.SupplierID, unitID: current.UnitID,
		price: current.Price, discount: current.DiscountPercent, quantity: current.QuantityInStock,
	}, v); err != nil {
		return models.Product{}, err
	}

	if err := s.store.SaveProduct(ctx, &current); err != nil {
		return models.Product{}, err
	}
	return s.store.FindProductByArticle(ctx, article)
}

// Delete removes a product, but only while no order line references it.
func (s *Service) Delete(ctx context.Context, article string) error {
	if err := s.authorize(ctx, gate.ActionDelete); err != nil {
		return fmt.Errorf("delete product %q: %w", article, err)
	}
	refs, err := s.store.CountLinesForProduct(ctx, article)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("delete product %q: referenced by %d order line(s): %w", article, refs, store.ErrIntegrity)
	}
	return s.store.DeleteProduct(ctx, article)
}

// AttachPhoto ingests the file at sourcePath into the media store and keeps
// only the returned file name on the product.
func (s *Service) AttachPhoto(ctx context.Context, article, sourcePath string) (models.Product, error) {
	if err := s.authorize(ctx, gate.ActionUpdate); err != nil {
		return models.Product{}, fmt.Errorf("attach photo to %q: %w", article, err)
	}
	name, err := s.photos.StoreFile(sourcePath)
	if err != nil {
		return models.Product{}, fmt.Errorf("attach photo to %q: %w", article, err)
	}
	return s.Update(ctx, article, Edits{PhotoFileName: &name})
}

// References bundles the four lookup lists the product form offers.
type References struct {
	Categories    []models.Category
	Manufacturers []models.Manufacturer
	Suppliers     []models.Supplier
	Units         []models.Unit
}

// ListReferences loads the lookup tables, each sorted by name.
func (s *Service) ListReferences(ctx context.Context) (References, error) {
	if err := s.authorize(ctx, gate.ActionView); err != nil {
		return References{}, fmt.Errorf("list references: %w", err)
	}
	var refs References
	var err error
	if refs.Categories, err = s.store.ListCategories(ctx); err != nil {
		return References{}, err
	}
	if refs.Manufacturers, err = s.store.ListManufacturers(ctx); err != nil {
		return References{}, err
	}
	if refs.Suppliers, err = s.store.ListSuppliers(ctx); err != nil {
		return References{}, err
	}
	if refs.Units, err = s.store.ListUnits(ctx); err != nil {
		return References{}, err
	}
	return refs, nil
}

type sharedFields struct {
	name                                           string
	categoryID, manufacturerID, supplierID, unitID uint
	price, discount                                float64
	quantity                                       int
}

// validateShared checks the invariants common to create and update. It
// returns a *validation.Error (with any violations already in v) or a store
// error from the reference checks.
func (s *Service) validateShared(ctx context.Context, f sharedFields, v validation.Violations) error {
	validation.Required("name", f.name, v)
	validation.RequiredRef("category_id", f.categoryID, v)
	validation.RequiredRef("manufacturer_id", f.manufacturerID, v)
	validation.RequiredRef("supplier_id", f.supplierID, v)
	validation.RequiredRef("unit_id", f.unitID, v)
	validation.NonNegativeFloat("price", f.price, v)
	validation.RangeFloat("discount_percent", f.discount, 0, 100, v)
	validation.NonNegativeInt("quantity_in_stock", f.quantity, v)
	if !v.Empty() {
		return v.Err()
	}

	checks := []struct {
		field  string
		exists func(context.Context, uint) (bool, error)
		id     uint
	}{
		{"category_id", s.store.HasCategory, f.categoryID},
		{"manufacturer_id", s.store.HasManufacturer, f.manufacturerID},
		{"supplier_id", s.store.HasSupplier, f.supplierID},
		{"unit_id", s.store.HasUnit, f.unitID},
	}
	for _, c := range checks {
		ok, err := c.exists(ctx, c.id)
		if err != nil {
			return err
		}
		if !ok {
			v[c.field] = "does_not_exist"
		}
	}
	return v.Err()
}
