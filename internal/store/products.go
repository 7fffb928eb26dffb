package store

import (
	"context"
	"fmt"

	"bootstore-backoffice/internal/models"
)

// ListProducts returns the catalog snapshot with all lookup relations
// preloaded, in insertion order.
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Manufacturer").
		Preload("Supplier").
		Preload("Unit").
		Order("id asc").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list products: %w", mapError(err))
	}
	return products, nil
}

func (s *Store) FindProductByArticle(ctx context.Context, article string) (models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Manufacturer").
		Preload("Supplier").
		Preload("Unit").
		Where("article = ?", article).
		First(&product).Error
	if err != nil {
		return models.Product{}, fmt.Errorf("find product %q: %w", article, mapError(err))
	}
	return product, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create product %q: %w", p.Article, mapError(err))
	}
	return nil
}

// SaveProduct writes the scalar columns of an existing product. The article
// is immutable and the preloaded lookup structs are deliberately not written,
// so a stale association can never overwrite an edited foreign key.
func (s *Store) SaveProduct(ctx context.Context, p *models.Product) error {
	err := s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"name":              p.Name,
			"description":       p.Description,
			"category_id":       p.CategoryID,
			"manufacturer_id":   p.ManufacturerID,
			"supplier_id":       p.SupplierID,
			"unit_id":           p.UnitID,
			"price":             p.Price,
			"discount_percent":  p.DiscountPercent,
			"quantity_in_stock": p.QuantityInStock,
			"photo_file_name":   p.PhotoFileName,
		}).Error
	if err != nil {
		return fmt.Errorf("save product %q: %w", p.Article, mapError(err))
	}
	return nil
}

// DeleteProduct removes the product with the given article. The row count is
// checked so deleting a missing product surfaces ErrNotFound.
func (s *Store) DeleteProduct(ctx context.Context, article string) error {
	res := s.db.WithContext(ctx).Where("article = ?", article).Delete(&models.Product{})
	if res.Error != nil {
		return fmt.Errorf("delete product %q: %w", article, mapError(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete product %q: %w", article, ErrNotFound)
	}
	return nil
}

// CountLinesForProduct reports how many order lines reference the article.
// Used to refuse deleting products that orders still depend on.
func (s *Store) CountLinesForProduct(ctx context.Context, article string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.OrderLine{}).
		Where("product_article = ?", article).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count lines for %q: %w", article, mapError(err))
	}
	return count, nil
}

// Lookup readers. Each returns rows ordered by name for stable display.

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	if err := s.db.WithContext(ctx).Order("name asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", mapError(err))
	}
	return rows, nil
}

func (s *Store) ListManufacturers(ctx context.Context) ([]models.Manufacturer, error) {
	var rows []models.Manufacturer
	if err := s.db.WithContext(ctx).Order("name asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list manufacturers: %w", mapError(err))
	}
	return rows, nil
}

func (s *Store) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var rows []models.Supplier
	if err := s.db.WithContext(ctx).Order("name asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list suppliers: %w", mapError(err))
	}
	return rows, nil
}

func (s *Store) ListUnits(ctx context.Context) ([]models.Unit, error) {
	var rows []models.Unit
	if err := s.db.WithContext(ctx).Order("name asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list units: %w", mapError(err))
	}
	return rows, nil
}

func (s *Store) HasCategory(ctx context.Context, id uint) (bool, error) {
	return s.refExists(ctx, &models.Category{}, id)
}

func (s *Store) HasManufacturer(ctx context.Context, id uint) (bool, error) {
	return s.refExists(ctx, &models.Manufacturer{}, id)
}

func (s *Store) HasSupplier(ctx context.Context, id uint) (bool, error) {
	return s.refExists(ctx, &models.Supplier{}, id)
}

func (s *Store) HasUnit(ctx context.Context, id uint) (bool, error) {
	return s.refExists(ctx, &models.Unit{}, id)
}

func (s *Store) refExists(ctx context.Context, model any, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("lookup %T %d: %w", model, id, mapError(err))
	}
	return count > 0, nil
}
