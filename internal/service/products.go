package service

import (
	"context"
	"fmt"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/shopspring/decimal"
)

// CreateInstitution creates an institution for the user
func (s *Service) CreateInstitution(ctx context.Context, userID int64, name, logoURL string) (*models.Institution, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: institution name is required", ErrValidation)
	}
	inst := &models.Institution{UserID: userID, Name: name, LogoURL: logoURL}
	if err := s.store.CreateInstitution(ctx, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// ListInstitutions returns the user's institutions
func (s *Service) ListInstitutions(ctx context.Context, userID int64) ([]models.Institution, error) {
	return s.store.ListInstitutions(ctx, userID)
}

// DeleteInstitution removes an institution owned by the user
func (s *Service) DeleteInstitution(ctx context.Context, userID, institutionID int64) error {
	return s.store.DeleteInstitution(ctx, institutionID, userID)
}

// CreateProductParams contains parameters for creating a product
type CreateProductParams struct {
	InstitutionID int64
	ProductType   models.ProductType
	Identifier    string
	CurrencyID    int64
	Balance       decimal.Decimal
	PaymentDueDay *int
}

// CreateProduct creates a financial product for the user
func (s *Service) CreateProduct(ctx context.Context, userID int64, params CreateProductParams) (*models.Product, error) {
	if !params.ProductType.Valid() {
		return nil, fmt.Errorf("%w: invalid product type %q", ErrValidation, params.ProductType)
	}
	if params.PaymentDueDay != nil && (*params.PaymentDueDay < 1 || *params.PaymentDueDay > 31) {
		return nil, fmt.Errorf("%w: payment due day out of range: %d", ErrValidation, *params.PaymentDueDay)
	}

	product := &models.Product{
		UserID:        userID,
		InstitutionID: params.InstitutionID,
		ProductType:   params.ProductType,
		Identifier:    params.Identifier,
		CurrencyID:    params.CurrencyID,
		Balance:       params.Balance,
		PaymentDueDay: params.PaymentDueDay,
		IsActive:      true,
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.log.Infof("Product %d (%s) created for user %d", product.ID, product.ProductType, userID)
	return product, nil
}

// ListProducts returns the user's products
func (s *Service) ListProducts(ctx context.Context, userID int64) ([]models.Product, error) {
	return s.store.ListProducts(ctx, userID)
}

// GetProduct returns one of the user's products
func (s *Service) GetProduct(ctx context.Context, userID, productID int64) (*models.Product, error) {
	return s.store.FindProduct(ctx, productID, userID)
}

// DeleteProduct removes a product owned by the user
func (s *Service) DeleteProduct(ctx context.Context, userID, productID int64) error {
	return s.store.DeleteProduct(ctx, productID, userID)
}

// CreateCategory creates a category for the user
func (s *Service) CreateCategory(ctx context.Context, userID int64, name string, categoryType models.CategoryType, emoji string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}
	if !categoryType.Valid() {
		return nil, fmt.Errorf("%w: invalid category type %q", ErrValidation, categoryType)
	}
	category := &models.Category{UserID: userID, Name: name, Type: categoryType, Emoji: emoji}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns the user's categories, optionally by type
func (s *Service) ListCategories(ctx context.Context, userID int64, categoryType *models.CategoryType) ([]models.Category, error) {
	if categoryType != nil && !categoryType.Valid() {
		return nil, fmt.Errorf("%w: invalid category type %q", ErrValidation, *categoryType)
	}
	return s.store.ListCategories(ctx, userID, categoryType)
}

// DeleteCategory removes a category owned by the user
func (s *Service) DeleteCategory(ctx context.Context, userID, categoryID int64) error {
	return s.store.DeleteCategory(ctx, categoryID, userID)
}

// ListCurrencies returns the shared currency catalog
func (s *Service) ListCurrencies(ctx context.Context) ([]models.Currency, error) {
	return s.store.ListCurrencies(ctx)
}

// CreateCurrency adds a currency to the catalog
func (s *Service) CreateCurrency(ctx context.Context, code, name, symbol string) (*models.Currency, error) {
	if len(code) != 3 {
		return nil, fmt.Errorf("%w: currency code must be 3 letters, got %q", ErrValidation, code)
	}
	currency := &models.Currency{Code: code, Name: name, Symbol: symbol}
	if err := s.store.CreateCurrency(ctx, currency); err != nil {
		return nil, err
	}
	return currency, nil
}
