package service

import (
	"context"
	"time"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/shopspring/decimal"
)

// Store is the persistence interface the service layer depends on.
// Defined here, implemented by the postgres repository; tests use an
// in-memory fake. All reads and writes are scoped to the owning user
// where a userID parameter is present.
type Store interface {
	// WithTx runs fn against a store bound to a single transaction;
	// any error from fn rolls back everything fn wrote.
	WithTx(ctx context.Context, fn func(Store) error) error

	// Users
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)

	// Institutions
	CreateInstitution(ctx context.Context, inst *models.Institution) error
	ListInstitutions(ctx context.Context, userID int64) ([]models.Institution, error)
	DeleteInstitution(ctx context.Context, id, userID int64) error

	// Currencies (shared catalog)
	CreateCurrency(ctx context.Context, currency *models.Currency) error
	ListCurrencies(ctx context.Context) ([]models.Currency, error)

	// Categories
	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context, userID int64, categoryType *models.CategoryType) ([]models.Category, error)
	DeleteCategory(ctx context.Context, id, userID int64) error

	// Products
	CreateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context, userID int64) ([]models.Product, error)
	FindProduct(ctx context.Context, id, userID int64) (*models.Product, error)
	DeleteProduct(ctx context.Context, id, userID int64) error
	UpdateProductBalance(ctx context.Context, productID int64, delta decimal.Decimal) error

	// Transactions
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	ListTransactions(ctx context.Context, productID int64, limit, offset int) ([]models.Transaction, error)
	GetIncomeExpenseStats(ctx context.Context, userID int64, from, to time.Time) (*models.IncomeExpenseStats, error)
	GetTotalBalance(ctx context.Context, userID int64) (decimal.Decimal, error)

	// Credits and installments
	CreateCredit(ctx context.Context, credit *models.Credit) error
	ListCredits(ctx context.Context, productID int64) ([]models.Credit, error)
	FindCredit(ctx context.Context, id, userID int64) (*models.Credit, error)
	CreateInstallment(ctx context.Context, inst *models.Installment) error
	ListInstallments(ctx context.Context, creditID int64) ([]models.Installment, error)
	FindInstallment(ctx context.Context, id, userID int64) (*models.Installment, error)
	UpdateInstallmentStatus(ctx context.Context, id int64, status models.InstallmentStatus) error
	ListPendingInstallments(ctx context.Context, userID int64) ([]models.Installment, error)
	CountPendingInstallments(ctx context.Context, userID int64) (int, error)

	// Recurring services
	CreateService(ctx context.Context, svc *models.Service) error
	ListServices(ctx context.Context, userID int64, isActive *bool) ([]models.Service, error)
	FindService(ctx context.Context, id, userID int64) (*models.Service, error)
	UpdateService(ctx context.Context, svc *models.Service) error
	DeleteService(ctx context.Context, id, userID int64) error
	ListUpcomingServices(ctx context.Context, userID int64, from, to time.Time) ([]models.Service, error)
	ListAllDueServices(ctx context.Context, asOf time.Time) ([]models.Service, error)
	UpdateServiceNextDueDate(ctx context.Context, id int64, next time.Time) error

	// Notifications
	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userID int64, isRead *bool, limit int) ([]models.Notification, error)
	CountUnreadNotifications(ctx context.Context, userID int64) (int, error)
	MarkNotificationRead(ctx context.Context, id, userID int64) (*models.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID int64) (int, error)
	DeleteNotification(ctx context.Context, id, userID int64) error
}
