package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/finanzas-app/finanzas-service/internal/scheduler"
	"github.com/finanzas-app/finanzas-service/internal/service"
	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory Store. WithTx snapshots all state before
// running fn and restores it on error, mirroring the rollback behavior
// of the SQL repository.
type fakeStore struct {
	nextID int64

	users         []models.User
	categories    []models.Category
	institutions  []models.Institution
	currencies    []models.Currency
	products      []models.Product
	transactions  []models.Transaction
	credits       []models.Credit
	installments  []models.Installment
	services      []models.Service
	notifications []models.Notification

	// failInstallmentsAfter aborts CreateInstallment once this many
	// rows have been written (0 disables the fault).
	failInstallmentsAfter int
	installmentWrites     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) WithTx(_ context.Context, fn func(service.Store) error) error {
	snapshot := *f
	snapshot.users = append([]models.User(nil), f.users...)
	snapshot.categories = append([]models.Category(nil), f.categories...)
	snapshot.institutions = append([]models.Institution(nil), f.institutions...)
	snapshot.currencies = append([]models.Currency(nil), f.currencies...)
	snapshot.products = append([]models.Product(nil), f.products...)
	snapshot.transactions = append([]models.Transaction(nil), f.transactions...)
	snapshot.credits = append([]models.Credit(nil), f.credits...)
	snapshot.installments = append([]models.Installment(nil), f.installments...)
	snapshot.services = append([]models.Service(nil), f.services...)
	snapshot.notifications = append([]models.Notification(nil), f.notifications...)

	if err := fn(f); err != nil {
		*f = snapshot
		return err
	}
	return nil
}

func (f *fakeStore) CreateUser(_ context.Context, user *models.User) error {
	user.ID = f.id()
	user.CreatedAt = time.Now()
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, scheduler.ErrNotFound)
}

func (f *fakeStore) FindUserByID(_ context.Context, id int64) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, scheduler.ErrNotFound)
}

func (f *fakeStore) CreateInstitution(_ context.Context, inst *models.Institution) error {
	inst.ID = f.id()
	f.institutions = append(f.institutions, *inst)
	return nil
}

func (f *fakeStore) ListInstitutions(_ context.Context, userID int64) ([]models.Institution, error) {
	var out []models.Institution
	for _, inst := range f.institutions {
		if inst.UserID == userID {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteInstitution(_ context.Context, id, userID int64) error {
	for i, inst := range f.institutions {
		if inst.ID == id && inst.UserID == userID {
			f.institutions = append(f.institutions[:i], f.institutions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("institution %d: %w", id, scheduler.ErrNotFound)
}

func (f *fakeStore) CreateCurrency(_ context.Context, c *models.Currency) error {
	c.ID = f.id()
	f.currencies = append(f.currencies, *c)
	return nil
}

func (f *fakeStore) ListCurrencies(_ context.Context) ([]models.Currency, error) {
	return append([]models.Currency(nil), f.currencies...), nil
}

func (f *fakeStore) CreateCategory(_ context.Context, c *models.Category) error {
	c.ID = f.id()
	f.categories = append(f.categories, *c)
	return nil
}

func (f *fakeStore) ListCategories(_ context.Context, userID int64, t *models.CategoryType) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.categories {
		if c.UserID == userID && (t == nil || c.Type == *t) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteCategory(_ context.Context, id, userID int64) error {
	for i, c := range f.categories {
		if c.ID == id && c.UserID == userID {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("category %d: %w", id, scheduler.ErrNotFound)
}

func (f *fakeStore) CreateProduct(_ context.Context, p *models.Product) error {
	p.ID = f.id()
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeStore) ListProducts(_ context.Context, userID int64) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) FindProduct(_ context.Context, id, userID int64) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id && f.products[i].UserID == userID {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("product %d: %w", id, scheduler.ErrNotFound)
}

func (f *fakeStore) DeleteProduct(_ context.Context, id, userID int64) error {
	for i, p := range f.products {
		if p.ID == id && p.UserID == userID {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("product %d: %w", id, scheduler.ErrNotFound)
}

func (f *fakeStore) UpdateProductBalance(_ context.Context, productID int64, delta decimal.Decimal) error {
	for i := range f.products {
		if f.products[i].ID == productID {
			f.products[i].Balance = f.products[i].Balance.Add(delta)
			return nil
		}
	}
	return fmt.Errorf("product %d: %w", productID, scheduler.ErrNotFound)
}

func (f *fakeStore) CreateTransaction(_ context.Context, t *models.Transaction) error {
	t.ID = f.id()
	f.transactions = append(f.transactions, *t)
	return nil
}

func (f *fakeStore) ListTransactions(_ context.Context, productID int64, _, _ int) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, t := range f.transactions {
		if t.ProductID == productID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) GetIncomeExpenseStats(_ context.Context, userID int64, from, to time.Time) (*models.IncomeExpenseStats, error) {
	stats := &models.IncomeExpenseStats{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range f.transactions {
		p, err := f.FindProduct(context.Background(), t.ProductID, userID)
		if err != nil || p == nil {
			continue
		}
		if t.TransactionDate.Before(from) || t.TransactionDate.After(to) {
			continue
		}
		if t.Type == models.TransactionIncome {
			stats.Income = stats.Income.Add(t.Amount)
		} else {
			stats.Expense = stats.Expense.Add(t.Amount)
		}
	}
	stats.NetBalance = stats.Income.Sub(stats.Expense)
	return stats, nil
}

func (f *fakeStore) GetTotalBalance(_ context.Context, userID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range f.products {
		if p.UserID == userID && p.IsActive {
			total = total.Add(p.Balance)
		}
	}
	return total, nil
}

func (f *fakeStore) CreateCredit(_ context.Context, c *models.Credit) error {
	c.ID = f.id()
	f.credits = append(f.credits, *c)
	return nil
}

func (f *fakeStore) ListCredits(_ context.Context, productID int64) ([]models.Credit, error) {
	var out []models.Credit
	for _, c := range f.credits {
		if c.ProductID == productID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) ownsProduct(productID, userID int64) bool {
	for _, p := range f.products {
		if p.ID == productID && p.UserID == userID {
			return true
		}
	}
	return false
}

func (f *fakeStore) FindCredit(_ context.Context, id, userID int64) (*models.Credit, error) {
	for i := range f.credits {
		if f.credits[i].ID == id && f.ownsProduct(f.credits[i].ProductID, userID) {
			c := f.credits[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("credit %d: %w", id, scheduler.ErrNotFound)
}

func (f *fakeStore) CreateInstallment(_ context.Context, inst *models.Installment) error {
	if f.failInstallmentsAfter > 0 && f.installmentWrites >= f.failInstallmentsAfter {
		return fmt.Errorf("simulated write failure")
	}
	f.installmentWrites++
	inst.ID = f.id()
	f.installments = append(f.installments, *inst)
	return nil
}

func (f *fakeStore) ListInstallments(_ context.Context, creditID int64) ([]models.Installment, error) {
	var out []models.Installment
	for _, inst := range f.installments {
		if inst.CreditID == creditID {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (f *fakeStore) FindInstallment(ctx context.Context, id, userID int64) (*models.Installment, error) {
	for i := range f.installments {
		if f.installments[i].ID != id {
			continue
		}
		if _, err := f.FindCredit(ctx, f.installments[i].CreditID, userID); err != nil {
			break
		}
		inst := f.installments[i]
		return &inst, nil
	}
	return nil, fmt.Errorf("installment %d: %w", id, scheduler.ErrNotFound)
}

func (f *fakeStore) UpdateInstallmentStatus(_ context.Context, id int64, status models.InstallmentStatus) error {
	for i := range f.installments {
		if f.installments[i].ID == id {
			f.installments[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("installment %d: %w", id, scheduler.ErrNotFound)
}

func (f *fakeStore) ListPendingInstallments(_ context.Context, _ int64) ([]models.Installment, error) {
	var out []models.Installment
	for _, inst := range f.installments {
		if inst.Status == models.InstallmentPending {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (f *fakeStore) CountPendingInstallments(ctx context.Context, userID int64) (int, error) {
	pending, _ := f.ListPendingInstallments(ctx, userID)
	return len(pending), nil
}

func (f *fakeStore) CreateService(_ context.Context, svc *models.Service) error {
	svc.ID = f.id()
	f.services = append(f.services, *svc)
	return nil
}

func (f *fakeStore) ListServices(_ context.Context, userID int64, isActive *bool) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		if svc.UserID == userID && (isActive == nil || svc.IsActive == *isActive) {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeStore) FindService(_ context.Context, id, userID int64) (*models.Service, error) {
	for i := range f.services {
		if f.services[i].ID == id && f.services[i].UserID == userID {
			svc := f.services[i]
			return &svc, nil
		}
	}
	return nil, fmt.Errorf("service %d: %w", id, scheduler.ErrNotFound)
}

func (f *fakeStore) UpdateService(_ context.Context, svc *models.Service) error {
	for i := range f.services {
		if f.services[i].ID == svc.ID && f.services[i].UserID == svc.UserID {
			f.services[i] = *svc
			return nil
		}
	}
	return fmt.Errorf("service %d: %w", svc.ID, scheduler.ErrNotFound)
}

func (f *fakeStore) DeleteService(_ context.Context, id, userID int64) error {
	for i, svc := range f.services {
		if svc.ID == id && svc.UserID == userID {
			f.services = append(f.services[:i], f.services[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("service %d: %w", id, scheduler.ErrNotFound)
}

func (f *fakeStore) ListUpcomingServices(_ context.Context, userID int64, from, to time.Time) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		if svc.UserID == userID && svc.IsActive &&
			!svc.NextDueDate.Before(from) && !svc.NextDueDate.After(to) {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAllDueServices(_ context.Context, asOf time.Time) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		if svc.IsActive && !svc.NextDueDate.After(asOf) {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateServiceNextDueDate(_ context.Context, id int64, next time.Time) error {
	for i := range f.services {
		if f.services[i].ID == id {
			f.services[i].NextDueDate = next
			return nil
		}
	}
	return fmt.Errorf("service %d: %w", id, scheduler.ErrNotFound)
}

func (f *fakeStore) CreateNotification(_ context.Context, n *models.Notification) error {
	n.ID = f.id()
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeStore) ListNotifications(_ context.Context, userID int64, isRead *bool, _ int) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID && (isRead == nil || n.IsRead == *isRead) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeStore) CountUnreadNotifications(_ context.Context, userID int64) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) MarkNotificationRead(_ context.Context, id, userID int64) (*models.Notification, error) {
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID {
			f.notifications[i].IsRead = true
			n := f.notifications[i]
			return &n, nil
		}
	}
	return nil, fmt.Errorf("notification %d: %w", id, scheduler.ErrNotFound)
}

func (f *fakeStore) MarkAllNotificationsRead(_ context.Context, userID int64) (int, error) {
	count := 0
	for i := range f.notifications {
		if f.notifications[i].UserID == userID && !f.notifications[i].IsRead {
			f.notifications[i].IsRead = true
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) DeleteNotification(_ context.Context, id, userID int64) error {
	for i, n := range f.notifications {
		if n.ID == id && n.UserID == userID {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("notification %d: %w", id, scheduler.ErrNotFound)
}

var _ service.Store = (*fakeStore)(nil)
