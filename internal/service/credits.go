package service

import (
	"context"
	"time"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/finanzas-app/finanzas-service/internal/scheduler"
	"github.com/shopspring/decimal"
)

// CreateCreditParams contains parameters for creating a credit
type CreateCreditParams struct {
	ProductID         int64
	PurchaseDate      time.Time
	Description       string
	TotalAmount       decimal.Decimal
	TotalInstallments int
}

// CreateCredit creates a credit and its full installment plan in one
// transaction. Either the credit and all installments are persisted, or
// nothing is.
func (s *Service) CreateCredit(ctx context.Context, userID int64, params CreateCreditParams) (*models.Credit, []models.Installment, error) {
	if _, err := s.store.FindProduct(ctx, params.ProductID, userID); err != nil {
		return nil, nil, err
	}

	installments, err := scheduler.GenerateInstallments(params.TotalAmount, params.PurchaseDate, params.TotalInstallments)
	if err != nil {
		return nil, nil, err
	}

	credit := &models.Credit{
		ProductID:         params.ProductID,
		PurchaseDate:      params.PurchaseDate,
		Description:       params.Description,
		TotalAmount:       params.TotalAmount,
		TotalInstallments: params.TotalInstallments,
	}

	err = s.store.WithTx(ctx, func(tx Store) error {
		if err := tx.CreateCredit(ctx, credit); err != nil {
			return err
		}
		for i := range installments {
			installments[i].CreditID = credit.ID
			if err := tx.CreateInstallment(ctx, &installments[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.Infof("Credit %d created with %d installments for product %d",
		credit.ID, len(installments), credit.ProductID)
	return credit, installments, nil
}

// ListCredits returns the credits posted against a product owned by the
// user.
func (s *Service) ListCredits(ctx context.Context, userID, productID int64) ([]models.Credit, error) {
	if _, err := s.store.FindProduct(ctx, productID, userID); err != nil {
		return nil, err
	}
	return s.store.ListCredits(ctx, productID)
}

// ListInstallments returns the installments of a credit owned by the
// user, in sequence order.
func (s *Service) ListInstallments(ctx context.Context, userID, creditID int64) ([]models.Installment, error) {
	if _, err := s.store.FindCredit(ctx, creditID, userID); err != nil {
		return nil, err
	}
	return s.store.ListInstallments(ctx, creditID)
}

// ListPendingInstallments returns the user's unpaid installments across
// all credits, soonest due first.
func (s *Service) ListPendingInstallments(ctx context.Context, userID int64) ([]models.Installment, error) {
	return s.store.ListPendingInstallments(ctx, userID)
}

// MarkInstallmentPaid transitions an installment to PAID. Paying an
// installment twice fails with scheduler.ErrAlreadyPaid.
func (s *Service) MarkInstallmentPaid(ctx context.Context, userID, installmentID int64) (*models.Installment, error) {
	inst, err := s.store.FindInstallment(ctx, installmentID, userID)
	if err != nil {
		return nil, err
	}

	if err := scheduler.MarkPaid(inst); err != nil {
		return nil, err
	}

	if err := s.store.UpdateInstallmentStatus(ctx, inst.ID, inst.Status); err != nil {
		return nil, err
	}

	s.log.Infof("Installment %d marked paid", inst.ID)
	return inst, nil
}
