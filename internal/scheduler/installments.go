package scheduler

import (
	"time"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/shopspring/decimal"
)

// GenerateInstallments builds the full installment plan for a credit:
// count rows, 1-based contiguous numbering, all PENDING. The amount per
// installment is the principal divided by count floored to the cent;
// the rounding remainder is absorbed by the final installment, so the
// amounts always sum back to the principal exactly.
//
// Due dates start at purchaseDate and advance one calendar month per
// installment, keeping purchaseDate's day-of-month and clamping it to
// the last day of shorter months (Jan 31 -> Feb 28/29 -> Mar 31).
//
// The caller owns persistence and must write the whole batch in a
// single transaction.
func GenerateInstallments(principal decimal.Decimal, purchaseDate time.Time, count int) ([]models.Installment, error) {
	if !principal.IsPositive() {
		return nil, &InvalidCreditParametersError{Field: "principal", Value: principal.String()}
	}
	if count < 1 {
		return nil, &InvalidCreditParametersError{Field: "count", Value: decimal.NewFromInt(int64(count)).String()}
	}
	if purchaseDate.IsZero() {
		return nil, &InvalidCreditParametersError{Field: "purchase_date", Value: "zero"}
	}

	base := principal.Div(decimal.NewFromInt(int64(count))).RoundDown(2)
	last := principal.Sub(base.Mul(decimal.NewFromInt(int64(count - 1))))

	start := midnight(purchaseDate)
	anchorDay := start.Day()

	installments := make([]models.Installment, count)
	for i := 0; i < count; i++ {
		amount := base
		if i == count-1 {
			amount = last
		}
		installments[i] = models.Installment{
			InstallmentNumber: i + 1,
			Amount:            amount,
			DueDate:           addMonthsClamped(start, i, anchorDay),
			Status:            models.InstallmentPending,
		}
	}
	return installments, nil
}

// MarkPaid transitions an installment PENDING -> PAID. A second call on
// the same installment fails with ErrAlreadyPaid.
func MarkPaid(inst *models.Installment) error {
	if inst.Status == models.InstallmentPaid {
		return ErrAlreadyPaid
	}
	inst.Status = models.InstallmentPaid
	return nil
}
