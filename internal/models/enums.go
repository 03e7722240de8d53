package models

// TransactionType classifies a transaction as money in or money out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// InstallmentStatus is the payment state of a single installment.
// Transitions only PENDING -> PAID.
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "PENDING"
	InstallmentPaid    InstallmentStatus = "PAID"
)

// Valid reports whether s is a known installment status.
func (s InstallmentStatus) Valid() bool {
	return s == InstallmentPending || s == InstallmentPaid
}

// CategoryType mirrors TransactionType for user categories.
type CategoryType string

const (
	CategoryIncome  CategoryType = "INCOME"
	CategoryExpense CategoryType = "EXPENSE"
)

// Valid reports whether c is a known category type.
func (c CategoryType) Valid() bool {
	return c == CategoryIncome || c == CategoryExpense
}

// ServiceFrequency is how often a recurring service comes due.
type ServiceFrequency string

const (
	FrequencyWeekly    ServiceFrequency = "WEEKLY"
	FrequencyMonthly   ServiceFrequency = "MONTHLY"
	FrequencyQuarterly ServiceFrequency = "QUARTERLY"
	FrequencyAnnual    ServiceFrequency = "ANNUAL"
)

// Valid reports whether f is one of the four supported frequencies.
func (f ServiceFrequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual:
		return true
	}
	return false
}

// PaymentType records whether a service is paid automatically or by hand.
// Display hint only; it does not affect due-date computation.
type PaymentType string

const (
	PaymentAuto   PaymentType = "AUTO"
	PaymentManual PaymentType = "MANUAL"
)

// Valid reports whether p is a known payment type.
func (p PaymentType) Valid() bool {
	return p == PaymentAuto || p == PaymentManual
}

// NotificationType classifies a stored notification.
type NotificationType string

const (
	NotificationServiceDue NotificationType = "SERVICE_DUE"
	NotificationLowBalance NotificationType = "LOW_BALANCE"
	NotificationCreditDue  NotificationType = "CREDIT_DUE"
	NotificationGeneral    NotificationType = "GENERAL"
)

// Valid reports whether n is a known notification type.
func (n NotificationType) Valid() bool {
	switch n {
	case NotificationServiceDue, NotificationLowBalance, NotificationCreditDue, NotificationGeneral:
		return true
	}
	return false
}

// ProductType is the kind of financial product an institution provides.
type ProductType string

const (
	ProductCheckingAccount ProductType = "CHECKING_ACCOUNT"
	ProductSavingsAccount  ProductType = "SAVINGS_ACCOUNT"
	ProductCreditCard      ProductType = "CREDIT_CARD"
	ProductInvestment      ProductType = "INVESTMENT"
	ProductLoan            ProductType = "LOAN"
	ProductOther           ProductType = "OTHER"
)

// Valid reports whether p is a known product type.
func (p ProductType) Valid() bool {
	switch p {
	case ProductCheckingAccount, ProductSavingsAccount, ProductCreditCard,
		ProductInvestment, ProductLoan, ProductOther:
		return true
	}
	return false
}
