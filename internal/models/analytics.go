package models

import "github.com/shopspring/decimal"

// IncomeExpenseStats represents income and expense totals for a period
type IncomeExpenseStats struct {
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	NetBalance decimal.Decimal `json:"net_balance"`
}

// DashboardSummary aggregates the figures shown on dashboard load
type DashboardSummary struct {
	TotalBalance        decimal.Decimal    `json:"total_balance"`
	MonthStats          IncomeExpenseStats `json:"month_stats"`
	PendingInstallments int                `json:"pending_installments"`
	UnreadNotifications int                `json:"unread_notifications"`
}
