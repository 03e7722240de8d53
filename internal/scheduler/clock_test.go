package scheduler_test

import (
	"testing"
	"time"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/finanzas-app/finanzas-service/internal/scheduler"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeInitialDueDate(t *testing.T) {
	tests := []struct {
		name       string
		frequency  models.ServiceFrequency
		paymentDay int
		reference  time.Time
		want       time.Time
	}{
		{
			name:       "monthly day already passed rolls forward",
			frequency:  models.FrequencyMonthly,
			paymentDay: 15,
			reference:  date(2024, time.June, 20),
			want:       date(2024, time.July, 15),
		},
		{
			name:       "monthly day not yet passed",
			frequency:  models.FrequencyMonthly,
			paymentDay: 15,
			reference:  date(2024, time.June, 10),
			want:       date(2024, time.June, 15),
		},
		{
			name:       "monthly day equals reference date",
			frequency:  models.FrequencyMonthly,
			paymentDay: 15,
			reference:  date(2024, time.June, 15),
			want:       date(2024, time.June, 15),
		},
		{
			name:       "monthly day clamped to short month",
			frequency:  models.FrequencyMonthly,
			paymentDay: 31,
			reference:  date(2024, time.February, 10),
			want:       date(2024, time.February, 29),
		},
		{
			name:       "quarterly rolls forward three months",
			frequency:  models.FrequencyQuarterly,
			paymentDay: 5,
			reference:  date(2024, time.June, 20),
			want:       date(2024, time.September, 5),
		},
		{
			name:       "annual rolls forward twelve months",
			frequency:  models.FrequencyAnnual,
			paymentDay: 1,
			reference:  date(2024, time.June, 20),
			want:       date(2025, time.June, 1),
		},
		{
			name:       "weekly rolls to next matching weekday",
			frequency:  models.FrequencyWeekly,
			paymentDay: int(time.Friday),
			reference:  date(2024, time.June, 19), // a Wednesday
			want:       date(2024, time.June, 21),
		},
		{
			name:       "weekly on matching weekday stays put",
			frequency:  models.FrequencyWeekly,
			paymentDay: int(time.Wednesday),
			reference:  date(2024, time.June, 19),
			want:       date(2024, time.June, 19),
		},
		{
			name:       "weekly wraps around the week",
			frequency:  models.FrequencyWeekly,
			paymentDay: int(time.Monday),
			reference:  date(2024, time.June, 19), // Wednesday -> next Monday
			want:       date(2024, time.June, 24),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scheduler.ComputeInitialDueDate(tt.frequency, tt.paymentDay, tt.reference)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeInitialDueDate_Invalid(t *testing.T) {
	t.Run("unknown frequency", func(t *testing.T) {
		_, err := scheduler.ComputeInitialDueDate("BIWEEKLY", 3, date(2024, time.June, 20))
		var ferr *scheduler.InvalidFrequencyError
		require.ErrorAs(t, err, &ferr)
	})

	tests := []struct {
		name       string
		frequency  models.ServiceFrequency
		paymentDay int
	}{
		{"monthly day 32", models.FrequencyMonthly, 32},
		{"monthly day 0", models.FrequencyMonthly, 0},
		{"quarterly negative day", models.FrequencyQuarterly, -1},
		{"weekly day 7", models.FrequencyWeekly, 7},
		{"weekly negative day", models.FrequencyWeekly, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scheduler.ComputeInitialDueDate(tt.frequency, tt.paymentDay, date(2024, time.June, 20))
			var derr *scheduler.InvalidPaymentDayError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, tt.paymentDay, derr.PaymentDay)
		})
	}
}

func TestAdvanceDueDate(t *testing.T) {
	tests := []struct {
		name      string
		current   time.Time
		frequency models.ServiceFrequency
		want      time.Time
	}{
		{"monthly clamped into february", date(2024, time.January, 31), models.FrequencyMonthly, date(2024, time.February, 29)},
		{"monthly plain", date(2024, time.March, 10), models.FrequencyMonthly, date(2024, time.April, 10)},
		{"quarterly", date(2024, time.January, 15), models.FrequencyQuarterly, date(2024, time.April, 15)},
		{"quarterly across year end", date(2024, time.November, 30), models.FrequencyQuarterly, date(2025, time.February, 28)},
		{"annual", date(2024, time.February, 29), models.FrequencyAnnual, date(2025, time.February, 28)},
		{"weekly", date(2024, time.June, 19), models.FrequencyWeekly, date(2024, time.June, 26)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scheduler.AdvanceDueDate(tt.current, tt.frequency)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown frequency", func(t *testing.T) {
		_, err := scheduler.AdvanceDueDate(date(2024, time.January, 31), "DAILY")
		var ferr *scheduler.InvalidFrequencyError
		require.ErrorAs(t, err, &ferr)
	})
}

func TestIsDueOrOverdue(t *testing.T) {
	svc := &models.Service{IsActive: true, NextDueDate: date(2024, time.June, 15)}

	assert.False(t, scheduler.IsDueOrOverdue(svc, date(2024, time.June, 14)))
	assert.True(t, scheduler.IsDueOrOverdue(svc, date(2024, time.June, 15)))
	assert.True(t, scheduler.IsDueOrOverdue(svc, date(2024, time.July, 1)))

	inactive := &models.Service{IsActive: false, NextDueDate: date(2024, time.June, 15)}
	assert.False(t, scheduler.IsDueOrOverdue(inactive, date(2024, time.July, 1)))
}

func TestEvaluateServicesDue(t *testing.T) {
	amount := decimal.RequireFromString("19.99")

	t.Run("overdue by two periods emits two notifications", func(t *testing.T) {
		productID := int64(11)
		svc := &models.Service{
			ID:          7,
			UserID:      1,
			ProductID:   &productID,
			Name:        "Netflix",
			Amount:      amount,
			Frequency:   models.FrequencyMonthly,
			PaymentDay:  15,
			IsActive:    true,
			NextDueDate: date(2024, time.May, 15),
		}

		results, err := scheduler.EvaluateServicesDue([]*models.Service{svc}, date(2024, time.June, 20))
		require.NoError(t, err)
		require.Len(t, results, 2)

		// Oldest period first.
		assert.Equal(t, date(2024, time.May, 15), results[0].DueDate)
		assert.Contains(t, results[0].Notification.Message, "2024-05-15")
		assert.Equal(t, date(2024, time.June, 15), results[0].NewNextDueDate)
		assert.Equal(t, date(2024, time.June, 15), results[1].DueDate)
		assert.Contains(t, results[1].Notification.Message, "2024-06-15")
		assert.Equal(t, date(2024, time.July, 15), results[1].NewNextDueDate)

		for _, r := range results {
			assert.Equal(t, int64(7), r.ServiceID)
			assert.Equal(t, models.NotificationServiceDue, r.Notification.Type)
			require.NotNil(t, r.Notification.RelatedServiceID)
			assert.Equal(t, int64(7), *r.Notification.RelatedServiceID)
			// The notification links the service only, never the
			// product as well.
			assert.Nil(t, r.Notification.RelatedProductID)
		}
		// Final due date is strictly in the future.
		assert.True(t, results[1].NewNextDueDate.After(date(2024, time.June, 20)))
	})

	t.Run("not yet due emits nothing", func(t *testing.T) {
		svc := &models.Service{
			ID: 1, IsActive: true, Frequency: models.FrequencyMonthly,
			Amount: amount, NextDueDate: date(2024, time.July, 1),
		}
		results, err := scheduler.EvaluateServicesDue([]*models.Service{svc}, date(2024, time.June, 20))
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("inactive service is skipped even when overdue", func(t *testing.T) {
		svc := &models.Service{
			ID: 2, IsActive: false, Frequency: models.FrequencyMonthly,
			Amount: amount, NextDueDate: date(2024, time.January, 1),
		}
		results, err := scheduler.EvaluateServicesDue([]*models.Service{svc}, date(2024, time.June, 20))
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("due today emits exactly one", func(t *testing.T) {
		svc := &models.Service{
			ID: 3, UserID: 1, Name: "Gym", IsActive: true,
			Frequency: models.FrequencyWeekly, Amount: amount,
			NextDueDate: date(2024, time.June, 20),
		}
		results, err := scheduler.EvaluateServicesDue([]*models.Service{svc}, date(2024, time.June, 20))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, date(2024, time.June, 27), results[0].NewNextDueDate)
	})

	t.Run("multiple services evaluated independently", func(t *testing.T) {
		a := &models.Service{
			ID: 4, IsActive: true, Frequency: models.FrequencyMonthly,
			Amount: amount, NextDueDate: date(2024, time.June, 1),
		}
		b := &models.Service{
			ID: 5, IsActive: true, Frequency: models.FrequencyMonthly,
			Amount: amount, NextDueDate: date(2024, time.December, 1),
		}
		results, err := scheduler.EvaluateServicesDue([]*models.Service{a, b}, date(2024, time.June, 20))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, int64(4), results[0].ServiceID)
	})
}
