package models

import "time"

// Notification represents a stored user notification. Mutated only by
// read acknowledgement; at most one of the related IDs is set.
type Notification struct {
	ID               int64            `json:"id"`
	UserID           int64            `json:"user_id"`
	Type             NotificationType `json:"type"`
	Title            string           `json:"title"`
	Message          string           `json:"message"`
	IsRead           bool             `json:"is_read"`
	RelatedServiceID *int64           `json:"related_service_id,omitempty"`
	RelatedProductID *int64           `json:"related_product_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}
