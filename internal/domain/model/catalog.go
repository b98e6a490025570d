package model

// Package model holds the plain data records rendered by dashboard sections.
// Price fields are always USD; formatting into the session currency happens
// in the view layer.

import "time"

// SubscriptionStatus enumerates the lifecycle states shown in the
// subscriptions table.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionTrial    SubscriptionStatus = "trial"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// Subscription is one row of the customer's subscription list.
type Subscription struct {
	ID       string             `json:"id"`
	Product  string             `json:"product"`
	Plan     string             `json:"plan"`
	PriceUSD float64            `json:"-"`
	Price    string             `json:"price"`
	RenewsAt time.Time          `json:"renews_at"`
	Status   SubscriptionStatus `json:"status"`
}

// InvoiceStatus enumerates billing statuses.
type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceDue     InvoiceStatus = "due"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// Invoice is one row of the billing history table.
type Invoice struct {
	ID        string        `json:"id"`
	Number    string        `json:"number"`
	IssuedAt  time.Time     `json:"issued_at"`
	AmountUSD float64       `json:"-"`
	Amount    string        `json:"amount"`
	Status    InvoiceStatus `json:"status"`
}

// Listing is one marketplace catalog entry.
type Listing struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Vendor   string  `json:"vendor"`
	Category string  `json:"category"`
	PriceUSD float64 `json:"-"`
	Price    string  `json:"price"`
	Rating   float64 `json:"rating"`
}
