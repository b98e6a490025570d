package devseed

// Package devseed supplies the literal mock datasets the dashboard sections
// render: subscriptions, invoices, and the marketplace catalog. The core
// never validates or transforms this data beyond passing USD price fields
// through the currency formatter at render time.

import (
	"time"

	"github.com/vendosaas/vendo/internal/domain/model"
	"github.com/vendosaas/vendo/internal/domain/money"
)

// Catalog holds the mock datasets keyed by id. Amounts are stored in USD
// only; formatted copies are produced per request.
type Catalog struct {
	subscriptions []model.Subscription
	invoices      []model.Invoice
	listings      []model.Listing
}

// NewCatalog returns the fixed demo catalog.
func NewCatalog() *Catalog {
	day := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}

	return &Catalog{
		subscriptions: []model.Subscription{
			{ID: "sub-1001", Product: "LedgerFlow", Plan: "Team", PriceUSD: 29.99, RenewsAt: day("2026-09-14"), Status: model.SubscriptionActive},
			{ID: "sub-1002", Product: "MailSpring CRM", Plan: "Starter", PriceUSD: 12.00, RenewsAt: day("2026-09-02"), Status: model.SubscriptionActive},
			{ID: "sub-1003", Product: "Shipwright CI", Plan: "Pro", PriceUSD: 49.00, RenewsAt: day("2026-10-01"), Status: model.SubscriptionTrial},
			{ID: "sub-1004", Product: "Beacon Analytics", Plan: "Growth", PriceUSD: 89.00, RenewsAt: day("2026-08-21"), Status: model.SubscriptionCanceled},
		},
		invoices: []model.Invoice{
			{ID: "inv-5001", Number: "VND-2026-0141", IssuedAt: day("2026-08-01"), AmountUSD: 90.99, Status: model.InvoicePaid},
			{ID: "inv-5002", Number: "VND-2026-0112", IssuedAt: day("2026-07-01"), AmountUSD: 90.99, Status: model.InvoicePaid},
			{ID: "inv-5003", Number: "VND-2026-0087", IssuedAt: day("2026-06-01"), AmountUSD: 41.99, Status: model.InvoicePaid},
			{ID: "inv-5004", Number: "VND-2026-0059", IssuedAt: day("2026-05-01"), AmountUSD: 41.99, Status: model.InvoiceOverdue},
		},
		listings: []model.Listing{
			{ID: "app-2001", Name: "LedgerFlow", Vendor: "Fernhill Software", Category: "Finance", PriceUSD: 29.99, Rating: 4.6},
			{ID: "app-2002", Name: "MailSpring CRM", Vendor: "Bluewater Labs", Category: "Sales", PriceUSD: 12.00, Rating: 4.2},
			{ID: "app-2003", Name: "Shipwright CI", Vendor: "Quayside Systems", Category: "Developer Tools", PriceUSD: 49.00, Rating: 4.8},
			{ID: "app-2004", Name: "Beacon Analytics", Vendor: "Northlight", Category: "Analytics", PriceUSD: 89.00, Rating: 4.4},
			{ID: "app-2005", Name: "Quill Docs", Vendor: "Fernhill Software", Category: "Productivity", PriceUSD: 8.00, Rating: 4.1},
			{ID: "app-2006", Name: "Sentinel Uptime", Vendor: "Quayside Systems", Category: "Operations", PriceUSD: 20.00, Rating: 4.7},
		},
	}
}

// Subscriptions returns the subscription rows with prices formatted in the
// given currency.
func (c *Catalog) Subscriptions(cur money.Currency) []model.Subscription {
	out := make([]model.Subscription, len(c.subscriptions))
	for i, sub := range c.subscriptions {
		sub.Price = money.Format(cur, sub.PriceUSD)
		out[i] = sub
	}
	return out
}

// Invoices returns the billing rows with amounts formatted in the given
// currency.
func (c *Catalog) Invoices(cur money.Currency) []model.Invoice {
	out := make([]model.Invoice, len(c.invoices))
	for i, inv := range c.invoices {
		inv.Amount = money.Format(cur, inv.AmountUSD)
		out[i] = inv
	}
	return out
}

// Listings returns the marketplace catalog with prices formatted in the
// given currency.
func (c *Catalog) Listings(cur money.Currency) []model.Listing {
	out := make([]model.Listing, len(c.listings))
	for i, l := range c.listings {
		l.Price = money.Format(cur, l.PriceUSD)
		out[i] = l
	}
	return out
}
