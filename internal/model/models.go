// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the domain records exchanged with the DenimHouse API.
package model

import "time"

// =============================================================================
// IDENTITY
// =============================================================================

// User is the authenticated admin identity attached to a session.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"` // "superadmin" or "admin"
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SiteUser is a storefront customer account managed from the console.
type SiteUser struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Active     bool       `json:"active"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// =============================================================================
// CATALOG
// =============================================================================

// Category groups products (e.g. slim fit, straight cut, jackets).
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is a catalog entry. Prices are in IDR, stored as whole rupiah.
type Product struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"category_id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	Sizes       []string  `json:"sizes,omitempty"`
	ImageURLs   []string  `json:"image_urls,omitempty"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Review is a customer product review awaiting moderation.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment,omitempty"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

// =============================================================================
// FULFILLMENT
// =============================================================================

// Order status values as emitted by the backend.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderProcessed = "processed"
	OrderShipped   = "shipped"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Order is a customer order with its line items.
type Order struct {
	ID        int64       `json:"id"`
	Number    string      `json:"number"`
	UserID    int64       `json:"user_id"`
	Status    string      `json:"status"`
	Total     int64       `json:"total"`
	Items     []OrderItem `json:"items,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderItem is one product line on an order.
type OrderItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// Payment records a payment submission for an order.
type Payment struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Method    string    `json:"method"` // "transfer", "va", "cod"
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"` // "pending", "confirmed", "rejected"
	ProofURL  string    `json:"proof_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Shipment tracks order delivery.
type Shipment struct {
	ID         int64      `json:"id"`
	OrderID    int64      `json:"order_id"`
	Courier    string     `json:"courier"`
	TrackingNo string     `json:"tracking_no,omitempty"`
	Status     string     `json:"status"` // "preparing", "in_transit", "delivered"
	ShippedAt  *time.Time `json:"shipped_at,omitempty"`
	Address    string     `json:"address"`
}

// =============================================================================
// REPORTING
// =============================================================================

// SalesReportRow is one aggregated row of the sales report.
type SalesReportRow struct {
	Date       string `json:"date"` // YYYY-MM-DD
	OrderCount int    `json:"order_count"`
	ItemsSold  int    `json:"items_sold"`
	Revenue    int64  `json:"revenue"`
}

// SalesReport is the report for a date range.
type SalesReport struct {
	From         string           `json:"from"`
	To           string           `json:"to"`
	Rows         []SalesReportRow `json:"rows"`
	TotalRevenue int64            `json:"total_revenue"`
	TotalOrders  int              `json:"total_orders"`
}

// Page describes the pagination block many list endpoints return.
type Page struct {
	Current int `json:"current_page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Last    int `json:"last_page"`
}
