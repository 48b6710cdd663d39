package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// StorageRequirement describes how a medicine must be kept.
type StorageRequirement string

const (
	StorageRoomTemp     StorageRequirement = "room_temp"
	StorageRefrigerated StorageRequirement = "refrigerated"
)

// Valid returns true if the storage requirement is a known value.
func (s StorageRequirement) Valid() bool {
	return s == StorageRoomTemp || s == StorageRefrigerated
}

// Label returns the short display label used in stock tables.
func (s StorageRequirement) Label() string {
	if s == StorageRefrigerated {
		return "Cold"
	}
	return "Room"
}

// String returns the long display name.
func (s StorageRequirement) String() string {
	if s == StorageRefrigerated {
		return "Refrigerated"
	}
	return "Room Temperature"
}

// StockStatus is the derived state of a stock item. It is never persisted.
type StockStatus int

const (
	StockGood StockStatus = iota
	StockExpiring
	StockCritical
	StockOutOfStock
)

func (s StockStatus) String() string {
	switch s {
	case StockOutOfStock:
		return "Out of Stock"
	case StockCritical:
		return "Critical"
	case StockExpiring:
		return "Expiring"
	default:
		return "Good"
	}
}

const (
	// CriticalWindowDays is the expiry horizon at or below which stock is critical.
	CriticalWindowDays = 30

	// ExpiringWindowDays is the expiry horizon at or below which stock is expiring.
	ExpiringWindowDays = 90

	// LowStockThreshold is the unit count below which stock is flagged low.
	LowStockThreshold = 10
)

// StockItem is a unit of accepted donated stock held at a city.
type StockItem struct {
	ID                 ID                 `json:"stock_id"`
	MedicineName       string             `json:"medicine_name"`
	Dosage             string             `json:"dosage"`
	QuantityAvailable  int                `json:"quantity_available"`
	LocationCity       string             `json:"location_city"`
	ExpirationDate     Timestamp          `json:"expiration_date"`
	StorageRequirement StorageRequirement `json:"storage_requirement"`
}

// Validate checks the invariants of a decoded stock item.
func (s *StockItem) Validate() error {
	var errs []error

	if s.QuantityAvailable < 0 {
		errs = append(errs, fmt.Errorf("quantity_available must be non-negative, got %d", s.QuantityAvailable))
	}

	if s.ExpirationDate.IsZero() {
		errs = append(errs, errors.New("expiration_date is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("stock %s: %w", s.ID, errors.Join(errs...))
	}

	return nil
}

// DaysUntilExpiry returns floor((date - now) / 1 day). The result is
// negative once the date has passed.
func DaysUntilExpiry(date, now time.Time) int {
	days := date.Sub(now).Hours() / 24
	return int(math.Floor(days))
}

// DaysUntilExpiry returns the whole days left before the item expires.
func (s *StockItem) DaysUntilExpiry(now time.Time) int {
	return DaysUntilExpiry(s.ExpirationDate.Time, now)
}

// IsLow reports whether the available quantity is under the low-stock threshold.
func (s *StockItem) IsLow() bool {
	return s.QuantityAvailable < LowStockThreshold
}

// ClassifyStock derives the status of an item at the given instant.
// An empty item is out of stock regardless of expiry; expired items with
// units left fall into the critical window.
func ClassifyStock(item StockItem, now time.Time) StockStatus {
	if item.QuantityAvailable == 0 {
		return StockOutOfStock
	}

	days := item.DaysUntilExpiry(now)
	switch {
	case days <= CriticalWindowDays:
		return StockCritical
	case days <= ExpiringWindowDays:
		return StockExpiring
	default:
		return StockGood
	}
}

// ExpiringSoon reports whether the item expires inside the expiring window.
// Quantity is not considered.
func ExpiringSoon(item StockItem, now time.Time) bool {
	return item.DaysUntilExpiry(now) <= ExpiringWindowDays
}

// StockOverview holds the stock dashboard counters.
type StockOverview struct {
	Total        int
	ExpiringSoon int
	LowStock     int
}

// OverviewStock computes the dashboard counters for a stock list.
func OverviewStock(items []StockItem, now time.Time) StockOverview {
	o := StockOverview{Total: len(items)}
	for _, item := range items {
		if ExpiringSoon(item, now) {
			o.ExpiringSoon++
		}
		if item.IsLow() {
			o.LowStock++
		}
	}
	return o
}
