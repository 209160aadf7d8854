package repository

import (
	"time"

	"gorm.io/gorm"
)

// Shopping represents a list header record. Timestamps are epoch
// milliseconds, zero when unknown.
type Shopping struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	UID            string `gorm:"uniqueIndex;not null;size:36"`
	Position       int
	Created        int64
	LastModified   int64
	Name           string `gorm:"not null"`
	Reminder       *int64
	Total          float64
	TotalFormatted bool
	Archived       bool
	Deleted        bool
	SortBy         string `gorm:"size:32;not null"`
	SortAscending  bool
	SortFormatted  bool
	Pinned         bool
}

// TableName specifies the table name for the Shopping model.
func (Shopping) TableName() string {
	return "shoppings"
}

// Product represents a product record.
type Product struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	UID               string `gorm:"uniqueIndex;not null;size:36"`
	ShoppingUID       string `gorm:"index;not null;size:36"`
	Position          int
	LastModified      int64
	Name              string `gorm:"not null"`
	Quantity          float64
	QuantitySymbol    string `gorm:"size:32"`
	Price             float64
	Discount          float64
	DiscountAsPercent bool
	TaxRate           float64
	TaxRateAsPercent  bool
	Total             float64
	TotalFormatted    bool
	Completed         bool
	Pinned            bool
	Note              string
	Manufacturer      string
	Brand             string
	Size              string
	Color             string
	Provider          string
}

// TableName specifies the table name for the Product model.
func (Product) TableName() string {
	return "products"
}

// Autocomplete represents a remembered product record.
type Autocomplete struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	UID               string `gorm:"uniqueIndex;not null;size:36"`
	Created           int64
	LastModified      int64
	Name              string `gorm:"not null"`
	Quantity          float64
	QuantitySymbol    string `gorm:"size:32"`
	Price             float64
	Discount          float64
	DiscountAsPercent bool
	TaxRate           float64
	TaxRateAsPercent  bool
	Manufacturer      string
	Brand             string
	Size              string
	Color             string
	Provider          string
}

// TableName specifies the table name for the Autocomplete model.
func (Autocomplete) TableName() string {
	return "autocompletes"
}

// Preference is one key-value setting.
type Preference struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value string
}

// TableName specifies the table name for the Preference model.
func (Preference) TableName() string {
	return "preferences"
}

// AutoMigrate creates or updates the canonical tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Shopping{}, &Product{}, &Autocomplete{}, &Preference{})
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
