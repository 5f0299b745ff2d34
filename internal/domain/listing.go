package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing statuses. Archived listings stay editable by the owner but are
// hidden from the public catalog regardless of quantity.
const (
	ListingStatusAvailable = "available"
	ListingStatusArchived  = "archived"
)

// Listing is one donation batch owned by a single merchant.
// Invariant: 0 <= AvailableQuantity <= Quantity after every accepted write.
type Listing struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	MerchantID        uuid.UUID `gorm:"column:merchant_id;type:uuid;not null" json:"merchant_id"`
	Title             string    `gorm:"column:title;not null" json:"title"`
	Description       string    `gorm:"column:description" json:"description"`
	Category          string    `gorm:"column:category;not null" json:"category"`
	Quantity          int       `gorm:"column:quantity;not null" json:"quantity"`
	AvailableQuantity int       `gorm:"column:available_quantity;not null" json:"available_quantity"`
	ExpiryAt          time.Time `gorm:"column:expiry_at;not null" json:"expiry_at"`
	PickupTimeStart   string    `gorm:"column:pickup_time_start;not null" json:"pickup_time_start"`
	PickupTimeEnd     string    `gorm:"column:pickup_time_end;not null" json:"pickup_time_end"`
	Location          string    `gorm:"column:location;not null" json:"location"`
	City              string    `gorm:"column:city;not null" json:"city"`
	ImageURL          string    `gorm:"column:image_url" json:"image_url"`
	Status            string    `gorm:"column:status;type:varchar(20);default:'available'" json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Listing) TableName() string {
	return "food_listings"
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
