package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Request is one user's claim against a listing. Created by the user,
// transitioned only by the owning merchant; MerchantID is denormalized from
// the listing at creation time.
type Request struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FoodID     uuid.UUID `gorm:"column:food_id;type:uuid;not null" json:"food_id"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	MerchantID uuid.UUID `gorm:"column:merchant_id;type:uuid;not null" json:"merchant_id"`
	Quantity   int       `gorm:"column:quantity;not null" json:"quantity"`
	PickupTime string    `gorm:"column:pickup_time;not null" json:"pickup_time"`
	Notes      *string   `gorm:"column:notes" json:"notes"`
	Status     string    `gorm:"column:status;type:varchar(20);default:'pending'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Request) TableName() string {
	return "food_requests"
}

func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
