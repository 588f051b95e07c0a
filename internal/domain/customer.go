package domain

import "time"

type Customer struct {
	ID           int64   `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"size:200;not null"`
	ContactEmail *string `json:"contactEmail" gorm:"size:200"`
	Phone        *string `json:"phone" gorm:"size:50"`
	BillingTerms *string `json:"billingTerms" gorm:"size:200"`
}

type OrderStatus string

const (
	OrderNew       OrderStatus = "New"
	OrderConfirmed OrderStatus = "Confirmed"
	OrderCanceled  OrderStatus = "Canceled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderNew, OrderConfirmed, OrderCanceled:
		return true
	}
	return false
}

type Order struct {
	ID         int64       `json:"id" gorm:"primaryKey"`
	CustomerID int64       `json:"customerId" gorm:"index;not null"`
	Customer   *Customer   `json:"-" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time   `json:"createdAt"`
	Status     OrderStatus `json:"status" gorm:"size:20;not null;default:New"`
	Notes      *string     `json:"notes"`
}
