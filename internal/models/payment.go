package models

import "time"

// Payment is written once per transaction id and never mutated. Uniqueness is
// enforced by a lookup before insert, not by a database constraint.
type Payment struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	Status        string    `json:"status"`
	Amount        int64     `json:"amount"`
	Date          time.Time `json:"date"`
	TransactionID string    `json:"transactionId" gorm:"index"`
	ParcelID      uint      `json:"parcelId"`
	Email         string    `json:"email" gorm:"index"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (Payment) TableName() string {
	return "payments"
}
