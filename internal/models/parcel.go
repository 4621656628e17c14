package models

import "time"

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

type Parcel struct {
	ID              uint   `json:"id" gorm:"primarykey"`
	Title           string `json:"title"`
	Type            string `json:"type"`
	Weight          string `json:"weight"`
	SenderName      string `json:"senderName"`
	SenderEmail     string `json:"senderEmail" gorm:"index"`
	SenderContact   string `json:"senderContact"`
	SenderAddress   string `json:"senderAddress"`
	ReceiverName    string `json:"receiverName"`
	ReceiverContact string `json:"receiverContact"`
	ReceiverAddress string `json:"receiverAddress"`
	// Declared by the client at booking time; parsed only when a checkout
	// session is created.
	Cost          string     `json:"cost"`
	PaymentStatus string     `json:"paymentStatus" gorm:"default:unpaid"`
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`
	TransactionID string     `json:"transactionId,omitempty"`
	TrackingID    string     `json:"trackingId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func (Parcel) TableName() string {
	return "parcels"
}
