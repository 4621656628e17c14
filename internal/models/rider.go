package models

import "time"

const (
	RiderStatusPending  = "Pending"
	RiderStatusApproved = "Approved"
	RiderStatusRejected = "Rejected"
)

type Rider struct {
	ID               uint      `json:"id" gorm:"primarykey"`
	Name             string    `json:"name"`
	Email            string    `json:"email" gorm:"index"`
	Age              int       `json:"age"`
	Region           string    `json:"region"`
	District         string    `json:"district"`
	Phone            string    `json:"phone"`
	NationalID       string    `json:"nationalId"`
	BikeBrand        string    `json:"bikeBrand"`
	BikeRegistration string    `json:"bikeRegistration"`
	Status           string    `json:"status" gorm:"default:Pending"`
	// Set to "Rider" only when the application is approved.
	Role        string    `json:"role,omitempty"`
	DocumentURL string    `json:"documentUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Rider) TableName() string {
	return "riders"
}
