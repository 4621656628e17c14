package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "Admin"
	RoleRider = "Rider"
)

// User mirrors an identity-provider account. There is no password here:
// authentication is delegated entirely to Firebase.
type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Email     string    `json:"email" gorm:"index"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photoURL"`
	Role      string    `json:"role" gorm:"default:user"`
	FCMToken  string    `json:"-" gorm:"column:fcm_token"`
	CreatedAt time.Time `json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
