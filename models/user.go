package models

import "time"

// User roles. Every account starts as a customer; the admin panel can
// promote or demote through the role endpoint.
const (
	RoleAdmin   = "admin"
	RoleCliente = "cliente"
)

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Usuario   string    `gorm:"uniqueIndex;not null" json:"usuario"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"not null;default:cliente" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidRole reports whether r is one of the roles the storefront knows.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleCliente
}
