package models

import (
	"time"
)

// UserRole representa o papel do usuário no sistema
type UserRole string

const (
	RoleAssociado UserRole = "ASSOCIADO"
	RoleAdmin     UserRole = "ADMIN"
)

// User representa um associado ou administrador da sede
type User struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Matricula      string    `gorm:"column:matricula;unique;not null;size:10" json:"matricula"`
	Name           string    `gorm:"column:name;not null;size:200" json:"name"`
	Email          string    `gorm:"column:email;not null;size:200" json:"email"`
	WhatsAppNumber *string   `gorm:"column:whatsapp_number;size:20;index" json:"whatsappNumber,omitempty"`
	PasswordHash   string    `gorm:"column:password_hash;not null;size:100" json:"-"`
	TimeZone       string    `gorm:"column:time_zone;size:50;default:'America/Sao_Paulo'" json:"timeZone"`
	Role           UserRole  `gorm:"column:role;type:varchar(20);not null;default:'ASSOCIADO'" json:"role"`
	CreatedAt      time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin informa se o usuário tem papel de administrador
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
