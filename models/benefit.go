package models

import (
	"time"
)

// Benefit representa um benefício do catálogo oferecido aos associados
type Benefit struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"column:name;not null;size:200" json:"name"`
	Description     string    `gorm:"column:description;type:text" json:"description"`
	IsActive        bool      `gorm:"column:is_active;not null;default:true" json:"isActive"`
	ImageURL        *string   `gorm:"column:image_url;size:500" json:"imageUrl,omitempty"`
	ButtonAction    *string   `gorm:"column:button_action;size:500" json:"buttonAction,omitempty"`
	CreatedByUserID uint      `gorm:"column:created_by_user_id;not null" json:"createdByUserId"`
	CreatedBy       *User     `gorm:"foreignKey:CreatedByUserID" json:"createdBy,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Benefit) TableName() string {
	return "benefits"
}
