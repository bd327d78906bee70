package models

import (
	"time"
)

// MarketplaceItemType representa o tipo de anúncio
type MarketplaceItemType string

const (
	MarketplaceProduto MarketplaceItemType = "PRODUTO"
	MarketplaceServico MarketplaceItemType = "SERVICO"
)

// MarketplaceItem representa um anúncio do mercado entre associados.
// O preço é armazenado em centavos.
type MarketplaceItem struct {
	ID          uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string              `gorm:"column:title;not null;size:200" json:"title"`
	Description string              `gorm:"column:description;type:text" json:"description"`
	Price       int64               `gorm:"column:price;not null" json:"price"`
	Type        MarketplaceItemType `gorm:"column:type;type:varchar(20);not null" json:"type"`
	ImageURL    *string             `gorm:"column:image_url;size:500" json:"imageUrl,omitempty"`
	ContactInfo string              `gorm:"column:contact_info;not null;size:200" json:"contactInfo"`
	UserID      uint                `gorm:"column:user_id;not null;index" json:"userId"`
	User        *User               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	IsActive    bool                `gorm:"column:is_active;not null;default:true" json:"isActive"`
	CreatedAt   time.Time           `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (MarketplaceItem) TableName() string {
	return "marketplace_items"
}
