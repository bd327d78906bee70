package models

import (
	"time"
)

// News representa uma notícia publicada no mural
type News struct {
	ID              uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string        `gorm:"column:title;not null;size:200" json:"title"`
	Content         string        `gorm:"column:content;type:text;not null" json:"content"`
	ImageURL        *string       `gorm:"column:image_url;size:500" json:"imageUrl,omitempty"`
	PublishedAt     time.Time     `gorm:"column:published_at;default:CURRENT_TIMESTAMP" json:"publishedAt"`
	CreatedByUserID uint          `gorm:"column:created_by_user_id;not null" json:"createdByUserId"`
	CreatedBy       *User         `gorm:"foreignKey:CreatedByUserID" json:"createdBy,omitempty"`
	Comments        []NewsComment `gorm:"foreignKey:NewsID" json:"comments,omitempty"`
}

func (News) TableName() string {
	return "news"
}

// NewsComment representa um comentário de associado em uma notícia
type NewsComment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	NewsID    uint      `gorm:"column:news_id;not null;index" json:"newsId"`
	UserID    uint      `gorm:"column:user_id;not null" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (NewsComment) TableName() string {
	return "news_comments"
}
