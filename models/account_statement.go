package models

import (
	"time"
)

// AccountStatementType representa o escopo de um demonstrativo
type AccountStatementType string

const (
	StatementIndividual AccountStatementType = "INDIVIDUAL" // Visível apenas ao associado dono
	StatementAssociacao AccountStatementType = "ASSOCIACAO" // Visível a todos os associados
)

// AccountStatement representa um demonstrativo de contas distribuído pela administração
type AccountStatement struct {
	ID          uint                 `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string               `gorm:"column:title;not null;size:200" json:"title"`
	Description string               `gorm:"column:description;type:text" json:"description"`
	FilePath    string               `gorm:"column:file_path;not null;size:500" json:"filePath"`
	Type        AccountStatementType `gorm:"column:type;type:varchar(20);not null" json:"type"`
	UserID      *uint                `gorm:"column:user_id;index" json:"userId,omitempty"`
	User        *User                `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt   time.Time            `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (AccountStatement) TableName() string {
	return "account_statements"
}
