package models

import (
	"time"
)

// Nomes dos tipos de solicitação criados no bootstrap do sistema
const (
	RequestTypeEmprestimo = "Empréstimo"
	RequestTypeBeneficio  = "Benefício"
	RequestTypeSugestoes  = "Sugestões"
)

// RequestType representa uma categoria de solicitação (empréstimo, benefício, sugestão
// ou qualquer outra criada pelo administrador). O nome é único sem diferenciar maiúsculas.
type RequestType struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;not null;size:100" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (RequestType) TableName() string {
	return "request_types"
}
