package models

import (
	"time"
)

// RequestStatus representa o status de uma solicitação
type RequestStatus string

const (
	RequestStatusCriado      RequestStatus = "CRIADO"       // Aguardando triagem
	RequestStatusEmAndamento RequestStatus = "EM_ANDAMENTO" // Em análise pelo administrador
	RequestStatusAprovado    RequestStatus = "APROVADO"
	RequestStatusReprovado   RequestStatus = "REPROVADO"
)

// Known informa se o valor corresponde a um status conhecido
func (s RequestStatus) Known() bool {
	switch s {
	case RequestStatusCriado, RequestStatusEmAndamento, RequestStatusAprovado, RequestStatusReprovado:
		return true
	}
	return false
}

// DisplayName retorna o nome do status exibido ao usuário
func (s RequestStatus) DisplayName() string {
	switch s {
	case RequestStatusCriado:
		return "Criado"
	case RequestStatusEmAndamento:
		return "Em Andamento"
	case RequestStatusAprovado:
		return "Aprovado"
	case RequestStatusReprovado:
		return "Reprovado"
	}
	return "Desconhecido"
}

// Request representa uma solicitação aberta por um associado e triada pelo administrador
type Request struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	TypeID       uint            `gorm:"column:type_id;not null;index" json:"typeId"`
	Type         *RequestType    `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	UserID       uint            `gorm:"column:user_id;not null;index" json:"userId"`
	User         *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status       RequestStatus   `gorm:"column:status;type:varchar(20);not null;default:'CRIADO'" json:"status"`
	Title        string          `gorm:"column:title;size:200" json:"title"`
	Description  string          `gorm:"column:description;type:text" json:"description"`
	Response     *string         `gorm:"column:response;type:text" json:"response,omitempty"`
	SimulationID *uint           `gorm:"column:simulation_id" json:"simulationId,omitempty"`
	Simulation   *LoanSimulation `gorm:"foreignKey:SimulationID" json:"simulation,omitempty"`
	CreatedAt    time.Time       `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Request) TableName() string {
	return "requests"
}
