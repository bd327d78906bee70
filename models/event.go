package models

import (
	"time"
)

// ConfirmationStatus representa a resposta de presença de um associado
type ConfirmationStatus string

const (
	ConfirmationPendente   ConfirmationStatus = "PENDENTE"
	ConfirmationConfirmado ConfirmationStatus = "CONFIRMADO"
	ConfirmationRecusado   ConfirmationStatus = "RECUSADO"
)

// Event representa um evento da agenda da sede
type Event struct {
	ID              uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string              `gorm:"column:title;not null;size:200" json:"title"`
	Description     string              `gorm:"column:description;type:text" json:"description"`
	EventDate       time.Time           `gorm:"column:event_date;not null" json:"eventDate"`
	Location        string              `gorm:"column:location;size:300" json:"location"`
	CreatedAt       time.Time           `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
	CreatedByUserID uint                `gorm:"column:created_by_user_id;not null" json:"createdByUserId"`
	CreatedBy       *User               `gorm:"foreignKey:CreatedByUserID" json:"createdBy,omitempty"`
	Confirmations   []EventConfirmation `gorm:"foreignKey:EventID" json:"confirmations,omitempty"`
}

func (Event) TableName() string {
	return "events"
}

// EventConfirmation registra a resposta de um associado a um evento.
// Um associado possui no máximo uma resposta por evento.
type EventConfirmation struct {
	ID           uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID      uint               `gorm:"column:event_id;not null;uniqueIndex:idx_event_user" json:"eventId"`
	UserID       uint               `gorm:"column:user_id;not null;uniqueIndex:idx_event_user" json:"userId"`
	User         *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status       ConfirmationStatus `gorm:"column:status;type:varchar(20);not null;default:'PENDENTE'" json:"status"`
	ResponseDate time.Time          `gorm:"column:response_date;default:CURRENT_TIMESTAMP" json:"responseDate"`
}

func (EventConfirmation) TableName() string {
	return "event_confirmations"
}

// EventNotification registra o convite enviado por WhatsApp a um associado
type EventNotification struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID    uint       `gorm:"column:event_id;not null;index" json:"eventId"`
	UserID     uint       `gorm:"column:user_id;not null" json:"userId"`
	Sent       bool       `gorm:"column:sent;not null;default:false" json:"sent"`
	SentAt     *time.Time `gorm:"column:sent_at" json:"sentAt,omitempty"`
	MessageSid *string    `gorm:"column:message_sid;size:64" json:"messageSid,omitempty"`
}

func (EventNotification) TableName() string {
	return "event_notifications"
}
