package services

import (
	"fmt"
	"log"

	"nasede/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// BroadcastMessageDTO representa um comunicado da administração
type BroadcastMessageDTO struct {
	Body string `json:"body" validate:"required,min=2,max=1500"`
}

// BroadcastResultDTO resume a distribuição de um comunicado
type BroadcastResultDTO struct {
	Recipients int `json:"recipients"`
}

// MessagingService envia comunicados da administração por WhatsApp
type MessagingService struct {
	db        *gorm.DB
	validator *validator.Validate
	whatsapp  WhatsAppSender
}

// NewMessagingService cria uma nova instância de MessagingService
func NewMessagingService(db *gorm.DB, whatsapp WhatsAppSender) *MessagingService {
	return &MessagingService{
		db:        db,
		validator: validator.New(),
		whatsapp:  whatsapp,
	}
}

// Broadcast envia o comunicado a todos os associados com WhatsApp cadastrado.
// O envio acontece em segundo plano; falhas individuais são registradas no log
// e não interrompem os demais destinatários. Apenas administradores enviam.
func (s *MessagingService) Broadcast(dto BroadcastMessageDTO, actorIsAdmin bool) (*BroadcastResultDTO, error) {
	if !actorIsAdmin {
		return nil, forbiddenError("apenas administradores podem enviar comunicados")
	}

	if err := s.validator.Struct(dto); err != nil {
		return nil, validationError("%s", err.Error())
	}

	var members []models.User
	err := s.db.
		Where("whatsapp_number IS NOT NULL AND role = ?", models.RoleAssociado).
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao listar os destinatários: %w", err)
	}

	go func() {
		for i := range members {
			member := &members[i]
			if _, err := s.whatsapp.Send(*member.WhatsAppNumber, dto.Body); err != nil {
				log.Printf("Erro ao enviar o comunicado para %s: %v", member.Matricula, err)
			}
		}
	}()

	return &BroadcastResultDTO{Recipients: len(members)}, nil
}
