package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"nasede/config"
	"nasede/models"
	"nasede/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CreateEventDTO representa os dados para agendar um evento
type CreateEventDTO struct {
	Title       string    `json:"title" validate:"required,min=2,max=200"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"eventDate" validate:"required"`
	Location    string    `json:"location" validate:"max=300"`
	UserID      uint      `json:"-" validate:"required"`
}

// EventDTO representa um evento retornado aos clientes
type EventDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	EventDate   time.Time `json:"eventDate"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EventAttendanceDTO resume as respostas de presença de um evento
type EventAttendanceDTO struct {
	EventID   uint                   `json:"eventId"`
	Title     string                 `json:"title"`
	EventDate time.Time              `json:"eventDate"`
	Confirmed int                    `json:"confirmed"`
	Declined  int                    `json:"declined"`
	Pending   int                    `json:"pending"`
	Responses []EventConfirmationDTO `json:"responses"`
}

// EventConfirmationDTO representa a resposta de um associado
type EventConfirmationDTO struct {
	UserID       uint      `json:"userId"`
	UserName     string    `json:"userName"`
	Status       string    `json:"status"`
	ResponseDate time.Time `json:"responseDate"`
}

// EventService gerencia a agenda de eventos e o fluxo de convites por WhatsApp
type EventService struct {
	db        *gorm.DB
	validator *validator.Validate
	whatsapp  WhatsAppSender
	tokens    EventTokenStore
	config    *config.Config
}

// NewEventService cria uma nova instância de EventService
func NewEventService(db *gorm.DB, whatsapp WhatsAppSender, tokens EventTokenStore, cfg *config.Config) *EventService {
	return &EventService{
		db:        db,
		validator: validator.New(),
		whatsapp:  whatsapp,
		tokens:    tokens,
		config:    cfg,
	}
}

// Create agenda um evento e dispara os convites por WhatsApp para todos os
// associados com número cadastrado. Apenas administradores agendam.
func (s *EventService) Create(dto CreateEventDTO, actorIsAdmin bool) (*EventDTO, error) {
	if !actorIsAdmin {
		return nil, forbiddenError("apenas administradores podem agendar eventos")
	}

	if err := s.validator.Struct(dto); err != nil {
		return nil, validationError("%s", err.Error())
	}

	if dto.EventDate.Before(time.Now()) {
		return nil, validationError("a data do evento precisa estar no futuro")
	}

	event := &models.Event{
		Title:           dto.Title,
		Description:     dto.Description,
		EventDate:       dto.EventDate,
		Location:        dto.Location,
		CreatedByUserID: dto.UserID,
	}

	if err := s.db.Create(event).Error; err != nil {
		return nil, fmt.Errorf("erro ao agendar o evento: %w", err)
	}

	// Os convites saem em segundo plano: o agendamento não espera a Twilio
	go s.notifyMembers(event)

	dtoOut := toEventDTO(event)
	return &dtoOut, nil
}

// notifyMembers envia o convite a cada associado com WhatsApp cadastrado e
// registra uma resposta pendente por convidado
func (s *EventService) notifyMembers(event *models.Event) {
	var members []models.User
	err := s.db.
		Where("whatsapp_number IS NOT NULL AND role = ?", models.RoleAssociado).
		Find(&members).Error
	if err != nil {
		log.Printf("Erro ao listar os convidados do evento %d: %v", event.ID, err)
		return
	}

	ttl := time.Until(event.EventDate)
	if ttl <= 0 {
		return
	}

	for i := range members {
		s.inviteMember(event, &members[i], ttl)
	}
}

func (s *EventService) inviteMember(event *models.Event, member *models.User, ttl time.Duration) {
	// Resposta pendente criada antes do envio; o convite repetido não duplica
	confirmation := models.EventConfirmation{
		EventID: event.ID,
		UserID:  member.ID,
		Status:  models.ConfirmationPendente,
	}
	if err := s.db.Where("event_id = ? AND user_id = ?", event.ID, member.ID).
		FirstOrCreate(&confirmation).Error; err != nil {
		log.Printf("Erro ao registrar o convite do evento %d para %s: %v", event.ID, member.Matricula, err)
		return
	}

	token, err := utils.GenerateConfirmationToken()
	if err != nil {
		log.Printf("Erro ao gerar o token de confirmação para %s: %v", member.Matricula, err)
		return
	}
	if err := s.tokens.SaveEventToken(context.Background(), token, event.ID, member.ID, ttl); err != nil {
		log.Printf("Erro ao guardar o token de confirmação para %s: %v", member.Matricula, err)
		return
	}

	body := s.inviteMessage(event, member, token)
	notification := models.EventNotification{
		EventID: event.ID,
		UserID:  member.ID,
	}

	sid, err := s.whatsapp.Send(*member.WhatsAppNumber, body)
	if err != nil {
		log.Printf("Erro ao enviar o convite do evento %d para %s: %v", event.ID, member.Matricula, err)
	} else {
		now := time.Now().UTC()
		notification.Sent = true
		notification.SentAt = &now
		notification.MessageSid = &sid
	}

	if err := s.db.Create(&notification).Error; err != nil {
		log.Printf("Erro ao registrar o envio do convite do evento %d: %v", event.ID, err)
	}
}

// inviteMessage monta o texto do convite com a data no fuso do associado
func (s *EventService) inviteMessage(event *models.Event, member *models.User, token string) string {
	eventDate := event.EventDate
	if loc, err := time.LoadLocation(member.TimeZone); err == nil {
		eventDate = eventDate.In(loc)
	}

	return fmt.Sprintf(
		"Olá, %s! A associação convida você para o evento *%s*.\n"+
			"🗓️ %s\n"+
			"📍 %s\n\n"+
			"Confirme sua presença: %s/eventos/confirmar?token=%s\n"+
			"Não poderei ir: %s/eventos/recusar?token=%s",
		member.Name, event.Title,
		eventDate.Format("02/01/2006 às 15:04"),
		event.Location,
		s.config.Server.FrontendURL, token,
		s.config.Server.FrontendURL, token,
	)
}

// List retorna os eventos da agenda, do mais próximo para o mais distante
func (s *EventService) List() ([]EventDTO, error) {
	var events []models.Event
	if err := s.db.Order("event_date ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("erro ao listar os eventos: %w", err)
	}

	result := make([]EventDTO, len(events))
	for i := range events {
		result[i] = toEventDTO(&events[i])
	}
	return result, nil
}

// GetByID retorna um evento pelo ID
func (s *EventService) GetByID(id uint) (*EventDTO, error) {
	var event models.Event
	if err := s.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("evento não encontrado")
		}
		return nil, fmt.Errorf("erro ao buscar o evento: %w", err)
	}

	dtoOut := toEventDTO(&event)
	return &dtoOut, nil
}

// Respond registra a resposta de presença associada a um token de convite.
// Responder de novo sobrescreve a resposta anterior enquanto o token valer.
func (s *EventService) Respond(ctx context.Context, token string, confirmed bool) (*EventDTO, error) {
	eventID, userID, err := s.tokens.ResolveEventToken(ctx, token)
	if err != nil {
		return nil, err
	}

	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("evento não encontrado")
		}
		return nil, fmt.Errorf("erro ao buscar o evento: %w", err)
	}

	status := models.ConfirmationRecusado
	if confirmed {
		status = models.ConfirmationConfirmado
	}

	updates := map[string]interface{}{
		"status":        status,
		"response_date": time.Now().UTC(),
	}
	result := s.db.Model(&models.EventConfirmation{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("erro ao registrar a resposta: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Convite criado fora do fluxo normal; registra a resposta direto
		confirmation := models.EventConfirmation{
			EventID:      eventID,
			UserID:       userID,
			Status:       status,
			ResponseDate: time.Now().UTC(),
		}
		if err := s.db.Create(&confirmation).Error; err != nil {
			return nil, fmt.Errorf("erro ao registrar a resposta: %w", err)
		}
	}

	dtoOut := toEventDTO(&event)
	return &dtoOut, nil
}

// Attendance retorna o resumo de presenças de um evento. Apenas administradores consultam.
func (s *EventService) Attendance(eventID uint, actorIsAdmin bool) (*EventAttendanceDTO, error) {
	if !actorIsAdmin {
		return nil, forbiddenError("apenas administradores podem consultar presenças")
	}

	var event models.Event
	err := s.db.
		Preload("Confirmations").
		Preload("Confirmations.User").
		First(&event, eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("evento não encontrado")
		}
		return nil, fmt.Errorf("erro ao buscar o evento: %w", err)
	}

	report := &EventAttendanceDTO{
		EventID:   event.ID,
		Title:     event.Title,
		EventDate: event.EventDate,
		Responses: make([]EventConfirmationDTO, 0, len(event.Confirmations)),
	}

	for i := range event.Confirmations {
		c := &event.Confirmations[i]
		switch c.Status {
		case models.ConfirmationConfirmado:
			report.Confirmed++
		case models.ConfirmationRecusado:
			report.Declined++
		default:
			report.Pending++
		}

		response := EventConfirmationDTO{
			UserID:       c.UserID,
			Status:       string(c.Status),
			ResponseDate: c.ResponseDate,
		}
		if c.User != nil {
			response.UserName = c.User.Name
		}
		report.Responses = append(report.Responses, response)
	}

	return report, nil
}

func toEventDTO(event *models.Event) EventDTO {
	return EventDTO{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		EventDate:   event.EventDate,
		Location:    event.Location,
		CreatedAt:   event.CreatedAt,
	}
}
