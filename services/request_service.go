package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"nasede/models"
	"nasede/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CreateRequestDTO representa os dados para abrir uma solicitação
type CreateRequestDTO struct {
	TypeID       uint   `json:"typeId" validate:"required"`
	Title        string `json:"title" validate:"omitempty,max=200"`
	Description  string `json:"description"`
	SimulationID *uint  `json:"simulationId"`
	UserID       uint   `json:"-" validate:"required"`
}

// UpdateRequestStatusDTO representa os dados de uma transição de status
type UpdateRequestStatusDTO struct {
	RequestID    uint    `json:"-" validate:"required"`
	Status       string  `json:"status" validate:"required"`
	Response     *string `json:"response"`
	ActorIsAdmin bool    `json:"-"`
}

// CreateRequestTypeDTO representa os dados para criar um tipo de solicitação
type CreateRequestTypeDTO struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// RequestDTO representa uma solicitação retornada aos clientes
type RequestDTO struct {
	ID           uint       `json:"id"`
	TypeID       uint       `json:"typeId"`
	TypeName     string     `json:"typeName"`
	Status       string     `json:"status"`
	StatusName   string     `json:"statusName"`
	UserID       uint       `json:"userId"`
	UserName     string     `json:"userName"`
	Title        string     `json:"title,omitempty"`
	Description  string     `json:"description,omitempty"`
	Response     *string    `json:"response,omitempty"`
	SimulationID *uint      `json:"simulationId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// RequestTypeDTO representa um tipo de solicitação retornado aos clientes
type RequestTypeDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RequestService governa o ciclo de vida das solicitações: abertura pelo
// associado e triagem pelo administrador. As regras de transição valem aqui,
// independentemente de qual superfície externa chamar o serviço.
type RequestService struct {
	db        *gorm.DB
	validator *validator.Validate
	email     *EmailService
}

// NewRequestService cria uma nova instância de RequestService
func NewRequestService(db *gorm.DB, email *EmailService) *RequestService {
	return &RequestService{
		db:        db,
		validator: validator.New(),
		email:     email,
	}
}

// Create abre uma solicitação com status CRIADO. O tipo precisa existir e a
// simulação vinculada, quando houver, precisa pertencer ao próprio solicitante.
func (s *RequestService) Create(dto CreateRequestDTO) (*RequestDTO, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, validationError("%s", err.Error())
	}

	// O tipo de solicitação precisa existir
	var requestType models.RequestType
	if err := s.db.First(&requestType, dto.TypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("tipo de solicitação não encontrado")
		}
		return nil, fmt.Errorf("erro ao buscar o tipo de solicitação: %w", err)
	}

	// A simulação vinculada precisa pertencer ao solicitante
	if dto.SimulationID != nil {
		var simulation models.LoanSimulation
		if err := s.db.First(&simulation, *dto.SimulationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFoundError("simulação não encontrada")
			}
			return nil, fmt.Errorf("erro ao buscar a simulação: %w", err)
		}
		if simulation.UserID != dto.UserID {
			return nil, forbiddenError("a simulação pertence a outro usuário")
		}
	}

	request := &models.Request{
		TypeID:       dto.TypeID,
		UserID:       dto.UserID,
		Status:       models.RequestStatusCriado,
		Title:        dto.Title,
		Description:  dto.Description,
		SimulationID: dto.SimulationID,
	}

	if err := s.db.Create(request).Error; err != nil {
		return nil, fmt.Errorf("erro ao criar a solicitação: %w", err)
	}

	request.Type = &requestType
	dtoOut := s.toDTO(request)
	return &dtoOut, nil
}

// SetStatus aplica uma transição de status. Apenas administradores podem
// transitar; reprovar exige justificativa. A verificação acontece antes de
// qualquer escrita, então uma transição recusada não altera nada. Repetir a
// mesma transição com os mesmos argumentos é idempotente: só updated_at avança.
func (s *RequestService) SetStatus(dto UpdateRequestStatusDTO) (*RequestDTO, error) {
	if !dto.ActorIsAdmin {
		return nil, forbiddenError("apenas administradores podem alterar o status")
	}

	newStatus := models.RequestStatus(dto.Status)
	if !newStatus.Known() {
		return nil, validationError("status desconhecido: %s", dto.Status)
	}

	// Reprovar exige justificativa não vazia
	if newStatus == models.RequestStatusReprovado {
		if dto.Response == nil || strings.TrimSpace(*dto.Response) == "" {
			return nil, validationError("justificativa é obrigatória para reprovar uma solicitação")
		}
	}

	var request models.Request
	if err := s.db.First(&request, dto.RequestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("solicitação não encontrada")
		}
		return nil, fmt.Errorf("erro ao buscar a solicitação: %w", err)
	}

	// Atualização única: status, resposta e updated_at juntos
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":     newStatus,
		"response":   dto.Response,
		"updated_at": now,
	}
	if err := s.db.Model(&request).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("erro ao atualizar a solicitação: %w", err)
	}

	request.Status = newStatus
	request.Response = dto.Response
	request.UpdatedAt = now

	utils.RequestDecisionsTotal.WithLabelValues(string(newStatus)).Inc()

	// Notificação por email: falha não desfaz a transição
	s.notifyDecision(&request)

	dtoOut := s.toDTO(&request)
	return &dtoOut, nil
}

// notifyDecision envia ao solicitante o resultado da triagem, quando terminal
func (s *RequestService) notifyDecision(request *models.Request) {
	if s.email == nil {
		return
	}
	if request.Status != models.RequestStatusAprovado && request.Status != models.RequestStatusReprovado {
		return
	}

	var user models.User
	if err := s.db.First(&user, request.UserID).Error; err != nil {
		log.Printf("Erro ao buscar o solicitante para notificação: %v", err)
		return
	}

	if err := s.email.SendRequestDecisionNotification(user.Email, request.ID, request.Status.DisplayName(), request.Response); err != nil {
		log.Printf("Erro ao enviar a notificação de triagem: %v", err)
	}
}

// List retorna as solicitações visíveis ao chamador, da mais recente para a
// mais antiga. Associados veem apenas as próprias; administradores veem todas.
func (s *RequestService) List(userID uint, isAdmin bool) ([]RequestDTO, error) {
	query := s.db.Model(&models.Request{}).
		Preload("Type").
		Preload("User")

	if !isAdmin {
		query = query.Where("user_id = ?", userID)
	}

	var requests []models.Request
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("erro ao listar as solicitações: %w", err)
	}

	result := make([]RequestDTO, len(requests))
	for i := range requests {
		result[i] = s.toDTO(&requests[i])
	}
	return result, nil
}

// GetByID retorna uma solicitação. Associados só enxergam as próprias.
func (s *RequestService) GetByID(id, userID uint, isAdmin bool) (*RequestDTO, error) {
	var request models.Request
	if err := s.db.Preload("Type").Preload("User").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("solicitação não encontrada")
		}
		return nil, fmt.Errorf("erro ao buscar a solicitação: %w", err)
	}

	if !isAdmin && request.UserID != userID {
		return nil, forbiddenError("a solicitação pertence a outro usuário")
	}

	dtoOut := s.toDTO(&request)
	return &dtoOut, nil
}

// ListTypes retorna todos os tipos de solicitação em ordem alfabética
func (s *RequestService) ListTypes() ([]RequestTypeDTO, error) {
	var types []models.RequestType
	if err := s.db.Order("name ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("erro ao listar os tipos de solicitação: %w", err)
	}

	result := make([]RequestTypeDTO, len(types))
	for i, t := range types {
		result[i] = RequestTypeDTO{
			ID:        t.ID,
			Name:      t.Name,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		}
	}
	return result, nil
}

// CreateType cria um tipo de solicitação. O nome é único sem diferenciar
// maiúsculas; o índice único do banco fecha a corrida entre criações simultâneas.
func (s *RequestService) CreateType(dto CreateRequestTypeDTO) (*RequestTypeDTO, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, validationError("%s", err.Error())
	}

	var existing models.RequestType
	err := s.db.Where("LOWER(name) = LOWER(?)", dto.Name).First(&existing).Error
	if err == nil {
		return nil, conflictError("já existe um tipo de solicitação com este nome")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("erro ao verificar o nome do tipo: %w", err)
	}

	requestType := &models.RequestType{Name: dto.Name}
	if err := s.db.Create(requestType).Error; err != nil {
		// Corrida perdida para outra criação com o mesmo nome
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, conflictError("já existe um tipo de solicitação com este nome")
		}
		return nil, fmt.Errorf("erro ao criar o tipo de solicitação: %w", err)
	}

	return &RequestTypeDTO{
		ID:        requestType.ID,
		Name:      requestType.Name,
		CreatedAt: requestType.CreatedAt,
		UpdatedAt: requestType.UpdatedAt,
	}, nil
}

// toDTO converte o modelo em DTO
func (s *RequestService) toDTO(request *models.Request) RequestDTO {
	dto := RequestDTO{
		ID:           request.ID,
		TypeID:       request.TypeID,
		Status:       string(request.Status),
		StatusName:   request.Status.DisplayName(),
		UserID:       request.UserID,
		Title:        request.Title,
		Description:  request.Description,
		Response:     request.Response,
		SimulationID: request.SimulationID,
		CreatedAt:    request.CreatedAt,
	}
	if !request.UpdatedAt.IsZero() {
		updatedAt := request.UpdatedAt
		dto.UpdatedAt = &updatedAt
	}
	if request.Type != nil {
		dto.TypeName = request.Type.Name
	}
	if request.User != nil {
		dto.UserName = request.User.Name
	}
	return dto
}
