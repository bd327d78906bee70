package services

import (
	"errors"
	"fmt"
	"time"

	"nasede/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CreateBenefitDTO representa os dados para cadastrar um benefício
type CreateBenefitDTO struct {
	Name         string  `json:"name" validate:"required,min=2,max=200"`
	Description  string  `json:"description"`
	ImageURL     *string `json:"imageUrl" validate:"omitempty,url"`
	ButtonAction *string `json:"buttonAction" validate:"omitempty,max=500"`
	UserID       uint    `json:"-" validate:"required"`
}

// UpdateBenefitDTO representa os dados para atualizar um benefício
type UpdateBenefitDTO struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=200"`
	Description  *string `json:"description"`
	ImageURL     *string `json:"imageUrl" validate:"omitempty,url"`
	ButtonAction *string `json:"buttonAction" validate:"omitempty,max=500"`
	IsActive     *bool   `json:"isActive"`
}

// BenefitDTO representa um benefício retornado aos clientes
type BenefitDTO struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	IsActive     bool      `json:"isActive"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	ButtonAction *string   `json:"buttonAction,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BenefitService gerencia o catálogo de benefícios oferecidos aos associados
type BenefitService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewBenefitService cria uma nova instância de BenefitService
func NewBenefitService(db *gorm.DB) *BenefitService {
	return &BenefitService{
		db:        db,
		validator: validator.New(),
	}
}

// Create cadastra um benefício ativo. Apenas administradores cadastram.
func (s *BenefitService) Create(dto CreateBenefitDTO, actorIsAdmin bool) (*BenefitDTO, error) {
	if !actorIsAdmin {
		return nil, forbiddenError("apenas administradores podem cadastrar benefícios")
	}

	if err := s.validator.Struct(dto); err != nil {
		return nil, validationError("%s", err.Error())
	}

	benefit := &models.Benefit{
		Name:            dto.Name,
		Description:     dto.Description,
		IsActive:        true,
		ImageURL:        dto.ImageURL,
		ButtonAction:    dto.ButtonAction,
		CreatedByUserID: dto.UserID,
	}

	if err := s.db.Create(benefit).Error; err != nil {
		return nil, fmt.Errorf("erro ao cadastrar o benefício: %w", err)
	}

	dtoOut := toBenefitDTO(benefit)
	return &dtoOut, nil
}

// List retorna os benefícios do catálogo. Associados veem apenas os ativos;
// administradores veem todos.
func (s *BenefitService) List(actorIsAdmin bool) ([]BenefitDTO, error) {
	query := s.db.Model(&models.Benefit{})
	if !actorIsAdmin {
		query = query.Where("is_active = ?", true)
	}

	var benefits []models.Benefit
	if err := query.Order("name ASC").Find(&benefits).Error; err != nil {
		return nil, fmt.Errorf("erro ao listar os benefícios: %w", err)
	}

	result := make([]BenefitDTO, len(benefits))
	for i := range benefits {
		result[i] = toBenefitDTO(&benefits[i])
	}
	return result, nil
}

// Update altera um benefício existente. Apenas administradores alteram.
func (s *BenefitService) Update(id uint, dto UpdateBenefitDTO, actorIsAdmin bool) (*BenefitDTO, error) {
	if !actorIsAdmin {
		return nil, forbiddenError("apenas administradores podem alterar benefícios")
	}

	if err := s.validator.Struct(dto); err != nil {
		return nil, validationError("%s", err.Error())
	}

	var benefit models.Benefit
	if err := s.db.First(&benefit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("benefício não encontrado")
		}
		return nil, fmt.Errorf("erro ao buscar o benefício: %w", err)
	}

	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.ImageURL != nil {
		updates["image_url"] = *dto.ImageURL
	}
	if dto.ButtonAction != nil {
		updates["button_action"] = *dto.ButtonAction
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}

	if err := s.db.Model(&benefit).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("erro ao atualizar o benefício: %w", err)
	}

	if err := s.db.First(&benefit, id).Error; err != nil {
		return nil, fmt.Errorf("erro ao recarregar o benefício: %w", err)
	}

	dtoOut := toBenefitDTO(&benefit)
	return &dtoOut, nil
}

func toBenefitDTO(benefit *models.Benefit) BenefitDTO {
	return BenefitDTO{
		ID:           benefit.ID,
		Name:         benefit.Name,
		Description:  benefit.Description,
		IsActive:     benefit.IsActive,
		ImageURL:     benefit.ImageURL,
		ButtonAction: benefit.ButtonAction,
		CreatedAt:    benefit.CreatedAt,
	}
}
