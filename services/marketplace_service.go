package services

import (
	"errors"
	"fmt"
	"time"

	"nasede/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateMarketplaceItemDTO representa os dados de um anúncio no mercado
type CreateMarketplaceItemDTO struct {
	Title       string  `json:"title" validate:"required,min=2,max=200"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Type        string  `json:"type" validate:"required,oneof=PRODUTO SERVICO"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
	ContactInfo string  `json:"contactInfo" validate:"required,max=200"`
	UserID      uint    `json:"-" validate:"required"`
}

// MarketplaceItemDTO representa um anúncio retornado aos clientes
type MarketplaceItemDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Type        string    `json:"type"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	ContactInfo string    `json:"contactInfo"`
	UserID      uint      `json:"userId"`
	OwnerName   string    `json:"ownerName,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MarketplaceService gerencia o mercado de produtos e serviços entre associados
type MarketplaceService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewMarketplaceService cria uma nova instância de MarketplaceService
func NewMarketplaceService(db *gorm.DB) *MarketplaceService {
	return &MarketplaceService{
		db:        db,
		validator: validator.New(),
	}
}

// Create publica um anúncio. Qualquer associado pode anunciar.
func (s *MarketplaceService) Create(dto CreateMarketplaceItemDTO) (*MarketplaceItemDTO, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, validationError("%s", err.Error())
	}

	item := &models.MarketplaceItem{
		Title:       dto.Title,
		Description: dto.Description,
		Price:       models.ReaisToCents(dto.Price),
		Type:        models.MarketplaceItemType(dto.Type),
		ImageURL:    dto.ImageURL,
		ContactInfo: dto.ContactInfo,
		UserID:      dto.UserID,
		IsActive:    true,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("erro ao publicar o anúncio: %w", err)
	}

	dtoOut := toMarketplaceItemDTO(item)
	return &dtoOut, nil
}

// List retorna os anúncios ativos, do mais recente para o mais antigo.
// O filtro por tipo é opcional.
func (s *MarketplaceService) List(itemType string) ([]MarketplaceItemDTO, error) {
	query := s.db.Model(&models.MarketplaceItem{}).
		Preload("User").
		Where("is_active = ?", true)

	if itemType != "" {
		t := models.MarketplaceItemType(itemType)
		if t != models.MarketplaceProduto && t != models.MarketplaceServico {
			return nil, validationError("tipo de anúncio desconhecido: %s", itemType)
		}
		query = query.Where("type = ?", t)
	}

	var items []models.MarketplaceItem
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("erro ao listar os anúncios: %w", err)
	}

	result := make([]MarketplaceItemDTO, len(items))
	for i := range items {
		result[i] = toMarketplaceItemDTO(&items[i])
	}
	return result, nil
}

// Deactivate retira um anúncio do ar. Só o dono ou um administrador pode retirar.
func (s *MarketplaceService) Deactivate(id, userID uint, isAdmin bool) error {
	var item models.MarketplaceItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("anúncio não encontrado")
		}
		return fmt.Errorf("erro ao buscar o anúncio: %w", err)
	}

	if !isAdmin && item.UserID != userID {
		return forbiddenError("o anúncio pertence a outro usuário")
	}

	if err := s.db.Model(&item).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("erro ao retirar o anúncio: %w", err)
	}
	return nil
}

func toMarketplaceItemDTO(item *models.MarketplaceItem) MarketplaceItemDTO {
	price, _ := decimal.NewFromInt(item.Price).Div(decimal.NewFromInt(100)).Float64()
	dto := MarketplaceItemDTO{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Price:       price,
		Type:        string(item.Type),
		ImageURL:    item.ImageURL,
		ContactInfo: item.ContactInfo,
		UserID:      item.UserID,
		IsActive:    item.IsActive,
		CreatedAt:   item.CreatedAt,
	}
	if item.User != nil {
		dto.OwnerName = item.User.Name
	}
	return dto
}
