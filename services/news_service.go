package services

import (
	"errors"
	"fmt"
	"time"

	"nasede/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CreateNewsDTO representa os dados para publicar uma notícia
type CreateNewsDTO struct {
	Title    string  `json:"title" validate:"required,min=2,max=200"`
	Content  string  `json:"content" validate:"required"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,url"`
	UserID   uint    `json:"-" validate:"required"`
}

// CreateNewsCommentDTO representa os dados de um comentário em notícia
type CreateNewsCommentDTO struct {
	NewsID  uint   `json:"-" validate:"required"`
	Content string `json:"content" validate:"required,max=2000"`
	UserID  uint   `json:"-" validate:"required"`
}

// NewsCommentDTO representa um comentário retornado aos clientes
type NewsCommentDTO struct {
	ID        uint      `json:"id"`
	NewsID    uint      `json:"newsId"`
	UserID    uint      `json:"userId"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewsDTO representa uma notícia retornada aos clientes
type NewsDTO struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
	PublishedAt time.Time        `json:"publishedAt"`
	AuthorName  string           `json:"authorName"`
	Comments    []NewsCommentDTO `json:"comments,omitempty"`
}

// NewsService gerencia o mural de notícias e seus comentários
type NewsService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewNewsService cria uma nova instância de NewsService
func NewNewsService(db *gorm.DB) *NewsService {
	return &NewsService{
		db:        db,
		validator: validator.New(),
	}
}

// Create publica uma notícia. Apenas administradores publicam.
func (s *NewsService) Create(dto CreateNewsDTO, actorIsAdmin bool) (*NewsDTO, error) {
	if !actorIsAdmin {
		return nil, forbiddenError("apenas administradores podem publicar notícias")
	}

	if err := s.validator.Struct(dto); err != nil {
		return nil, validationError("%s", err.Error())
	}

	news := &models.News{
		Title:           dto.Title,
		Content:         dto.Content,
		ImageURL:        dto.ImageURL,
		PublishedAt:     time.Now().UTC(),
		CreatedByUserID: dto.UserID,
	}

	if err := s.db.Create(news).Error; err != nil {
		return nil, fmt.Errorf("erro ao publicar a notícia: %w", err)
	}

	dtoOut := toNewsDTO(news)
	return &dtoOut, nil
}

// List retorna as notícias do mural, da mais recente para a mais antiga
func (s *NewsService) List() ([]NewsDTO, error) {
	var news []models.News
	err := s.db.
		Preload("CreatedBy").
		Order("published_at DESC").
		Find(&news).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao listar as notícias: %w", err)
	}

	result := make([]NewsDTO, len(news))
	for i := range news {
		result[i] = toNewsDTO(&news[i])
	}
	return result, nil
}

// GetByID retorna uma notícia com seus comentários
func (s *NewsService) GetByID(id uint) (*NewsDTO, error) {
	var news models.News
	err := s.db.
		Preload("CreatedBy").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("news_comments.created_at ASC")
		}).
		Preload("Comments.User").
		First(&news, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("notícia não encontrada")
		}
		return nil, fmt.Errorf("erro ao buscar a notícia: %w", err)
	}

	dtoOut := toNewsDTO(&news)
	return &dtoOut, nil
}

// AddComment adiciona um comentário de associado a uma notícia
func (s *NewsService) AddComment(dto CreateNewsCommentDTO) (*NewsCommentDTO, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, validationError("%s", err.Error())
	}

	var news models.News
	if err := s.db.First(&news, dto.NewsID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("notícia não encontrada")
		}
		return nil, fmt.Errorf("erro ao buscar a notícia: %w", err)
	}

	comment := &models.NewsComment{
		NewsID:  dto.NewsID,
		UserID:  dto.UserID,
		Content: dto.Content,
	}

	if err := s.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("erro ao criar o comentário: %w", err)
	}

	dtoOut := toNewsCommentDTO(comment)
	return &dtoOut, nil
}

// Delete remove uma notícia e seus comentários. Apenas administradores removem.
func (s *NewsService) Delete(id uint, actorIsAdmin bool) error {
	if !actorIsAdmin {
		return forbiddenError("apenas administradores podem remover notícias")
	}

	var news models.News
	if err := s.db.First(&news, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("notícia não encontrada")
		}
		return fmt.Errorf("erro ao buscar a notícia: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("news_id = ?", id).Delete(&models.NewsComment{}).Error; err != nil {
			return fmt.Errorf("erro ao remover os comentários: %w", err)
		}
		if err := tx.Delete(&news).Error; err != nil {
			return fmt.Errorf("erro ao remover a notícia: %w", err)
		}
		return nil
	})
}

func toNewsDTO(news *models.News) NewsDTO {
	dto := NewsDTO{
		ID:          news.ID,
		Title:       news.Title,
		Content:     news.Content,
		ImageURL:    news.ImageURL,
		PublishedAt: news.PublishedAt,
	}
	if news.CreatedBy != nil {
		dto.AuthorName = news.CreatedBy.Name
	}
	if len(news.Comments) > 0 {
		dto.Comments = make([]NewsCommentDTO, len(news.Comments))
		for i := range news.Comments {
			dto.Comments[i] = toNewsCommentDTO(&news.Comments[i])
		}
	}
	return dto
}

func toNewsCommentDTO(comment *models.NewsComment) NewsCommentDTO {
	dto := NewsCommentDTO{
		ID:        comment.ID,
		NewsID:    comment.NewsID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.User != nil {
		dto.UserName = comment.User.Name
	}
	return dto
}
