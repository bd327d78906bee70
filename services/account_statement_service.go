package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nasede/config"
	"nasede/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAccountStatementDTO representa os dados para publicar um demonstrativo
type CreateAccountStatementDTO struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"required,oneof=INDIVIDUAL ASSOCIACAO"`
	UserID      *uint  `json:"userId"`
}

// AccountStatementDTO representa um demonstrativo retornado aos clientes
type AccountStatementDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	UserID      *uint     `json:"userId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AccountStatementService gerencia os demonstrativos de contas publicados pela
// administração. Os arquivos ficam no disco com nome aleatório; o banco guarda
// o caminho e o escopo de visibilidade.
type AccountStatementService struct {
	db        *gorm.DB
	validator *validator.Validate
	dir       string
}

// NewAccountStatementService cria uma nova instância de AccountStatementService
func NewAccountStatementService(db *gorm.DB, cfg *config.Config) *AccountStatementService {
	return &AccountStatementService{
		db:        db,
		validator: validator.New(),
		dir:       cfg.Uploads.Dir,
	}
}

// Create publica um demonstrativo a partir do arquivo enviado. Demonstrativos
// individuais exigem o associado de destino. Apenas administradores publicam.
func (s *AccountStatementService) Create(dto CreateAccountStatementDTO, file io.Reader, fileName string, actorIsAdmin bool) (*AccountStatementDTO, error) {
	if !actorIsAdmin {
		return nil, forbiddenError("apenas administradores podem publicar demonstrativos")
	}

	if err := s.validator.Struct(dto); err != nil {
		return nil, validationError("%s", err.Error())
	}

	statementType := models.AccountStatementType(dto.Type)
	if statementType == models.StatementIndividual {
		if dto.UserID == nil {
			return nil, validationError("demonstrativo individual exige o associado de destino")
		}
		var user models.User
		if err := s.db.First(&user, *dto.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFoundError("associado de destino não encontrado")
			}
			return nil, fmt.Errorf("erro ao buscar o associado de destino: %w", err)
		}
	} else {
		dto.UserID = nil
	}

	filePath, err := s.saveFile(file, fileName)
	if err != nil {
		return nil, err
	}

	statement := &models.AccountStatement{
		Title:       dto.Title,
		Description: dto.Description,
		FilePath:    filePath,
		Type:        statementType,
		UserID:      dto.UserID,
	}

	if err := s.db.Create(statement).Error; err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("erro ao publicar o demonstrativo: %w", err)
	}

	dtoOut := toAccountStatementDTO(statement)
	return &dtoOut, nil
}

// saveFile grava o arquivo no disco com um nome aleatório, preservando a extensão
func (s *AccountStatementService) saveFile(file io.Reader, fileName string) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("erro ao criar o diretório de demonstrativos: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	filePath := filepath.Join(s.dir, uuid.New().String()+ext)

	out, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("erro ao criar o arquivo do demonstrativo: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("erro ao gravar o arquivo do demonstrativo: %w", err)
	}
	return filePath, nil
}

// List retorna os demonstrativos visíveis ao chamador: os da associação e os
// individuais do próprio associado. Administradores veem todos.
func (s *AccountStatementService) List(userID uint, isAdmin bool) ([]AccountStatementDTO, error) {
	query := s.db.Model(&models.AccountStatement{})
	if !isAdmin {
		query = query.Where("type = ? OR user_id = ?", models.StatementAssociacao, userID)
	}

	var statements []models.AccountStatement
	if err := query.Order("created_at DESC").Find(&statements).Error; err != nil {
		return nil, fmt.Errorf("erro ao listar os demonstrativos: %w", err)
	}

	result := make([]AccountStatementDTO, len(statements))
	for i := range statements {
		result[i] = toAccountStatementDTO(&statements[i])
	}
	return result, nil
}

// FilePath retorna o caminho do arquivo de um demonstrativo, respeitando a
// visibilidade: individuais só para o dono ou para administradores
func (s *AccountStatementService) FilePath(id, userID uint, isAdmin bool) (string, error) {
	var statement models.AccountStatement
	if err := s.db.First(&statement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", notFoundError("demonstrativo não encontrado")
		}
		return "", fmt.Errorf("erro ao buscar o demonstrativo: %w", err)
	}

	if statement.Type == models.StatementIndividual && !isAdmin {
		if statement.UserID == nil || *statement.UserID != userID {
			return "", forbiddenError("o demonstrativo pertence a outro associado")
		}
	}
	return statement.FilePath, nil
}

func toAccountStatementDTO(statement *models.AccountStatement) AccountStatementDTO {
	return AccountStatementDTO{
		ID:          statement.ID,
		Title:       statement.Title,
		Description: statement.Description,
		Type:        string(statement.Type),
		UserID:      statement.UserID,
		CreatedAt:   statement.CreatedAt,
	}
}
