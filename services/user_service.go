package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"nasede/config"
	"nasede/models"
	"nasede/utils"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUserDTO representa os dados de cadastro de um associado
type CreateUserDTO struct {
	Matricula      string  `json:"matricula" validate:"required,min=1,max=10"`
	Name           string  `json:"name" validate:"required,min=2,max=200"`
	Email          string  `json:"email" validate:"required,email"`
	WhatsAppNumber *string `json:"whatsappNumber" validate:"omitempty,e164"`
	Password       string  `json:"password" validate:"required,min=8"`
	Role           string  `json:"role" validate:"omitempty,oneof=ASSOCIADO ADMIN"`
}

// UserDTO representa um usuário retornado aos clientes
type UserDTO struct {
	ID             uint    `json:"id"`
	Matricula      string  `json:"matricula"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	WhatsAppNumber *string `json:"whatsappNumber,omitempty"`
	Role           string  `json:"role"`
}

// UserService gerencia o cadastro de associados. Apenas administradores criam
// contas; não há auto-cadastro.
type UserService struct {
	db        *gorm.DB
	validator *validator.Validate
	email     *EmailService
	whatsapp  WhatsAppSender
	tokens    TokenStore
	config    *config.Config
}

// NewUserService cria uma nova instância de UserService
func NewUserService(db *gorm.DB, email *EmailService, whatsapp WhatsAppSender, tokens TokenStore, cfg *config.Config) *UserService {
	return &UserService{
		db:        db,
		validator: validator.New(),
		email:     email,
		whatsapp:  whatsapp,
		tokens:    tokens,
		config:    cfg,
	}
}

// Create cadastra um novo associado. A matrícula é única; o papel padrão é
// ASSOCIADO. Depois do cadastro, o associado recebe as boas-vindas por email e,
// se tiver WhatsApp informado, um link de acesso sem senha.
func (s *UserService) Create(dto CreateUserDTO, actorIsAdmin bool) (*UserDTO, error) {
	if !actorIsAdmin {
		return nil, forbiddenError("apenas administradores podem cadastrar associados")
	}

	if err := s.validator.Struct(dto); err != nil {
		return nil, validationError("%s", err.Error())
	}

	// A matrícula precisa ser única
	var existing models.User
	err := s.db.Where("matricula = ?", strings.TrimSpace(dto.Matricula)).First(&existing).Error
	if err == nil {
		return nil, conflictError("já existe um associado com esta matrícula")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("erro ao verificar a matrícula: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar o hash da senha: %w", err)
	}

	role := models.RoleAssociado
	if dto.Role == string(models.RoleAdmin) {
		role = models.RoleAdmin
	}

	user := &models.User{
		Matricula:      strings.TrimSpace(dto.Matricula),
		Name:           dto.Name,
		Email:          dto.Email,
		WhatsAppNumber: dto.WhatsAppNumber,
		PasswordHash:   string(hashedPassword),
		Role:           role,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("erro ao criar o usuário: %w", err)
	}

	// Falha de notificação não desfaz o cadastro
	if s.email != nil {
		if err := s.email.SendWelcomeNotification(user.Email, user.Name, user.Matricula); err != nil {
			log.Printf("Erro ao enviar as boas-vindas para %s: %v", user.Email, err)
		}
	}
	s.sendLoginLink(user)

	dtoOut := toUserDTO(user)
	return &dtoOut, nil
}

// sendLoginLink gera um token de acesso e o envia por WhatsApp
func (s *UserService) sendLoginLink(user *models.User) {
	if s.whatsapp == nil || s.tokens == nil || user.WhatsAppNumber == nil {
		return
	}

	token, err := utils.GenerateLoginToken()
	if err != nil {
		log.Printf("Erro ao gerar o token de login para %s: %v", user.Matricula, err)
		return
	}

	if err := s.tokens.SaveLoginToken(context.Background(), token, user.ID); err != nil {
		log.Printf("Erro ao guardar o token de login para %s: %v", user.Matricula, err)
		return
	}

	body := fmt.Sprintf(
		"Olá, %s! Seu acesso ao portal da associação está pronto. Entre sem senha pelo link: %s/login?token=%s",
		user.Name, s.config.Server.FrontendURL, token,
	)
	if _, err := s.whatsapp.Send(*user.WhatsAppNumber, body); err != nil {
		log.Printf("Erro ao enviar o link de acesso para %s: %v", user.Matricula, err)
	}
}

// List retorna todos os associados cadastrados
func (s *UserService) List(actorIsAdmin bool) ([]UserDTO, error) {
	if !actorIsAdmin {
		return nil, forbiddenError("apenas administradores podem listar associados")
	}

	var users []models.User
	if err := s.db.Order("name ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("erro ao listar os usuários: %w", err)
	}

	result := make([]UserDTO, len(users))
	for i := range users {
		result[i] = toUserDTO(&users[i])
	}
	return result, nil
}

// GetByID retorna um usuário pelo ID
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("usuário não encontrado")
		}
		return nil, fmt.Errorf("erro ao buscar o usuário: %w", err)
	}
	return &user, nil
}

// FindByMatriculaOrPhone localiza um usuário pela matrícula ou pelo número de
// WhatsApp, ignorando espaços
func (s *UserService) FindByMatriculaOrPhone(identifier string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)

	var user models.User
	err := s.db.Where("matricula = ? OR whatsapp_number = ?", identifier, identifier).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("usuário não encontrado")
		}
		return nil, fmt.Errorf("erro ao buscar o usuário: %w", err)
	}
	return &user, nil
}

// CheckPassword compara a senha informada com o hash armazenado
func (s *UserService) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func toUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Matricula:      user.Matricula,
		Name:           user.Name,
		Email:          user.Email,
		WhatsAppNumber: user.WhatsAppNumber,
		Role:           string(user.Role),
	}
}
