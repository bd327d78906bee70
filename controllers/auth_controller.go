package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"nasede/config"
	"nasede/services"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

// AuthController trata o login dos associados
type AuthController struct {
	userService *services.UserService
	tokens      services.TokenStore
	validate    *validator.Validate
	config      *config.Config
}

// SignInRequest representa o login por matrícula ou telefone + senha
type SignInRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// WhatsAppSignInRequest representa o login pelo token recebido no WhatsApp
type WhatsAppSignInRequest struct {
	Token string `json:"token" validate:"required"`
}

// AuthResponse representa a resposta de um login bem-sucedido
type AuthResponse struct {
	Token string           `json:"token"`
	User  services.UserDTO `json:"user"`
}

// Claims representa as claims do JWT emitido pelo sistema
type Claims struct {
	UserID    uint   `json:"user_id"`
	Matricula string `json:"matricula"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(userService *services.UserService, tokens services.TokenStore, cfg *config.Config) *AuthController {
	return &AuthController{
		userService: userService,
		tokens:      tokens,
		validate:    validator.New(),
		config:      cfg,
	}
}

// SignIn autentica por matrícula ou número de WhatsApp + senha
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	if err := c.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := c.userService.FindByMatriculaOrPhone(req.Identifier)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}

	if !c.userService.CheckPassword(user, req.Password) {
		writeError(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}

	c.respondWithToken(w, user.ID)
}

// SignInWithWhatsApp autentica pelo token de acesso enviado por WhatsApp.
// O token vale até expirar; não é invalidado no primeiro uso.
func (c *AuthController) SignInWithWhatsApp(w http.ResponseWriter, r *http.Request) {
	var req WhatsAppSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	if err := c.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, err := c.tokens.ResolveLoginToken(r.Context(), req.Token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Token de acesso inválido ou expirado")
		return
	}

	c.respondWithToken(w, userID)
}

// respondWithToken emite o JWT e devolve os dados do usuário
func (c *AuthController) respondWithToken(w http.ResponseWriter, userID uint) {
	user, err := c.userService.GetByID(userID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}

	expirationTime := time.Now().Add(time.Duration(c.config.JWT.ExpiresIn) * time.Hour)
	claims := &Claims{
		UserID:    user.ID,
		Matricula: user.Matricula,
		Role:      string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(c.config.JWT.SecretKey))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Falha ao gerar o token")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Token: tokenString,
		User: services.UserDTO{
			ID:             user.ID,
			Matricula:      user.Matricula,
			Name:           user.Name,
			Email:          user.Email,
			WhatsAppNumber: user.WhatsAppNumber,
			Role:           string(user.Role),
		},
	})
}
