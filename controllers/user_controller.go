package controllers

import (
	"encoding/json"
	"net/http"

	"nasede/middleware"
	"nasede/services"
)

// UserController trata o cadastro e a listagem de associados
type UserController struct {
	userService *services.UserService
}

// NewUserController cria uma nova instância de UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// Create cadastra um associado (apenas administradores)
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var dto services.CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	user, err := c.userService.Create(dto, middleware.IsAdmin(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// List retorna os associados cadastrados (apenas administradores)
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.userService.List(middleware.IsAdmin(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// Me retorna os dados do usuário autenticado
func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	user, err := c.userService.GetByID(userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, services.UserDTO{
		ID:             user.ID,
		Matricula:      user.Matricula,
		Name:           user.Name,
		Email:          user.Email,
		WhatsAppNumber: user.WhatsAppNumber,
		Role:           string(user.Role),
	})
}
