package controllers

import (
	"encoding/json"
	"net/http"

	"nasede/middleware"
	"nasede/services"
)

// RequestController trata as requisições do ciclo de solicitações
type RequestController struct {
	requestService *services.RequestService
}

// NewRequestController cria uma nova instância de RequestController
func NewRequestController(requestService *services.RequestService) *RequestController {
	return &RequestController{requestService: requestService}
}

// Create abre uma solicitação em nome do usuário autenticado
func (c *RequestController) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var dto services.CreateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	dto.UserID = userID

	request, err := c.requestService.Create(dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, request)
}

// List retorna as solicitações visíveis ao usuário autenticado
func (c *RequestController) List(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	requests, err := c.requestService.List(userID, middleware.IsAdmin(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

// Get retorna uma solicitação
func (c *RequestController) Get(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	request, err := c.requestService.GetByID(id, userID, middleware.IsAdmin(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, request)
}

// SetStatus aplica uma transição de status (triagem do administrador)
func (c *RequestController) SetStatus(w http.ResponseWriter, r *http.Request) {
	if _, _, err := middleware.GetUserFromContext(r); err != nil {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	var dto services.UpdateRequestStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	dto.RequestID = id
	dto.ActorIsAdmin = middleware.IsAdmin(r)

	request, err := c.requestService.SetStatus(dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, request)
}

// ListTypes retorna os tipos de solicitação disponíveis
func (c *RequestController) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := c.requestService.ListTypes()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types)
}

// CreateType cria um novo tipo de solicitação (apenas administradores)
func (c *RequestController) CreateType(w http.ResponseWriter, r *http.Request) {
	var dto services.CreateRequestTypeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	requestType, err := c.requestService.CreateType(dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, requestType)
}
