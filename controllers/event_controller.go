package controllers

import (
	"encoding/json"
	"net/http"

	"nasede/middleware"
	"nasede/services"
)

// EventController trata as requisições da agenda de eventos
type EventController struct {
	eventService *services.EventService
}

// NewEventController cria uma nova instância de EventController
func NewEventController(eventService *services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// Create agenda um evento e dispara os convites (apenas administradores)
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var dto services.CreateEventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	dto.UserID = userID

	event, err := c.eventService.Create(dto, middleware.IsAdmin(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// List retorna a agenda de eventos
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	events, err := c.eventService.List()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// Get retorna um evento
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	event, err := c.eventService.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// Confirm registra presença pelo token do convite. Rota pública: o token é a
// credencial.
func (c *EventController) Confirm(w http.ResponseWriter, r *http.Request) {
	c.respond(w, r, true)
}

// Decline registra ausência pelo token do convite
func (c *EventController) Decline(w http.ResponseWriter, r *http.Request) {
	c.respond(w, r, false)
}

func (c *EventController) respond(w http.ResponseWriter, r *http.Request, confirmed bool) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "Token do convite é obrigatório")
		return
	}

	event, err := c.eventService.Respond(r.Context(), token, confirmed)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// Attendance retorna o resumo de presenças (apenas administradores)
func (c *EventController) Attendance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	report, err := c.eventService.Attendance(id, middleware.IsAdmin(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
