package controllers

import (
	"encoding/json"
	"net/http"

	"nasede/middleware"
	"nasede/services"
)

// MessagingController trata o envio de comunicados da administração
type MessagingController struct {
	messagingService *services.MessagingService
}

// NewMessagingController cria uma nova instância de MessagingController
func NewMessagingController(messagingService *services.MessagingService) *MessagingController {
	return &MessagingController{messagingService: messagingService}
}

// Broadcast envia um comunicado por WhatsApp a todos os associados
// (apenas administradores)
func (c *MessagingController) Broadcast(w http.ResponseWriter, r *http.Request) {
	var dto services.BroadcastMessageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	result, err := c.messagingService.Broadcast(dto, middleware.IsAdmin(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, result)
}
