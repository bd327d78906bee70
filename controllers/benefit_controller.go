package controllers

import (
	"encoding/json"
	"net/http"

	"nasede/middleware"
	"nasede/services"
)

// BenefitController trata as requisições do catálogo de benefícios
type BenefitController struct {
	benefitService *services.BenefitService
}

// NewBenefitController cria uma nova instância de BenefitController
func NewBenefitController(benefitService *services.BenefitService) *BenefitController {
	return &BenefitController{benefitService: benefitService}
}

// Create cadastra um benefício (apenas administradores)
func (c *BenefitController) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var dto services.CreateBenefitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	dto.UserID = userID

	benefit, err := c.benefitService.Create(dto, middleware.IsAdmin(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, benefit)
}

// List retorna o catálogo de benefícios
func (c *BenefitController) List(w http.ResponseWriter, r *http.Request) {
	benefits, err := c.benefitService.List(middleware.IsAdmin(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, benefits)
}

// Update altera um benefício (apenas administradores)
func (c *BenefitController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	var dto services.UpdateBenefitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	benefit, err := c.benefitService.Update(id, dto, middleware.IsAdmin(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, benefit)
}
