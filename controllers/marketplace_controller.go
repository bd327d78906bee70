package controllers

import (
	"encoding/json"
	"net/http"

	"nasede/middleware"
	"nasede/services"
)

// MarketplaceController trata as requisições do mercado entre associados
type MarketplaceController struct {
	marketplaceService *services.MarketplaceService
}

// NewMarketplaceController cria uma nova instância de MarketplaceController
func NewMarketplaceController(marketplaceService *services.MarketplaceService) *MarketplaceController {
	return &MarketplaceController{marketplaceService: marketplaceService}
}

// Create publica um anúncio em nome do usuário autenticado
func (c *MarketplaceController) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var dto services.CreateMarketplaceItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	dto.UserID = userID

	item, err := c.marketplaceService.Create(dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// List retorna os anúncios ativos, com filtro opcional por tipo (?type=)
func (c *MarketplaceController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.marketplaceService.List(r.URL.Query().Get("type"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Deactivate retira um anúncio do ar (dono ou administrador)
func (c *MarketplaceController) Deactivate(w http.ResponseWriter, r *http.Request) {
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

	if err := c.marketplaceService.Deactivate(id, userID, middleware.IsAdmin(r)); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
