package controllers

import (
	"encoding/json"
	"net/http"

	"nasede/middleware"
	"nasede/services"
)

// NewsController trata as requisições do mural de notícias
type NewsController struct {
	newsService *services.NewsService
}

// NewNewsController cria uma nova instância de NewsController
func NewNewsController(newsService *services.NewsService) *NewsController {
	return &NewsController{newsService: newsService}
}

// Create publica uma notícia (apenas administradores)
func (c *NewsController) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var dto services.CreateNewsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	dto.UserID = userID

	news, err := c.newsService.Create(dto, middleware.IsAdmin(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, news)
}

// List retorna as notícias do mural
func (c *NewsController) List(w http.ResponseWriter, r *http.Request) {
	news, err := c.newsService.List()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, news)
}

// Get retorna uma notícia com seus comentários
func (c *NewsController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	news, err := c.newsService.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, news)
}

// AddComment adiciona um comentário do usuário autenticado
func (c *NewsController) AddComment(w http.ResponseWriter, r *http.Request) {
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

	var dto services.CreateNewsCommentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	dto.NewsID = id
	dto.UserID = userID

	comment, err := c.newsService.AddComment(dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// Delete remove uma notícia (apenas administradores)
func (c *NewsController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}

	if err := c.newsService.Delete(id, middleware.IsAdmin(r)); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
