package controllers

import (
	"net/http"
	"strconv"

	"nasede/middleware"
	"nasede/services"
)

// Limite do arquivo de demonstrativo: 10 MB
const maxStatementSize = 10 << 20

// AccountStatementController trata as requisições de demonstrativos de contas
type AccountStatementController struct {
	statementService *services.AccountStatementService
}

// NewAccountStatementController cria uma nova instância de AccountStatementController
func NewAccountStatementController(statementService *services.AccountStatementService) *AccountStatementController {
	return &AccountStatementController{statementService: statementService}
}

// Create publica um demonstrativo a partir de um formulário multipart
// (apenas administradores)
func (c *AccountStatementController) Create(w http.ResponseWriter, r *http.Request) {
	if _, _, err := middleware.GetUserFromContext(r); err != nil {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	if err := r.ParseMultipartForm(maxStatementSize); err != nil {
		writeError(w, http.StatusBadRequest, "Formulário inválido ou arquivo grande demais")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Arquivo do demonstrativo é obrigatório")
		return
	}
	defer file.Close()

	dto := services.CreateAccountStatementDTO{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Type:        r.FormValue("type"),
	}
	if raw := r.FormValue("userId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Associado de destino inválido")
			return
		}
		target := uint(id)
		dto.UserID = &target
	}

	statement, err := c.statementService.Create(dto, file, header.Filename, middleware.IsAdmin(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, statement)
}

// List retorna os demonstrativos visíveis ao usuário autenticado
func (c *AccountStatementController) List(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	statements, err := c.statementService.List(userID, middleware.IsAdmin(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statements)
}

// Download envia o arquivo de um demonstrativo, respeitando a visibilidade
func (c *AccountStatementController) Download(w http.ResponseWriter, r *http.Request) {
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

	filePath, err := c.statementService.FilePath(id, userID, middleware.IsAdmin(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	http.ServeFile(w, r, filePath)
}
