package controllers

import (
	"encoding/json"
	"net/http"

	"nasede/middleware"
	"nasede/services"
)

// LoanSimulationController trata as requisições do simulador de empréstimo
type LoanSimulationController struct {
	simulationService *services.LoanSimulationService
}

// NewLoanSimulationController cria uma nova instância de LoanSimulationController
func NewLoanSimulationController(simulationService *services.LoanSimulationService) *LoanSimulationController {
	return &LoanSimulationController{simulationService: simulationService}
}

// Simulate executa uma simulação para o usuário autenticado
func (c *LoanSimulationController) Simulate(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var dto services.SimulateLoanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	dto.UserID = userID

	result, err := c.simulationService.Simulate(dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// List retorna o histórico de simulações do usuário autenticado
func (c *LoanSimulationController) List(w http.ResponseWriter, r *http.Request) {
	userID, _, err := middleware.GetUserFromContext(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	simulations, err := c.simulationService.ListByUser(userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, simulations)
}

// Get retorna uma simulação do usuário autenticado
func (c *LoanSimulationController) Get(w http.ResponseWriter, r *http.Request) {
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

	simulation, err := c.simulationService.GetByID(id, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, simulation)
}

// Delete remove uma simulação do histórico
func (c *LoanSimulationController) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := c.simulationService.Delete(id, userID, middleware.IsAdmin(r)); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
