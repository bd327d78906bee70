package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"nasede/services"
	"nasede/utils"

	"github.com/gorilla/mux"
)

// writeJSON envia a resposta em JSON com o status informado
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError envia uma mensagem de erro em JSON
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError traduz os erros dos serviços em códigos HTTP
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		utils.LogError("Erro interno: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}

// pathID extrai um ID numérico das variáveis da rota
func pathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
