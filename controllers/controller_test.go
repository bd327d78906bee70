package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"nasede/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteServiceErrorMapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validação", fmt.Errorf("%w: salário inválido", services.ErrValidation), http.StatusBadRequest},
		{"não encontrado", fmt.Errorf("%w: solicitação não encontrada", services.ErrNotFound), http.StatusNotFound},
		{"permissão", fmt.Errorf("%w: apenas administradores", services.ErrForbidden), http.StatusForbidden},
		{"conflito", fmt.Errorf("%w: nome duplicado", services.ErrConflict), http.StatusConflict},
		{"erro genérico", errors.New("falha no banco"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

// O erro genérico não vaza detalhes internos na resposta
func TestWriteServiceErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Erro interno do servidor", body["error"])
}

func TestPathID(t *testing.T) {
	router := mux.NewRouter()
	var gotID uint
	var gotErr error
	router.HandleFunc("/requests/{id}", func(w http.ResponseWriter, r *http.Request) {
		gotID, gotErr = pathID(r, "id")
	})

	req := httptest.NewRequest(http.MethodGet, "/requests/42", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)
	require.NoError(t, gotErr)
	assert.Equal(t, uint(42), gotID)

	req = httptest.NewRequest(http.MethodGet, "/requests/abc", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)
	assert.Error(t, gotErr)
}
