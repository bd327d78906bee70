package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestStatusKnown(t *testing.T) {
	assert.True(t, RequestStatusCriado.Known())
	assert.True(t, RequestStatusEmAndamento.Known())
	assert.True(t, RequestStatusAprovado.Known())
	assert.True(t, RequestStatusReprovado.Known())

	assert.False(t, RequestStatus("CANCELADO").Known())
	assert.False(t, RequestStatus("aprovado").Known())
	assert.False(t, RequestStatus("").Known())
}

func TestRequestStatusDisplayName(t *testing.T) {
	assert.Equal(t, "Criado", RequestStatusCriado.DisplayName())
	assert.Equal(t, "Em Andamento", RequestStatusEmAndamento.DisplayName())
	assert.Equal(t, "Aprovado", RequestStatusAprovado.DisplayName())
	assert.Equal(t, "Reprovado", RequestStatusReprovado.DisplayName())
	assert.Equal(t, "Desconhecido", RequestStatus("QUALQUER").DisplayName())
}
