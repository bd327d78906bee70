package services

import (
	"testing"

	"nasede/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// As recusas de transição acontecem antes de qualquer consulta: nenhuma
// expectativa é registrada no mock, e ExpectationsWereMet confirma isso.

func TestSetStatusForbiddenForNonAdmin(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewRequestService(db, nil)

	result, err := service.SetStatus(UpdateRequestStatusDTO{
		RequestID:    1,
		Status:       string(models.RequestStatusAprovado),
		ActorIsAdmin: false,
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrForbidden)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusUnknownStatus(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewRequestService(db, nil)

	result, err := service.SetStatus(UpdateRequestStatusDTO{
		RequestID:    1,
		Status:       "CANCELADO",
		ActorIsAdmin: true,
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "status desconhecido")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusRejectionRequiresJustification(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewRequestService(db, nil)

	blank := "   "
	testCases := []struct {
		name     string
		response *string
	}{
		{"sem resposta", nil},
		{"resposta em branco", &blank},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := service.SetStatus(UpdateRequestStatusDTO{
				RequestID:    1,
				Status:       string(models.RequestStatusReprovado),
				Response:     tc.response,
				ActorIsAdmin: true,
			})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), "justificativa")
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusApprove(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewRequestService(db, nil)

	rows := sqlmock.NewRows([]string{"id", "type_id", "user_id", "status", "title"}).
		AddRow(1, 2, 7, "EM_ANDAMENTO", "Empréstimo consignado")
	mock.ExpectQuery(`SELECT (.+) FROM "requests"`).WillReturnRows(rows)
	mock.ExpectExec(`UPDATE "requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	justification := "Margem aprovada pela diretoria"
	result, err := service.SetStatus(UpdateRequestStatusDTO{
		RequestID:    1,
		Status:       string(models.RequestStatusAprovado),
		Response:     &justification,
		ActorIsAdmin: true,
	})
	require.NoError(t, err)

	assert.Equal(t, string(models.RequestStatusAprovado), result.Status)
	assert.Equal(t, "Aprovado", result.StatusName)
	assert.Equal(t, &justification, result.Response)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Repetir a mesma transição não falha: a atualização roda de novo e o
// resultado é o mesmo
func TestSetStatusIdempotentRepeat(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewRequestService(db, nil)

	justification := "Documentação incompleta"

	for i := 0; i < 2; i++ {
		rows := sqlmock.NewRows([]string{"id", "type_id", "user_id", "status", "response"}).
			AddRow(1, 2, 7, "REPROVADO", justification)
		mock.ExpectQuery(`SELECT (.+) FROM "requests"`).WillReturnRows(rows)
		mock.ExpectExec(`UPDATE "requests" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	for i := 0; i < 2; i++ {
		result, err := service.SetStatus(UpdateRequestStatusDTO{
			RequestID:    1,
			Status:       string(models.RequestStatusReprovado),
			Response:     &justification,
			ActorIsAdmin: true,
		})
		require.NoError(t, err)
		assert.Equal(t, string(models.RequestStatusReprovado), result.Status)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusRequestNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewRequestService(db, nil)

	mock.ExpectQuery(`SELECT (.+) FROM "requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	result, err := service.SetStatus(UpdateRequestStatusDTO{
		RequestID:    99,
		Status:       string(models.RequestStatusEmAndamento),
		ActorIsAdmin: true,
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRequestTypeNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewRequestService(db, nil)

	mock.ExpectQuery(`SELECT (.+) FROM "request_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	result, err := service.Create(CreateRequestDTO{
		TypeID: 99,
		UserID: 7,
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "tipo de solicitação")
}

func TestCreateRequestForbiddenForForeignSimulation(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewRequestService(db, nil)

	typeRows := sqlmock.NewRows([]string{"id", "name"}).AddRow(1, models.RequestTypeEmprestimo)
	mock.ExpectQuery(`SELECT (.+) FROM "request_types"`).WillReturnRows(typeRows)

	// Simulação pertence ao usuário 42, não ao solicitante 7
	simulationRows := sqlmock.NewRows([]string{"id", "user_id"}).AddRow(5, 42)
	mock.ExpectQuery(`SELECT (.+) FROM "loan_simulations"`).WillReturnRows(simulationRows)

	simulationID := uint(5)
	result, err := service.Create(CreateRequestDTO{
		TypeID:       1,
		UserID:       7,
		SimulationID: &simulationID,
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrForbidden)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequestStartsAsCriado(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewRequestService(db, nil)

	typeRows := sqlmock.NewRows([]string{"id", "name"}).AddRow(1, models.RequestTypeSugestoes)
	mock.ExpectQuery(`SELECT (.+) FROM "request_types"`).WillReturnRows(typeRows)
	mock.ExpectQuery(`INSERT INTO "requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))

	result, err := service.Create(CreateRequestDTO{
		TypeID:      1,
		UserID:      7,
		Title:       "Mais horários na academia",
		Description: "A academia poderia abrir aos domingos",
	})
	require.NoError(t, err)

	assert.Equal(t, string(models.RequestStatusCriado), result.Status)
	assert.Equal(t, "Criado", result.StatusName)
	assert.Equal(t, models.RequestTypeSugestoes, result.TypeName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTypeConflict(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewRequestService(db, nil)

	rows := sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Empréstimo")
	mock.ExpectQuery(`SELECT (.+) FROM "request_types"`).WillReturnRows(rows)

	result, err := service.CreateType(CreateRequestTypeDTO{Name: "EMPRÉSTIMO"})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestListFiltersByUserForNonAdmin(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewRequestService(db, nil)
	mock.MatchExpectationsInOrder(false)

	requestRows := sqlmock.NewRows([]string{"id", "type_id", "user_id", "status"}).
		AddRow(1, 2, 7, "CRIADO")
	mock.ExpectQuery(`SELECT (.+) FROM "requests" WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs(7).
		WillReturnRows(requestRows)
	mock.ExpectQuery(`SELECT (.+) FROM "request_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "Benefício"))
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(7, "Maria Souza"))

	result, err := service.List(7, false)
	require.NoError(t, err)
	require.Len(t, result, 1)

	assert.Equal(t, uint(7), result[0].UserID)
	assert.Equal(t, "Benefício", result[0].TypeName)
	assert.Equal(t, "Maria Souza", result[0].UserName)

	assert.NoError(t, mock.ExpectationsWereMet())
}
