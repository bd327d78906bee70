package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateWithinMargin(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewLoanSimulationService(db)

	mock.ExpectQuery(`INSERT INTO "loan_simulations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	result, err := service.Simulate(SimulateLoanDTO{
		Wage:               5000,
		LoanAmount:         3000,
		NumberInstallments: 6,
		UserID:             7,
	})
	require.NoError(t, err)

	assert.Equal(t, 526.58, result.InstallmentValue)
	assert.Equal(t, 3159.45, result.TotalAmount)
	assert.Equal(t, 11394.37, result.MaxAllowedLoan)
	assert.Equal(t, 0.015, result.InterestRate)
	assert.True(t, result.IsValidLoan)
	assert.Contains(t, result.ValidationMessage, "dentro do limite permitido")

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Uma simulação acima da margem não é erro: ela é gravada e o resultado
// explica o limite
func TestSimulateAboveMarginStillPersisted(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewLoanSimulationService(db)

	mock.ExpectQuery(`INSERT INTO "loan_simulations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

	result, err := service.Simulate(SimulateLoanDTO{
		Wage:               1000,
		LoanAmount:         5000,
		NumberInstallments: 1,
		UserID:             7,
	})
	require.NoError(t, err)

	assert.False(t, result.IsValidLoan)
	assert.Equal(t, 5075.00, result.InstallmentValue)
	assert.Equal(t, 394.09, result.MaxAllowedLoan)
	assert.Contains(t, result.ValidationMessage, "R$ 5075.00")
	assert.Contains(t, result.ValidationMessage, "máximo permitido: R$ 400.00")
	assert.Contains(t, result.ValidationMessage, "R$ 394.09")

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Entradas inválidas falham antes de qualquer acesso ao banco
func TestSimulateInvalidInput(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewLoanSimulationService(db)

	testCases := []struct {
		name    string
		dto     SimulateLoanDTO
		message string
	}{
		{
			"zero parcelas",
			SimulateLoanDTO{Wage: 5000, LoanAmount: 3000, NumberInstallments: 0, UserID: 7},
			"número de parcelas",
		},
		{
			"parcelas demais",
			SimulateLoanDTO{Wage: 5000, LoanAmount: 3000, NumberInstallments: 13, UserID: 7},
			"número de parcelas",
		},
		{
			"salário zerado",
			SimulateLoanDTO{Wage: 0, LoanAmount: 3000, NumberInstallments: 6, UserID: 7},
			"salário",
		},
		{
			"salário negativo",
			SimulateLoanDTO{Wage: -100, LoanAmount: 3000, NumberInstallments: 6, UserID: 7},
			"salário",
		},
		{
			"empréstimo zerado",
			SimulateLoanDTO{Wage: 5000, LoanAmount: 0, NumberInstallments: 6, UserID: 7},
			"valor do empréstimo",
		},
		{
			"sem usuário",
			SimulateLoanDTO{Wage: 5000, LoanAmount: 3000, NumberInstallments: 6},
			"usuário",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := service.Simulate(tc.dto)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tc.message)
		})
	}

	// Nenhuma consulta chegou ao banco
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSimulationGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewLoanSimulationService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "loan_simulations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	result, err := service.GetByID(99, 7)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSimulationDeleteForbiddenForOtherUser(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewLoanSimulationService(db)

	rows := sqlmock.NewRows([]string{"id", "wage", "loan_amount", "number_installments", "user_id"}).
		AddRow(1, 500000, 300000, 6, 42)
	mock.ExpectQuery(`SELECT (.+) FROM "loan_simulations"`).WillReturnRows(rows)

	err := service.Delete(1, 7, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
}
