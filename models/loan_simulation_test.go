package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simulation(wage, loan float64, installments int) *LoanSimulation {
	return &LoanSimulation{
		Wage:               ReaisToCents(wage),
		LoanAmount:         ReaisToCents(loan),
		NumberInstallments: installments,
	}
}

func TestInstallmentValue(t *testing.T) {
	testCases := []struct {
		name         string
		wage         float64
		loan         float64
		installments int
		expected     string
	}{
		{"seis parcelas", 5000, 3000, 6, "526.58"},
		{"parcela única", 5000, 3000, 1, "3045.00"},
		{"doze parcelas", 5000, 3000, 12, "275.04"},
		{"parcela única acima da margem", 1000, 5000, 1, "5075.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := simulation(tc.wage, tc.loan, tc.installments)
			assert.Equal(t, tc.expected, s.InstallmentValue().Round(2).StringFixed(2))
		})
	}
}

func TestTotalAmount(t *testing.T) {
	s := simulation(5000, 3000, 6)
	assert.Equal(t, "3159.45", s.TotalAmount().Round(2).StringFixed(2))

	s = simulation(5000, 3000, 12)
	assert.Equal(t, "3300.48", s.TotalAmount().Round(2).StringFixed(2))
}

func TestMaxInstallment(t *testing.T) {
	s := simulation(5000, 3000, 6)
	assert.True(t, s.MaxInstallment().Equal(decimal.RequireFromString("2000")),
		"40%% de 5000 deve ser 2000, veio %s", s.MaxInstallment())

	s = simulation(1000, 5000, 1)
	assert.True(t, s.MaxInstallment().Equal(decimal.RequireFromString("400")))
}

func TestMaxAllowedLoan(t *testing.T) {
	s := simulation(5000, 3000, 6)
	assert.Equal(t, "11394.37", s.MaxAllowedLoan().Round(2).StringFixed(2))

	s = simulation(5000, 3000, 12)
	assert.Equal(t, "21815.01", s.MaxAllowedLoan().Round(2).StringFixed(2))

	s = simulation(1000, 5000, 1)
	assert.Equal(t, "394.09", s.MaxAllowedLoan().Round(2).StringFixed(2))
}

// Pegar o valor máximo recomendado e simular de novo com o mesmo prazo deve
// produzir uma parcela igual à margem de 40% do salário.
func TestMaxAllowedLoanRoundTrip(t *testing.T) {
	testCases := []struct {
		name         string
		wage         float64
		installments int
	}{
		{"seis parcelas", 5000, 6},
		{"parcela única", 1000, 1},
		{"doze parcelas", 3000, 12},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			first := simulation(tc.wage, 1000, tc.installments)
			maxLoan, _ := first.MaxAllowedLoan().Round(2).Float64()

			second := simulation(tc.wage, maxLoan, tc.installments)
			diff := second.InstallmentValue().Sub(second.MaxInstallment()).Abs()
			assert.True(t, diff.LessThanOrEqual(decimal.RequireFromString("0.01")),
				"parcela %s deveria coincidir com a margem %s",
				second.InstallmentValue().Round(2), second.MaxInstallment())
		})
	}
}

func TestIsValidLoan(t *testing.T) {
	// Parcela de 526.58 cabe na margem de 2000
	assert.True(t, simulation(5000, 3000, 6).IsValidLoan())

	// Parcela de 5075.00 estoura a margem de 400
	assert.False(t, simulation(1000, 5000, 1).IsValidLoan())

	// Exatamente na margem continua válido
	s := simulation(5000, 1000, 6)
	maxLoan, _ := s.MaxAllowedLoan().Float64()
	assert.True(t, simulation(5000, maxLoan, 6).IsValidLoan())
}

func TestReaisToCents(t *testing.T) {
	require.Equal(t, int64(500000), ReaisToCents(5000))
	require.Equal(t, int64(39409), ReaisToCents(394.09))
	require.Equal(t, int64(10), ReaisToCents(0.10))
	assert.True(t, CentsToReais(39409).Equal(decimal.RequireFromString("394.09")))
}
