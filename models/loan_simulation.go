package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Política vigente do simulador: juros fixos de 1,5% ao mês e parcela limitada
// a 40% do salário (margem consignável prevista em lei).
var (
	InterestRatePerPeriod = decimal.RequireFromString("0.015")
	WageCommitmentCap     = decimal.RequireFromString("0.40")
)

// Limites do número de parcelas aceitos pelo simulador
const (
	MinInstallments = 1
	MaxInstallments = 12
)

var (
	one          = decimal.NewFromInt(1)
	centsPerReal = decimal.NewFromInt(100)
)

// ReaisToCents converte um valor em reais para centavos, arredondando em duas casas
func ReaisToCents(v float64) int64 {
	return decimal.NewFromFloat(v).Round(2).Mul(centsPerReal).IntPart()
}

// CentsToReais converte um valor em centavos para reais
func CentsToReais(c int64) decimal.Decimal {
	return decimal.NewFromInt(c).Div(centsPerReal)
}

// LoanSimulation representa uma simulação de empréstimo. Os valores monetários
// são armazenados em centavos; os campos derivados são recalculados a partir
// dos dados brutos com a taxa vigente.
type LoanSimulation struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Wage               int64     `gorm:"column:wage;not null" json:"wage"`        // Salário em centavos
	LoanAmount         int64     `gorm:"column:loan_amount;not null" json:"loanAmount"` // Valor solicitado em centavos
	NumberInstallments int       `gorm:"column:number_installments;not null" json:"numberInstallments"`
	UserID             uint      `gorm:"column:user_id;not null;index" json:"userId"`
	User               *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt          time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (LoanSimulation) TableName() string {
	return "loan_simulations"
}

// WageReais retorna o salário em reais
func (s *LoanSimulation) WageReais() decimal.Decimal {
	return decimal.NewFromInt(s.Wage).Div(centsPerReal)
}

// LoanAmountReais retorna o valor solicitado em reais
func (s *LoanSimulation) LoanAmountReais() decimal.Decimal {
	return decimal.NewFromInt(s.LoanAmount).Div(centsPerReal)
}

// compoundFactor calcula (1+r)^n por multiplicação sucessiva. Com n limitado a
// 12 parcelas, isso mantém toda a aritmética em decimal, sem passar por float.
func compoundFactor(installments int) decimal.Decimal {
	factor := one
	base := one.Add(InterestRatePerPeriod)
	for i := 0; i < installments; i++ {
		factor = factor.Mul(base)
	}
	return factor
}

// InstallmentValue calcula a parcela fixa pela fórmula de amortização (Price):
// PMT = P * [r(1+r)^n] / [(1+r)^n - 1]
func (s *LoanSimulation) InstallmentValue() decimal.Decimal {
	factor := compoundFactor(s.NumberInstallments)
	return s.LoanAmountReais().
		Mul(InterestRatePerPeriod.Mul(factor)).
		Div(factor.Sub(one))
}

// TotalAmount calcula o valor total pago ao final de todas as parcelas
func (s *LoanSimulation) TotalAmount() decimal.Decimal {
	return s.InstallmentValue().Mul(decimal.NewFromInt(int64(s.NumberInstallments)))
}

// MaxInstallment retorna a parcela máxima permitida (40% do salário)
func (s *LoanSimulation) MaxInstallment() decimal.Decimal {
	return s.WageReais().Mul(WageCommitmentCap)
}

// MaxAllowedLoan calcula o maior principal cuja parcela cabe na margem de 40%
// do salário, invertendo a fórmula de amortização para o mesmo prazo e taxa.
func (s *LoanSimulation) MaxAllowedLoan() decimal.Decimal {
	factor := compoundFactor(s.NumberInstallments)
	return s.MaxInstallment().
		Mul(factor.Sub(one)).
		Div(InterestRatePerPeriod.Mul(factor))
}

// IsValidLoan informa se a parcela calculada respeita a margem legal
func (s *LoanSimulation) IsValidLoan() bool {
	return s.InstallmentValue().LessThanOrEqual(s.MaxInstallment())
}
