package services

import (
	"errors"
	"fmt"
	"time"

	"nasede/models"
	"nasede/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// SimulateLoanDTO representa os dados de entrada de uma simulação
type SimulateLoanDTO struct {
	Wage               float64 `json:"wage" validate:"required,gt=0"`
	LoanAmount         float64 `json:"loanAmount" validate:"required,gt=0"`
	NumberInstallments int     `json:"numberInstallments" validate:"required,gte=1,lte=12"`
	UserID             uint    `json:"-" validate:"required"`
}

// LoanSimulationResultDTO representa o resultado de uma simulação
type LoanSimulationResultDTO struct {
	ID                 uint    `json:"id"`
	RequestedAmount    float64 `json:"requestedAmount"`
	InstallmentValue   float64 `json:"installmentValue"`
	TotalAmount        float64 `json:"totalAmount"`
	InterestRate       float64 `json:"interestRate"`
	NumberInstallments int     `json:"numberInstallments"`
	MaxAllowedLoan     float64 `json:"maxAllowedLoan"`
	IsValidLoan        bool    `json:"isValidLoan"`
	ValidationMessage  string  `json:"validationMessage"`
}

// LoanSimulationDTO representa uma simulação gravada no histórico
type LoanSimulationDTO struct {
	ID                 uint      `json:"id"`
	Wage               float64   `json:"wage"`
	LoanAmount         float64   `json:"loanAmount"`
	NumberInstallments int       `json:"numberInstallments"`
	InterestRate       float64   `json:"interestRate"`
	InstallmentValue   float64   `json:"installmentValue"`
	TotalAmount        float64   `json:"totalAmount"`
	MaxAllowedLoan     float64   `json:"maxAllowedLoan"`
	IsValidLoan        bool      `json:"isValidLoan"`
	CreatedAt          time.Time `json:"createdAt"`
	UserID             uint      `json:"userId"`
}

// LoanSimulationService executa e grava simulações de empréstimo
type LoanSimulationService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewLoanSimulationService cria uma nova instância de LoanSimulationService
func NewLoanSimulationService(db *gorm.DB) *LoanSimulationService {
	return &LoanSimulationService{
		db:        db,
		validator: validator.New(),
	}
}

// validate aplica as tags de validação do DTO antes das regras de faixa
func (s *LoanSimulationService) validate(dto interface{}) error {
	if err := s.validator.Struct(dto); err != nil {
		return validationError("%s", err.Error())
	}
	return nil
}

// Simulate calcula a parcela, o total e o limite de empréstimo para os dados
// informados e grava a simulação no histórico. Uma simulação acima da margem
// legal não é erro: o resultado volta com IsValidLoan = false. Entradas
// inválidas falham antes de qualquer gravação.
func (s *LoanSimulationService) Simulate(dto SimulateLoanDTO) (*LoanSimulationResultDTO, error) {
	// Valida as entradas, cada restrição com sua própria mensagem
	if dto.NumberInstallments < models.MinInstallments || dto.NumberInstallments > models.MaxInstallments {
		return nil, validationError("número de parcelas deve ser entre %d e %d", models.MinInstallments, models.MaxInstallments)
	}
	if dto.Wage <= 0 {
		return nil, validationError("salário deve ser maior que zero")
	}
	if dto.LoanAmount <= 0 {
		return nil, validationError("valor do empréstimo deve ser maior que zero")
	}
	if dto.UserID == 0 {
		return nil, validationError("usuário não informado")
	}
	if err := s.validate(dto); err != nil {
		return nil, err
	}

	// Monta a simulação convertendo os valores para centavos
	simulation := &models.LoanSimulation{
		Wage:               models.ReaisToCents(dto.Wage),
		LoanAmount:         models.ReaisToCents(dto.LoanAmount),
		NumberInstallments: dto.NumberInstallments,
		UserID:             dto.UserID,
	}

	// Grava a simulação; mesmo acima da margem, o histórico fica completo
	if err := s.db.Create(simulation).Error; err != nil {
		return nil, fmt.Errorf("erro ao gravar a simulação: %w", err)
	}

	result := s.toResultDTO(simulation)

	if result.IsValidLoan {
		utils.SimulationsTotal.WithLabelValues("aprovada").Inc()
	} else {
		utils.SimulationsTotal.WithLabelValues("acima_da_margem").Inc()
	}

	return result, nil
}

// toResultDTO calcula os campos derivados e a mensagem de validação
func (s *LoanSimulationService) toResultDTO(simulation *models.LoanSimulation) *LoanSimulationResultDTO {
	installment := simulation.InstallmentValue().Round(2)
	total := simulation.TotalAmount().Round(2)
	maxLoan := simulation.MaxAllowedLoan().Round(2)
	isValid := simulation.IsValidLoan()

	result := &LoanSimulationResultDTO{
		ID:                 simulation.ID,
		RequestedAmount:    simulation.LoanAmountReais().InexactFloat64(),
		InstallmentValue:   installment.InexactFloat64(),
		TotalAmount:        total.InexactFloat64(),
		InterestRate:       models.InterestRatePerPeriod.InexactFloat64(),
		NumberInstallments: simulation.NumberInstallments,
		MaxAllowedLoan:     maxLoan.InexactFloat64(),
		IsValidLoan:        isValid,
	}

	if isValid {
		result.ValidationMessage = "Simulação aprovada! O empréstimo está dentro do limite permitido por lei."
	} else {
		maxInstallment := simulation.MaxInstallment().Round(2)
		result.ValidationMessage = fmt.Sprintf(
			"O valor da parcela (R$ %s) excede 40%% do seu salário (máximo permitido: R$ %s). Valor máximo de empréstimo recomendado: R$ %s",
			installment.StringFixed(2),
			maxInstallment.StringFixed(2),
			maxLoan.StringFixed(2),
		)
	}

	return result
}

// toDTO converte o modelo em DTO de histórico
func (s *LoanSimulationService) toDTO(simulation *models.LoanSimulation) LoanSimulationDTO {
	return LoanSimulationDTO{
		ID:                 simulation.ID,
		Wage:               simulation.WageReais().InexactFloat64(),
		LoanAmount:         simulation.LoanAmountReais().InexactFloat64(),
		NumberInstallments: simulation.NumberInstallments,
		InterestRate:       models.InterestRatePerPeriod.InexactFloat64(),
		InstallmentValue:   simulation.InstallmentValue().Round(2).InexactFloat64(),
		TotalAmount:        simulation.TotalAmount().Round(2).InexactFloat64(),
		MaxAllowedLoan:     simulation.MaxAllowedLoan().Round(2).InexactFloat64(),
		IsValidLoan:        simulation.IsValidLoan(),
		CreatedAt:          simulation.CreatedAt,
		UserID:             simulation.UserID,
	}
}

// ListByUser retorna as simulações do usuário, da mais recente para a mais antiga
func (s *LoanSimulationService) ListByUser(userID uint) ([]LoanSimulationDTO, error) {
	var simulations []models.LoanSimulation
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&simulations).Error; err != nil {
		return nil, fmt.Errorf("erro ao listar as simulações: %w", err)
	}

	result := make([]LoanSimulationDTO, len(simulations))
	for i := range simulations {
		result[i] = s.toDTO(&simulations[i])
	}
	return result, nil
}

// GetByID retorna uma simulação do próprio usuário
func (s *LoanSimulationService) GetByID(id, userID uint) (*LoanSimulationDTO, error) {
	var simulation models.LoanSimulation
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&simulation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("simulação não encontrada")
		}
		return nil, fmt.Errorf("erro ao buscar a simulação: %w", err)
	}

	dto := s.toDTO(&simulation)
	return &dto, nil
}

// Delete remove uma simulação. Apenas o dono ou um administrador pode remover.
func (s *LoanSimulationService) Delete(id, userID uint, isAdmin bool) error {
	var simulation models.LoanSimulation
	if err := s.db.First(&simulation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("simulação não encontrada")
		}
		return fmt.Errorf("erro ao buscar a simulação: %w", err)
	}

	if simulation.UserID != userID && !isAdmin {
		return forbiddenError("a simulação pertence a outro usuário")
	}

	if err := s.db.Delete(&simulation).Error; err != nil {
		return fmt.Errorf("erro ao remover a simulação: %w", err)
	}
	return nil
}
