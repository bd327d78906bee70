package controllers

import (
	"net/http"

	"gorm.io/gorm"
)

// HealthController responde às sondas de disponibilidade
type HealthController struct {
	db *gorm.DB
}

// NewHealthController cria uma nova instância de HealthController
func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Check verifica a conexão com o banco e responde o estado do serviço
func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	httpStatus := http.StatusOK

	sqlDB, err := c.db.DB()
	if err != nil || sqlDB.PingContext(r.Context()) != nil {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]string{"status": status})
}
