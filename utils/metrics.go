package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas expostas em /metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nasede_http_requests_total",
		Help: "Total de requisições HTTP por método, rota e código de status",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nasede_http_request_duration_seconds",
		Help:    "Duração das requisições HTTP em segundos",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	SimulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nasede_loan_simulations_total",
		Help: "Total de simulações de empréstimo por resultado",
	}, []string{"resultado"})

	RequestDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nasede_request_decisions_total",
		Help: "Total de transições de status de solicitações",
	}, []string{"status"})

	WhatsAppMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nasede_whatsapp_messages_total",
		Help: "Total de mensagens de WhatsApp enviadas por resultado",
	}, []string{"resultado"})
)
