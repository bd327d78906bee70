package main

import (
	"fmt"
	"log"
	"net/http"

	"nasede/config"
	"nasede/controllers"
	"nasede/database"
	"nasede/middleware"
	"nasede/services"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Configuração
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Erro ao carregar a configuração: %v", err)
	}

	// Banco de dados (migrações e seeds rodam na conexão)
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Erro ao conectar ao banco de dados: %v", err)
	}
	defer db.Close()

	// Serviços de infraestrutura
	emailService := services.NewEmailService(cfg)
	whatsappService := services.NewTwilioWhatsAppService(cfg)
	tokenStore := services.NewRedisTokenStore(cfg)

	// Serviços de domínio
	userService := services.NewUserService(db.DB, emailService, whatsappService, tokenStore, cfg)
	simulationService := services.NewLoanSimulationService(db.DB)
	requestService := services.NewRequestService(db.DB, emailService)
	newsService := services.NewNewsService(db.DB)
	eventService := services.NewEventService(db.DB, whatsappService, tokenStore, cfg)
	benefitService := services.NewBenefitService(db.DB)
	marketplaceService := services.NewMarketplaceService(db.DB)
	statementService := services.NewAccountStatementService(db.DB, cfg)
	messagingService := services.NewMessagingService(db.DB, whatsappService)

	// Controladores
	authController := controllers.NewAuthController(userService, tokenStore, cfg)
	userController := controllers.NewUserController(userService)
	simulationController := controllers.NewLoanSimulationController(simulationService)
	requestController := controllers.NewRequestController(requestService)
	newsController := controllers.NewNewsController(newsService)
	eventController := controllers.NewEventController(eventService)
	benefitController := controllers.NewBenefitController(benefitService)
	marketplaceController := controllers.NewMarketplaceController(marketplaceService)
	statementController := controllers.NewAccountStatementController(statementService)
	messagingController := controllers.NewMessagingController(messagingService)
	healthController := controllers.NewHealthController(db.DB)

	router := mux.NewRouter()
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.LoggingMiddleware)

	// Métricas e disponibilidade
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/api/health", healthController.Check).Methods("GET")

	// Autenticação (rotas públicas, com limite de frequência)
	auth := router.PathPrefix("/api/auth").Subrouter()
	auth.Use(middleware.RateLimitMiddleware)
	auth.HandleFunc("/signIn", authController.SignIn).Methods("POST")
	auth.HandleFunc("/whatsapp", authController.SignInWithWhatsApp).Methods("POST")

	// Respostas de convite: o token do convite é a credencial
	router.HandleFunc("/api/events/confirm", eventController.Confirm).Methods("POST")
	router.HandleFunc("/api/events/decline", eventController.Decline).Methods("POST")

	// Rotas autenticadas
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AuthMiddleware([]byte(cfg.JWT.SecretKey)))

	protected.HandleFunc("/users/me", userController.Me).Methods("GET")

	// Simulador de empréstimo
	protected.HandleFunc("/simulations", simulationController.Simulate).Methods("POST")
	protected.HandleFunc("/simulations", simulationController.List).Methods("GET")
	protected.HandleFunc("/simulations/{id}", simulationController.Get).Methods("GET")
	protected.HandleFunc("/simulations/{id}", simulationController.Delete).Methods("DELETE")

	// Solicitações
	protected.HandleFunc("/requests", requestController.Create).Methods("POST")
	protected.HandleFunc("/requests", requestController.List).Methods("GET")
	protected.HandleFunc("/requests/types", requestController.ListTypes).Methods("GET")
	protected.HandleFunc("/requests/{id}", requestController.Get).Methods("GET")

	// Mural de notícias
	protected.HandleFunc("/news", newsController.List).Methods("GET")
	protected.HandleFunc("/news/{id}", newsController.Get).Methods("GET")
	protected.HandleFunc("/news/{id}/comments", newsController.AddComment).Methods("POST")

	// Agenda de eventos
	protected.HandleFunc("/events", eventController.List).Methods("GET")
	protected.HandleFunc("/events/{id}", eventController.Get).Methods("GET")

	// Benefícios
	protected.HandleFunc("/benefits", benefitController.List).Methods("GET")

	// Mercado entre associados
	protected.HandleFunc("/marketplace", marketplaceController.Create).Methods("POST")
	protected.HandleFunc("/marketplace", marketplaceController.List).Methods("GET")
	protected.HandleFunc("/marketplace/{id}", marketplaceController.Deactivate).Methods("DELETE")

	// Demonstrativos de contas
	protected.HandleFunc("/statements", statementController.List).Methods("GET")
	protected.HandleFunc("/statements/{id}/file", statementController.Download).Methods("GET")

	// Rotas de administração
	admin := protected.NewRoute().Subrouter()
	admin.Use(middleware.AdminOnly)
	admin.HandleFunc("/users", userController.Create).Methods("POST")
	admin.HandleFunc("/users", userController.List).Methods("GET")
	admin.HandleFunc("/requests/types", requestController.CreateType).Methods("POST")
	admin.HandleFunc("/requests/{id}/status", requestController.SetStatus).Methods("PUT")
	admin.HandleFunc("/news", newsController.Create).Methods("POST")
	admin.HandleFunc("/news/{id}", newsController.Delete).Methods("DELETE")
	admin.HandleFunc("/events", eventController.Create).Methods("POST")
	admin.HandleFunc("/events/{id}/attendance", eventController.Attendance).Methods("GET")
	admin.HandleFunc("/benefits", benefitController.Create).Methods("POST")
	admin.HandleFunc("/benefits/{id}", benefitController.Update).Methods("PUT")
	admin.HandleFunc("/statements", statementController.Create).Methods("POST")
	admin.HandleFunc("/messages/broadcast", messagingController.Broadcast).Methods("POST")

	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Servidor iniciado na porta %s", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatalf("Erro ao iniciar o servidor: %v", err)
	}
}
