package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config representa a configuração da aplicação
type Config struct {
	Server struct {
		Port        int
		FrontendURL string
	}
	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
	}
	JWT struct {
		SecretKey string
		ExpiresIn int // em horas
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	Twilio struct {
		AccountSid string
		AuthToken  string
		FromNumber string
		BaseURL    string
	}
	Redis struct {
		Addr     string
		Password string
	}
	Uploads struct {
		Dir string
	}
}

// NewConfig carrega a configuração a partir das variáveis de ambiente
func NewConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Servidor
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("FRONTEND_URL", "http://localhost:4200")

	// Banco de dados
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "nasede_db")

	// JWT
	v.SetDefault("JWT_SECRET_KEY", "troque-esta-chave-em-producao")
	v.SetDefault("JWT_EXPIRES_IN", 24)

	// SMTP
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "nao-responda@nasede.org.br")

	// Twilio (WhatsApp)
	v.SetDefault("TWILIO_ACCOUNT_SID", "")
	v.SetDefault("TWILIO_AUTH_TOKEN", "")
	v.SetDefault("TWILIO_FROM_NUMBER", "")
	v.SetDefault("TWILIO_BASE_URL", "https://api.twilio.com")

	// Redis (tokens de login via WhatsApp)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")

	// Arquivos de demonstrativos
	v.SetDefault("UPLOADS_DIR", "uploads")

	cfg := &Config{}

	cfg.Server.Port = v.GetInt("SERVER_PORT")
	if cfg.Server.Port <= 0 {
		return nil, fmt.Errorf("porta do servidor inválida: %d", cfg.Server.Port)
	}
	cfg.Server.FrontendURL = v.GetString("FRONTEND_URL")

	cfg.DB.Host = v.GetString("DB_HOST")
	cfg.DB.Port = v.GetInt("DB_PORT")
	if cfg.DB.Port <= 0 {
		return nil, fmt.Errorf("porta do banco de dados inválida: %d", cfg.DB.Port)
	}
	cfg.DB.User = v.GetString("DB_USER")
	cfg.DB.Password = v.GetString("DB_PASSWORD")
	cfg.DB.DBName = v.GetString("DB_NAME")

	cfg.JWT.SecretKey = v.GetString("JWT_SECRET_KEY")
	cfg.JWT.ExpiresIn = v.GetInt("JWT_EXPIRES_IN")

	cfg.SMTP.Host = v.GetString("SMTP_HOST")
	cfg.SMTP.Port = v.GetInt("SMTP_PORT")
	cfg.SMTP.Username = v.GetString("SMTP_USERNAME")
	cfg.SMTP.Password = v.GetString("SMTP_PASSWORD")
	cfg.SMTP.From = v.GetString("SMTP_FROM")

	cfg.Twilio.AccountSid = v.GetString("TWILIO_ACCOUNT_SID")
	cfg.Twilio.AuthToken = v.GetString("TWILIO_AUTH_TOKEN")
	cfg.Twilio.FromNumber = v.GetString("TWILIO_FROM_NUMBER")
	cfg.Twilio.BaseURL = v.GetString("TWILIO_BASE_URL")

	cfg.Redis.Addr = v.GetString("REDIS_ADDR")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")

	cfg.Uploads.Dir = v.GetString("UPLOADS_DIR")

	return cfg, nil
}
