package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"nasede/config"
	"nasede/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database representa a conexão com o banco de dados
type Database struct {
	DB *gorm.DB
}

// Connect estabelece a conexão com o banco, executa as migrações e o seed inicial
func Connect(cfg *config.Config) (*Database, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.DBName,
	)

	// Logger do GORM
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao banco de dados: %v", err)
	}

	// Pool de conexões
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("erro ao obter o pool de conexões: %v", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Migrações SQL
	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("erro ao executar as migrações SQL: %v", err)
	}

	// Migração automática dos modelos
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("erro na migração automática dos modelos: %v", err)
	}

	// Tipos de solicitação padrão
	if err := seedRequestTypes(db); err != nil {
		return nil, fmt.Errorf("erro ao criar os tipos de solicitação padrão: %v", err)
	}

	return &Database{DB: db}, nil
}

// GetDB retorna a instância do GORM
func (d *Database) GetDB() *gorm.DB {
	return d.DB
}

// Close encerra a conexão com o banco de dados
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// runMigrations executa as migrações SQL do diretório migrations
func runMigrations(cfg *config.Config) error {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.DBName,
	)

	m, err := migrate.New(
		"file://migrations",
		dsn,
	)
	if err != nil {
		return fmt.Errorf("erro ao criar a migração: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("erro ao aplicar as migrações: %v", err)
	}

	return nil
}

// autoMigrate executa a migração automática dos modelos
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.RequestType{},
		&models.Request{},
		&models.LoanSimulation{},
		&models.News{},
		&models.NewsComment{},
		&models.Event{},
		&models.EventConfirmation{},
		&models.EventNotification{},
		&models.Benefit{},
		&models.MarketplaceItem{},
		&models.AccountStatement{},
	)
	if err != nil {
		return fmt.Errorf("erro na migração automática: %v", err)
	}

	return nil
}

// seedRequestTypes garante que os tipos de solicitação padrão existam
func seedRequestTypes(db *gorm.DB) error {
	defaults := []string{
		models.RequestTypeEmprestimo,
		models.RequestTypeBeneficio,
		models.RequestTypeSugestoes,
	}

	for _, name := range defaults {
		var existing models.RequestType
		err := db.Where("LOWER(name) = LOWER(?)", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&models.RequestType{Name: name}).Error; err != nil {
			return err
		}
	}

	return nil
}
