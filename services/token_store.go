package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"nasede/config"

	"github.com/redis/go-redis/v9"
)

// LoginTokenTTL é o prazo de validade de um token de login por WhatsApp
const LoginTokenTTL = 7 * 24 * time.Hour

// TokenStore guarda tokens de login temporários associados a um usuário
type TokenStore interface {
	SaveLoginToken(ctx context.Context, token string, userID uint) error
	ResolveLoginToken(ctx context.Context, token string) (uint, error)
}

// EventTokenStore guarda os tokens de confirmação de presença enviados nos
// convites de evento
type EventTokenStore interface {
	SaveEventToken(ctx context.Context, token string, eventID, userID uint, ttl time.Duration) error
	ResolveEventToken(ctx context.Context, token string) (eventID, userID uint, err error)
}

// RedisTokenStore guarda tokens no Redis com expiração automática. Um mesmo
// token pode ser usado mais de uma vez enquanto não expirar.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore cria uma nova instância de RedisTokenStore
func NewRedisTokenStore(cfg *config.Config) *RedisTokenStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	return &RedisTokenStore{client: client}
}

func loginTokenKey(token string) string {
	return "login_token:" + token
}

// SaveLoginToken registra o token com o prazo de validade padrão
func (s *RedisTokenStore) SaveLoginToken(ctx context.Context, token string, userID uint) error {
	key := loginTokenKey(token)
	if err := s.client.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), LoginTokenTTL).Err(); err != nil {
		return fmt.Errorf("erro ao guardar o token de login: %w", err)
	}
	return nil
}

// ResolveLoginToken retorna o usuário dono do token, se ele ainda for válido
func (s *RedisTokenStore) ResolveLoginToken(ctx context.Context, token string) (uint, error) {
	key := loginTokenKey(token)
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, notFoundError("token de login inválido ou expirado")
		}
		return 0, fmt.Errorf("erro ao consultar o token de login: %w", err)
	}

	userID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token de login com valor corrompido: %w", err)
	}
	return uint(userID), nil
}

func eventTokenKey(token string) string {
	return "event_token:" + token
}

// SaveEventToken registra um token de confirmação de presença. O prazo segue a
// data do evento: o token deixa de valer depois que o evento passa.
func (s *RedisTokenStore) SaveEventToken(ctx context.Context, token string, eventID, userID uint, ttl time.Duration) error {
	key := eventTokenKey(token)
	value := fmt.Sprintf("%d:%d", eventID, userID)
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("erro ao guardar o token de confirmação: %w", err)
	}
	return nil
}

// ResolveEventToken retorna o evento e o usuário associados a um token de confirmação
func (s *RedisTokenStore) ResolveEventToken(ctx context.Context, token string) (uint, uint, error) {
	key := eventTokenKey(token)
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, 0, notFoundError("token de confirmação inválido ou expirado")
		}
		return 0, 0, fmt.Errorf("erro ao consultar o token de confirmação: %w", err)
	}

	var eventID, userID uint64
	if _, err := fmt.Sscanf(value, "%d:%d", &eventID, &userID); err != nil {
		return 0, 0, fmt.Errorf("token de confirmação com valor corrompido: %w", err)
	}
	return uint(eventID), uint(userID), nil
}
