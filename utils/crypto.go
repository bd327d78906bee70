package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSecureToken gera um token aleatório seguro em base64 URL-safe
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("falha ao gerar o token: %v", err)
	}
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b), nil
}

// GenerateLoginToken gera o token de uso único enviado por WhatsApp
func GenerateLoginToken() (string, error) {
	return GenerateSecureToken(32)
}

// GenerateConfirmationToken gera o token de confirmação de presença em evento
func GenerateConfirmationToken() (string, error) {
	return GenerateSecureToken(24)
}
