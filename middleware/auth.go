package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware valida o JWT e coloca o usuário no contexto da requisição
func AuthMiddleware(jwtKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get("Authorization")
			if tokenString == "" {
				http.Error(w, "Cabeçalho Authorization é obrigatório", http.StatusUnauthorized)
				return
			}

			// Remove o prefixo "Bearer ", se presente
			if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
				tokenString = tokenString[7:]
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
				}
				return jwtKey, nil
			})

			if err != nil {
				http.Error(w, "Token inválido", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				http.Error(w, "Claims do token inválidas", http.StatusUnauthorized)
				return
			}

			userID, ok := claims["user_id"].(float64)
			if !ok {
				http.Error(w, "user_id ausente no token", http.StatusUnauthorized)
				return
			}
			role, _ := claims["role"].(string)

			r.Header.Set("X-User-ID", strconv.FormatUint(uint64(userID), 10))

			ctx := r.Context()
			ctx = context.WithValue(ctx, "user_id", uint(userID))
			ctx = context.WithValue(ctx, "role", role)
			r = r.WithContext(ctx)

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly exige o papel ADMIN; aplicar depois de AuthMiddleware
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value("role").(string)
		if !ok || role != "ADMIN" {
			http.Error(w, "Acesso restrito a administradores", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext retorna o usuário autenticado da requisição
func GetUserFromContext(r *http.Request) (uint, string, error) {
	userID, ok := r.Context().Value("user_id").(uint)
	if !ok {
		return 0, "", fmt.Errorf("user_id não encontrado no contexto")
	}

	role, ok := r.Context().Value("role").(string)
	if !ok {
		return 0, "", fmt.Errorf("role não encontrado no contexto")
	}

	return userID, role, nil
}

// IsAdmin informa se a requisição vem de um administrador
func IsAdmin(r *http.Request) bool {
	role, _ := r.Context().Value("role").(string)
	return role == "ADMIN"
}
