package services

import (
	"errors"
	"fmt"
)

// Tipos de falha retornados pelos serviços. Os controllers traduzem cada tipo
// para o código HTTP correspondente; os serviços nunca dependem do transporte.
var (
	ErrValidation = errors.New("dados inválidos")
	ErrNotFound   = errors.New("registro não encontrado")
	ErrForbidden  = errors.New("acesso negado")
	ErrConflict   = errors.New("conflito de dados")
)

// validationError cria uma falha de validação com a mensagem dada
func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// notFoundError cria uma falha de registro inexistente com a mensagem dada
func notFoundError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// forbiddenError cria uma falha de permissão com a mensagem dada
func forbiddenError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

// conflictError cria uma falha de unicidade com a mensagem dada
func conflictError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
