package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/paintshop-api/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// storageErr envuelve un error del driver con domain.ErrStorage conservando la causa.
func storageErr(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w: registro duplicado: %w", op, domain.ErrStorage, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w: referencia inexistente: %w", op, domain.ErrStorage, err)
	case pgCode(err) == codeInvalidText:
		return fmt.Errorf("%s: %w: identificador con formato inválido: %w", op, domain.ErrNotFound, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}
}

// isUUID indica si id puede compararse contra una columna UUID. Un id con otro
// formato no existe en la base: las consultas por id responden vacío sin ir al servidor.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
