package store

import "errors"

var (
	ErrAccountExists       = errors.New("account already exists")
	ErrRecordNotFound      = errors.New("record not found")
	ErrConstraintViolation = errors.New("database constraint violation")
	ErrDuplicate           = errors.New("duplicate record")
	ErrForeignKey          = errors.New("referenced record does not exist")
	ErrConflict            = errors.New("record changed concurrently")
)
