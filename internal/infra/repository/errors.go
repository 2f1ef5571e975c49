package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

var (
	ErrInvalidGuardKey  = errors.New("delivery guard key is empty")
	ErrUnsupportedDB    = errors.New("unsupported database driver")
	ErrInvalidTimestamp = errors.New("invalid timestamp range")
)

// translateError maps driver-neutral gorm errors onto domain errors.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyExists
	default:
		return err
	}
}
