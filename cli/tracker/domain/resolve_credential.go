package domain

import (
	"strconv"

	"github.com/daniil11ru/trail/cli/tracker/types"
)

// KeyRegistry отвечает на вопрос, является ли ключ API действующим.
type KeyRegistry interface {
	IsValid(key uint64) bool
}

type ResolveCredential struct {
	Registry KeyRegistry
}

// Run превращает значения заголовка x-api-key в идентификатор пользователя.
// Заголовок должен присутствовать ровно один раз и содержать
// зарегистрированное целое число. Побочных эффектов нет.
func (domain *ResolveCredential) Run(values []string) (types.UserID, error) {
	switch {
	case len(values) == 0:
		return 0, ErrMissingCredential
	case len(values) > 1:
		return 0, ErrAmbiguousCredential
	}

	key, err := strconv.ParseUint(values[0], 10, 64)
	if err != nil {
		return 0, ErrMalformedCredential
	}

	if !domain.Registry.IsValid(key) {
		return 0, ErrInvalidCredential
	}

	return types.UserID(key), nil
}
