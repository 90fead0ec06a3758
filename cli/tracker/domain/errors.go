package domain

import "errors"

// Ошибки разбора учётных данных. Все они трактуются HTTP-слоем как
// клиентские (400).
var (
	ErrMissingCredential   = errors.New("заголовок x-api-key отсутствует")
	ErrAmbiguousCredential = errors.New("заголовок x-api-key передан более одного раза")
	ErrMalformedCredential = errors.New("ключ API не является беззнаковым целым числом")
	ErrInvalidCredential   = errors.New("ключ API не зарегистрирован")
)
