package domain

import (
	"context"
	"fmt"
	"sync"

	"github.com/daniil11ru/trail/cli/tracker/dto/db/out"
	cron "github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type ApiKeysRepository interface {
	GetApiKeys(ctx context.Context) ([]out.ApiKey, error)
}

// ApiKeyRegistry держит в памяти множество действующих ключей API из таблицы
// api_key и периодически обновляет его по расписанию.
type ApiKeyRegistry struct {
	Repository            ApiKeysRepository
	RefreshCronExpression string

	mu   sync.RWMutex
	keys map[uint64]struct{}

	cronScheduler *cron.Cron
}

// Refresh перечитывает ключи из хранилища и атомарно подменяет кэш.
func (domain *ApiKeyRegistry) Refresh(ctx context.Context) error {
	apiKeys, err := domain.Repository.GetApiKeys(ctx)
	if err != nil {
		return fmt.Errorf("не удалось получить список ключей API: %w", err)
	}

	keys := make(map[uint64]struct{}, len(apiKeys))
	for _, apiKey := range apiKeys {
		keys[apiKey.Key] = struct{}{}
	}

	domain.mu.Lock()
	domain.keys = keys
	domain.mu.Unlock()

	return nil
}

func (domain *ApiKeyRegistry) Initialize(ctx context.Context) error {
	if err := domain.Refresh(ctx); err != nil {
		return fmt.Errorf("не удалось инициализировать кэш ключей API: %w", err)
	}

	expression := domain.RefreshCronExpression
	if expression == "" {
		expression = "0 3 * * *"
	}

	domain.cronScheduler = cron.New()
	_, err := domain.cronScheduler.AddFunc(expression, func() {
		logrus.Info("Запуск запланированного обновления кэша ключей API")
		if err := domain.Refresh(context.Background()); err != nil {
			logrus.Errorf("Ошибка обновления кэша ключей API: %v", err)
		} else {
			logrus.Info("Кэш ключей API успешно обновлен")
		}
	})
	if err != nil {
		return fmt.Errorf("ошибка при настройке cron-задачи: %w", err)
	}

	domain.cronScheduler.Start()
	logrus.Infof("Запланировано обновление кэша ключей API по расписанию %q", expression)

	return nil
}

func (domain *ApiKeyRegistry) Shutdown() {
	if domain.cronScheduler != nil {
		domain.cronScheduler.Stop()
		logrus.Info("Cron-планировщик остановлен")
	}
}

func (domain *ApiKeyRegistry) IsValid(key uint64) bool {
	domain.mu.RLock()
	defer domain.mu.RUnlock()

	_, ok := domain.keys[key]
	return ok
}
