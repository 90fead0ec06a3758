package domain

import (
	"context"
	"fmt"

	"github.com/daniil11ru/trail/cli/tracker/dto/db/out"
	repository "github.com/daniil11ru/trail/cli/tracker/repository"
	"github.com/daniil11ru/trail/cli/tracker/types"
	"github.com/sirupsen/logrus"
)

type QueryLocation struct {
	PrimaryRepository repository.Primary
}

// Run возвращает последнюю зафиксированную точку пользователя. Второе
// значение false означает отсутствие истории; это не ошибка.
func (domain *QueryLocation) Run(ctx context.Context, uid types.UserID) (out.Location, bool, error) {
	location, found, err := domain.PrimaryRepository.GetLastLocation(ctx, uid)
	if err != nil {
		return out.Location{}, false, fmt.Errorf("не удалось получить последнее местоположение: %w", err)
	}

	if !found {
		logrus.Infof("Местоположение пользователя %d отсутствует", uid)
		return out.Location{}, false, nil
	}

	logrus.Infof("Последнее местоположение пользователя %d: %f, %f", uid, location.Latitude, location.Longitude)

	return location, true, nil
}
