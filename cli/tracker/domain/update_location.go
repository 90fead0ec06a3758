package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/daniil11ru/trail/cli/tracker/dto/other"
	"github.com/daniil11ru/trail/cli/tracker/geodesy"
	repository "github.com/daniil11ru/trail/cli/tracker/repository"
	"github.com/daniil11ru/trail/cli/tracker/types"
	"github.com/sirupsen/logrus"
)

// Exporter выгружает событие фиксации местоположения во внешние хранилища.
type Exporter interface {
	Save(msg interface{ ToBytes() ([]byte, error) }) error
}

type UpdateLocation struct {
	PrimaryRepository repository.Primary
	Exporter          Exporter
}

type UpdateResult struct {
	// Initial — у пользователя не было истории до этой фиксации.
	Initial bool
	// Kilometers — геодезическое расстояние от предыдущей точки.
	Kilometers float64
}

// Run сохраняет новую точку и вычисляет пройденное расстояние. Чтение
// предыдущей точки обязано предшествовать вставке: расстояние считается
// относительно позиции, существовавшей до этого обновления.
func (domain *UpdateLocation) Run(ctx context.Context, uid types.UserID, position types.Position2D) (UpdateResult, error) {
	previous, found, err := domain.PrimaryRepository.GetLastLocation(ctx, uid)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("не удалось получить предыдущее местоположение: %w", err)
	}

	if _, err := domain.PrimaryRepository.AddLocation(ctx, uid, position); err != nil {
		return UpdateResult{}, fmt.Errorf("не удалось сохранить местоположение: %w", err)
	}

	logrus.Infof("Обновление местоположения пользователя %d: %f, %f", uid, position.Latitude, position.Longitude)

	domain.export(uid, position)

	if !found {
		return UpdateResult{Initial: true}, nil
	}

	km := geodesy.DistanceKm(
		types.Position2D{Latitude: previous.Latitude, Longitude: previous.Longitude},
		position,
	)

	return UpdateResult{Kilometers: km}, nil
}

// export передаёт событие во внешние хранилища. Ошибка выгрузки не влияет
// на результат запроса: запись в основное хранилище уже выполнена.
func (domain *UpdateLocation) export(uid types.UserID, position types.Position2D) {
	if domain.Exporter == nil {
		return
	}

	event := other.LocationEvent{
		UID:       uint64(uid),
		Timestamp: time.Now().UTC(),
		Latitude:  position.Latitude,
		Longitude: position.Longitude,
	}

	if err := domain.Exporter.Save(&event); err != nil {
		logrus.Warnf("Событие местоположения не было выгружено: %v", err)
	}
}
