package source

import (
	"context"
	"fmt"

	"github.com/daniil11ru/trail/cli/tracker/dto/db/in/insert"
	"github.com/daniil11ru/trail/cli/tracker/dto/db/out"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DefaultPrimary struct {
	db *gorm.DB
}

func NewDefaultPrimary(dsn string) (*DefaultPrimary, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %v", err)
	}

	return &DefaultPrimary{db: db}, nil
}

// AddLocation добавляет запись о местоположении. Метка времени назначается
// сервером базы данных в момент вставки, значение клиента игнорируется.
func (s *DefaultPrimary) AddLocation(ctx context.Context, location insert.Location) (int32, error) {
	const q = `
		INSERT INTO location (uid, timestamp, latitude, longitude)
		VALUES (?, NOW(), ?, ?)
		RETURNING id
	`

	var id int32
	if err := s.db.WithContext(ctx).Raw(q, location.UID, location.Latitude, location.Longitude).Scan(&id).Error; err != nil {
		return 0, err
	}

	return id, nil
}

// GetLastLocation возвращает запись с максимальной меткой времени для
// пользователя. Второе значение false, если истории ещё нет.
func (s *DefaultPrimary) GetLastLocation(ctx context.Context, uid uint64) (out.Location, bool, error) {
	var locations []out.Location

	q := s.db.WithContext(ctx).
		Table("location").
		Select("id, uid, timestamp, latitude, longitude").
		Where("uid = ?", uid).
		Order("timestamp DESC").
		Limit(1)

	if err := q.Scan(&locations).Error; err != nil {
		return out.Location{}, false, err
	}

	if len(locations) == 0 {
		return out.Location{}, false, nil
	}

	return locations[0], true, nil
}

func (s *DefaultPrimary) GetApiKeys(ctx context.Context) ([]out.ApiKey, error) {
	var apiKeys []out.ApiKey

	if err := s.db.WithContext(ctx).Table("api_key").Select("id, key, name").Scan(&apiKeys).Error; err != nil {
		return nil, err
	}

	return apiKeys, nil
}
