package storage

import (
	"errors"

	"github.com/daniil11ru/trail/cli/tracker/storage/store/mysql"
	"github.com/daniil11ru/trail/cli/tracker/storage/store/nats"
	"github.com/daniil11ru/trail/cli/tracker/storage/store/postgresql"
	"github.com/daniil11ru/trail/cli/tracker/storage/store/rabbitmq"
	"github.com/daniil11ru/trail/cli/tracker/storage/store/redis"
	"github.com/daniil11ru/trail/cli/tracker/storage/store/tarantool_queue"
)

var ErrInvalidStorage = errors.New("storage not found")
var ErrUnknownStorage = errors.New("storage isn't support yet")

type Store interface {
	Connector
	Saver
}

// Saver интерфейс для подключения внешних хранилищ
type Saver interface {
	// Save сохранение в хранилище
	Save(interface{ ToBytes() ([]byte, error) }) error
}

// Connector интерфейс для подключения внешних хранилищ
type Connector interface {
	// Init установка соединения с хранилищем
	Init(map[string]string) error

	// Close закрытие соединения с хранилищем
	Close() error
}

// Repository набор выходных хранилищ для событий местоположения
type Repository struct {
	storages   []Saver
	connectors []Connector
}

// AddStore добавляет хранилище для сохранения данных
func (r *Repository) AddStore(s Saver) {
	r.storages = append(r.storages, s)
}

// Save сохраняет событие во все установленные хранилища
func (r *Repository) Save(m interface{ ToBytes() ([]byte, error) }) error {
	for _, store := range r.storages {
		if err := store.Save(m); err != nil {
			return err
		}
	}
	return nil
}

// LoadStorages загружает хранилища из структуры конфига
func (r *Repository) LoadStorages(storages map[string]map[string]string) error {
	if len(storages) == 0 {
		return ErrInvalidStorage
	}

	var db Store
	for store, params := range storages {
		switch store {
		case "rabbitmq":
			db = &rabbitmq.Connector{}
		case "postgresql":
			db = &postgresql.Connector{}
		case "nats":
			db = &nats.Connector{}
		case "tarantool_queue":
			db = &tarantool_queue.Connector{}
		case "redis":
			db = &redis.Connector{}
		case "mysql":
			db = &mysql.Connector{}
		default:
			return ErrUnknownStorage
		}

		if err := db.Init(params); err != nil {
			return err
		}

		r.AddStore(db)
		r.connectors = append(r.connectors, db)
	}
	return nil
}

// Close закрывает соединения со всеми хранилищами
func (r *Repository) Close() error {
	var lastErr error
	for _, c := range r.connectors {
		if err := c.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// NewRepository создает пустой репозиторий
func NewRepository() *Repository {
	return &Repository{}
}
