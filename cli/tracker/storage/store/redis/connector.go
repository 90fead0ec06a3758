package redis

/*
Настройки, которые могут быть в конфиге для подключения хранилища:

host = "localhost"
port = "6379"
password = ""
db = "0"
key = "location_events"
*/

import (
	"context"
	"fmt"
	"strconv"

	goredis "github.com/go-redis/redis/v8"
)

type Connector struct {
	connection *goredis.Client
	config     map[string]string
}

func (c *Connector) Init(cfg map[string]string) error {
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}
	c.config = cfg

	db := 0
	if c.config["db"] != "" {
		parsed, err := strconv.Atoi(c.config["db"])
		if err != nil {
			return fmt.Errorf("не удалось получить номер базы Redis: %v", err)
		}
		db = parsed
	}

	c.connection = goredis.NewClient(&goredis.Options{
		Addr:     fmt.Sprintf("%s:%s", c.config["host"], c.config["port"]),
		Password: c.config["password"],
		DB:       db,
	})

	if err := c.connection.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("Redis недоступен: %v", err)
	}
	return nil
}

func (c *Connector) Save(msg interface{ ToBytes() ([]byte, error) }) error {
	if msg == nil {
		return fmt.Errorf("некорректная ссылка на событие")
	}

	innerPkg, err := msg.ToBytes()
	if err != nil {
		return fmt.Errorf("ошибка сериализации события: %v", err)
	}

	key := c.config["key"]
	if key == "" {
		key = "location_events"
	}

	if err := c.connection.RPush(context.Background(), key, innerPkg).Err(); err != nil {
		return fmt.Errorf("не удалось отправить сообщение: %v", err)
	}
	return nil
}

func (c *Connector) Close() error {
	return c.connection.Close()
}
