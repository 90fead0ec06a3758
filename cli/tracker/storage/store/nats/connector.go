package nats

/*
Настройки, которые могут быть в конфиге для подключения хранилища:

host = "localhost"
port = "4222"
user = ""
password = ""
subject = "trail.location"
*/

import (
	"fmt"

	gonats "github.com/nats-io/nats.go"
)

type Connector struct {
	connection *gonats.Conn
	config     map[string]string
}

func (c *Connector) Init(cfg map[string]string) error {
	var err error
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}
	c.config = cfg

	url := fmt.Sprintf("nats://%s:%s", c.config["host"], c.config["port"])

	opts := []gonats.Option{}
	if c.config["user"] != "" {
		opts = append(opts, gonats.UserInfo(c.config["user"], c.config["password"]))
	}

	if c.connection, err = gonats.Connect(url, opts...); err != nil {
		return fmt.Errorf("не удалось подключиться к NATS: %v", err)
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

	subject := c.config["subject"]
	if subject == "" {
		subject = "trail.location"
	}

	if err := c.connection.Publish(subject, innerPkg); err != nil {
		return fmt.Errorf("не удалось отправить сообщение: %v", err)
	}
	return nil
}

func (c *Connector) Close() error {
	c.connection.Close()
	return nil
}
