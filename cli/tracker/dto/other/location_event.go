package other

import (
	"time"

	"gopkg.in/vmihailenco/msgpack.v2"
)

// LocationEvent — событие фиксации местоположения для выгрузки
// во внешние хранилища.
type LocationEvent struct {
	UID       uint64    `msgpack:"uid"`
	Timestamp time.Time `msgpack:"timestamp"`
	Latitude  float64   `msgpack:"latitude"`
	Longitude float64   `msgpack:"longitude"`
}

func (e *LocationEvent) ToBytes() ([]byte, error) {
	return msgpack.Marshal(e)
}
