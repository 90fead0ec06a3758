package types

// UserID — идентификатор пользователя, извлечённый из проверенного ключа API.
type UserID uint64

type Position2D struct {
	Latitude  float64
	Longitude float64
}

// Valid проверяет, что координаты лежат в допустимом диапазоне EPSG:4326.
func (p Position2D) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}
