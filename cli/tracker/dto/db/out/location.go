package out

import "time"

type Location struct {
	ID        int32     `json:"id" gorm:"column:id"`
	UID       uint64    `json:"uid" gorm:"column:uid"`
	Timestamp time.Time `json:"timestamp"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}
