package insert

type Location struct {
	UID       uint64  `json:"uid"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
