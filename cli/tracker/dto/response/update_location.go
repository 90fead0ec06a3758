package response

import "encoding/json"

type Kilometers struct {
	Km float64 `json:"km"`
}

// UpdateLocation сериализуется либо в строку "Initial" (первая отметка
// пользователя), либо в объект {"DistTraveled": {"km": ...}}.
type UpdateLocation struct {
	Initial      bool
	DistTraveled *Kilometers
}

func (r UpdateLocation) MarshalJSON() ([]byte, error) {
	if r.Initial || r.DistTraveled == nil {
		return json.Marshal("Initial")
	}

	return json.Marshal(map[string]*Kilometers{"DistTraveled": r.DistTraveled})
}
