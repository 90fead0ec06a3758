package response

import "encoding/json"

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type TimestampLocation struct {
	Timestamp string   `json:"timestamp"`
	Location  Position `json:"location"`
}

// QueryLocation сериализуется либо в строку "Missing" (истории ещё нет),
// либо в объект {"Location": {"timestamp": ..., "location": ...}}.
type QueryLocation struct {
	Location *TimestampLocation
}

func (r QueryLocation) MarshalJSON() ([]byte, error) {
	if r.Location == nil {
		return json.Marshal("Missing")
	}

	return json.Marshal(map[string]*TimestampLocation{"Location": r.Location})
}
