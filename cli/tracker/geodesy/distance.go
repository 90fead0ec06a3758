package geodesy

import (
	"github.com/daniil11ru/trail/cli/tracker/types"
	"github.com/tidwall/geodesic"
)

// DistanceKm возвращает геодезическое расстояние в километрах между двумя
// точками на эллипсоиде WGS84. Высота обеих точек принимается равной нулю.
func DistanceKm(a, b types.Position2D) float64 {
	var meters float64
	geodesic.WGS84.Inverse(a.Latitude, a.Longitude, b.Latitude, b.Longitude, &meters, nil, nil)

	return meters / 1000
}
