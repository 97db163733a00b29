package utils

import "math"

// kmPerDegree - длина градуса широты в equirectangular-приближении
const kmPerDegree = 111.0

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// EquirectangularAreaKm2 - приблизительная площадь bbox в км²:
// ΔlatDeg × ΔlonDeg × 111 × 111 × cos(minLat)
func EquirectangularAreaKm2(minLat, minLon, maxLat, maxLon float64) float64 {
	latDiff := maxLat - minLat
	lonDiff := maxLon - minLon
	return latDiff * lonDiff * kmPerDegree * kmPerDegree * math.Cos(minLat*math.Pi/180)
}
