package geo

import (
	"github.com/golang/geo/s2"
)

// CalculateS2Distance returns the angular distance between two coordinates as
// kilometers on the earth sphere. Slightly more stable than the plain
// haversine for near-antipodal points.
func CalculateS2Distance(latOne, longOne, latTwo, longTwo float64) float64 {
	pointOne := s2.LatLngFromDegrees(latOne, longOne)
	pointTwo := s2.LatLngFromDegrees(latTwo, longTwo)
	return pointOne.Distance(pointTwo).Radians() * earthRadiusKM
}
