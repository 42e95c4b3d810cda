package domain

// pointsByPlace awards points for finishing places 1 through 15.
var pointsByPlace = [...]int{100, 70, 50, 40, 32, 26, 22, 18, 14, 10, 8, 6, 4, 2, 1}

// PointsForPlace returns the points a finishing place is worth. Places
// outside 1..15 score nothing. Callers exclude places above 20 entirely
// before awarding points.
func PointsForPlace(place int) int {
	if place < 1 || place > len(pointsByPlace) {
		return 0
	}
	return pointsByPlace[place-1]
}
