package services

import (
	"math"

	"sharecalc/models"
)

// BuildNetworkLevels expands direct recruits into per-level user counts.
// Level 0 always holds the direct recruits; each deeper level is the previous
// one scaled by the average indirect-recruit factor and floored. Expansion
// stops after networkDepth levels or once the previous level is empty or the
// factor is zero. Counts past the int range saturate at math.MaxInt.
func BuildNetworkLevels(directRecruits int, indirectRecruits float64, networkDepth int) []models.LevelData {
	levels := []models.LevelData{{Level: 0, Users: directRecruits}}

	prev := directRecruits
	for i := 1; i <= networkDepth; i++ {
		if prev == 0 || indirectRecruits == 0 {
			break
		}
		users := floorCount(float64(prev) * indirectRecruits)
		levels = append(levels, models.LevelData{Level: i, Users: users})
		prev = users
	}
	return levels
}

// NetworkSize sums users across levels, saturating at math.MaxInt
func NetworkSize(levels []models.LevelData) int {
	total := 0
	for _, l := range levels {
		total = addCounts(total, l.Users)
	}
	return total
}

func addCounts(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	if b < 0 && a < math.MinInt-b {
		return math.MinInt
	}
	return a + b
}

// floorCount floors v into an int, clamping to the int range. float64(math.MaxInt)
// rounds up to 2^63, so the upper bound is inclusive.
func floorCount(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= float64(math.MaxInt):
		return math.MaxInt
	case v <= float64(math.MinInt):
		return math.MinInt
	}
	return int(math.Floor(v))
}
