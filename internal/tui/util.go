package tui

import "math"

func floor(v float64) int {
	return int(math.Floor(v))
}
