package leveling

// XPRequired returns the XP cost of reaching the given level from the one
// below it. The whole package derives level math from this single formula
// so the forward and inverse directions can never drift apart.
func XPRequired(level int) int {
	return 5*level*level + 50*level + 100
}

// TotalXPForLevel returns the cumulative XP needed to stand exactly at the
// start of the given level.
func TotalXPForLevel(level int) int {
	total := 0
	for l := 1; l <= level; l++ {
		total += XPRequired(l)
	}
	return total
}

// LevelForTotalXP returns the greatest level whose cumulative cost fits in
// totalXP. Computed by accumulation rather than closed form so it always
// agrees with XPRequired.
func LevelForTotalXP(totalXP int) int {
	level := 0
	accumulated := 0
	for {
		need := XPRequired(level + 1)
		if accumulated+need > totalXP {
			return level
		}
		accumulated += need
		level++
	}
}
