package handicap

// TeamBonus is the home team's handicap adjustment from season match wins.
// 5v5 has no bonus. In 3v3 it is floor((homeWins - awayWins) / 2).
func TeamBonus(format Format, homeWins, awayWins int) int {
	if !format.HasTeamBonus() {
		return 0
	}
	return floorDiv(homeWins-awayWins, 2)
}

// Total sums the handicaps of the filled lineup slots.
func Total(handicaps []int) int {
	total := 0
	for _, h := range handicaps {
		total += h
	}
	return total
}

// Differential is own minus opponent; the two sides are exact negations.
func Differential(own, opponent int) int {
	return own - opponent
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
