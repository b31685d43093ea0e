package controller

import (
	"github.com/kehernandez7/squares/model"
)

// teamScores derives the team's cumulative score through the end of each
// quarter. An unknown team (provider dropped it from the event) yields all
// zeros so the rest of the computation can proceed.
func teamScores(event *model.Event, teamID string) [model.NumQuarters]int {
	comp := event.Competitor(teamID)
	if comp == nil {
		return [model.NumQuarters]int{}
	}
	return cumulativeScores(comp.Linescores)
}

// cumulativeScores turns per-quarter point deltas into running totals.
// Fewer than four quarters pads by carrying the last total forward; extra
// periods (overtime) fold into the fourth quarter total since squares only
// pay out on quarters 1-4.
func cumulativeScores(deltas []int) [model.NumQuarters]int {
	var result [model.NumQuarters]int

	total := 0
	for i := 0; i < model.NumQuarters; i++ {
		if i < len(deltas) {
			total += deltas[i]
		}
		result[i] = total
	}
	for i := model.NumQuarters; i < len(deltas); i++ {
		result[model.NumQuarters-1] += deltas[i]
	}

	return result
}

// computeWinners finds, for each quarter, the cell whose assigned digits
// match the last digit of both teams' cumulative scores. Cells that win
// multiple quarters accumulate them in ascending order. A digit with no
// assigned position (numbers only partially present) skips that quarter
// rather than failing.
func computeWinners(numbers *model.GridNumbers, rowScores, colScores [model.NumQuarters]int) []model.Winner {
	results := make([]model.Winner, 0, model.NumQuarters)
	index := make(map[model.Cell]int)

	for q := 1; q <= model.NumQuarters; q++ {
		row := numbers.RowPosition(rowScores[q-1] % 10)
		col := numbers.ColPosition(colScores[q-1] % 10)
		if row < 0 || col < 0 {
			continue
		}

		cell := model.Cell{Row: row, Col: col}
		if i, found := index[cell]; found {
			results[i].Quarters = append(results[i].Quarters, q)
			continue
		}
		index[cell] = len(results)
		results = append(results, model.Winner{Row: row, Col: col, Quarters: []int{q}})
	}

	return results
}
