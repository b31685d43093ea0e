package model

// StatusFinal is the ESPN status name for a finished game.
const StatusFinal = "STATUS_FINAL"

// Event is the provider's view of an NFL game.
type Event struct {
	ID          string
	Name        string
	ShortName   string
	StatusName  string
	Completed   bool
	Competitors []Competitor
}

// Final reports whether the event has ended and scores are settled.
func (e *Event) Final() bool {
	return e.Completed || e.StatusName == StatusFinal
}

// Competitor looks up a team in the event by its external id.
// Returns nil if the team is not part of the event.
func (e *Event) Competitor(teamID string) *Competitor {
	for i := range e.Competitors {
		if e.Competitors[i].TeamID == teamID {
			return &e.Competitors[i]
		}
	}
	return nil
}

type Competitor struct {
	TeamID      string
	DisplayName string
	HomeAway    string
	// Linescores are per-quarter point deltas in quarter order, not
	// running totals. May be shorter than 4 for games cut short.
	Linescores []int
}

// ScheduledEvent is an upcoming game offered for squares-game creation.
type ScheduledEvent struct {
	ID          string
	Name        string
	ShortDetail string
	Competitors []string
	RowTeamID   string
	ColTeamID   string
}
