package model

// Week is one entry of the season schedule, e.g. {5, "Week 5"}.
type Week struct {
	Number int
	Text   string
}
