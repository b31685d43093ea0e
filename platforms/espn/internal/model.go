package internal

// Shapes for the slices of the ESPN site and core APIs this service reads.
// Only the fields we touch are declared, everything else is ignored.

type Summary struct {
	Header *Header `json:"header"`
}

type Header struct {
	ID           string        `json:"id"`
	Competitions []Competition `json:"competitions"`
}

type Competition struct {
	Competitors []Competitor `json:"competitors"`
	Status      *Status      `json:"status"`
}

type Competitor struct {
	ID         string      `json:"id"`
	HomeAway   string      `json:"homeAway"`
	Team       *Team       `json:"team"`
	Linescores []Linescore `json:"linescores"`
}

type Team struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
}

type Linescore struct {
	Value        float64 `json:"value"`
	DisplayValue string  `json:"displayValue"`
}

type Status struct {
	Type *StatusType `json:"type"`
}

type StatusType struct {
	Name        string `json:"name"`
	Completed   bool   `json:"completed"`
	ShortDetail string `json:"shortDetail"`
}

type Scoreboard struct {
	Events []Event `json:"events"`
}

type Event struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ShortName    string        `json:"shortName"`
	Competitions []Competition `json:"competitions"`
}

type WeekList struct {
	Items []WeekRef `json:"items"`
}

type WeekRef struct {
	Ref string `json:"$ref"`
}

type Week struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}
