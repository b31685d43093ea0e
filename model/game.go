package model

import "time"

const (
	// AxisRow and AxisCol tag which grid dimension a digit assignment
	// belongs to. These values are persisted, don't change them.
	AxisRow = "row"
	AxisCol = "col"

	DefaultGridSize = 10
	NumQuarters     = 4
)

type Game struct {
	ID         int32
	UUID       string
	Name       string
	NFLEventID string
	RowTeamID  string
	ColTeamID  string
	// PasswordHash is the bcrypt hash of the game password, or "" for an
	// open game. The plaintext is never stored.
	PasswordHash string
	Complete     bool
	GridSize     int
	Created      time.Time
}

func (g *Game) PasswordRequired() bool {
	return g.PasswordHash != ""
}

type User struct {
	ID    int32
	Name  string
	Email string
}

type Cell struct {
	Row int
	Col int
}

// Selection is a committed claim of a single grid cell.
type Selection struct {
	Row      int
	Col      int
	UserName string
}

// GridNumbers holds the digit assigned to each row and column position.
// Each slice is a permutation of 0-9 restricted to the grid size.
type GridNumbers struct {
	Rows []int
	Cols []int
}

// RowPosition returns the row position holding digit d, or -1.
func (n *GridNumbers) RowPosition(d int) int {
	return position(n.Rows, d)
}

// ColPosition returns the column position holding digit d, or -1.
func (n *GridNumbers) ColPosition(d int) int {
	return position(n.Cols, d)
}

func position(digits []int, d int) int {
	for i, v := range digits {
		if v == d {
			return i
		}
	}
	return -1
}

// Winner is a cell that matched the score digits for one or more quarters.
// Quarters is non-empty and in ascending order.
type Winner struct {
	Row      int
	Col      int
	Quarters []int
}

// ClaimResult reports which of the requested cells were newly inserted and
// which were already owned by someone else.
type ClaimResult struct {
	UserName string
	Accepted []Cell
	Rejected []Cell
}

// Partial reports whether at least one requested cell was lost to an
// earlier claimant. Accepted cells are committed either way.
func (r *ClaimResult) Partial() bool {
	return len(r.Rejected) > 0
}

// GameState is everything a client needs to render a game: the stored game,
// current selections and numbers, provider-derived display fields, and the
// winners once the game is complete.
type GameState struct {
	Game        *Game
	Event       *Event // nil when the provider is unavailable
	RowTeamName string
	ColTeamName string
	Selections  []Selection
	Numbers     *GridNumbers // nil until generated
	Winners     []Winner
}
