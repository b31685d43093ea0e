package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kehernandez7/squares/db"
	"github.com/kehernandez7/squares/model"
)

var (
	// ErrInvalidCell means a requested cell is outside the grid or the
	// request contained no usable cells.
	ErrInvalidCell = errors.New("cell out of bounds")
)

type GameParams struct {
	NFLEventID string
	RowTeamID  string
	ColTeamID  string
	Name       string
	Password   string
	// NotifyEmail, when set, gets a fire-and-forget creation email.
	NotifyEmail string
}

func (c *controller) CreateGame(ctx context.Context, p GameParams) (*model.Game, error) {
	if strings.TrimSpace(p.NFLEventID) == "" {
		return nil, errors.New("nfl event id must be provided")
	}
	if strings.TrimSpace(p.RowTeamID) == "" || strings.TrimSpace(p.ColTeamID) == "" {
		return nil, errors.New("both team ids must be provided")
	}

	game := &model.Game{
		UUID:       uuid.NewString(),
		Name:       strings.TrimSpace(p.Name),
		NFLEventID: p.NFLEventID,
		RowTeamID:  p.RowTeamID,
		ColTeamID:  p.ColTeamID,
		GridSize:   model.DefaultGridSize,
	}
	if p.Password != "" {
		hash, err := hashPassword(p.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing game password: %w", err)
		}
		game.PasswordHash = hash
	}

	if err := c.db.AddGame(ctx, game); err != nil {
		return nil, err
	}

	if p.NotifyEmail != "" {
		go c.sendCreationEmail(p.NotifyEmail, game)
	}

	return game, nil
}

// sendCreationEmail notifies the creator that their game is live. Email is
// best effort, a failure is logged and nothing more.
func (c *controller) sendCreationEmail(to string, game *model.Game) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	name := game.Name
	if name == "" {
		name = "Your NFL Squares game"
	}
	link := fmt.Sprintf("%s/games/%s", c.siteURL, game.UUID)
	html := fmt.Sprintf(`<p>%s is ready. Share this link with your players:</p><p><a href="%s">%s</a></p>`, name, link, link)

	if err := c.email.Send(ctx, to, fmt.Sprintf("%s is live", name), html); err != nil {
		log.Printf("error sending creation email for game %s: %v", game.UUID, err)
	}
}

func (c *controller) GetGameState(ctx context.Context, uuid string) (*model.GameState, error) {
	game, err := c.db.GetGame(ctx, uuid)
	if err != nil {
		return nil, err
	}

	selections, err := c.db.ListSelections(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	numbers, err := c.db.GetNumbers(ctx, game.ID)
	if err != nil && !errors.Is(err, db.ErrNumbersNotGenerated) {
		return nil, err
	}

	state := &model.GameState{
		Game:        game,
		Selections:  selections,
		Numbers:     numbers,
		RowTeamName: fmt.Sprintf("Team %s", game.RowTeamID),
		ColTeamName: fmt.Sprintf("Team %s", game.ColTeamID),
	}

	// Provider data only decorates the response. If ESPN is unreachable the
	// grid still renders with placeholder names and no status.
	event, err := c.espn.GetEvent(ctx, game.NFLEventID)
	if err != nil {
		log.Printf("error fetching event %s for game %s: %v", game.NFLEventID, uuid, err)
	} else {
		state.Event = event
		if comp := event.Competitor(game.RowTeamID); comp != nil && comp.DisplayName != "" {
			state.RowTeamName = comp.DisplayName
		}
		if comp := event.Competitor(game.ColTeamID); comp != nil && comp.DisplayName != "" {
			state.ColTeamName = comp.DisplayName
		}
	}

	if game.Complete {
		state.Winners, err = c.db.GetWinners(ctx, game.ID)
		if err != nil {
			return nil, err
		}
		return state, nil
	}

	if event != nil && event.Final() && numbers != nil {
		winners, err := c.finalizeGame(ctx, game, event, numbers)
		if err != nil {
			return nil, err
		}
		game.Complete = true
		state.Winners = winners
	}

	return state, nil
}

// finalizeGame computes the winners and marks the game complete. The db
// write is guarded so exactly one request across all instances performs it;
// losers read back what the winner committed.
func (c *controller) finalizeGame(ctx context.Context, game *model.Game, event *model.Event, numbers *model.GridNumbers) ([]model.Winner, error) {
	rowScores := teamScores(event, game.RowTeamID)
	colScores := teamScores(event, game.ColTeamID)
	winners := computeWinners(numbers, rowScores, colScores)

	wrote, err := c.db.SaveWinners(ctx, game.ID, winners)
	if err != nil {
		return nil, err
	}
	if !wrote {
		return c.db.GetWinners(ctx, game.ID)
	}
	return winners, nil
}

func (c *controller) ClaimCells(ctx context.Context, uuid, name, email string, cells []model.Cell) (*model.ClaimResult, error) {
	game, err := c.db.GetGame(ctx, uuid)
	if err != nil {
		return nil, err
	}

	cells = dedupeCells(cells)
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: no cells requested", ErrInvalidCell)
	}
	for _, cell := range cells {
		if cell.Row < 0 || cell.Row >= game.GridSize || cell.Col < 0 || cell.Col >= game.GridSize {
			return nil, fmt.Errorf("%w: (%d,%d)", ErrInvalidCell, cell.Row, cell.Col)
		}
	}

	user, err := c.db.UpsertUser(ctx, name, email)
	if err != nil {
		return nil, err
	}

	result := &model.ClaimResult{UserName: user.Name}
	for _, cell := range cells {
		inserted, err := c.db.InsertSelection(ctx, game.ID, user.ID, cell)
		if err != nil {
			// A failed insert rejects this cell only. Cells already
			// committed stay committed.
			log.Printf("error claiming cell (%d,%d) in game %s: %v", cell.Row, cell.Col, uuid, err)
			result.Rejected = append(result.Rejected, cell)
			continue
		}
		if inserted {
			result.Accepted = append(result.Accepted, cell)
		} else {
			result.Rejected = append(result.Rejected, cell)
		}
	}

	return result, nil
}

func dedupeCells(cells []model.Cell) []model.Cell {
	seen := make(map[model.Cell]bool, len(cells))
	result := make([]model.Cell, 0, len(cells))
	for _, c := range cells {
		if seen[c] {
			continue
		}
		seen[c] = true
		result = append(result, c)
	}
	return result
}
