package controller

import (
	"context"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/kehernandez7/squares/db"
	"github.com/kehernandez7/squares/model"
	"github.com/kehernandez7/squares/platforms/brevo"
	"github.com/kehernandez7/squares/platforms/espn"
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	CreateGame(ctx context.Context, p GameParams) (*model.Game, error)
	// GetGameState assembles the full view of a game. When the external
	// event has gone final and the game is not yet complete this is the
	// point where winners get computed and the game finalized.
	GetGameState(ctx context.Context, uuid string) (*model.GameState, error)
	// ClaimCells claims the requested cells for the named user. Cells that
	// already belong to someone else are reported back as rejected, they
	// never fail the request or roll back the accepted ones.
	ClaimCells(ctx context.Context, uuid, name, email string, cells []model.Cell) (*model.ClaimResult, error)

	GetNumbers(ctx context.Context, uuid string) (*model.GridNumbers, error)
	// EnsureNumbers returns the game's digit assignment, generating and
	// committing it first if none exists. generated reports whether this
	// call created the assignment.
	EnsureNumbers(ctx context.Context, uuid string) (numbers *model.GridNumbers, generated bool, err error)

	PasswordRequired(ctx context.Context, uuid string) (bool, error)
	// VerifyPassword returns nil for a correct password or for a game with
	// no password at all, and ErrInvalidPassword otherwise.
	VerifyPassword(ctx context.Context, uuid, password string) error

	// ListWeeks serves the season week list through a process-wide cache
	// refreshed at most once per 24 hours.
	ListWeeks(ctx context.Context) ([]model.Week, error)
	UpcomingGames(ctx context.Context, season, seasonType, week string) ([]model.ScheduledEvent, error)
	RunPeriodicScheduleRefresh(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)
}

type controller struct {
	clock   clock.Clock
	db      db.DB
	espn    *espn.Client
	email   brevo.Client
	season  string
	siteURL string
	weeks   weeksCache
}

func New(clock clock.Clock, db db.DB, espn *espn.Client, email brevo.Client, season, siteURL string) (C, error) {
	c := &controller{
		clock:   clock,
		db:      db,
		espn:    espn,
		email:   email,
		season:  season,
		siteURL: siteURL,
	}
	return c, nil
}
