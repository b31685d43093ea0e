package testutils

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
	"github.com/kehernandez7/squares/containers"
	"github.com/kehernandez7/squares/db"
	"github.com/kehernandez7/squares/model"
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}

// AddTestGame inserts a fresh game tied to the fake ESPN final event and
// returns it. Each call gets its own uuid so tests don't collide.
func AddTestGame(d db.DB, passwordHash string) (*model.Game, error) {
	game := &model.Game{
		UUID:         uuid.NewString(),
		Name:         "Test Game",
		NFLEventID:   FinalEventID,
		RowTeamID:    AwayTeamID,
		ColTeamID:    HomeTeamID,
		PasswordHash: passwordHash,
		GridSize:     model.DefaultGridSize,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := d.AddGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}
