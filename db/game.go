package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kehernandez7/squares/model"
)

func (db *postgresDB) AddGame(ctx context.Context, g *model.Game) error {
	const query = `INSERT INTO games (
		game_uuid,
		name,
		nfl_event_id,
		row_team_id,
		col_team_id,
		password_hash,
		grid_size,
		created
	) VALUES (
		@uuid,
		@name,
		@eventID,
		@rowTeamID,
		@colTeamID,
		@passwordHash,
		@gridSize,
		@created
	) RETURNING id, created`

	created := pgtype.Timestamptz{
		Time:             db.clock.Now().UTC(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
	args := pgx.NamedArgs{
		"uuid": g.UUID,
		"name": sql.NullString{
			String: g.Name,
			Valid:  g.Name != "",
		},
		"eventID":   g.NFLEventID,
		"rowTeamID": g.RowTeamID,
		"colTeamID": g.ColTeamID,
		"passwordHash": sql.NullString{
			String: g.PasswordHash,
			Valid:  g.PasswordHash != "",
		},
		"gridSize": g.GridSize,
		"created":  created,
	}

	var ts pgtype.Timestamptz
	if err := db.pool.QueryRow(ctx, query, args).Scan(&g.ID, &ts); err != nil {
		return fmt.Errorf("error inserting game: %w", err)
	}
	g.Created = ts.Time
	return nil
}

func (db *postgresDB) GetGame(ctx context.Context, uuid string) (*model.Game, error) {
	const query = `SELECT id, game_uuid, name, nfl_event_id, row_team_id,
						col_team_id, password_hash, complete, grid_size, created
					FROM games WHERE game_uuid=@uuid`

	args := pgx.NamedArgs{
		"uuid": uuid,
	}

	var result model.Game
	var name, passwordHash sql.NullString
	var created pgtype.Timestamptz
	err := db.pool.QueryRow(ctx, query, args).Scan(
		&result.ID,
		&result.UUID,
		&name,
		&result.NFLEventID,
		&result.RowTeamID,
		&result.ColTeamID,
		&passwordHash,
		&result.Complete,
		&result.GridSize,
		&created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("error scanning game %s: %w", uuid, err)
	}

	result.Name = valueOrEmpty(name)
	result.PasswordHash = valueOrEmpty(passwordHash)
	result.Created = created.Time

	return &result, nil
}

func (db *postgresDB) UpsertUser(ctx context.Context, name, email string) (*model.User, error) {
	// The no-op DO UPDATE makes RETURNING yield the existing row, so a
	// returning user keeps the name they first signed up with.
	const query = `INSERT INTO users (name, email) VALUES (@name, @email)
					ON CONFLICT (email) DO UPDATE SET email=EXCLUDED.email
					RETURNING id, name, email`

	args := pgx.NamedArgs{
		"name":  name,
		"email": email,
	}

	var result model.User
	err := db.pool.QueryRow(ctx, query, args).Scan(&result.ID, &result.Name, &result.Email)
	if err != nil {
		return nil, fmt.Errorf("error upserting user %s: %w", email, err)
	}
	return &result, nil
}

func valueOrEmpty(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}
