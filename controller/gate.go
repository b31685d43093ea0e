package controller

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidPassword is returned for a wrong game password. Callers surface
// it as an auth failure, distinct from a missing game.
var ErrInvalidPassword = errors.New("invalid password")

func (c *controller) PasswordRequired(ctx context.Context, uuid string) (bool, error) {
	game, err := c.db.GetGame(ctx, uuid)
	if err != nil {
		return false, err
	}
	return game.PasswordRequired(), nil
}

func (c *controller) VerifyPassword(ctx context.Context, uuid, password string) error {
	game, err := c.db.GetGame(ctx, uuid)
	if err != nil {
		return err
	}

	// A game without a password accepts anyone.
	if !game.PasswordRequired() {
		return nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(game.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
