package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/kehernandez7/squares/db"
	"github.com/kehernandez7/squares/db/mockdb"
	"github.com/kehernandez7/squares/model"
	"github.com/stretchr/testify/mock"
)

func TestVerifyPassword(t *testing.T) {
	hash, err := hashPassword("s3cret")
	if err != nil {
		t.Fatalf("error hashing test password: %v", err)
	}

	tests := map[string]struct {
		game     *model.Game
		getErr   error
		password string
		expected error
	}{
		"correct password": {
			game:     &model.Game{ID: 1, UUID: "uuid-1", PasswordHash: hash},
			password: "s3cret",
			expected: nil,
		},
		"wrong password": {
			game:     &model.Game{ID: 1, UUID: "uuid-1", PasswordHash: hash},
			password: "nope",
			expected: ErrInvalidPassword,
		},
		"open game accepts anything": {
			game:     &model.Game{ID: 1, UUID: "uuid-1"},
			password: "whatever",
			expected: nil,
		},
		"unknown game": {
			getErr:   db.ErrGameNotFound,
			password: "s3cret",
			expected: db.ErrGameNotFound,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mockDB := &mockdb.DB{}
			mockDB.On("GetGame", mock.Anything, "uuid-1").Return(tc.game, tc.getErr)

			ctrl := newTestControllerWithMocks(t, mockDB, "", "")

			err := ctrl.VerifyPassword(context.Background(), "uuid-1", tc.password)
			if !errors.Is(err, tc.expected) {
				t.Errorf("wrong error, expected: %v, got: %v", tc.expected, err)
			}
		})
	}
}

func TestPasswordRequired(t *testing.T) {
	hash, err := hashPassword("s3cret")
	if err != nil {
		t.Fatalf("error hashing test password: %v", err)
	}

	tests := map[string]struct {
		game     *model.Game
		expected bool
	}{
		"gated game":     {game: &model.Game{ID: 1, UUID: "uuid-1", PasswordHash: hash}, expected: true},
		"open game":      {game: &model.Game{ID: 1, UUID: "uuid-1"}, expected: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mockDB := &mockdb.DB{}
			mockDB.On("GetGame", mock.Anything, "uuid-1").Return(tc.game, nil)

			ctrl := newTestControllerWithMocks(t, mockDB, "", "")

			required, err := ctrl.PasswordRequired(context.Background(), "uuid-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if required != tc.expected {
				t.Errorf("expected required=%t, got %t", tc.expected, required)
			}
		})
	}
}

func TestHashPassword_neverStoresPlaintext(t *testing.T) {
	hash, err := hashPassword("hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "hunter2" || hash == "" {
		t.Errorf("hash looks wrong: %q", hash)
	}
}
