package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rk/lifeadmin/internal/domain"
	"github.com/rk/lifeadmin/internal/usecase"
	"github.com/rk/lifeadmin/internal/usecase/mocks"
)

func TestUserUseCase_Register(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.RegisterInput
		wantErr error
	}{
		{
			name: "valid registration",
			input: usecase.RegisterInput{
				Email:    "rk@example.com",
				Name:     "RK",
				Password: "correct-horse",
			},
		},
		{
			name: "email is normalized",
			input: usecase.RegisterInput{
				Email:    "  RK@Example.COM ",
				Name:     "RK",
				Password: "correct-horse",
			},
		},
		{
			name: "invalid email",
			input: usecase.RegisterInput{
				Email:    "not-an-email",
				Password: "correct-horse",
			},
			wantErr: domain.ErrInvalidEmail,
		},
		{
			name: "short password",
			input: usecase.RegisterInput{
				Email:    "rk@example.com",
				Password: "short",
			},
			wantErr: domain.ErrPasswordTooWeak,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockUserRepository()
			uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

			user, err := uc.Register(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.ID == "" {
				t.Error("expected generated id")
			}
			if user.Email != "rk@example.com" {
				t.Errorf("expected normalized email, got %q", user.Email)
			}
			if user.HashedPassword != "" {
				t.Error("hashed password must not leak out of Register")
			}
		})
	}
}

func TestUserUseCase_RegisterDuplicate(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())
	ctx := context.Background()

	input := usecase.RegisterInput{Email: "rk@example.com", Password: "correct-horse"}
	if _, err := uc.Register(ctx, input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.Register(ctx, input); err != domain.ErrUserAlreadyExists {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestUserUseCase_Login(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())
	ctx := context.Background()

	if _, err := uc.Register(ctx, usecase.RegisterInput{
		Email:    "rk@example.com",
		Name:     "RK",
		Password: "correct-horse",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, err := uc.Login(ctx, usecase.LoginInput{
			Email:    "RK@example.com",
			Password: "correct-horse",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Email != "rk@example.com" {
			t.Errorf("unexpected email %q", user.Email)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := uc.Login(ctx, usecase.LoginInput{
			Email:    "rk@example.com",
			Password: "wrong-password",
		}); err != domain.ErrInvalidCredentials {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := uc.Login(ctx, usecase.LoginInput{
			Email:    "nobody@example.com",
			Password: "correct-horse",
		}); err != domain.ErrInvalidCredentials {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
