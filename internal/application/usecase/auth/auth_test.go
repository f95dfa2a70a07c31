package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vaultpay/backend/internal/domain/entity"
	domainerror "github.com/vaultpay/backend/internal/domain/error"
	"github.com/vaultpay/backend/internal/integration/adapters"
	"github.com/vaultpay/backend/internal/integration/persistence"
	"github.com/vaultpay/backend/internal/integration/persistence/model"
	"github.com/vaultpay/backend/test/integration/mock"
)

type authEnv struct {
	register *RegisterUserUseCase
	login    *LoginUserUseCase
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()

	db := mock.NewDB(t, &model.UserModel{})
	userRepo := persistence.NewUserRepository(db)
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService("test-secret", time.Hour)

	return &authEnv{
		register: NewRegisterUserUseCase(userRepo, passwordService, tokenService),
		login:    NewLoginUserUseCase(userRepo, passwordService, tokenService),
	}
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		env := newAuthEnv(t)

		output, err := env.register.Execute(ctx, RegisterUserInput{
			FullName: "Asha Rao",
			Email:    "asha@example.com",
			Phone:    "+919876543210",
			Password: "sufficiently-long",
		})
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if output.AccessToken == "" {
			t.Error("expected an access token")
		}
		if output.User.PasswordHash == "sufficiently-long" {
			t.Error("password must not be stored in plaintext")
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		env := newAuthEnv(t)

		input := RegisterUserInput{
			FullName: "Asha Rao",
			Email:    "asha@example.com",
			Password: "sufficiently-long",
		}
		if _, err := env.register.Execute(ctx, input); err != nil {
			t.Fatalf("first register failed: %v", err)
		}

		input.FullName = "Someone Else"
		_, err := env.register.Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrEmailAlreadyRegistered) {
			t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		env := newAuthEnv(t)

		cases := []struct {
			name  string
			input RegisterUserInput
		}{
			{"BadEmail", RegisterUserInput{FullName: "A", Email: "not-an-email", Password: "sufficiently-long"}},
			{"WeakPassword", RegisterUserInput{FullName: "A", Email: "a@example.com", Password: "short"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := env.register.Execute(ctx, tc.input)
				var authErr *domainerror.AuthError
				if !errors.As(err, &authErr) {
					t.Fatalf("expected an auth error, got %v", err)
				}
				if authErr.Code != domainerror.ErrCodeMissingAuthFields {
					t.Errorf("expected code %s, got %s", domainerror.ErrCodeMissingAuthFields, authErr.Code)
				}
			})
		}
	})
}

func TestLoginUser(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, env *authEnv) *entity.User {
		t.Helper()
		output, err := env.register.Execute(ctx, RegisterUserInput{
			FullName: "Ravi Menon",
			Email:    "ravi@example.com",
			Password: "sufficiently-long",
		})
		if err != nil {
			t.Fatalf("seed register failed: %v", err)
		}
		return output.User
	}

	t.Run("Success", func(t *testing.T) {
		env := newAuthEnv(t)
		user := seed(t, env)

		output, err := env.login.Execute(ctx, LoginUserInput{
			Email:    "ravi@example.com",
			Password: "sufficiently-long",
		})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if output.AccessToken == "" {
			t.Error("expected an access token")
		}
		if output.User.ID != user.ID {
			t.Error("login returned a different user")
		}
	})

	t.Run("BadCredentials", func(t *testing.T) {
		env := newAuthEnv(t)
		seed(t, env)

		// Wrong password and unknown email produce the same error.
		for _, input := range []LoginUserInput{
			{Email: "ravi@example.com", Password: "wrong-password"},
			{Email: "nobody@example.com", Password: "sufficiently-long"},
		} {
			_, err := env.login.Execute(ctx, input)
			if !errors.Is(err, domainerror.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials for %s, got %v", input.Email, err)
			}
		}
	})
}
