package service

import (
	"context"
	"errors"
	"testing"
)

func newAuthService(s *store) *AuthService {
	return NewAuthService(&fakeUserRepo{s: s}, "test-secret")
}

func register(t *testing.T, svc *AuthService, email, username string) *AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), RegisterInput{
		Email:       email,
		Username:    username,
		DisplayName: username,
		Password:    "Password1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(newStore())

	reg := register(t, svc, "user1@example.com", "user1")
	if reg.AccessToken == "" || reg.RefreshToken == "" {
		t.Fatal("register did not issue a token pair")
	}
	if reg.User.PasswordHash == "Password1" {
		t.Fatal("password stored in the clear")
	}

	login, err := svc.Login(context.Background(), LoginInput{Email: "user1@example.com", Password: "Password1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Error("login resolved a different user")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService(newStore())
	register(t, svc, "user1@example.com", "user1")

	_, err := svc.Login(context.Background(), LoginInput{Email: "user1@example.com", Password: "WrongPass1"})
	if !errors.Is(err, ErrInvalidCreds) {
		t.Fatalf("err = %v, want ErrInvalidCreds", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc := newAuthService(newStore())
	register(t, svc, "user1@example.com", "user1")

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "user1@example.com", Username: "other", DisplayName: "other", Password: "Password1",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}

	_, err = svc.Register(context.Background(), RegisterInput{
		Email: "other@example.com", Username: "user1", DisplayName: "other", Password: "Password1",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestRefresh(t *testing.T) {
	svc := newAuthService(newStore())
	reg := register(t, svc, "user1@example.com", "user1")

	resp, err := svc.Refresh(context.Background(), reg.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("refresh did not issue an access token")
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := newAuthService(newStore())
	reg := register(t, svc, "user1@example.com", "user1")

	if _, err := svc.Refresh(context.Background(), reg.AccessToken); !errors.Is(err, ErrInvalidRefresh) {
		t.Fatalf("err = %v, want ErrInvalidRefresh", err)
	}
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := newAuthService(newStore())

	if _, err := svc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidRefresh) {
		t.Fatalf("err = %v, want ErrInvalidRefresh", err)
	}
}
