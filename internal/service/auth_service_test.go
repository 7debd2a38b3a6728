package service

import (
	"context"
	"testing"

	"github.com/campus-it/lab-support/internal/auth"
	"github.com/campus-it/lab-support/internal/config"
	"github.com/campus-it/lab-support/internal/domain"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	hash, err := auth.HashPassword("correct-horse", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	users := &fakeUserRepo{users: []domain.User{
		{ID: "fac-1", FirstName: "Aisha", LastName: "Hassan", Role: domain.RoleFacultyMember,
			Email: "aisha@example.edu", PasswordHash: hash},
		{ID: "tech-1", FirstName: "Lina", Role: domain.RoleTechnicalMember},
	}}
	svc := NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            4,
	}, users)
	return svc, users
}

func TestLoginSuccessReturnsPublicUserAndToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, token, exp, err := svc.Login(context.Background(), "fac-1", "correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != "fac-1" || user.Role != domain.RoleFacultyMember {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash != "" {
		t.Fatal("password hash leaked in login response")
	}
	if token == "" || exp.IsZero() {
		t.Fatal("missing token or expiry")
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "fac-1" || claims.Role != domain.RoleFacultyMember {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, _, _, wrongPassword := svc.Login(ctx, "fac-1", "nope")
	_, _, _, unknownUser := svc.Login(ctx, "ghost", "nope")

	assertDomainErrorCode(t, wrongPassword, "UNAUTHORIZED")
	assertDomainErrorCode(t, unknownUser, "UNAUTHORIZED")
	if wrongPassword.Error() != unknownUser.Error() {
		t.Fatalf("error messages differ: %q vs %q", wrongPassword.Error(), unknownUser.Error())
	}
}

func TestChangePasswordRehashes(t *testing.T) {
	svc, users := newAuthFixture(t)
	ctx := context.Background()

	if err := svc.ChangePassword(ctx, "fac-1", "new-password"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	stored, _ := users.GetByID(ctx, "fac-1")
	if stored.PasswordHash == "new-password" {
		t.Fatal("password stored in plaintext")
	}
	if err := auth.ComparePassword(stored.PasswordHash, "new-password"); err != nil {
		t.Fatalf("new password does not verify: %v", err)
	}

	if _, _, _, err := svc.Login(ctx, "fac-1", "correct-horse"); err == nil {
		t.Fatal("old password still accepted")
	}
	if _, _, _, err := svc.Login(ctx, "fac-1", "new-password"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestTechnicalMembersListsOnlyTechnicalRole(t *testing.T) {
	svc, _ := newAuthFixture(t)

	members, err := svc.TechnicalMembers(context.Background())
	if err != nil {
		t.Fatalf("TechnicalMembers: %v", err)
	}
	if len(members) != 1 || members[0].ID != "tech-1" {
		t.Fatalf("unexpected members: %+v", members)
	}
}

func TestUserByIDStripsPasswordHash(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.UserByID(context.Background(), "fac-1")
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if user.PasswordHash != "" {
		t.Fatal("password hash exposed")
	}

	_, err = svc.UserByID(context.Background(), "ghost")
	assertDomainErrorCode(t, err, "NOT_FOUND")
}
