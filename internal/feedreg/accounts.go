package feedreg

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// A token key is 20 random bytes hex-encoded, so 40 lowercase hex
// characters on the wire.
const tokenKeyBytes = 20

// A real bcrypt hash (of an arbitrary string, at DefaultCost) to
// compare against when the username is unknown, so that path costs a
// bcrypt verification just like a wrong password does.
var unknownUserHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Accounts handles registration and login.
type Accounts struct {
	repo Repository
}

func NewAccounts(repo Repository) *Accounts {
	return &Accounts{repo: repo}
}

// Register creates the user and mints their one bearer token.
//
// A taken username comes back as [ErrConflict].
func (a *Accounts) Register(ctx context.Context, username, password string) (Token, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Token{}, fmt.Errorf("error hashing password: %s", err)
	}

	usr, err := a.repo.CreateUser(ctx, username, string(hash))
	if err != nil {
		return Token{}, err
	}

	key, err := newTokenKey()
	if err != nil {
		return Token{}, err
	}
	tok := Token{Key: key, UserID: usr.ID}
	if err := a.repo.InsertToken(ctx, tok); err != nil {
		return Token{}, fmt.Errorf("error storing token: %s", err)
	}

	return tok, nil
}

// Login verifies the credentials and returns the token minted at
// registration. It never mints a new one.
func (a *Accounts) Login(ctx context.Context, username, password string) (Token, User, error) {
	usr, err := a.repo.UserByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		// Burn a compare anyway so response timing doesn't reveal
		// whether the username exists.
		_ = bcrypt.CompareHashAndPassword(unknownUserHash, []byte(password))
		return Token{}, User{}, ErrBadCredentials
	}
	if err != nil {
		return Token{}, User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return Token{}, User{}, ErrBadCredentials
	}

	tok, err := a.repo.TokenForUser(ctx, usr.ID)
	if errors.Is(err, ErrNotFound) {
		// Registration always mints a token, so a user without one is
		// an internal consistency fault, not a login failure.
		return Token{}, User{}, fmt.Errorf("no token on record for user %s: %s", usr.ID, err)
	}
	if err != nil {
		return Token{}, User{}, err
	}

	return tok, usr, nil
}

func newTokenKey() (string, error) {
	b := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("error generating token: %s", err)
	}

	return hex.EncodeToString(b), nil
}
