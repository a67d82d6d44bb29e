package api

import (
	"errors"
	"fmt"
	"net/http"

	fegerrs "github.com/lmoran/feedreg/internal/errors"
	"github.com/lmoran/feedreg/internal/feedreg"
	"github.com/lmoran/feedreg/internal/serverutil"
)

const blankFieldMsg = "This field may not be blank."

// bcrypt only reads the first 72 bytes of a password, and errors on
// anything longer rather than truncating.
const maxPasswordLength = 72

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Each field is judged on its own, so a request can come back with
// both fields flagged.
func (c credentialsRequest) Validate() error {
	var details []fegerrs.Detail
	if c.Username == "" {
		details = append(details, fegerrs.Detail{Field: "username", Error: blankFieldMsg})
	}
	if c.Password == "" {
		details = append(details, fegerrs.Detail{Field: "password", Error: blankFieldMsg})
	} else if len(c.Password) > maxPasswordLength {
		details = append(details, fegerrs.Detail{
			Field: "password",
			Error: fmt.Sprintf("Ensure this field has no more than %d characters.", maxPasswordLength),
		})
	}
	if len(details) > 0 {
		return fegerrs.E(http.StatusBadRequest, "invalid credentials payload", details)
	}

	return nil
}

type registerResponse struct {
	AccessToken string `json:"access_token"`
}

func (s Server) postRegister(w http.ResponseWriter, r *http.Request) error {
	body, err := serverutil.DecodeValid[credentialsRequest](r.Body)
	if err != nil {
		return err
	}

	tok, err := s.accounts.Register(r.Context(), body.Username, body.Password)
	if errors.Is(err, feedreg.ErrConflict) {
		return fegerrs.E(http.StatusBadRequest, err, fegerrs.Detail{
			Field: "username",
			Error: "A user with that username already exists.",
		})
	}
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusCreated, registerResponse{AccessToken: tok.Key})
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
}

func (s Server) postLogin(w http.ResponseWriter, r *http.Request) error {
	body, err := serverutil.DecodeValid[credentialsRequest](r.Body)
	if err != nil {
		return err
	}

	tok, usr, err := s.accounts.Login(r.Context(), body.Username, body.Password)
	if errors.Is(err, feedreg.ErrBadCredentials) {
		// The same answer whether the username or the password was
		// wrong.
		return fegerrs.E(http.StatusBadRequest, err, fegerrs.Detail{
			Error: "Unable to authenticate with provided credentials.",
		})
	}
	if err != nil {
		return err
	}

	return serverutil.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: tok.Key,
		UserID:      usr.ID,
	})
}
