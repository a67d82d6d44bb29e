package errors_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fegerrs "github.com/lmoran/feedreg/internal/errors"
)

func TestEConstructor(t *testing.T) {
	got := fegerrs.E(
		"something went wrong",
		fegerrs.Detail{Field: "name", Error: "was bad"},
		http.StatusBadRequest,
	)
	want := &fegerrs.Error{
		Err: errors.New("something went wrong"),
		Details: []fegerrs.Detail{
			{Field: "name", Error: "was bad"},
		},
		Status: http.StatusBadRequest,
	}

	assert.Equal(t, want, got)
}

func TestMarshal_FieldDetails(t *testing.T) {
	e := fegerrs.E(
		http.StatusBadRequest,
		"invalid payload",
		fegerrs.Detail{Field: "username", Error: "This field may not be blank."},
		fegerrs.Detail{Field: "password", Error: "This field may not be blank."},
	)

	byts, err := json.Marshal(e)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"username": ["This field may not be blank."],
		"password": ["This field may not be blank."]
	}`, string(byts))
}

func TestMarshal_NonFieldDetail(t *testing.T) {
	e := fegerrs.E(
		http.StatusBadRequest,
		"login failed",
		fegerrs.Detail{Error: "Unable to authenticate with provided credentials."},
	)

	byts, err := json.Marshal(e)
	require.NoError(t, err)

	assert.JSONEq(t, `{"non_field_errors": ["Unable to authenticate with provided credentials."]}`, string(byts))
}

func TestMarshal_NoDetails(t *testing.T) {
	e := fegerrs.E(http.StatusUnauthorized, "Invalid token.")

	byts, err := json.Marshal(e)
	require.NoError(t, err)

	assert.JSONEq(t, `{"detail": "Invalid token."}`, string(byts))
}
