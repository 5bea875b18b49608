package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewInput struct {
	UserID string `json:"user_id" validate:"required"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
	Text   string `json:"text" validate:"max=10"`
}

type thresholdInput struct {
	Threshold float64 `validate:"gte=0,lt=1"`
	Kind      string  `validate:"oneof=label probability"`
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(reviewInput{UserID: "u-1", Rating: 4, Text: "ok"}))
}

func TestValidate_FieldErrors(t *testing.T) {
	err := Validate(reviewInput{Rating: 0, Text: strings.Repeat("x", 11)})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["UserID"])
	assert.Equal(t, "must be at least 1", fields["Rating"])
	assert.Equal(t, "must be at most 10 characters", fields["Text"])
	assert.Contains(t, err.Error(), "reviewInput.UserID")
}

func TestValidate_NumericTags(t *testing.T) {
	err := Validate(thresholdInput{Threshold: 1, Kind: "vote"})
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Equal(t, "must be less than 1", fields["Threshold"])
	assert.Equal(t, "must be one of: label probability", fields["Kind"])
}

func TestValidate_UUIDTag(t *testing.T) {
	type ref struct {
		ID string `validate:"required,uuid"`
	}
	assert.NoError(t, Validate(ref{ID: "3f2b6c1e-9d4a-4c1b-8e7f-0a1b2c3d4e5f"}))

	var valErr *ValidationError
	require.True(t, errors.As(Validate(ref{ID: "u1"}), &valErr))
	assert.Equal(t, "must be a valid UUID", valErr.Fields()["ID"])
}

func TestDecodeAndValidate(t *testing.T) {
	var in reviewInput
	require.NoError(t, DecodeAndValidate(strings.NewReader(`{"user_id":"u","rating":5}`), &in))
	assert.Equal(t, 5, in.Rating)

	err := DecodeAndValidate(strings.NewReader(`{"rating":`), &in)
	assert.ErrorContains(t, err, "decode request body")

	err = DecodeAndValidate(strings.NewReader(`{"user_id":"u","rating":6}`), &in)
	var valErr *ValidationError
	assert.True(t, errors.As(err, &valErr))
}
