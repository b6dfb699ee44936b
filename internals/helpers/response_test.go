package helper

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorMapGroupsByField(t *testing.T) {
	type form struct {
		Name   string `validate:"required"`
		Gender string `validate:"required,oneof=L P"`
	}

	err := validator.New(validator.WithRequiredStructEnabled()).Struct(form{Gender: "X"})
	require.Error(t, err)

	m := ValidationErrorMap(err)
	require.Contains(t, m, "name")
	require.Contains(t, m, "gender")
	assert.Contains(t, m["name"][0], "required")
	assert.Contains(t, m["gender"][0], "oneof")
}

func TestValidationErrorMapFallsBackForPlainError(t *testing.T) {
	m := ValidationErrorMap(errors.New("body rusak"))
	require.Contains(t, m, "body")
	assert.Equal(t, []string{"body rusak"}, m["body"])
}
