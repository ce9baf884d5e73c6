package common_test

import (
	"testing"

	"taskhub/internal/common"

	"github.com/stretchr/testify/require"
)

type registerPayload struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestValidateStruct_OK(t *testing.T) {
	details, err := common.ValidateStruct(registerPayload{Name: "Alice", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.Empty(t, details)
}

func TestValidateStruct_FieldDetails(t *testing.T) {
	details, err := common.ValidateStruct(registerPayload{Name: "A", Email: "not-an-email", Password: "short"})
	require.ErrorIs(t, err, common.ErrValidation)
	require.Len(t, details, 3)

	byField := map[string]string{}
	for _, d := range details {
		byField[d.Field] = d.Message
	}
	require.Equal(t, "name must be at least 2 characters", byField["name"])
	require.Equal(t, "please provide a valid email", byField["email"])
	require.Equal(t, "password must be at least 6 characters", byField["password"])
}
