package validate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homestay/homestay/internal/validate"
)

type signup struct {
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Email    string `json:"email" validate:"required,email"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, validate.Struct(signup{Username: "Nguyễn Văn_A", Email: "a@example.com"}))

	err := validate.Struct(signup{Username: "a!", Email: "nope"})
	require.Error(t, err)

	var verrs validate.Errors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, "username", verrs[0].Field)
	assert.Equal(t, "email", verrs[1].Field)
	assert.Equal(t, "must be a valid email address", verrs[1].Message)
}
