package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Standard values
	c := Cursor{
		CreatedAt: time.Date(2023, 5, 15, 14, 30, 45, 123456000, time.UTC),
		ID:        "6f1c2e0a-1111-4e4e-9a9a-0123456789ab",
	}

	token := EncodeToken(c)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeToken(token)
	require.NoError(t, err, "Decoding should not return an error")
	assert.True(t, c.CreatedAt.Equal(decoded.CreatedAt), "Created at time should match after decode")
	assert.Equal(t, c.ID, decoded.ID)

	// Non-UTC input comes back as the same instant in UTC
	loc := time.FixedZone("UTC-5", -5*60*60)
	local := Cursor{CreatedAt: time.Date(2024, 1, 1, 8, 0, 0, 0, loc), ID: "x"}
	decoded, err = DecodeToken(EncodeToken(local))
	require.NoError(t, err)
	assert.True(t, local.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, time.UTC, decoded.CreatedAt.Location())
}

func TestDecodeTokenError(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantMsg string
	}{
		{"invalid base64", "this is not base64!", "base64 decode"},
		{"missing separator", base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z")), "split"},
		{"empty id", base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z|")), "split"},
		{"invalid date", base64.URLEncoding.EncodeToString([]byte("notadate|abc")), "created_at parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeToken(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNextToken(t *testing.T) {
	last := Cursor{CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), ID: "t-9"}

	assert.Nil(t, NextToken(3, 10, last), "short page is the last page")
	assert.Nil(t, NextToken(10, 10, last), "exactly full page with no extra row is the last page")
	assert.Nil(t, NextToken(0, 0, last))

	next := NextToken(11, 10, last)
	require.NotNil(t, next)
	decoded, err := DecodeToken(*next)
	require.NoError(t, err)
	assert.Equal(t, "t-9", decoded.ID)
}
