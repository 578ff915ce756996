package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// Cursor is the keyset position of the last row of a page.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// EncodeToken creates a base64 encoded token from a row's creation time and id.
// This is used for consistent pagination across storage backends.
func EncodeToken(c Cursor) string {
	tokenStr := fmt.Sprintf("%s|%s", c.CreatedAt.UTC().Format(timeFormat), c.ID)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into a Cursor.
// Malformed tokens are validation errors.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token format (base64 decode): %v", apperrors.ErrValidation, err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token format (split)", apperrors.ErrValidation)
	}

	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: invalid pagination token format (created_at parse): %v", apperrors.ErrValidation, err)
	}

	return Cursor{CreatedAt: createdAt.UTC(), ID: parts[1]}, nil
}

// NextToken returns the token for the following page. Queries fetch limit+1
// rows; fetched <= limit means the current page is the last one and the
// result is nil. last is the final row kept on the current page.
func NextToken(fetched, limit int, last Cursor) *string {
	if limit <= 0 || fetched <= limit {
		return nil
	}
	token := EncodeToken(last)
	return &token
}
