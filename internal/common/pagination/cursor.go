package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCursor indicates a cursor string that could not be decoded.
// A corrupted cursor is a client error, distinct from an absent cursor:
// callers must reject the request rather than fall back to the first page.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor is the decoded resume position in an ordered result set.
// The ordering key is always the (created_at, id) composite: created_at gives
// the primary order and id breaks ties, so the pair is collision-free.
type Cursor struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        int64     `json:"id"`
}

// Encode serializes a cursor into an opaque token.
// The token is base64(JSON) with created_at rendered at nanosecond precision,
// so Decode(Encode(c)) always reproduces the exact boundary row.
func (c Cursor) Encode() string {
	payload, _ := json.Marshal(struct {
		CreatedAt string `json:"createdAt"`
		ID        int64  `json:"id"`
	}{
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
		ID:        c.ID,
	})
	return base64.StdEncoding.EncodeToString(payload)
}

// EncodeCursor builds and encodes a cursor from an ordering-key tuple.
func EncodeCursor(createdAt time.Time, id int64) string {
	return Cursor{CreatedAt: createdAt, ID: id}.Encode()
}

// DecodeCursor parses an opaque cursor token back into its ordering key.
// Returns ErrInvalidCursor (wrapped with the decode detail) for anything that
// is not a well-formed token.
func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	var payload struct {
		CreatedAt string `json:"createdAt"`
		ID        *int64 `json:"id"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if payload.CreatedAt == "" || payload.ID == nil {
		return Cursor{}, fmt.Errorf("%w: missing ordering key", ErrInvalidCursor)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, payload.CreatedAt)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	return Cursor{CreatedAt: createdAt, ID: *payload.ID}, nil
}
