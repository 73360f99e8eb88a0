package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMatchesByReason(t *testing.T) {
	wrapped := fmt.Errorf("pop: %w", ErrEmptyStack)
	assert.True(t, Is(wrapped, ErrEmptyStack))
	assert.False(t, Is(wrapped, ErrInvalidState))

	custom := Wrap(ErrNotFound, "stack %s not found", "abc")
	assert.True(t, Is(custom, ErrNotFound))
	assert.Equal(t, "stack abc not found", custom.Message())
	assert.Equal(t, int32(http.StatusNotFound), custom.HttpStatus())
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(UnknownCode, DefaultStatus, UnknownReason, UnknownMessage, nil))

	e := FromError(UnknownCode, DefaultStatus, UnknownReason, UnknownMessage, io.EOF)
	require.NotNil(t, e)
	assert.Equal(t, UnknownCode, e.Code())
	assert.True(t, Is(e, io.EOF))
	assert.True(t, Is(e, ErrUnknown))

	// already classified errors pass through
	e = FromError(UnknownCode, DefaultStatus, UnknownReason, UnknownMessage, fmt.Errorf("x: %w", ErrOutOfRange))
	assert.Equal(t, OutOfRangeCode, e.Code())
}

func TestReasonOf(t *testing.T) {
	assert.Equal(t, FailedMoveAssignReason, ReasonOf(ErrFailedMoveAssign))
	assert.Equal(t, UnknownReason, ReasonOf(io.EOF))
}

func TestJSON(t *testing.T) {
	data, err := json.Marshal(ErrInvalidState)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":1001,"reason":"INVALID_STATE","message":"invalid stack"}`, string(data))
}
