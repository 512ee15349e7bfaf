// internal/api/errors_test.go
package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchError_Error(t *testing.T) {
	err := NewNetworkError("mempool", errors.New("connection refused"))
	assert.Equal(t, "mempool: network: connection refused", err.Error())
}

func TestFetchError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := NewDecodeError("coingecko", cause)

	assert.ErrorIs(t, err, cause)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrorNetwork, KindOf(NewNetworkError("mempool", nil)))
	assert.Equal(t, ErrorDecode, KindOf(NewDecodeError("mempool", nil)))
	assert.Equal(t, ErrorNotFound, KindOf(NewNotFoundError("coingecko", nil)))
}

func TestKindOf_WrappedError(t *testing.T) {
	err := fmt.Errorf("fetch failed: %w", NewNotFoundError("coingecko", nil))
	assert.Equal(t, ErrorNotFound, KindOf(err))
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}
