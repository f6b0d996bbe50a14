package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUnwrapsWrappedErrors(t *testing.T) {
	base := InvalidKey()
	wrapped := fmt.Errorf("set selection: %w", base)

	assert.True(t, Is(wrapped, ErrCodeInvalidKey))
	assert.False(t, Is(wrapped, ErrCodeInvalidItem))
	assert.Equal(t, ErrCodeInvalidKey, GetCode(wrapped))
	assert.Equal(t, ErrorCode(""), GetCode(nil))
	assert.False(t, Is(nil, ""))
}

func TestErrorMessages(t *testing.T) {
	err := SourceInvalid("items.yaml", fmt.Errorf("boom"))
	assert.Equal(t, "SOURCE_INVALID: cannot read items from items.yaml (caused by: boom)", err.Error())
	assert.Equal(t, "items.yaml", err.Details["source"])

	sel := InvalidSelection("dd", 42)
	assert.Equal(t, "dd", sel.Details["dropdown"])
	assert.Equal(t, "42", sel.Details["candidate"])
	assert.Contains(t, sel.ToJSON(), `"code": "INVALID_SELECTION"`)
}
