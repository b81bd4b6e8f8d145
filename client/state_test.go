package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseTransitions(t *testing.T) {
	var p phase

	p.begin()
	assert.True(t, p.Loading)
	assert.Empty(t, p.Error)

	p.fulfill()
	assert.False(t, p.Loading)
	assert.Empty(t, p.Error)

	p.begin()
	p.reject(errors.New("boom"))
	assert.False(t, p.Loading)
	assert.Equal(t, "boom", p.Error)

	// a new dispatch clears the previous rejection
	p.begin()
	assert.True(t, p.Loading)
	assert.Empty(t, p.Error)
}

func TestErrorTextFallback(t *testing.T) {
	assert.Equal(t, "request failed", errorText(nil))
	assert.Equal(t, "request failed", errorText(errors.New("")))
	assert.Equal(t, "no such host", errorText(errors.New("no such host")))
}
