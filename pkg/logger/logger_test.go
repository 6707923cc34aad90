package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "boom", attr.Value.String())

	assert.Equal(t, "", Err(nil).Value.String())
}

func TestNew_EnvLevels(t *testing.T) {
	for _, env := range []string{envLocal, envDev, envProd, "staging"} {
		l := New(env)
		assert.NotNil(t, l.logger, env)
	}
}

func TestNewDiscard_With(t *testing.T) {
	l := NewDiscard().With("component", "test")
	assert.NotPanics(t, func() {
		l.Info("hello", "k", 1)
		l.ErrorErr("failed", errors.New("x"))
	})
}
