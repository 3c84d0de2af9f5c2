package lito_test

import (
	"testing"

	"github.com/midbel/lito"
	"github.com/midbel/lito/environ"
	"github.com/midbel/lito/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInterpreterRun(t *testing.T) {
	ip := lito.New(lito.WithLogger(zap.NewNop()))

	res, err := ip.RunString("let x = 2; let y = 3; x * y")
	require.NoError(t, err)
	assert.Equal(t, int64(6), res.Raw())
}

func TestInterpreterGlobalsPersist(t *testing.T) {
	ip := lito.New(lito.WithLogger(zap.NewNop()))

	_, err := ip.RunString("let x = 1")
	require.NoError(t, err)

	res, err := ip.RunString("let x = 2 in x")
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Raw())

	res, err = ip.RunString("x")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Raw(), "nested let must not touch the globals")

	defs := ip.Definitions()
	require.Len(t, defs, 1)
	assert.Equal(t, int64(1), defs["x"].Raw())
}

func TestInterpreterWithEnv(t *testing.T) {
	ev := environ.Empty[eval.Object]()
	ev.Define("pi", eval.CreateReal(3.14))

	ip := lito.New(lito.WithEnv(ev), lito.WithLogger(zap.NewNop()))
	res, err := ip.RunString("pi * 2.0")
	require.NoError(t, err)
	assert.Equal(t, 6.28, res.Raw())
}

func TestInterpreterLogsBeforePropagating(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	ip := lito.New(lito.WithLogger(zap.New(core)))

	_, err := ip.RunString("1 / 0")
	require.Error(t, err)
	assert.ErrorIs(t, err, eval.ErrZero)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "evaluation failed", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "/", fields["op"])
	assert.Equal(t, int64(1), fields["line"])
}

func TestInterpreterParseErrorNotLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	ip := lito.New(lito.WithLogger(zap.New(core)))

	_, err := ip.RunString("let 5 = 3")
	require.Error(t, err)
	assert.Equal(t, 0, logs.Len(), "only evaluation failures go to the sink")
}
