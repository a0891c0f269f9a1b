package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/sceneflow/pkg/adapters/memory"
	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/aretw0/sceneflow/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineInputs_PollsEverySource(t *testing.T) {
	a := memory.NewInput()
	b := memory.NewInput()
	combined := CombineInputs(a, nil, b)

	a.Press(domain.ButtonSkip)
	b.Press(domain.ButtonSkip)

	assert.True(t, combined.IsSkipPressed())
	assert.False(t, combined.IsSkipPressed(), "both latches were consumed by the first poll")

	b.Hold(domain.ButtonReset, true)
	assert.True(t, combined.IsResetPressed())
	assert.True(t, combined.IsResetPressed())
}

func TestCombineInputs_Empty(t *testing.T) {
	combined := CombineInputs()
	assert.False(t, combined.IsSkipPressed())
	assert.False(t, combined.IsResetPressed())

	var _ ports.InputSource = combined
}

func TestLineInput_Commands(t *testing.T) {
	var feedback bytes.Buffer
	in := NewLineInput(strings.NewReader("skip\n\n  RESET \r\nwat\nr"), &feedback)

	require.NoError(t, in.Listen(context.Background()))

	assert.True(t, in.IsSkipPressed())
	assert.True(t, in.IsResetPressed())
	assert.False(t, in.IsSkipPressed())
	assert.Contains(t, feedback.String(), `unknown command "wat"`)
}

func TestLineInput_StopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A reader that never ends must not keep Listen alive.
	r, w := io.Pipe()
	defer w.Close()
	in := NewLineInput(r, nil)
	assert.ErrorIs(t, in.Listen(ctx), context.Canceled)
}

func TestSanitizeCommand(t *testing.T) {
	t.Run("normalizes", func(t *testing.T) {
		got, err := SanitizeCommand("  Skip\x1b[0m\r\n")
		require.NoError(t, err)
		assert.Equal(t, "skip[0m", got)
	})

	t.Run("rejects invalid utf8", func(t *testing.T) {
		_, err := SanitizeCommand("sk\xffip")
		assert.ErrorIs(t, err, ErrInvalidUTF8)
	})

	t.Run("rejects oversized input", func(t *testing.T) {
		_, err := SanitizeCommand(strings.Repeat("a", DefaultMaxCommandSize+1))
		assert.ErrorIs(t, err, ErrCommandTooLarge)
	})

	t.Run("limit from environment", func(t *testing.T) {
		t.Setenv(EnvMaxCommandSize, "4")
		_, err := SanitizeCommand("reset")
		assert.ErrorIs(t, err, ErrCommandTooLarge)
	})
}
