package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/sceneflow/pkg/adapters/memory"
	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/aretw0/sceneflow/pkg/ports"
)

type combinedInput []ports.InputSource

// CombineInputs merges several button sources: a button reads pressed when any
// source reports it. Every source is polled on every call so latching sources
// are consumed even when an earlier one already reported the press.
func CombineInputs(sources ...ports.InputSource) ports.InputSource {
	var c combinedInput
	for _, s := range sources {
		if s != nil {
			c = append(c, s)
		}
	}
	return c
}

func (c combinedInput) IsSkipPressed() bool {
	pressed := false
	for _, s := range c {
		if s.IsSkipPressed() {
			pressed = true
		}
	}
	return pressed
}

func (c combinedInput) IsResetPressed() bool {
	pressed := false
	for _, s := range c {
		if s.IsResetPressed() {
			pressed = true
		}
	}
	return pressed
}

// LineInput reads operator commands ("skip", "reset") one per line and latches
// them as button presses. It is the input of headless hosts reading stdin.
type LineInput struct {
	*memory.Input

	reader *bufio.Reader
	writer io.Writer
}

// NewLineInput creates a LineInput. Feedback for unknown commands goes to w, which may be nil.
func NewLineInput(r io.Reader, w io.Writer) *LineInput {
	if w == nil {
		w = io.Discard
	}
	return &LineInput{
		Input:  memory.NewInput(),
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Listen pumps lines until EOF or ctx is done. It is meant to run in its own goroutine.
func (l *LineInput) Listen(ctx context.Context) error {
	lines := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(lines)
		for {
			text, err := l.reader.ReadString('\n')
			if text != "" {
				select {
				case lines <- text:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				errs <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case text, ok := <-lines:
			if !ok {
				select {
				case err := <-errs:
					if err == io.EOF {
						return nil
					}
					return err
				default:
					return ctx.Err()
				}
			}
			l.handle(text)
		}
	}
}

func (l *LineInput) handle(text string) {
	cmd, err := SanitizeCommand(text)
	if err != nil {
		fmt.Fprintf(l.writer, "Error: %v\n", err)
		return
	}
	if cmd == "" {
		return
	}
	if b, ok := domain.ParseButton(cmd); ok {
		l.Press(b)
		return
	}
	// Single-letter shortcuts of the kiosk keyboard.
	switch cmd {
	case "s", "n":
		l.Press(domain.ButtonSkip)
	case "r":
		l.Press(domain.ButtonReset)
	default:
		fmt.Fprintf(l.writer, "unknown command %q (expected %s)\n", cmd, strings.Join([]string{string(domain.ButtonSkip), string(domain.ButtonReset)}, " or "))
	}
}
