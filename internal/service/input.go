package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rocketscienceinc/inarow/internal/apperror"
)

// InputLines hands out lines of one reader to any number of human players.
// Reading happens on a background goroutine so a waiting turn can be cancelled.
type InputLines struct {
	scanner *bufio.Scanner
	lines   chan string
	start   sync.Once

	// set before lines is closed
	err error
}

func NewInputLines(in io.Reader) *InputLines {
	return &InputLines{
		scanner: bufio.NewScanner(in),
		lines:   make(chan string),
	}
}

// Next blocks until a line is typed, the input ends or ctx is done.
func (that *InputLines) Next(ctx context.Context) (string, error) {
	that.start.Do(func() {
		go that.pump()
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("turn aborted: %w", ctx.Err())
	case line, ok := <-that.lines:
		if !ok {
			return "", that.err
		}
		return line, nil
	}
}

func (that *InputLines) pump() {
	for that.scanner.Scan() {
		that.lines <- that.scanner.Text()
	}

	that.err = apperror.ErrInputClosed
	if err := that.scanner.Err(); err != nil {
		that.err = fmt.Errorf("%w: %w", apperror.ErrInputClosed, err)
	}

	close(that.lines)
}
