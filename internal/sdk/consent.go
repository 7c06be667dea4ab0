package sdk

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoAnswer is returned when the input ends before a yes/no answer.
var ErrNoAnswer = errors.New("no answer to consent prompt")

// ConsentProvider asks the operator a yes/no question.
type ConsentProvider interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConsentFunc adapts a function to ConsentProvider.
type ConsentFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f.
func (f ConsentFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// ParseAnswer interprets a reply. Only the first character of the trimmed,
// lower-cased reply counts; ok is false unless it is 'y' or 'n'.
func ParseAnswer(reply string) (yes bool, ok bool) {
	reply = strings.ToLower(strings.TrimSpace(reply))
	if reply == "" {
		return false, false
	}
	switch reply[0] {
	case 'y':
		return true, true
	case 'n':
		return false, true
	}
	return false, false
}

// LinePrompter reads answers line by line, asking again until one parses.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a prompter reading from in and writing to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Confirm implements ConsentProvider.
func (p *LinePrompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		fmt.Fprintf(p.out, "%s [Y/N]: ", prompt)
		line, err := p.in.ReadString('\n')
		if yes, ok := ParseAnswer(line); ok {
			return yes, nil
		}
		if err != nil {
			fmt.Fprintln(p.out)
			if errors.Is(err, io.EOF) {
				return false, ErrNoAnswer
			}
			return false, fmt.Errorf("failed to read answer: %w", err)
		}
	}
}
