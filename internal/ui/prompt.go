package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks questions on a writer and reads single-line answers
type Prompter struct {
	src io.Reader
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading from in and writing to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		src: in,
		in:  bufio.NewReader(in),
		out: out,
	}
}

type lineResult struct {
	line string
	err  error
}

// Ask prints the question and returns the trimmed answer. End of input with
// no answer returns "" and io.EOF. A cancelled context returns ctx.Err()
// without waiting for the answer.
func (p *Prompter) Ask(ctx context.Context, question string) (string, error) {
	fmt.Fprint(p.out, question)

	ch := make(chan lineResult, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		line := strings.TrimSpace(res.line)
		if res.err != nil {
			if errors.Is(res.err, io.EOF) {
				if line != "" {
					return line, nil
				}
				return "", io.EOF
			}
			return "", fmt.Errorf("failed to read input: %w", res.err)
		}
		return line, nil
	}
}

// Input returns a reader that continues after the last answer. Input already
// buffered by Ask is read first. With nothing buffered the original reader is
// returned unwrapped, so a terminal stays detectable as one.
func (p *Prompter) Input() io.Reader {
	if p.in.Buffered() == 0 {
		return p.src
	}
	return p.in
}

// Println writes a line to the prompter's output
func (p *Prompter) Println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}
