package interactive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter asks blocking yes/no questions on a terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading answers from in and writing
// questions to out. A nil reader falls back to standard input.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm prints the question and waits for one line of input. Only y
// or Y confirms; anything else, including an empty line or closed
// input, declines. The error reports read failures, never a negative
// answer.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	answer := strings.TrimSpace(line)
	return answer == "y" || answer == "Y", nil
}
