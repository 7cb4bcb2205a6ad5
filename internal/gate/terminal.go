package gate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Terminal asks on a single line. When the input is a terminal it reads one
// keypress in raw mode; otherwise it reads a line.
type Terminal struct {
	in  io.Reader
	out io.Writer

	mu     sync.Mutex
	reader *bufio.Reader
}

// NewTerminal creates a line prompt over in and out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out, reader: bufio.NewReader(in)}
}

// Confirm prints the question and waits for an answer. End of input counts as no.
func (t *Terminal) Confirm(title string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "Do you want to proceed to '%s'? [y/N]: ", title)

	if f, ok := t.in.(*os.File); ok && isTerminal(f) {
		return t.readKey(int(f.Fd()))
	}

	line, err := t.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		fmt.Fprintln(t.out)
	}
	return parseAnswer(line), nil
}

func (t *Terminal) readKey(fd int) (bool, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return false, fmt.Errorf("failed to switch terminal to raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, state) }()

	buf := make([]byte, 1)
	if _, err := t.in.Read(buf); err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	answer := parseAnswer(string(buf))
	if answer {
		fmt.Fprint(t.out, "y\r\n")
	} else {
		fmt.Fprint(t.out, "n\r\n")
	}
	return answer, nil
}
