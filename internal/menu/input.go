package menu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	promptDefault   = "> "
	invalidInputMsg = "Invalid input."
)

// cancelTokens are inputs that abort the current prompt.
var cancelTokens = map[string]bool{"": true, "q": true}

// Reader reads validated line input from the menu's input stream.
// Cancellation is reported as a result value, never as an error.
type Reader struct {
	sc  *bufio.Scanner
	out io.Writer
	eof bool
}

// NewReader creates a reader over in, echoing prompts to out.
func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{
		sc:  bufio.NewScanner(in),
		out: out,
	}
}

// EOF reports whether the input stream has ended.
func (r *Reader) EOF() bool {
	return r.eof
}

// line reads one trimmed line. ok is false when input has ended.
func (r *Reader) line() (string, bool) {
	if r.eof {
		return "", false
	}
	if !r.sc.Scan() {
		r.eof = true
		return "", false
	}
	return strings.TrimSpace(r.sc.Text()), true
}

// ReadInt prompts until the input parses as an integer satisfying valid.
// ok is false when the user cancels (empty line or "q") or input ends;
// no state has changed in that case.
func (r *Reader) ReadInt(valid func(int) bool) (int, bool) {
	for {
		fmt.Fprint(r.out, promptDefault)

		input, ok := r.line()
		if !ok || cancelTokens[input] {
			return 0, false
		}

		n, err := strconv.Atoi(input)
		if err != nil || !valid(n) {
			fmt.Fprintln(r.out)
			fmt.Fprintln(r.out, invalidInputMsg)
			fmt.Fprintln(r.out, separatorLine)
			continue
		}
		return n, true
	}
}

// ReadYes reads one line and reports whether it confirms with y. Any other
// answer, including an empty line or end of input, counts as no.
func (r *Reader) ReadYes() bool {
	fmt.Fprint(r.out, promptDefault)

	input, ok := r.line()
	if !ok {
		return false
	}
	return strings.EqualFold(input, "y")
}

// Pause prompts and waits for a single line, typically a bare Enter.
func (r *Reader) Pause(prompt string) {
	fmt.Fprint(r.out, prompt)
	r.line()
}
