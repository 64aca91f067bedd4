package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInvalidOption is returned when menu input is not a number or is out of range.
var ErrInvalidOption = errors.New("invalid option")

// LineSource supplies one line of user input per call. It returns io.EOF
// once input is exhausted.
type LineSource interface {
	ReadLine(prompt string) (string, error)
}

// LineReader is a LineSource over a reader, printing prompts to w.
type LineReader struct {
	r *bufio.Reader
	w io.Writer
}

// NewLineReader creates a LineReader.
func NewLineReader(r io.Reader, w io.Writer) *LineReader {
	return &LineReader{r: bufio.NewReader(r), w: w}
}

// ReadLine prints prompt and returns the next line without its line ending.
func (l *LineReader) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprintln(l.w, prompt)
	}
	line, err := l.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// parseOption accepts a whole number between 1 and max.
func parseOption(text string, max int) (int, error) {
	n, err := parseNumber(text)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > max {
		return 0, fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidOption, n, max)
	}
	return n, nil
}

func parseNumber(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: option must be a number", ErrInvalidOption)
	}
	return n, nil
}
