package console

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxLine bounds a single line of input. Prompts can be long.
const maxLine = 1 << 20

// Console reads trimmed answers from in and writes prompts and reports to out.
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	limit int
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out, limit: maxLine}
}

// Ask writes question without a trailing newline and returns the next line
// with surrounding whitespace removed. A line over the limit is discarded
// with a notice and read as empty. It returns io.EOF once input is exhausted.
func (c *Console) Ask(question string) (string, error) {
	c.Printf("%s", question)
	line, tooLong, err := c.readLine()
	if err != nil {
		return "", err
	}
	if tooLong {
		c.Printf("Input longer than %d bytes, ignored.\n", c.limit)
		return "", nil
	}
	return strings.TrimSpace(line), nil
}

// readLine consumes one line up to and including '\n'. The bool reports a
// line over limit, whose content is dropped.
func (c *Console) readLine() (string, bool, error) {
	var buf []byte
	read, tooLong := false, false
	for {
		chunk, err := c.in.ReadSlice('\n')
		read = read || len(chunk) > 0
		if !tooLong {
			buf = append(buf, chunk...)
			if len(bytes.TrimSuffix(buf, []byte("\n"))) > c.limit {
				buf, tooLong = nil, true
			}
		}
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && read:
			return string(buf), tooLong, nil
		case err != nil:
			return "", false, err
		}
		return string(buf), tooLong, nil
	}
}

func (c *Console) Println(a ...any) {
	_, _ = fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(c.out, format, a...)
}
