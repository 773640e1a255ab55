package elevconsole

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/eiannone/keyboard"
)

// Terminal is the Console on a real terminal. Menu options are read as a
// single key press; when the input is not a terminal it falls back to lines.
type Terminal struct {
	reader      *bufio.Reader
	out         io.Writer
	useKeyboard bool
}

func NewTerminal(in io.Reader, out io.Writer, useKeyboard bool) *Terminal {
	return &Terminal{
		reader:      bufio.NewReader(in),
		out:         out,
		useKeyboard: useKeyboard,
	}
}

func (t *Terminal) Write(message string) {
	fmt.Fprint(t.out, message)
}

func (t *Terminal) WriteLine(message string) {
	fmt.Fprintln(t.out, message)
}

func (t *Terminal) ReadLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (t *Terminal) ReadOption() (string, error) {
	if !t.useKeyboard {
		return t.ReadLine()
	}

	char, key, err := keyboard.GetSingleKey()
	if err != nil {
		Log.Debug().Msgf("Single key input unavailable, reading lines: %v", err)
		t.useKeyboard = false
		return t.ReadLine()
	}

	switch key {
	case keyboard.KeyCtrlC, keyboard.KeyCtrlD, keyboard.KeyEsc:
		t.WriteLine("")
		return "q", nil
	case keyboard.KeyEnter:
		t.WriteLine("")
		return "", nil
	}

	t.WriteLine(string(char))
	return string(char), nil
}
