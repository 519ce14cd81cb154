package input

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// byteReader reads single bytes from the raw terminal.
type byteReader struct {
	r io.Reader
}

func (br byteReader) readByte() (byte, error) {
	buf := make([]byte, 1)
	_, err := br.r.Read(buf)
	return buf[0], err
}

// tryReadArrowKey attempts to read an arrow key escape sequence.
// Returns the arrow code if successful, "escape" for a lone ESC.
func (br byteReader) tryReadArrowKey() string {
	// Read second byte
	b2, err := br.readByte()
	if err != nil {
		return "escape"
	}

	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if b2 != '[' && b2 != 'O' {
		return "escape"
	}

	b3, err := br.readByte()
	if err != nil {
		return ""
	}
	switch b3 {
	case 'A':
		return "arrow_up"
	case 'B':
		return "arrow_down"
	case 'C':
		return "arrow_right"
	case 'D':
		return "arrow_left"
	}
	// Unknown escape sequence - discard it
	return ""
}

// decodeKey turns the bytes of one key press into a binding code.
func (br byteReader) decodeKey() (string, error) {
	b1, err := br.readByte()
	if err != nil {
		return "", err
	}
	switch {
	case b1 == 0x1b:
		return br.tryReadArrowKey(), nil
	case b1 == 3: // Ctrl+C
		return "q", nil
	case b1 >= 'A' && b1 <= 'Z':
		return string(b1 + ('a' - 'A')), nil
	case b1 >= 32 && b1 < 127:
		return string(b1), nil
	}
	return "", nil
}

// ReadKey puts the terminal into raw mode, reads one key press and returns
// it as a terminal RawInput. Arrow keys return immediately without Enter.
func ReadKey() (RawInput, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return RawInput{}, fmt.Errorf("setting terminal to raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	code, err := byteReader{r: os.Stdin}.decodeKey()
	if err != nil {
		return RawInput{}, fmt.Errorf("reading stdin: %w", err)
	}
	return RawInput{Device: DeviceTerminal, Code: code, Timestamp: time.Now()}, nil
}

// KeyNameCode maps a window-system key name such as "ArrowLeft", "Digit2"
// or "T" to a binding code. Unmapped keys return "".
func KeyNameCode(name string, shift bool) string {
	switch name {
	case "ArrowLeft":
		return "arrow_left"
	case "ArrowRight":
		return "arrow_right"
	case "ArrowUp":
		return "arrow_up"
	case "ArrowDown":
		return "arrow_down"
	case "Escape":
		return "escape"
	case "Equal":
		if shift {
			return "+"
		}
		return "="
	case "NumpadAdd":
		return "+"
	case "Minus", "NumpadSubtract":
		return "-"
	case "Slash":
		if shift {
			return "?"
		}
		return "/"
	}
	for _, prefix := range []string{"Digit", "Numpad"} {
		if d, ok := strings.CutPrefix(name, prefix); ok && len(d) == 1 && d[0] >= '0' && d[0] <= '9' {
			return d
		}
	}
	if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		return strings.ToLower(name)
	}
	return ""
}
