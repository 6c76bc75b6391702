package ttree

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

// REPL color codes
const (
	replColorYellow    = "\x1b[93m"
	replColorDarkBrown = "\x1b[33m" // Dark yellow/brown for light backgrounds
	replColorRed       = "\x1b[91m"
	replColorReset     = "\x1b[0m"
)

const historyLimit = 500

// REPLConfig configures the interactive session.
type REPLConfig struct {
	Prompt          string
	LightBackground bool // True if the terminal background is bright
	HistoryFile     string
	ShowBanner      bool
}

// DefaultREPLConfig returns the standard interactive settings, with
// history kept under the user's config directory.
func DefaultREPLConfig() REPLConfig {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".ttree", "history")
	}
	return REPLConfig{
		Prompt:      "tt> ",
		HistoryFile: historyFile,
		ShowBanner:  true,
	}
}

// REPL reads one token per line from a terminal and feeds it to an
// evaluation session. Everything it prints goes through the host side;
// the engine itself never touches the console.
type REPL struct {
	ev      *Evaluator
	config  REPLConfig
	history []string
	in      *bufio.Reader
}

// NewREPL creates an interactive session around an existing evaluator.
func NewREPL(ev *Evaluator, config REPLConfig) *REPL {
	r := &REPL{ev: ev, config: config, in: bufio.NewReader(os.Stdin)}
	r.history = loadHistory(config.HistoryFile)
	return r
}

func (r *REPL) promptColor() string {
	if r.config.LightBackground {
		return replColorDarkBrown
	}
	return replColorYellow
}

// Run processes input until EOF or an `exit`-style host command
// terminates the process. When stdin is not a terminal it degrades to a
// plain line-reading loop with no prompt or history.
func (r *REPL) Run() error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return r.runPlain(os.Stdin)
	}

	if r.config.ShowBanner {
		fmt.Fprintln(os.Stdout, "ttree interactive session (one token per line; Ctrl+D to leave)")
	}

	for {
		line, err := r.readLine()
		if err == io.EOF {
			fmt.Fprintln(os.Stdout)
			break
		}
		if err != nil {
			return err
		}
		token := strings.TrimRight(line, "\r\n")
		if token == "" {
			continue
		}
		r.remember(token)
		if fault := r.ev.EvalToken(token); fault != nil {
			fmt.Fprintf(os.Stderr, "%s%s%s\n", replColorRed, fault.Error(), replColorReset)
		}
	}

	saveHistory(r.config.HistoryFile, r.history)
	return nil
}

// runPlain evaluates tokens line by line from a non-terminal source.
func (r *REPL) runPlain(src io.Reader) error {
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		if fault := r.ev.EvalToken(scanner.Text()); fault != nil {
			fmt.Fprintln(os.Stderr, fault.Error())
		}
	}
	return scanner.Err()
}

// readLine reads one line in raw mode with minimal editing: printable
// input, backspace, Ctrl+U, up/down history, Ctrl+C to clear, Ctrl+D at
// an empty line for EOF.
func (r *REPL) readLine() (string, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		// Terminal refused raw mode; fall back to buffered reading.
		fmt.Fprint(os.Stdout, r.config.Prompt)
		return r.in.ReadString('\n')
	}
	defer term.Restore(fd, oldState)

	var line []rune
	histPos := len(r.history)
	saved := ""

	redraw := func() {
		fmt.Fprintf(os.Stdout, "\r\x1b[K%s%s%s%s",
			r.promptColor(), r.config.Prompt, replColorReset, string(line))
	}
	redraw()

	buf := make([]byte, 1)
	reader := r.in
	for {
		if _, err := reader.Read(buf); err != nil {
			return "", err
		}
		switch c := buf[0]; {
		case c == '\r' || c == '\n':
			fmt.Fprint(os.Stdout, "\r\n")
			return string(line), nil
		case c == 0x04: // Ctrl+D
			if len(line) == 0 {
				return "", io.EOF
			}
		case c == 0x03: // Ctrl+C
			line = line[:0]
			histPos = len(r.history)
			redraw()
		case c == 0x15: // Ctrl+U
			line = line[:0]
			redraw()
		case c == 0x7f || c == 0x08: // Backspace
			if len(line) > 0 {
				line = line[:len(line)-1]
				redraw()
			}
		case c == 0x1b: // Escape sequence
			seq := make([]byte, 2)
			if _, err := io.ReadFull(reader, seq); err != nil {
				continue
			}
			if seq[0] != '[' {
				continue
			}
			switch seq[1] {
			case 'A': // Up
				if histPos > 0 {
					if histPos == len(r.history) {
						saved = string(line)
					}
					histPos--
					line = []rune(r.history[histPos])
					redraw()
				}
			case 'B': // Down
				if histPos < len(r.history) {
					histPos++
					if histPos == len(r.history) {
						line = []rune(saved)
					} else {
						line = []rune(r.history[histPos])
					}
					redraw()
				}
			}
		case c >= 0x20:
			// Collect the rest of a UTF-8 sequence if this starts one.
			rest := utf8Remainder(c)
			chunk := append([]byte{c}, make([]byte, rest)...)
			if rest > 0 {
				if _, err := io.ReadFull(reader, chunk[1:]); err != nil {
					continue
				}
			}
			line = append(line, []rune(string(chunk))...)
			redraw()
		}
	}
}

// utf8Remainder returns how many continuation bytes follow a UTF-8 lead
// byte.
func utf8Remainder(lead byte) int {
	switch {
	case lead&0xE0 == 0xC0:
		return 1
	case lead&0xF0 == 0xE0:
		return 2
	case lead&0xF8 == 0xF0:
		return 3
	default:
		return 0
	}
}

func (r *REPL) remember(token string) {
	if len(r.history) > 0 && r.history[len(r.history)-1] == token {
		return
	}
	r.history = append(r.history, token)
	if len(r.history) > historyLimit {
		r.history = r.history[len(r.history)-historyLimit:]
	}
}

// loadHistory reads prior session history, one token per line.
func loadHistory(path string) []string {
	if path == "" {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var history []string
	for _, line := range strings.Split(string(content), "\n") {
		if line != "" {
			history = append(history, line)
		}
	}
	return history
}

// saveHistory persists session history. Failures are silent; history is
// a convenience, not state.
func saveHistory(path string, history []string) {
	if path == "" || len(history) == 0 {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}
	_ = os.WriteFile(path, []byte(strings.Join(history, "\n")+"\n"), 0644)
}
