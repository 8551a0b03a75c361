package tui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Prompter asks yes/no questions on stderr. Empty input means yes.
type Prompter struct {
	in          io.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter returns a prompter over the process terminal. It reads single
// key presses when both streams are terminals and whole lines otherwise.
func NewPrompter() *Prompter {
	return &Prompter{
		in:          os.Stdin,
		out:         os.Stderr,
		interactive: isTerminal(os.Stdin) && isTerminal(os.Stderr),
	}
}

// NewLinePrompter returns a line-based prompter over arbitrary streams.
func NewLinePrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Confirm implements core.Prompter.
func (p *Prompter) Confirm(question string) (bool, error) {
	if p.interactive {
		return p.confirmInteractive(question)
	}
	return p.confirmLine(question)
}

func (p *Prompter) confirmLine(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [Y/n] ", question)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	return parseAnswer(line), nil
}

func (p *Prompter) confirmInteractive(question string) (bool, error) {
	prog := tea.NewProgram(newConfirmModel(question), tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := prog.Run()
	if err != nil {
		return false, fmt.Errorf("running prompt: %w", err)
	}
	m, ok := final.(confirmModel)
	return ok && m.confirmed, nil
}

// parseAnswer accepts "", "y" and "yes" in any case.
func parseAnswer(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return true
	}
	return false
}

// confirmModel is a single-question prompt answered with one key press.
type confirmModel struct {
	question  string
	answered  bool
	confirmed bool
}

func newConfirmModel(question string) confirmModel {
	return confirmModel{question: question}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, confirmYesKey), key.Matches(keyMsg, confirmEnterKey):
		m.answered, m.confirmed = true, true
		return m, tea.Quit
	case key.Matches(keyMsg, confirmNoKey), key.Matches(keyMsg, confirmQuitKey):
		m.answered, m.confirmed = true, false
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	prompt := promptStyle.Render(m.question) + " " + promptHintStyle.Render("[Y/n]") + " "
	if !m.answered {
		return prompt
	}
	if m.confirmed {
		return prompt + "yes\n"
	}
	return prompt + "no\n"
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
