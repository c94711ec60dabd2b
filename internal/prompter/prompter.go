package prompter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

type Prompter interface {
	Confirm(question string) (bool, error)
	Prompt(question, fallback string) (string, error)
}

type TextPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *TextPrompter {
	return &TextPrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm defaults to "no", including when input is closed.
func (p *TextPrompter) Confirm(q string) (bool, error) {
	if _, err := fmt.Fprintf(p.out, "%s [y/N]: ", q); err != nil {
		return false, err
	}

	resp, err := p.readLine()
	if err != nil {
		return false, err
	}

	r := strings.ToLower(resp)
	return r == "y" || r == "yes", nil
}

// Prompt returns fallback when the answer is empty.
func (p *TextPrompter) Prompt(q, fallback string) (string, error) {
	label := q
	if fallback != "" {
		label = fmt.Sprintf("%s [%s]", q, fallback)
	}
	if _, err := fmt.Fprintf(p.out, "%s: ", label); err != nil {
		return "", err
	}

	resp, err := p.readLine()
	if err != nil {
		return "", err
	}
	if resp == "" {
		return fallback, nil
	}
	return resp, nil
}

func (p *TextPrompter) readLine() (string, error) {
	resp, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(resp), nil
}

// Auto answers without reading input, for --yes and scripted runs.
type Auto struct {
	Answer bool
}

func (a Auto) Confirm(string) (bool, error) { return a.Answer, nil }

func (Auto) Prompt(_, fallback string) (string, error) { return fallback, nil }
