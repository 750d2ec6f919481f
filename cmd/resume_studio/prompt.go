package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// errQuit is returned when the user leaves an interactive session
var errQuit = errors.New("quit requested")

// prompter asks the user for input. The terminal implementation uses promptui.
type prompter interface {
	Prompt(label, current string) (string, error)
	Secret(label string) (string, error)
	Confirm(label string) (bool, error)
	Select(label string, items []string) (int, error)
}

type terminalPrompter struct{}

func (terminalPrompter) Prompt(label, current string) (string, error) {
	p := promptui.Prompt{Label: label, Default: current, AllowEdit: true}
	return interrupted(p.Run())
}

func (terminalPrompter) Secret(label string) (string, error) {
	p := promptui.Prompt{Label: label, Mask: '*'}
	return interrupted(p.Run())
}

func (terminalPrompter) Confirm(label string) (bool, error) {
	p := promptui.Prompt{Label: label, IsConfirm: true}
	_, err := p.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	case errors.Is(err, promptui.ErrInterrupt):
		return false, errQuit
	default:
		return false, err
	}
}

func (terminalPrompter) Select(label string, items []string) (int, error) {
	s := promptui.Select{Label: label, Items: items, Size: min(len(items), 10)}
	i, _, err := s.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return 0, errQuit
	}
	return i, err
}

func interrupted(s string, err error) (string, error) {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return "", errQuit
	}
	return strings.TrimSpace(s), err
}

// promptList collects lines until an empty answer.
func promptList(p prompter, label string) ([]string, error) {
	var out []string
	for i := 1; ; i++ {
		line, err := p.Prompt(fmt.Sprintf("%s #%d (empty to finish)", label, i), "")
		if err != nil {
			return nil, err
		}
		if line == "" {
			return out, nil
		}
		out = append(out, line)
	}
}
