package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/halcyonnouveau/sopmod/internal/manager"
	"github.com/halcyonnouveau/sopmod/internal/messages"
	"github.com/halcyonnouveau/sopmod/internal/terminal"
)

var isInteractive = terminal.IsInteractive

var runConfirmForm = func(form *huh.Form) error { return form.Run() }

// newConfirmer asks with a huh form on a terminal and falls back to a line
// prompt on in/out otherwise.
func newConfirmer(in io.Reader, out io.Writer) manager.ConfirmFunc {
	return func(prompt string) (bool, error) {
		if !isInteractive() {
			return promptYesNo(in, out, prompt, true)
		}
		answer := true
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Yes").
				Negative("No").
				Value(&answer),
		))
		if err := runConfirmForm(form); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return false, nil
			}
			return false, err
		}
		return answer, nil
	}
}

func promptYesNo(in io.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	reader := bufio.NewReader(in)
	for {
		format := messages.PromptNoDefaultFmt
		if defaultYes {
			format = messages.PromptYesDefaultFmt
		}
		if _, err := fmt.Fprintf(out, format, prompt); err != nil {
			return false, err
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		response := strings.TrimSpace(line)
		if response == "" {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return defaultYes, nil
		}
		switch strings.ToLower(response) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if _, err := fmt.Fprintln(out, messages.PromptInvalidAnswer); err != nil {
			return false, err
		}
	}
}
