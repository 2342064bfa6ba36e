package main

import (
	"fmt"
	"strings"

	"github.com/avahowell/pwform/form"
	"github.com/avahowell/pwform/pwgen"
	"github.com/avahowell/pwform/repl"
	"github.com/avahowell/pwform/secureclip"
	"github.com/fatih/color"
)

var (
	green = color.New(color.FgGreen, color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
)

var (
	lengthCmd = func(s *form.State) repl.Command {
		return repl.Command{
			Name:   "length",
			Action: length(s),
			Usage:  "length [n]: set the password length field",
		}
	}

	toggleCmd = func(s *form.State) repl.Command {
		return repl.Command{
			Name:   "toggle",
			Action: toggle(s),
			Usage:  "toggle [class...]: toggle lower, upper, digit or symbol characters",
		}
	}

	genCmd = func(s *form.State) repl.Command {
		return repl.Command{
			Name:   "gen",
			Action: gen(s),
			Usage:  "gen [n]: generate a password. [n] optionally sets the length field first",
		}
	}

	resetCmd = func(s *form.State) repl.Command {
		return repl.Command{
			Name:   "reset",
			Action: reset(s),
			Usage:  "reset: clear the toggles, the length field and the generated password",
		}
	}

	statusCmd = func(s *form.State) repl.Command {
		return repl.Command{
			Name:   "status",
			Action: status(s),
			Usage:  "status: show the current length field and toggles",
		}
	}

	showCmd = func(s *form.State) repl.Command {
		return repl.Command{
			Name:   "show",
			Action: show(s),
			Usage:  "show: print the last generated password",
		}
	}

	clipCmd = func(s *form.State, c *secureclip.Clipper) repl.Command {
		return repl.Command{
			Name:   "clip",
			Action: clip(s, c),
			Usage:  "clip: copy the last generated password to the clipboard",
		}
	}
)

func length(s *form.State) repl.ActionFunc {
	return func(args []string) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("length requires 1 argument. See help for usage.")
		}
		s.SetLength(args[0])
		if s.Length.Err != nil {
			return "", s.Length.Err
		}
		return fmt.Sprintf("length set to %v\n", args[0]), nil
	}
}

func toggle(s *form.State) repl.ActionFunc {
	return func(args []string) (string, error) {
		if len(args) == 0 {
			return "", fmt.Errorf("toggle requires at least 1 argument. See help for usage.")
		}
		classes := make([]pwgen.Class, 0, len(args))
		for _, arg := range args {
			c, err := pwgen.ParseClass(arg)
			if err != nil {
				return "", err
			}
			classes = append(classes, c)
		}
		for _, c := range classes {
			s.Toggle(c)
		}
		return fmt.Sprintf("character classes: %v\n", s.Classes), nil
	}
}

func gen(s *form.State) repl.ActionFunc {
	return func(args []string) (string, error) {
		if len(args) > 1 {
			return "", fmt.Errorf("gen takes at most 1 argument. See help for usage.")
		}
		if len(args) == 1 {
			s.SetLength(args[0])
		}
		if err := s.Submit(); err != nil {
			return "", err
		}
		return green(s.Password) + "\n", nil
	}
}

func reset(s *form.State) repl.ActionFunc {
	return func(args []string) (string, error) {
		s.Reset()
		return "form reset\n", nil
	}
}

func status(s *form.State) repl.ActionFunc {
	return func(args []string) (string, error) {
		b := s.Bounds()
		var out strings.Builder
		value := s.Length.Value
		if value == "" {
			value = faint("(empty)")
		}
		fmt.Fprintf(&out, "Password Length [%v-%v]: %v\n", b.Min, b.Max, value)
		if msg := s.FieldError(); msg != "" {
			fmt.Fprintf(&out, "  %v\n", msg)
		}
		for _, c := range pwgen.AllClasses {
			mark := " "
			if s.Enabled(c) {
				mark = "x"
			}
			fmt.Fprintf(&out, "[%v] %v\n", mark, classLabel(c))
		}
		fmt.Fprintf(&out, "state: %v\n", s.Phase())
		return out.String(), nil
	}
}

func show(s *form.State) repl.ActionFunc {
	return func(args []string) (string, error) {
		if !s.Generated {
			return "", fmt.Errorf("no password has been generated yet")
		}
		return green(s.Password) + "\n", nil
	}
}

func clip(s *form.State, c *secureclip.Clipper) repl.ActionFunc {
	return func(args []string) (string, error) {
		if !s.Generated {
			return "", fmt.Errorf("no password has been generated yet")
		}
		if err := c.Clip(s.Password); err != nil {
			return "", err
		}
		return fmt.Sprintf("password copied to clipboard, will clear in %v\n", c.Timeout()), nil
	}
}

// classLabel is the checkbox label for c.
func classLabel(c pwgen.Class) string {
	switch c {
	case pwgen.Lowercase:
		return "Include Lowercase"
	case pwgen.Uppercase:
		return "Include Uppercase"
	case pwgen.Digit:
		return "Include Number"
	case pwgen.Symbol:
		return "Include Symbols"
	}
	return c.String()
}
