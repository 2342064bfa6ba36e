// Package form holds the state behind the password generator form: the
// character class toggles, the length field and the last generated password.
package form

import (
	"errors"

	"github.com/avahowell/pwform/pwgen"
	"github.com/sirupsen/logrus"
)

// ErrNoClassSelected is returned from Submit when no character class is
// toggled on.
var ErrNoClassSelected = errors.New("select at least one character type")

// Phase is the visible state of the form.
type Phase int

const (
	// Idle means no password is shown.
	Idle Phase = iota
	// Generated means a password is shown.
	Generated
)

func (p Phase) String() string {
	if p == Generated {
		return "generated"
	}
	return "idle"
}

// Field is the raw state of the length input.
type Field struct {
	Value   string
	Touched bool
	Err     error
}

// State is the form. The zero value is the initial state, but a generator
// must be attached before Submit can succeed.
type State struct {
	Classes   pwgen.Classes
	Length    Field
	Password  string
	Generated bool

	gen *pwgen.Generator
}

// New returns an initial State that generates passwords using gen.
func New(gen *pwgen.Generator) *State {
	s := &State{}
	s.Attach(gen)
	return s
}

// Attach sets the generator used on submit.
func (s *State) Attach(gen *pwgen.Generator) {
	s.gen = gen
}

// Bounds returns the length bounds in effect.
func (s *State) Bounds() Bounds {
	if s.gen == nil {
		return Bounds{Min: pwgen.DefaultMinLength, Max: pwgen.DefaultMaxLength}
	}
	return Bounds{Min: s.gen.MinLength, Max: s.gen.MaxLength}
}

// Phase reports whether a password is currently shown.
func (s *State) Phase() Phase {
	if s.Generated {
		return Generated
	}
	return Idle
}

// Toggle flips one character class. The shown password is kept until the
// next successful Submit.
func (s *State) Toggle(c pwgen.Class) {
	s.Classes = s.Classes.Toggle(c)
}

// Enabled reports whether c is toggled on.
func (s *State) Enabled(c pwgen.Class) bool {
	return s.Classes.Has(c)
}

// SetLength replaces the raw length input and revalidates it.
func (s *State) SetLength(input string) {
	s.Length.Value = input
	s.Length.Touched = true
	_, s.Length.Err = ValidateLength(input, s.Bounds())
}

// FieldError returns the message to show under the length field, or an empty
// string if there is none to show yet.
func (s *State) FieldError() string {
	if !s.Length.Touched || s.Length.Err == nil {
		return ""
	}
	return s.Length.Err.Error()
}

// CanSubmit reports whether the length field currently validates.
func (s *State) CanSubmit() bool {
	_, err := ValidateLength(s.Length.Value, s.Bounds())
	return err == nil
}

// Submit generates a password from the current field and toggles. On any
// error the shown password and phase are left as they were.
func (s *State) Submit() error {
	length, err := ValidateLength(s.Length.Value, s.Bounds())
	if err != nil {
		s.Length.Touched = true
		s.Length.Err = err
		return err
	}
	if s.Classes.Empty() {
		return ErrNoClassSelected
	}
	if s.gen == nil {
		return errors.New("form has no generator attached")
	}
	pw, err := s.gen.Generate(pwgen.Request{Length: length, Classes: s.Classes})
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"length":  length,
		"classes": s.Classes.String(),
	}).Debug("generated password")
	s.Password = pw
	s.Generated = true
	return nil
}

// Reset returns the form to its initial state, including the length field.
func (s *State) Reset() {
	*s = State{gen: s.gen}
}
