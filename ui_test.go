package main

import (
	"strings"
	"testing"

	"github.com/avahowell/pwform/form"
	"github.com/avahowell/pwform/pwgen"
)

func newTestFormUI(t *testing.T) (*formUI, *testClipboard) {
	clipper, cb := newTestClipper()
	m, err := newFormUI(form.New(pwgen.NewGenerator()), clipper)
	if err != nil {
		t.Fatal(err)
	}
	return m, cb
}

func press(t *testing.T, m *formUI, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if err := m.inputHandler(k); err != nil {
			t.Fatal(err)
		}
	}
	m.refresh()
}

func TestNewFormUIRequiresState(t *testing.T) {
	if _, err := newFormUI(nil, nil); err == nil {
		t.Fatal("expected newFormUI to fail without a form state")
	}
}

func TestFormUIInitialRender(t *testing.T) {
	m, _ := newTestFormUI(t)
	if m.lengthInput.Text != "[Ex 8](fg-white)" {
		t.Fatal("expected the length placeholder, got", m.lengthInput.Text)
	}
	if m.fieldError.Text != "" {
		t.Fatal("expected no field error before input")
	}
	if m.genButton.Text != "Generate Password (disabled)" {
		t.Fatal("expected the generate button to start disabled")
	}
	if m.card.Text != "" || m.state.Generated {
		t.Fatal("expected no password before generating")
	}
}

func TestFormUIGenerate(t *testing.T) {
	m, _ := newTestFormUI(t)
	press(t, m, "1", "5")
	if m.genButton.Text != "Generate Password" {
		t.Fatal("expected the generate button to be enabled with a valid length")
	}

	// lowercase and symbol checkboxes
	press(t, m, "<tab>", "<space>", "<tab>", "<tab>", "<tab>", "<enter>")
	if !m.state.Enabled(pwgen.Lowercase) || !m.state.Enabled(pwgen.Symbol) {
		t.Fatal("checkboxes were not toggled")
	}
	if !strings.Contains(m.checkboxes[0].Text, "✔") || strings.Contains(m.checkboxes[1].Text, "✔") {
		t.Fatal("checkbox widgets do not reflect the form", m.checkboxes[0].Text, m.checkboxes[1].Text)
	}

	press(t, m, "<tab>", "<enter>")
	if !m.state.Generated {
		t.Fatal("generate button did not generate a password", m.flashText)
	}
	if len(m.card.Text) != 15 || m.card.Text != m.state.Password {
		t.Fatal("password card does not show the generated password")
	}
	alphabet := string(pwgen.Alphabet(pwgen.NewClasses(pwgen.Lowercase, pwgen.Symbol)))
	if strings.Trim(m.state.Password, alphabet) != "" {
		t.Fatal("password contains characters from unselected classes", m.state.Password)
	}
}

func TestFormUIBlockedSubmit(t *testing.T) {
	for _, input := range []string{"7", "21", "abc", ""} {
		m, _ := newTestFormUI(t)
		keys := strings.Split(input, "")
		keys = append(keys, "<tab>", "<space>", "<up>", "<up>", "<up>", "<enter>")
		press(t, m, keys...)

		if m.focus != focusGenerate {
			t.Fatal("expected focus on the generate button, got", m.focus)
		}
		if m.state.Generated || m.state.Password != "" {
			t.Fatalf("submit with length %q was not blocked", input)
		}
		if m.fieldError.Text == "" {
			t.Fatalf("expected a field error for length %q", input)
		}
	}
}

func TestFormUINoClassSelected(t *testing.T) {
	m, _ := newTestFormUI(t)
	press(t, m, "9", "<enter>")
	if m.state.Generated {
		t.Fatal("generated a password with no class selected")
	}
	if m.flash.Text != form.ErrNoClassSelected.Error() {
		t.Fatal("expected the empty class error to be flashed, got", m.flash.Text)
	}
}

func TestFormUIBackspace(t *testing.T) {
	m, _ := newTestFormUI(t)
	press(t, m, "2", "0", "0", "C-8")
	if m.state.Length.Value != "20" {
		t.Fatal("backspace did not remove the last character", m.state.Length.Value)
	}
	press(t, m, "C-8", "C-8", "C-8")
	if m.state.Length.Value != "" {
		t.Fatal("backspace on an empty field changed it")
	}
	if m.fieldError.Text != "Password is mandatory" {
		t.Fatal("expected the required error, got", m.fieldError.Text)
	}
}

func TestFormUIResetAndCopy(t *testing.T) {
	m, cb := newTestFormUI(t)
	press(t, m, "8", "<tab>", "<space>", "c")
	if cb.read() != "" {
		t.Fatal("copy before generating wrote to the clipboard")
	}

	press(t, m, "<tab>", "<tab>", "<tab>", "<tab>", "<enter>")
	if !m.state.Generated {
		t.Fatal("expected a generated password", m.flashText)
	}
	press(t, m, "c")
	if cb.read() != m.state.Password {
		t.Fatal("copy did not put the password on the clipboard")
	}

	press(t, m, "<tab>", "<enter>")
	if m.state.Generated || m.state.Password != "" || !m.state.Classes.Empty() || m.state.Length.Value != "" {
		t.Fatal("reset did not clear the form")
	}
	if m.focus != focusLength || m.flash.Text != "" {
		t.Fatal("reset did not return focus to the length field")
	}
}

func TestFormUIQuit(t *testing.T) {
	m, _ := newTestFormUI(t)
	press(t, m, "q")
	if m.quit {
		t.Fatal("q typed into the length field quit the form")
	}
	press(t, m, "<tab>", "q")
	if !m.quit {
		t.Fatal("q outside the length field did not quit")
	}

	m, _ = newTestFormUI(t)
	press(t, m, "C-c")
	if !m.quit {
		t.Fatal("C-c did not quit")
	}
}
