package main

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/avahowell/pwform/form"
	"github.com/avahowell/pwform/pwgen"
	"github.com/avahowell/pwform/secureclip"
	"github.com/sirupsen/logrus"

	ui "github.com/gizak/termui"
)

// focus targets, in tab order
const (
	focusLength = iota
	focusLower
	focusUpper
	focusDigit
	focusSymbol
	focusGenerate
	focusReset
	focusCount
)

const (
	lengthPlaceholder = "Ex 8"
	// rows taken by the widgets in ui.Body
	formHeight = 23
)

var focusClass = map[int]pwgen.Class{
	focusLower:  pwgen.Lowercase,
	focusUpper:  pwgen.Uppercase,
	focusDigit:  pwgen.Digit,
	focusSymbol: pwgen.Symbol,
}

var checkboxFill = map[pwgen.Class]string{
	pwgen.Lowercase: "fg-red",
	pwgen.Uppercase: "fg-green",
	pwgen.Digit:     "fg-blue",
	pwgen.Symbol:    "fg-yellow",
}

type formUI struct {
	state         *form.State
	clip          *secureclip.Clipper
	focus         int
	quit          bool
	lastInputTime int64
	flashText     string

	lengthInput *ui.Par
	fieldError  *ui.Par
	checkboxes  [4]*ui.Par
	genButton   *ui.Par
	resetButton *ui.Par
	card        *ui.Par
	flash       *ui.Par
}

func newFormUI(s *form.State, clip *secureclip.Clipper) (*formUI, error) {
	if s == nil {
		return nil, errors.New("form state must be initialized")
	}
	if clip == nil {
		return nil, errors.New("clipboard must be initialized")
	}

	lengthInput := ui.NewPar("")
	lengthInput.Height = 3
	lengthInput.BorderLabel = "Password Length"

	fieldError := ui.NewPar("")
	fieldError.Height = 1
	fieldError.Border = false
	fieldError.TextFgColor = ui.ColorRed

	var checkboxes [4]*ui.Par
	for i := range checkboxes {
		checkboxes[i] = ui.NewPar("")
		checkboxes[i].Height = 3
	}

	genButton := ui.NewPar("")
	genButton.Height = 3
	resetButton := ui.NewPar("Reset")
	resetButton.Height = 3

	// password card, only rendered after a successful generation
	card := ui.NewPar("")
	card.Height = 3
	card.Width = 40
	card.BorderLabel = "Password"
	card.BorderFg = ui.ColorGreen
	card.TextFgColor = ui.ColorGreen | ui.AttrBold

	flash := ui.NewPar("")
	flash.Height = 1
	flash.Width = 60
	flash.Border = false

	m := &formUI{
		state:         s,
		clip:          clip,
		lastInputTime: time.Now().Unix(),
		lengthInput:   lengthInput,
		fieldError:    fieldError,
		checkboxes:    checkboxes,
		genButton:     genButton,
		resetButton:   resetButton,
		card:          card,
		flash:         flash,
	}
	m.refresh()
	return m, nil
}

func (m *formUI) lengthInputHandler(inputKey string) {
	switch {
	case inputKey == "C-8" || inputKey == "<backspace>":
		v := m.state.Length.Value
		if len(v) > 0 {
			m.state.SetLength(v[:len(v)-1])
		}
	case inputKey == "<enter>":
		m.submit()
	case len(inputKey) == 1:
		m.state.SetLength(m.state.Length.Value + inputKey)
	}
}

func (m *formUI) submit() {
	if !m.state.CanSubmit() {
		// disabled button: surface the field error without generating
		m.state.Length.Touched = true
		_, m.state.Length.Err = form.ValidateLength(m.state.Length.Value, m.state.Bounds())
		return
	}
	if err := m.state.Submit(); err != nil {
		m.flashText = err.Error()
		return
	}
	m.flashText = ""
}

func (m *formUI) inputHandler(inputKey string) error {
	switch inputKey {
	case "C-c":
		m.quit = true
		return nil
	case "<tab>", "<down>":
		m.focus = (m.focus + 1) % focusCount
		return nil
	case "<up>":
		m.focus = (m.focus + focusCount - 1) % focusCount
		return nil
	}

	if m.focus == focusLength {
		m.lengthInputHandler(inputKey)
		return nil
	}

	pressed := inputKey == "<enter>" || inputKey == "<space>"
	if c, ok := focusClass[m.focus]; ok && pressed {
		m.state.Toggle(c)
		return nil
	}
	switch {
	case m.focus == focusGenerate && pressed:
		m.submit()
	case m.focus == focusReset && pressed:
		m.state.Reset()
		m.flashText = ""
		m.focus = focusLength
	case inputKey == "c":
		if !m.state.Generated {
			return nil
		}
		if err := m.clip.Clip(m.state.Password); err != nil {
			m.flashText = "could not copy password: " + err.Error()
			return err
		}
		m.flashText = fmt.Sprintf("copied password to clipboard, clearing in %v", m.clip.Timeout())
	case inputKey == "q":
		m.quit = true
	}
	return nil
}

// refresh copies the form state into the widgets.
func (m *formUI) refresh() {
	s := m.state

	if s.Length.Value == "" {
		m.lengthInput.Text = "[" + lengthPlaceholder + "](fg-white)"
	} else {
		m.lengthInput.Text = s.Length.Value
	}
	m.fieldError.Text = s.FieldError()

	for i, c := range pwgen.AllClasses {
		box := "[·](fg-white)"
		if s.Enabled(c) {
			box = fmt.Sprintf("[✔](%v)", checkboxFill[c])
		}
		m.checkboxes[i].Text = box + " " + classLabel(c)
	}

	if s.CanSubmit() {
		m.genButton.Text = "Generate Password"
	} else {
		m.genButton.Text = "Generate Password (disabled)"
	}

	m.card.Text = s.Password
	m.flash.Text = m.flashText

	widgets := []*ui.Par{m.lengthInput, m.checkboxes[0], m.checkboxes[1], m.checkboxes[2], m.checkboxes[3], m.genButton, m.resetButton}
	for i, w := range widgets {
		if i == m.focus {
			w.BorderFg = ui.ColorCyan
		} else {
			w.BorderFg = ui.ColorWhite
		}
	}
}

func (m *formUI) layout() {
	title := ui.NewPar("Password Generator")
	title.Height = 3
	title.Border = false
	title.TextFgColor = ui.ColorWhite | ui.AttrBold

	help := ui.NewPar("[ tab ](fg-black,bg-white) Next  [ space ](fg-black,bg-white) Toggle  [ c ](fg-black,bg-white) Copy  [ q ](fg-black,bg-white) Quit")
	help.Height = 1
	help.Border = false

	ui.Body.AddRows(
		ui.NewRow(ui.NewCol(12, 0, title)),
		ui.NewRow(ui.NewCol(12, 0, m.lengthInput)),
		ui.NewRow(ui.NewCol(12, 0, m.fieldError)),
		ui.NewRow(ui.NewCol(12, 0, m.checkboxes[0])),
		ui.NewRow(ui.NewCol(12, 0, m.checkboxes[1])),
		ui.NewRow(ui.NewCol(12, 0, m.checkboxes[2])),
		ui.NewRow(ui.NewCol(12, 0, m.checkboxes[3])),
		ui.NewRow(
			ui.NewCol(6, 0, m.genButton),
			ui.NewCol(6, 0, m.resetButton),
		),
		ui.NewRow(ui.NewCol(12, 0, help)),
	)
}

func (m *formUI) render() {
	m.refresh()
	ui.Clear()
	ui.Render(ui.Body)
	bottom := ui.Body.Y + formHeight
	if m.state.Generated {
		m.card.Y = bottom
		m.card.Width = len(m.state.Password) + 4
		if m.card.Width < 20 {
			m.card.Width = 20
		}
		ui.Render(m.card)
		bottom += m.card.Height
	}
	if m.flash.Text != "" {
		m.flash.Y = bottom
		ui.Render(m.flash)
	}
}

func (m *formUI) run(idleTimeout time.Duration) {
	m.layout()
	ui.Handle("/sys/kbd", func(e ui.Event) {
		atomic.StoreInt64(&m.lastInputTime, time.Now().Unix())
		inputKey := e.Data.(ui.EvtKbd).KeyStr
		if err := m.inputHandler(inputKey); err != nil {
			logrus.WithError(err).Warn("input handler failed")
		}
		if m.quit {
			ui.StopLoop()
			return
		}
		m.render()
	})
	ui.Handle("/sys/wnd/resize", func(ui.Event) {
		if ui.TermWidth() > 20 {
			ui.Body.Width = ui.TermWidth()
		}
		ui.Body.Align()
		m.render()
	})

	go func() {
		for {
			time.Sleep(time.Second)
			if time.Since(time.Unix(atomic.LoadInt64(&m.lastInputTime), 0)) > idleTimeout {
				logrus.Info("closing form after idle timeout")
				ui.StopLoop()
				return
			}
		}
	}()

	ui.Body.Align()
	m.render()
	ui.Loop()
}

func runUI(s *form.State, clip *secureclip.Clipper, idleTimeout time.Duration) error {
	if err := ui.Init(); err != nil {
		return err
	}
	defer ui.Close()
	defer func() {
		if err := clip.Clear(); err != nil {
			logrus.WithError(err).Warn("could not clear clipboard on exit")
		}
	}()

	m, err := newFormUI(s, clip)
	if err != nil {
		return err
	}
	if w := ui.TermWidth(); w > 20 {
		ui.Body.Width = w
	}
	m.run(idleTimeout)
	return nil
}
