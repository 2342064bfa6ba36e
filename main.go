package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/avahowell/pwform/config"
	"github.com/avahowell/pwform/form"
	"github.com/avahowell/pwform/pwgen"
	"github.com/avahowell/pwform/repl"
	"github.com/avahowell/pwform/secureclip"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

func die(err error) {
	logrus.Error(err)
	os.Exit(1)
}

// setupLogging points logrus at the configured file. The terminal form owns
// the screen, so without a file its logs are discarded.
func setupLogging(cfg *config.Config, screen bool) (io.Closer, error) {
	logrus.SetLevel(cfg.LogLevel)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("could not open log file: %w", err)
		}
		logrus.SetOutput(f)
		return f, nil
	}
	if screen {
		logrus.SetOutput(io.Discard)
	} else {
		logrus.SetOutput(os.Stderr)
	}
	return nil, nil
}

func newGenerator(cfg *config.Config) *pwgen.Generator {
	return &pwgen.Generator{
		MinLength: cfg.MinLength,
		MaxLength: cfg.MaxLength,
	}
}

func startRepl(s *form.State, clip *secureclip.Clipper) error {
	r := repl.New("pwform > ")
	r.AddCommand(lengthCmd(s))
	r.AddCommand(toggleCmd(s))
	r.AddCommand(genCmd(s))
	r.AddCommand(resetCmd(s))
	r.AddCommand(statusCmd(s))
	r.AddCommand(showCmd(s))
	r.AddCommand(clipCmd(s, clip))
	r.OnStop(func() {
		if err := clip.Clear(); err != nil {
			logrus.WithError(err).Warn("could not clear clipboard")
		}
	})
	return r.Loop()
}

// generateOnce runs a single submit of the form for each requested password.
func generateOnce(gen *pwgen.Generator, length string, classes []pwgen.Class, count int) ([]string, error) {
	if count < 1 {
		count = 1
	}
	s := form.New(gen)
	for _, c := range classes {
		s.Toggle(c)
	}
	s.SetLength(length)

	passwords := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if err := s.Submit(); err != nil {
			return nil, err
		}
		passwords = append(passwords, s.Password)
	}
	return passwords, nil
}

func main() {
	app := kingpin.New("pwform", "Generate random passwords from a length and a set of character classes")
	app.HelpFlag.Short('h')
	app.UsageTemplate(kingpin.CompactUsageTemplate)
	envFile := app.Flag("env-file", "optional .env file with PWFORM_* settings").Default(".env").String()

	appUI := app.Command("ui", "open the password form in the terminal").Default()

	appRepl := app.Command("repl", "drive the password form from an interactive prompt")

	appGen := app.Command("gen", "generate passwords and exit")
	appGenLength := appGen.Flag("length", "password length").Short('l').Default("12").String()
	appGenLower := appGen.Flag("lower", "include lowercase letters").Bool()
	appGenUpper := appGen.Flag("upper", "include uppercase letters").Bool()
	appGenDigit := appGen.Flag("digit", "include digits").Bool()
	appGenSymbol := appGen.Flag("symbol", "include symbols").Bool()
	appGenCount := appGen.Flag("count", "number of passwords to generate").Short('n').Default("1").Int()
	appGenClip := appGen.Flag("clip", "copy the password to the clipboard instead of printing it").Short('c').Bool()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.LoadWithFile(*envFile)
	if err != nil {
		die(err)
	}
	closer, err := setupLogging(cfg, command == appUI.FullCommand())
	if err != nil {
		die(err)
	}
	if closer != nil {
		defer closer.Close()
	}

	gen := newGenerator(cfg)
	clip := secureclip.New(cfg.ClipTimeout)

	switch command {
	case appUI.FullCommand():
		if err := runUI(form.New(gen), clip, cfg.IdleTimeout); err != nil {
			die(err)
		}
	case appRepl.FullCommand():
		if err := startRepl(form.New(gen), clip); err != nil {
			die(err)
		}
	case appGen.FullCommand():
		var classes []pwgen.Class
		for c, on := range map[pwgen.Class]bool{
			pwgen.Lowercase: *appGenLower,
			pwgen.Uppercase: *appGenUpper,
			pwgen.Digit:     *appGenDigit,
			pwgen.Symbol:    *appGenSymbol,
		} {
			if on {
				classes = append(classes, c)
			}
		}
		passwords, err := generateOnce(gen, *appGenLength, classes, *appGenCount)
		if err != nil {
			die(err)
		}
		if *appGenClip {
			if err := clip.Clip(passwords[len(passwords)-1]); err != nil {
				die(err)
			}
			fmt.Fprintf(os.Stderr, "password copied to clipboard, clearing in %v\n", clip.Timeout())
			time.Sleep(clip.Timeout())
			if err := clip.Clear(); err != nil {
				die(err)
			}
			return
		}
		for _, pw := range passwords {
			fmt.Println(pw)
		}
	}
}
