package pwgen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// Class is a category of characters that can be included in a generated
// password.
type Class uint8

const (
	Lowercase Class = 1 << iota
	Uppercase
	Digit
	Symbol
)

// Classes is a set of Class values.
type Classes uint8

var (
	// CharsetLower contains the lowercase letters.
	CharsetLower = []byte("abcdefghijklmnopqrstuvwxyz")
	// CharsetUpper contains the uppercase letters.
	CharsetUpper = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	// CharsetDigit contains the decimal digits.
	CharsetDigit = []byte("1234567890")
	// CharsetSymbol contains the special characters.
	CharsetSymbol = []byte("!@#$%^&*()-_+=?><|")

	// AllClasses lists every class in alphabet order.
	AllClasses = []Class{Lowercase, Uppercase, Digit, Symbol}

	errBadLength = errors.New("length argument must be greater than zero")

	// ErrEmptyAlphabet is returned when sampling from a charset with no
	// characters, which happens when no class is selected.
	ErrEmptyAlphabet = errors.New("at least one character class must be selected")

	// ErrLengthOutOfRange is returned from Generate when the requested length
	// falls outside the generator bounds.
	ErrLengthOutOfRange = errors.New("length argument is out of range")
)

// Charset returns the literal characters of c.
func (c Class) Charset() []byte {
	switch c {
	case Lowercase:
		return CharsetLower
	case Uppercase:
		return CharsetUpper
	case Digit:
		return CharsetDigit
	case Symbol:
		return CharsetSymbol
	}
	return nil
}

func (c Class) String() string {
	switch c {
	case Lowercase:
		return "lower"
	case Uppercase:
		return "upper"
	case Digit:
		return "digit"
	case Symbol:
		return "symbol"
	}
	return fmt.Sprintf("Class(%d)", uint8(c))
}

// ParseClass maps a user supplied name to a Class. Singular and plural forms
// are accepted.
func ParseClass(name string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lower", "lowercase", "l":
		return Lowercase, nil
	case "upper", "uppercase", "u":
		return Uppercase, nil
	case "digit", "digits", "number", "numbers", "d", "n":
		return Digit, nil
	case "symbol", "symbols", "special", "s":
		return Symbol, nil
	}
	return 0, fmt.Errorf("unknown character class %q", name)
}

// NewClasses builds a set containing cs.
func NewClasses(cs ...Class) Classes {
	var set Classes
	for _, c := range cs {
		set = set.With(c)
	}
	return set
}

// Has reports whether c is in the set.
func (s Classes) Has(c Class) bool { return s&Classes(c) != 0 }

// With returns the set with c added.
func (s Classes) With(c Class) Classes { return s | Classes(c) }

// Toggle returns the set with c flipped.
func (s Classes) Toggle(c Class) Classes { return s ^ Classes(c) }

// Empty reports whether no class is selected.
func (s Classes) Empty() bool { return s == 0 }

func (s Classes) String() string {
	var names []string
	for _, c := range AllClasses {
		if s.Has(c) {
			names = append(names, c.String())
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// Alphabet composes the charset for the selected classes, appended in the
// order lowercase, uppercase, digit, symbol. An empty set yields an empty
// alphabet.
func Alphabet(s Classes) []byte {
	var charset []byte
	for _, c := range AllClasses {
		if s.Has(c) {
			charset = append(charset, c.Charset()...)
		}
	}
	return charset
}

// GeneratePassphrase creates a new random passphrase with the length defined
// by `length` using the characters defined by charset.
func GeneratePassphrase(charset []byte, length uint) (string, error) {
	return generate(rand.Reader, charset, length)
}

func generate(src io.Reader, charset []byte, length uint) (string, error) {
	if length == 0 {
		return "", errBadLength
	}
	if len(charset) == 0 {
		return "", ErrEmptyAlphabet
	}
	size := big.NewInt(int64(len(charset)))
	res := make([]byte, length)
	for i := range res {
		randIndex, err := rand.Int(src, size)
		if err != nil {
			return "", fmt.Errorf("could not draw random index: %w", err)
		}
		res[i] = charset[randIndex.Uint64()]
	}
	return string(res), nil
}

// Request describes a single password generation.
type Request struct {
	Length  int
	Classes Classes
}

// Generator samples passwords within a length range from a random source.
type Generator struct {
	MinLength int
	MaxLength int
	// Source defaults to crypto/rand.Reader when nil.
	Source io.Reader
}

// DefaultMinLength and DefaultMaxLength bound generated passwords unless a
// Generator is configured otherwise.
const (
	DefaultMinLength = 8
	DefaultMaxLength = 20
)

// NewGenerator returns a Generator using the default bounds.
func NewGenerator() *Generator {
	return &Generator{
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
	}
}

// Generate validates req against the generator bounds, composes the alphabet
// and samples a password from it.
func (g *Generator) Generate(req Request) (string, error) {
	if req.Length < g.MinLength || req.Length > g.MaxLength {
		return "", fmt.Errorf("%w: %d not in [%d, %d]", ErrLengthOutOfRange, req.Length, g.MinLength, g.MaxLength)
	}
	if req.Length <= 0 {
		return "", errBadLength
	}
	src := g.Source
	if src == nil {
		src = rand.Reader
	}
	return generate(src, Alphabet(req.Classes), uint(req.Length))
}
