package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/haguru/bookstore/internal/interfaces"
	"github.com/haguru/bookstore/internal/models"
)

// Handler runs one command against an already acquired service.
// args always holds exactly as many values as the command declares.
type Handler func(ctx context.Context, svc interfaces.BookService, args []string) error

// Command is one entry of the dispatch table.
type Command struct {
	Name string
	Args []string
	Run  Handler
}

// Usage renders the command the way the help listing shows it.
func (c Command) Usage() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " <" + strings.Join(c.Args, "> <") + ">"
}

// Opener acquires a service for one command and returns the function that releases it.
type Opener func(ctx context.Context) (interfaces.BookService, func(), error)

// Dispatcher maps command names to handlers.
type Dispatcher struct {
	commands []Command
	index    map[string]Command
	open     Opener
	out      io.Writer
}

// NewDispatcher creates a dispatcher over the given table. Help is written to out.
func NewDispatcher(table []Command, open Opener, out io.Writer) *Dispatcher {
	index := make(map[string]Command, len(table))
	for _, c := range table {
		index[c.Name] = c
	}
	return &Dispatcher{
		commands: table,
		index:    index,
		open:     open,
		out:      out,
	}
}

// Lookup reports whether name is a known command.
func (d *Dispatcher) Lookup(name string) (Command, bool) {
	c, ok := d.index[name]
	return c, ok
}

// Dispatch runs the command called name. Unknown names print the help listing,
// acquire nothing and return nil.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args []string) error {
	c, ok := d.index[name]
	if !ok {
		return d.PrintHelp()
	}

	svc, release, err := d.open(ctx)
	if err != nil {
		return err
	}
	defer release()

	return c.Run(ctx, svc, positional(args, len(c.Args)))
}

// PrintHelp writes the list of valid commands.
func (d *Dispatcher) PrintHelp() error {
	var b strings.Builder
	b.WriteString(HelpHeader + "\n")
	for _, c := range d.commands {
		b.WriteString(c.Usage() + "\n")
	}
	_, err := io.WriteString(d.out, b.String())
	return err
}

// positional pads missing arguments with empty strings and drops extras.
func positional(args []string, n int) []string {
	out := make([]string, n)
	copy(out, args)
	return out
}

const hexAlphabet = "0123456789abcdef"

var (
	decimalDigits = regexp.MustCompile(`^\d+`)
	hexDigits     = regexp.MustCompile(`^[0-9a-fA-F]+`)
	leadingFloat  = regexp.MustCompile(`^[+-]?(Infinity|\d+\.?\d*(?:[eE][+-]?\d+)?|\.\d+(?:[eE][+-]?\d+)?)`)
)

// Page bounds for which (page-1)*PageSize fits in an int64 skip.
const (
	maxPage = math.MaxInt64/models.PageSize + 1
	minPage = math.MinInt64/models.PageSize + 1
)

// leadingInteger splits the integer prefix of s into its sign, digits and base.
// A 0x or 0X prefix selects base 16. digits is empty when there is no integer.
func leadingInteger(s string) (sign string, digits string, base int) {
	s = strings.TrimSpace(s)
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return sign, hexDigits.FindString(s[2:]), 16
	}
	return sign, decimalDigits.FindString(s), 10
}

// ParseIntArg reads the leading integer of s, ignoring leading whitespace
// and trailing garbage. A 0x prefix reads hexadecimal. When s has no leading
// integer it returns NaN.
func ParseIntArg(s string) float64 {
	sign, digits, base := leadingInteger(s)
	if digits == "" {
		return math.NaN()
	}

	var v float64
	if base == 10 {
		parsed, err := strconv.ParseFloat(digits, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return math.NaN()
		}
		v = parsed
	} else {
		for _, c := range strings.ToLower(digits) {
			v = v*16 + float64(strings.IndexRune(hexAlphabet, c))
		}
	}

	if sign == "-" {
		return -v
	}
	return v
}

// ParseFloatArg reads the leading decimal number of s. When s has none it returns NaN.
func ParseFloatArg(s string) float64 {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}
	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ParsePageArg reads a page number with the same prefix rules as ParseIntArg.
// Unlike the other numeric arguments an unparseable or out of range page is an error.
func ParsePageArg(s string) (int64, error) {
	sign, digits, base := leadingInteger(s)
	if digits == "" {
		return 0, fmt.Errorf("%s: %q", ErrInvalidPageNumber, s)
	}

	page, err := strconv.ParseInt(sign+digits, base, 64)
	if err != nil || page > maxPage || page < minPage {
		return 0, fmt.Errorf("%s: %q", ErrInvalidPageNumber, s)
	}
	return page, nil
}
