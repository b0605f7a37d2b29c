// Package palette exposes the Material Design colour table as a read-only
// lookup, plus helpers that build ordered colour lists for categorical charts.
package palette

import (
	"errors"
	"fmt"
	"strings"
)

// Default colours used by the chart configurators
const (
	DefaultFamily = "amber"
	DefaultShade  = "400"
)

// Sentinels matched by the typed errors below with errors.Is
var (
	ErrUnknownColor = errors.New("unknown colour")
	ErrExhausted    = errors.New("palette exhausted")
)

// UnknownColorError reports a family/shade pair absent from the table
type UnknownColorError struct {
	Family string
	Shade  string
}

func (e *UnknownColorError) Error() string {
	if _, ok := material[normalizeFamily(e.Family)]; !ok {
		return fmt.Sprintf("unknown colour family %q", e.Family)
	}
	return fmt.Sprintf("unknown shade %q for colour family %q", e.Shade, e.Family)
}

func (e *UnknownColorError) Is(target error) bool { return target == ErrUnknownColor }

// ExhaustedError reports that more distinct colours were requested than the
// palette can provide
type ExhaustedError struct {
	Requested int
	Available int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("palette exhausted: %d categories requested but only %d distinct colours available", e.Requested, e.Available)
}

func (e *ExhaustedError) Is(target error) bool { return target == ErrExhausted }

// Lookup returns the hex value for a colour family and shade. Family names
// are case-insensitive and accept "deep_purple" / "deep-purple" spellings;
// shades accept "a200" for "A200".
func Lookup(family, shade string) (string, error) {
	shades, ok := material[normalizeFamily(family)]
	if !ok {
		return "", &UnknownColorError{Family: family, Shade: shade}
	}
	hex, ok := shades[strings.ToUpper(strings.TrimSpace(shade))]
	if !ok {
		return "", &UnknownColorError{Family: family, Shade: shade}
	}
	return hex, nil
}

// MustLookup is Lookup for compile-time constants; it panics on a miss
func MustLookup(family, shade string) string {
	hex, err := Lookup(family, shade)
	if err != nil {
		panic(err)
	}
	return hex
}

// Resolve looks up a colour, falling back to the default amber when the pair
// is unknown. The lookup error is returned alongside the fallback so callers
// can warn about it.
func Resolve(family, shade string) (string, error) {
	hex, err := Lookup(family, shade)
	if err != nil {
		return MustLookup(DefaultFamily, DefaultShade), err
	}
	return hex, nil
}

// HasFamily reports whether the family exists in the table
func HasFamily(family string) bool {
	_, ok := material[normalizeFamily(family)]
	return ok
}

// Family returns every shade of a family in Shades order
func Family(family string) ([]string, error) {
	shades, ok := material[normalizeFamily(family)]
	if !ok {
		return nil, &UnknownColorError{Family: family}
	}
	out := make([]string, 0, len(shades))
	for _, s := range Shades {
		if hex, ok := shades[s]; ok {
			out = append(out, hex)
		}
	}
	return out, nil
}

// Categorical returns one colour per family, all in the given shade, walking
// Families in order. Families lacking the shade are skipped. The result is a
// fresh slice.
func Categorical(shade string) []string {
	shade = strings.ToUpper(strings.TrimSpace(shade))
	out := make([]string, 0, len(Families))
	for _, f := range Families {
		if hex, ok := material[f][shade]; ok {
			out = append(out, hex)
		}
	}
	return out
}

// Take returns the first n colours of the categorical palette for shade, or
// an ExhaustedError when n exceeds the palette size
func Take(n int, shade string) ([]string, error) {
	colours := Categorical(shade)
	if len(colours) == 0 {
		return nil, &UnknownColorError{Family: "*", Shade: shade}
	}
	if n > len(colours) {
		return nil, &ExhaustedError{Requested: n, Available: len(colours)}
	}
	return colours[:n], nil
}

// TakeFrom returns the first n entries of an explicit colour list, or an
// ExhaustedError when n exceeds its length
func TakeFrom(n int, colours []string) ([]string, error) {
	if n > len(colours) {
		return nil, &ExhaustedError{Requested: n, Available: len(colours)}
	}
	out := make([]string, n)
	copy(out, colours)
	return out, nil
}

func normalizeFamily(family string) string {
	f := strings.ToLower(strings.TrimSpace(family))
	f = strings.NewReplacer("_", " ", "-", " ").Replace(f)
	return strings.Join(strings.Fields(f), " ")
}
