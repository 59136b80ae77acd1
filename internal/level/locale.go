// Package level loads the locale data that drives the game: the letters and
// words a player can trade, the levels that unlock them and the guided tour.
package level

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultLocale []byte

var (
	// ErrUnknownLetter is returned when a level or word names a missing letter.
	ErrUnknownLetter = errors.New("unknown letter")
	// ErrUnknownWord is returned when a level names a missing word.
	ErrUnknownWord = errors.New("unknown word")
	// ErrNoLevels is returned for a locale without any level.
	ErrNoLevels = errors.New("locale has no levels")
	// ErrEmptyName is returned for a letter or word without a name or letters.
	ErrEmptyName = errors.New("empty name")
)

// Letter is a tradeable letter tile.
type Letter struct {
	Name string `yaml:"name"`
	Buy  int    `yaml:"buy"`
	Sell int    `yaml:"sell"`
}

// Word is built from letters in a workshop.
type Word struct {
	Name    string   `yaml:"name"`
	Letters []string `yaml:"letters"`
	Sell    int      `yaml:"sell"`
}

// Requirement is an inventory target that unlocks the next level.
type Requirement struct {
	Item  string `yaml:"item"`
	Count int    `yaml:"count"`
}

// Level groups the content unlocked at one stage of the game.
type Level struct {
	Name         string        `yaml:"name"`
	Intro        []string      `yaml:"intro"`
	Letters      []string      `yaml:"letters"`
	Words        []string      `yaml:"words"`
	Games        []string      `yaml:"games"`
	Requirements []Requirement `yaml:"requirements"`

	index int
}

// Index is the zero-based position of the level in its locale.
func (l *Level) Index() int { return l.index }

// HasIntro reports whether the level comes with introductory pages.
func (l *Level) HasIntro() bool { return l != nil && len(l.Intro) > 0 }

// Stop is one step of the guided tour.
type Stop struct {
	Name     string   `yaml:"name"`
	Messages []string `yaml:"messages"`
}

// Locale is the full content set for one language.
type Locale struct {
	Name     string   `yaml:"name"`
	Language string   `yaml:"language"`
	Letters  []Letter `yaml:"letters"`
	Words    []Word   `yaml:"words"`
	Levels   []*Level `yaml:"levels"`
	Tour     []Stop   `yaml:"tour"`

	letters map[string]Letter
	words   map[string]Word
}

// Default returns the locale embedded in the binary.
func Default() (*Locale, error) {
	return Parse(defaultLocale)
}

// LoadFile reads and validates a locale file.
func LoadFile(path string) (*Locale, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locale %s: %w", path, err)
	}
	loc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("locale %s: %w", path, err)
	}
	return loc, nil
}

// Parse decodes YAML locale data and validates cross references.
func Parse(data []byte) (*Locale, error) {
	var loc Locale
	if err := yaml.Unmarshal(data, &loc); err != nil {
		return nil, fmt.Errorf("parse locale: %w", err)
	}
	if err := loc.index(); err != nil {
		return nil, fmt.Errorf("validate locale: %w", err)
	}
	return &loc, nil
}

func (loc *Locale) index() error {
	if len(loc.Levels) == 0 {
		return ErrNoLevels
	}
	loc.letters = make(map[string]Letter, len(loc.Letters))
	for i, l := range loc.Letters {
		if l.Name == "" {
			return fmt.Errorf("letter %d: %w", i, ErrEmptyName)
		}
		loc.letters[l.Name] = l
	}
	loc.words = make(map[string]Word, len(loc.Words))
	for i := range loc.Words {
		w := &loc.Words[i]
		if w.Name == "" {
			return fmt.Errorf("word %d: %w", i, ErrEmptyName)
		}
		if len(w.Letters) == 0 {
			w.Letters = strings.Split(w.Name, "")
		}
		for _, name := range w.Letters {
			if _, ok := loc.letters[name]; !ok {
				return fmt.Errorf("word %q: %w %q", w.Name, ErrUnknownLetter, name)
			}
		}
		loc.words[w.Name] = *w
	}
	for i, lvl := range loc.Levels {
		if lvl == nil {
			return fmt.Errorf("level %d is empty", i)
		}
		lvl.index = i
		if lvl.Name == "" {
			lvl.Name = fmt.Sprint(i + 1)
		}
		for _, name := range lvl.Letters {
			if _, ok := loc.letters[name]; !ok {
				return fmt.Errorf("level %s: %w %q", lvl.Name, ErrUnknownLetter, name)
			}
		}
		for _, name := range lvl.Words {
			if _, ok := loc.words[name]; !ok {
				return fmt.Errorf("level %s: %w %q", lvl.Name, ErrUnknownWord, name)
			}
		}
	}
	return nil
}

// Letter looks up a letter by name.
func (loc *Locale) Letter(name string) (Letter, bool) {
	l, ok := loc.letters[name]
	return l, ok
}

// Word looks up a word by name.
func (loc *Locale) Word(name string) (Word, bool) {
	w, ok := loc.words[name]
	return w, ok
}

// Level returns the level at index i.
func (loc *Locale) Level(i int) (*Level, bool) {
	if i < 0 || i >= len(loc.Levels) {
		return nil, false
	}
	return loc.Levels[i], true
}

// Next returns the level following l.
func (loc *Locale) Next(l *Level) (*Level, bool) {
	if l == nil {
		return loc.Level(0)
	}
	return loc.Level(l.index + 1)
}

// Stop returns the tour stop with the given name.
func (loc *Locale) Stop(name string) (Stop, bool) {
	for _, s := range loc.Tour {
		if s.Name == name {
			return s, true
		}
	}
	return Stop{}, false
}

// Unlocked returns the letters available up to and including level l.
func (loc *Locale) Unlocked(l *Level) []Letter {
	var out []Letter
	if l == nil {
		return out
	}
	for i := 0; i <= l.index && i < len(loc.Levels); i++ {
		for _, name := range loc.Levels[i].Letters {
			out = append(out, loc.letters[name])
		}
	}
	return out
}

// UnlockedWords returns the words available up to and including level l.
func (loc *Locale) UnlockedWords(l *Level) []Word {
	var out []Word
	if l == nil {
		return out
	}
	for i := 0; i <= l.index && i < len(loc.Levels); i++ {
		for _, name := range loc.Levels[i].Words {
			out = append(out, loc.words[name])
		}
	}
	return out
}
