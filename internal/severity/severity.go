// Package severity defines the five diagnostic levels and their ranking.
// A lower rank is louder: Critical messages pass every threshold.
package severity

import (
	"gopkg.in/yaml.v3"
)

// Level is a diagnostic severity. Its integer value is its rank.
type Level int

const (
	Critical Level = iota
	High
	Medium
	Low
	VeryLow
)

var names = map[string]Level{
	"Critical": Critical,
	"High":     High,
	"Medium":   Medium,
	"Low":      Low,
	"Very Low": VeryLow,
}

// Levels returns every level, loudest first.
func Levels() []Level {
	return []Level{Critical, High, Medium, Low, VeryLow}
}

// RankOf maps a level name to its Level. Names are case-sensitive; anything
// unrecognised resolves to Critical so a typo never silences a message.
func RankOf(name string) Level {
	if l, ok := names[name]; ok {
		return l
	}
	return Critical
}

// Normalize returns l if it is one of the named levels, Critical otherwise,
// so a Level's rank always agrees with its String.
func (l Level) Normalize() Level {
	if l < Critical || l > VeryLow {
		return Critical
	}
	return l
}

// Rank returns the integer rank.
func (l Level) Rank() int {
	return int(l)
}

// AtLeastAsLoud reports whether l is as severe as, or more severe than, other.
func (l Level) AtLeastAsLoud(other Level) bool {
	return l.Rank() <= other.Rank()
}

func (l Level) String() string {
	switch l {
	case High:
		return "High"
	case Medium:
		return "Medium"
	case Low:
		return "Low"
	case VeryLow:
		return "Very Low"
	default:
		return "Critical"
	}
}

// Set implements pflag.Value.
func (l *Level) Set(name string) error {
	*l = RankOf(name)
	return nil
}

// Type implements pflag.Value.
func (l *Level) Type() string {
	return "level"
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	*l = RankOf(string(text))
	return nil
}

func (l *Level) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	*l = RankOf(name)
	return nil
}

func (l Level) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}
