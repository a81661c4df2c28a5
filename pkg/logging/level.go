package logging

import (
	"fmt"
	"strings"
)

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type Level string

func (ll Level) String() string { return string(ll) }

var levelPriorityMapping = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,

	*new(Level): 1, // zero Level value is considered as LevelInfo
}

func isLevelEnabled(target, level Level) bool {
	return levelPriorityMapping[target] <= levelPriorityMapping[level]
}

// ParseLevel turns a textual level into a Level.
func ParseLevel(raw string) (Level, error) {
	lvl := Level(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := levelPriorityMapping[lvl]; !ok {
		return "", fmt.Errorf("unknown logging level: %q", raw)
	}
	if lvl == "" {
		return LevelInfo, nil
	}
	return lvl, nil
}
