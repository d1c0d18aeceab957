// If you are AI: This file defines decode events and parses ffmpeg's level-tagged log lines.

package ffx

import "strings"

// EventKind distinguishes decode events.
type EventKind int

const (
	EventFrame EventKind = iota
	EventLog
)

// LogLevel is the severity ffmpeg attached to a log line.
type LogLevel int

const (
	LevelUnknown LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal
)

// String returns the level name.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// levelTags maps ffmpeg's "-loglevel level+..." prefixes to levels.
var levelTags = map[string]LogLevel{
	"trace":   LevelDebug,
	"debug":   LevelDebug,
	"verbose": LevelDebug,
	"info":    LevelInfo,
	"warning": LevelWarning,
	"error":   LevelError,
	"fatal":   LevelFatal,
	"panic":   LevelFatal,
}

// ParseLogLine splits a level-tagged ffmpeg stderr line into level and message.
// Component tags before the level, e.g. "[h264 @ 0x1] [error] msg", stay in the message.
func ParseLogLine(line string) (LogLevel, string) {
	rest := strings.TrimSpace(line)
	var components []string
	for strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		tag := rest[:end+1]
		rest = strings.TrimSpace(rest[end+1:])
		if level, ok := levelTags[tag[1:end]]; ok {
			return level, strings.TrimSpace(strings.Join(append(components, rest), " "))
		}
		components = append(components, tag)
	}
	return LevelUnknown, strings.TrimSpace(line)
}
