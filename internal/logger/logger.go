// Package logger provides leveled diagnostic logging to stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	}
	return WARN, fmt.Errorf("unknown log level %q", s)
}

var levelColors = map[Level]lipgloss.Color{
	DEBUG: lipgloss.Color("244"),
	INFO:  lipgloss.Color("39"),
	WARN:  lipgloss.Color("214"),
	ERROR: lipgloss.Color("196"),
}

type Logger struct {
	mu         sync.Mutex
	out        io.Writer
	renderer   *lipgloss.Renderer
	level      Level
	prefix     string
	showTime   bool
	timeFormat string
}

type Config struct {
	Level      Level
	Prefix     string
	ShowTime   bool
	TimeFormat string
	Output     io.Writer
}

func DefaultConfig() Config {
	return Config{
		Level:      WARN,
		Prefix:     "albumq:",
		TimeFormat: "15:04:05",
		Output:     os.Stderr,
	}
}

func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = "15:04:05"
	}
	return &Logger{
		out:        cfg.Output,
		renderer:   lipgloss.NewRenderer(cfg.Output),
		level:      cfg.Level,
		prefix:     cfg.Prefix,
		showTime:   cfg.ShowTime,
		timeFormat: cfg.TimeFormat,
	}
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Default returns the process-wide logger. Its initial level can be set
// with the ALBUMQ_LOG_LEVEL environment variable.
func Default() *Logger {
	once.Do(func() {
		cfg := DefaultConfig()
		if env := os.Getenv("ALBUMQ_LOG_LEVEL"); env != "" {
			if level, err := ParseLevel(env); err == nil {
				cfg.Level = level
			}
		}
		defaultLogger = New(cfg)
	})
	return defaultLogger
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.renderer = lipgloss.NewRenderer(w)
}

func (l *Logger) formatMessage(level Level, msg string, args ...any) string {
	var parts []string

	if l.showTime {
		parts = append(parts, time.Now().Format(l.timeFormat))
	}
	if l.prefix != "" {
		parts = append(parts, l.prefix)
	}

	tag := l.renderer.NewStyle().
		Foreground(levelColors[level]).
		Bold(level >= WARN).
		Render(strings.ToLower(level.String()))
	parts = append(parts, tag+":")

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	parts = append(parts, msg)

	return strings.Join(parts, " ")
}

func (l *Logger) log(level Level, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}
	fmt.Fprintln(l.out, l.formatMessage(level, msg, args...))
}

func (l *Logger) Debugf(format string, args ...any) { l.log(DEBUG, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.log(INFO, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(WARN, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.log(ERROR, format, args...) }

// Package-level helpers using the default logger.

func Debugf(format string, args ...any) { Default().Debugf(format, args...) }
func Infof(format string, args ...any)  { Default().Infof(format, args...) }
func Warnf(format string, args ...any)  { Default().Warnf(format, args...) }
func Errorf(format string, args ...any) { Default().Errorf(format, args...) }

func SetLevel(level Level)  { Default().SetLevel(level) }
func SetOutput(w io.Writer) { Default().SetOutput(w) }
