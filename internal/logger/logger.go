package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultPath is the diagnostic log file, relative to the working directory (project root when run via go run ./cmd/editor).
const DefaultPath = "logs/terminal.txt"

const timeLayout = "2006-01-02 15:04:05"

// Logger is the diagnostic channel of the editor. Every entry goes to zap (console encoding, appended to a file)
// and is also kept in memory so the terminal overlay can show recent lines.
type Logger struct {
	mu    sync.Mutex
	lines []string
	zl    *zap.Logger
	file  io.Closer
}

// memSink receives encoded entries from the in-memory zap core.
type memSink struct{ l *Logger }

func (s memSink) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	s.l.mu.Lock()
	s.l.lines = append(s.l.lines, line)
	s.l.mu.Unlock()
	return len(p), nil
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.CallerKey = ""
	cfg.StacktraceKey = ""
	return cfg
}

// New returns a Logger that appends to path (created with its directory if needed).
// If the file cannot be opened, entries are only kept in memory.
func New(path string) *Logger {
	if path == "" {
		path = DefaultPath
	}
	l := &Logger{lines: make([]string, 0)}
	enc := zapcore.NewConsoleEncoder(encoderConfig())
	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.AddSync(memSink{l}), zapcore.DebugLevel)}

	_ = os.MkdirAll(filepath.Dir(path), 0755)
	if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
		l.file = f
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.AddSync(f), zapcore.DebugLevel))
	}
	l.zl = zap.New(zapcore.NewTee(cores...))
	return l
}

// NewNop returns a Logger that keeps lines in memory only. Used by tests.
func NewNop() *Logger {
	l := &Logger{lines: make([]string, 0)}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(memSink{l}), zapcore.DebugLevel)
	l.zl = zap.New(core)
	return l
}

// Log records a plain line at info level (e.g. terminal input).
func (l *Logger) Log(line string) {
	l.zl.Info(line)
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zl.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zl.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zl.Error(msg, fields...)
}

// Zap exposes the underlying zap logger for packages that take one directly.
func (l *Logger) Zap() *zap.Logger {
	return l.zl
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Close flushes zap and closes the log file.
func (l *Logger) Close() error {
	_ = l.zl.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
