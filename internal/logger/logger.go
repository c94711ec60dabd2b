package logger

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/MrSnakeDoc/altcat/internal/printer"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Level string    // "debug","info","warn","error"
	JSON  bool      // JSON output (CI)
	Out   io.Writer // default os.Stdout
}

var (
	mu      sync.RWMutex
	zlog    *zap.SugaredLogger
	out     io.Writer = os.Stdout
	jsonOut bool
	ready   atomic.Bool

	p     = printer.NewColorPrinter()
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func init() {
	Configure(Options{})
}

// Configure rebuilds the global logger.
func Configure(opts Options) {
	mu.Lock()
	defer mu.Unlock()

	if opts.Out != nil {
		out = opts.Out
	}
	jsonOut = opts.JSON
	level.SetLevel(parseLevel(opts.Level))

	var enc zapcore.Encoder
	if jsonOut {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.TimeKey = ""
		encCfg.CallerKey = ""
		encCfg.MessageKey = "msg"
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "msg"})
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(writerAdapter{out}), level)
	zlog = zap.New(core).Sugar()
	ready.Store(true)
}

// SetLevel adjusts the level at runtime without rebuilding the core.
func SetLevel(l string) {
	level.SetLevel(parseLevel(l))
}

// UseTestMode silences logs during tests.
func UseTestMode() {
	Configure(Options{Level: "error", Out: io.Discard})
}

// Out returns the current output writer (for tables and progress lines).
func Out() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return out
}

func Info(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, p.Info("• "+msg, args...))
}

func Success(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, p.Success("✔ "+msg, args...))
}

func Warn(msg string, args ...interface{}) {
	emit(zapcore.WarnLevel, p.Warning("! "+msg, args...))
}

func LogError(msg string, args ...interface{}) {
	emit(zapcore.ErrorLevel, p.Error("✘ "+msg, args...))
}

func Debug(msg string, args ...interface{}) {
	emit(zapcore.DebugLevel, p.Debug("› "+msg, args...))
}

// Inline writes without a trailing newline, used for progress redraws.
func Inline(msg string, args ...interface{}) {
	if !level.Enabled(zapcore.InfoLevel) {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	_, _ = io.WriteString(out, p.Info(msg, args...))
}

func CreateTable(headers []string) *tablewriter.Table {
	mu.RLock()
	defer mu.RUnlock()
	t := tablewriter.NewTable(out)
	t.Header(headers)
	return t
}

func emit(l zapcore.Level, msg string) {
	if !ready.Load() {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	switch l {
	case zapcore.DebugLevel:
		zlog.Debug(msg)
	case zapcore.WarnLevel:
		zlog.Warn(msg)
	case zapcore.ErrorLevel:
		zlog.Error(msg)
	default:
		zlog.Info(msg)
	}
}

type writerAdapter struct{ w io.Writer }

func (wa writerAdapter) Write(b []byte) (int, error) { return wa.w.Write(b) }

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
