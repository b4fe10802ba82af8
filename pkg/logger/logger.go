package logger

import (
	"os"
	"sort"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is a no-op logger until InitLogger runs, so packages and tests can
// log without setup.
var (
	Log = zap.NewNop()
)

// Config selects the level and sinks of the process logger. An empty
// Filename disables the rotating file; Console tees to stdout.
type Config struct {
	Level      string
	Filename   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
	Console    bool
	// Fields are attached to every entry (service name, backends in use).
	Fields map[string]string
}

// InitLogger replaces the global logger.
func InitLogger(cfg *Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	Log = l
	zap.ReplaceGlobals(Log)
	return nil
}

// New builds a logger from cfg without touching the global one.
func New(cfg *Config) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, err
	}

	sinks := writers(cfg)
	if len(sinks) == 0 {
		return zap.NewNop(), nil
	}
	core := zapcore.NewCore(encoder(), zapcore.NewMultiWriteSyncer(sinks...), level)
	return zap.New(core, zap.AddCaller(), zap.Fields(staticFields(cfg.Fields)...)), nil
}

func encoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

func writers(cfg *Config) []zapcore.WriteSyncer {
	var sinks []zapcore.WriteSyncer
	if cfg.Console {
		sinks = append(sinks, zapcore.AddSync(os.Stdout))
	}
	if cfg.Filename != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		sinks = append(sinks, &zapcore.BufferedWriteSyncer{
			WS:            zapcore.AddSync(rotating),
			Size:          256 * 1024,
			FlushInterval: 5 * time.Second,
		})
	}
	return sinks
}

// staticFields sorts by key so entries are stable.
func staticFields(fields map[string]string) []zap.Field {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.String(k, fields[k]))
	}
	return out
}

// Sync flushes any buffered log entries
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
