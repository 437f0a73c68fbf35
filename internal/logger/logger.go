package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Levels used by analysis stages.
const (
	LevelInfo     = "INFO"
	LevelAnalysis = "ANALYSIS"
	LevelRisk     = "RISK"
	LevelError    = "ERROR"
)

// Logger is the stage logger analysis components write to.
type Logger interface {
	Log(level, stage, message, detail string)
}

type ZapLogger struct {
	logger *zap.Logger
}

// New writes JSON lines to a rotated file and, unless quiet, a console copy to stderr.
// An empty path disables the file core.
func New(path string, isProd, quiet bool) *ZapLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{}
	if strings.TrimSpace(path) != "" {
		rotator := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), zap.InfoLevel))
	}
	if !quiet {
		consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		if isProd {
			consoleEncoder = zapcore.NewJSONEncoder(encoderConfig)
		}
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), zap.DebugLevel))
	}
	return &ZapLogger{logger: zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))}
}

func (l *ZapLogger) Log(level, stage, message, detail string) {
	if l == nil {
		return
	}
	fields := []zap.Field{zap.String("level_tag", level), zap.String("stage", stage)}
	if strings.TrimSpace(detail) != "" {
		fields = append(fields, zap.String("detail", detail))
	}
	switch level {
	case LevelRisk:
		l.logger.Warn(message, fields...)
	case LevelError:
		l.logger.Error(message, fields...)
	default:
		l.logger.Info(message, fields...)
	}
}

func (l *ZapLogger) Sync() error {
	if l == nil {
		return nil
	}
	return l.logger.Sync()
}

// Nop discards everything.
type Nop struct{}

func (Nop) Log(string, string, string, string) {}

// OrNop returns l, or Nop when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop{}
	}
	return l
}
