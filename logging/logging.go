// Package logging configures the client's zap logger. Output goes to a
// rotated local file so a frame-rate-sensitive game never blocks on a
// console pipe.
package logging

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a SugaredLogger writing to filePath with rotation. Every
// record carries a per-run session id so interleaved runs can be told
// apart in one log file.
func New(filePath string) *zap.SugaredLogger {
	lj := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(lj), zapcore.DebugLevel)

	return zap.New(core, zap.AddCaller()).Sugar().With("session", uuid.NewString())
}

// Nop returns a logger that discards everything. For tests.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
