package logger

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestIDKey is the gin context key holding the per-request id.
const RequestIDKey = "request_id"

var Log *zap.SugaredLogger

func init() {
	l, err := build("debug", "json")
	if err != nil {
		panic(err)
	}
	Log = l
}

func build(level, encoding string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}
	if encoding != "console" {
		encoding = "json"
	}

	config := zap.Config{
		Encoding:         encoding, // json or console
		Level:            zap.NewAtomicLevelAt(lvl),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
	}

	zapLogger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return zapLogger.Sugar(), nil
}

// Init replaces the default logger with one at the given level and encoding.
func Init(level, encoding string) error {
	l, err := build(level, encoding)
	if err != nil {
		return err
	}
	_ = Log.Sync()
	Log = l
	return nil
}

// With returns a child logger carrying the given key/value pairs.
func With(args ...interface{}) *zap.SugaredLogger {
	return Log.Desugar().WithOptions(zap.AddCallerSkip(-1)).Sugar().With(args...)
}

func Sync() {
	_ = Log.Sync()
}

// Middleware logs one line per request.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString(RequestIDKey),
		}
		if uid, ok := c.Get("userID"); ok {
			fields = append(fields, "user_id", uid)
		}

		switch {
		case c.Writer.Status() >= 500:
			Log.Errorw("request", fields...)
		case c.Writer.Status() >= 400:
			Log.Warnw("request", fields...)
		default:
			Log.Infow("request", fields...)
		}
	}
}

// Convenience functions
func Info(args ...interface{}) {
	Log.Info(args...)
}

func Infof(template string, args ...interface{}) {
	Log.Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	Log.Warnf(template, args...)
}

func Error(args ...interface{}) {
	Log.Error(args...)
}

func Errorf(template string, args ...interface{}) {
	Log.Errorf(template, args...)
}

func Debug(args ...interface{}) {
	Log.Debug(args...)
}

func Debugf(template string, args ...interface{}) {
	Log.Debugf(template, args...)
}
