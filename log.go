package guarded

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.Logger

func init() {
	InitLoggerForTest()
}

func InitLoggerForTest() {
	Log, _ = zap.NewDevelopment()
}

func logLevel() zapcore.Level {
	if G.Log == nil || G.Log.Level == "" {
		return zapcore.DebugLevel
	}
	level, err := zapcore.ParseLevel(G.Log.Level)
	if err != nil {
		return zapcore.DebugLevel
	}
	return level
}

// InitLogger rebuilds Log from G.Log: a development logger by default, a
// buffered JSON logger when async is set.
func InitLogger() {
	level := logLevel()
	if G.Log == nil || !G.Log.Async {
		conf := zap.NewDevelopmentConfig()
		conf.Level = zap.NewAtomicLevelAt(level)
		l, err := conf.Build()
		if err != nil {
			InitLoggerForTest()
			Log.Error("build logger err", zap.Error(err))
			return
		}
		Log = l
		return
	}

	buffer := &zapcore.BufferedWriteSyncer{
		Size:          G.Log.BufferSize,
		FlushInterval: time.Second * time.Duration(G.Log.FlushInterval),
		WS:            os.Stdout,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	Log = zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(buffer),
		level,
	))
}

// Named returns a child of Log for one component, e.g. a cell's queue.
func Named(component string) *zap.Logger {
	return Log.Named(component)
}
