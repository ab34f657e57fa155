package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Zap struct {
	*zap.Logger
}

type options struct {
	file    string
	console zapcore.WriteSyncer
}

type Option func(*options)

// WithFile дублирует лог в файл с ротацией; файл всегда пишется в JSON.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithOutput заменяет stdout, например буфером в тестах.
func WithOutput(ws zapcore.WriteSyncer) Option {
	return func(o *options) {
		o.console = ws
	}
}

// New строит логгер: env "dev": читаемый консольный вывод, иначе JSON.
func New(env, level string, opts ...Option) (*Zap, error) {
	o := options{console: zapcore.Lock(os.Stdout)}
	for _, opt := range opts {
		opt(&o)
	}

	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	var consoleEncoder zapcore.Encoder
	if env == "dev" {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		consoleEncoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		consoleEncoder = zapcore.NewJSONEncoder(jsonEncoderConfig())
	}

	cores := []zapcore.Core{zapcore.NewCore(consoleEncoder, o.console, lvl)}

	if o.file != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   o.file,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     14,
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(jsonEncoderConfig()), fileWriter, lvl))
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	return &Zap{Logger: log}, nil
}

func jsonEncoderConfig() zapcore.EncoderConfig {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return encCfg
}
