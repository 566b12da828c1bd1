/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	timestampKey  = "time"
	levelKey      = "level"
	moduleKey     = "logger"
	callerKey     = "caller"
	messageKey    = "msg"
	stacktraceKey = "stacktrace"

	traceIDKey = "traceID"
	spanIDKey  = "spanID"
)

// DefaultEncoding sets the default logger encoding.
// It may be overridden at build time using the -ldflags option.
var DefaultEncoding = Console //nolint gochecknoglobals

// Level defines a log level for logging messages.
type Level int

// String returns string representation of given log level.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARN"
	case ERROR:
		return "ERROR"
	case PANIC:
		return "PANIC"
	case FATAL:
		return "FATAL"
	default:
		return fmt.Sprintf("Level(%d)", l)
	}
}

// ParseLevel returns the level from the given string.
func ParseLevel(level string) (Level, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARNING, nil
	case "ERROR":
		return ERROR, nil
	case "PANIC":
		return PANIC, nil
	case "FATAL":
		return FATAL, nil
	default:
		return ERROR, errors.New("logger: invalid log level")
	}
}

// Log levels.
const (
	DEBUG   = Level(zapcore.DebugLevel)
	INFO    = Level(zapcore.InfoLevel)
	WARNING = Level(zapcore.WarnLevel)
	ERROR   = Level(zapcore.ErrorLevel)
	PANIC   = Level(zapcore.PanicLevel)
	FATAL   = Level(zapcore.FatalLevel)

	minLogLevel  = DEBUG
	defaultLevel = INFO
)

var levels = newModuleLevels() //nolint: gochecknoglobals

type options struct {
	encoding Encoding
	stdOut   zapcore.WriteSyncer
	stdErr   zapcore.WriteSyncer
	fields   []zap.Field
}

// Encoding defines the log encoding.
type Encoding = string

// Log encodings.
const (
	Console Encoding = "console"
	JSON    Encoding = "json"
)

const defaultModuleName = ""

// Option is a logger option.
type Option func(o *options)

// WithStdOut sets the output for logs of type DEBUG, INFO, and WARN.
func WithStdOut(stdOut zapcore.WriteSyncer) Option {
	return func(o *options) {
		o.stdOut = stdOut
	}
}

// WithStdErr sets the output for logs of type ERROR, PANIC, and FATAL.
func WithStdErr(stdErr zapcore.WriteSyncer) Option {
	return func(o *options) {
		o.stdErr = stdErr
	}
}

// WithFields sets the fields that will be output with every log.
func WithFields(fields ...zap.Field) Option {
	return func(o *options) {
		o.fields = fields
	}
}

// WithEncoding sets the output encoding (console or json).
func WithEncoding(encoding Encoding) Option {
	return func(o *options) {
		o.encoding = encoding
	}
}

// Log uses the Zap Logger to log messages in a structured way.
type Log struct {
	*zap.Logger
	module string
}

// New creates a structured Logger implementation based on given module name.
func New(module string, opts ...Option) *Log {
	options := getOptions(opts)

	return &Log{
		Logger: newZap(module, options.encoding, options.stdOut, options.stdErr).With(options.fields...),
		module: module,
	}
}

// IsEnabled returns true if given log level is enabled.
func (l *Log) IsEnabled(level Level) bool {
	return levels.isEnabled(l.module, level)
}

// Debugc logs a message at DEBUG level, adding the trace and span IDs found in ctx.
func (l *Log) Debugc(ctx context.Context, msg string, fields ...zap.Field) {
	l.WithOptions(zap.AddCallerSkip(1)).Debug(msg, withSpan(ctx, fields)...)
}

// Infoc logs a message at INFO level, adding the trace and span IDs found in ctx.
func (l *Log) Infoc(ctx context.Context, msg string, fields ...zap.Field) {
	l.WithOptions(zap.AddCallerSkip(1)).Info(msg, withSpan(ctx, fields)...)
}

// Warnc logs a message at WARN level, adding the trace and span IDs found in ctx.
func (l *Log) Warnc(ctx context.Context, msg string, fields ...zap.Field) {
	l.WithOptions(zap.AddCallerSkip(1)).Warn(msg, withSpan(ctx, fields)...)
}

// Errorc logs a message at ERROR level, adding the trace and span IDs found in ctx.
func (l *Log) Errorc(ctx context.Context, msg string, fields ...zap.Field) {
	l.WithOptions(zap.AddCallerSkip(1)).Error(msg, withSpan(ctx, fields)...)
}

func withSpan(ctx context.Context, fields []zap.Field) []zap.Field {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return fields
	}

	return append(fields,
		zap.String(traceIDKey, spanCtx.TraceID().String()),
		zap.String(spanIDKey, spanCtx.SpanID().String()),
	)
}

// SetLevel sets the log level for given module and level.
func SetLevel(module string, level Level) {
	levels.Set(module, level)
}

// SetDefaultLevel sets the default log level.
func SetDefaultLevel(level Level) {
	levels.SetDefault(level)
}

// GetLevel returns the log level for the given module.
func GetLevel(module string) Level {
	return levels.Get(module)
}

// SetSpec sets the log levels for individual modules as well as the default log level.
// The format of the spec is as follows:
//
//	module1=level1:module2=level2:module3=level3:defaultLevel
//
// Example:
//
//	verify-credential=debug:hybrid-storage=warning:info
func SetSpec(spec string) error {
	defaultLogLevel := minLogLevel - 1

	var pairs []moduleLevelPair

	for _, part := range strings.Split(spec, ":") {
		module, level, found := strings.Cut(part, "=")
		if !found {
			if defaultLogLevel >= minLogLevel {
				return errors.New("multiple default values found")
			}

			lvl, err := ParseLevel(part)
			if err != nil {
				return err
			}

			defaultLogLevel = lvl

			continue
		}

		lvl, err := ParseLevel(level)
		if err != nil {
			return err
		}

		pairs = append(pairs, moduleLevelPair{module: module, logLevel: lvl})
	}

	if defaultLogLevel < minLogLevel {
		defaultLogLevel = INFO
	}

	levels.SetDefault(defaultLogLevel)

	for _, p := range pairs {
		levels.Set(p.module, p.logLevel)
	}

	return nil
}

// GetSpec returns the log spec in the same format accepted by SetSpec. Modules are sorted by name.
func GetSpec() string {
	all := levels.All()

	modules := make([]string, 0, len(all))

	for module := range all {
		if module != defaultModuleName {
			modules = append(modules, module)
		}
	}

	sort.Strings(modules)

	var sb strings.Builder

	for _, module := range modules {
		sb.WriteString(fmt.Sprintf("%s=%s:", module, all[module].String()))
	}

	sb.WriteString(levels.Get(defaultModuleName).String())

	return sb.String()
}

type moduleLevelPair struct {
	module   string
	logLevel Level
}

func newModuleLevels() *moduleLevels {
	return &moduleLevels{levels: make(map[string]Level)}
}

// moduleLevels maintains log levels based on modules.
type moduleLevels struct {
	levels  map[string]Level
	rwmutex sync.RWMutex
}

// Get returns the log level for given module.
func (l *moduleLevels) Get(module string) Level {
	l.rwmutex.RLock()
	defer l.rwmutex.RUnlock()

	if level, ok := l.levels[module]; ok {
		return level
	}

	if level, ok := l.levels[defaultModuleName]; ok {
		return level
	}

	return defaultLevel
}

// All returns a copy of all set log levels.
func (l *moduleLevels) All() map[string]Level {
	l.rwmutex.RLock()
	defer l.rwmutex.RUnlock()

	levelsCopy := make(map[string]Level, len(l.levels))

	for module, logLevel := range l.levels {
		levelsCopy[module] = logLevel
	}

	return levelsCopy
}

func (l *moduleLevels) Set(module string, level Level) {
	l.rwmutex.Lock()
	l.levels[module] = level
	l.rwmutex.Unlock()
}

func (l *moduleLevels) SetDefault(level Level) {
	l.Set(defaultModuleName, level)
}

func (l *moduleLevels) isEnabled(module string, level Level) bool {
	return level >= l.Get(module)
}

func newZap(module string, encoding Encoding, stdOut, stdErr zapcore.WriteSyncer) *zap.Logger {
	encoder := newZapEncoder(encoding)

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(stdErr),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return lvl >= zapcore.ErrorLevel && levels.isEnabled(module, Level(lvl))
			}),
		),
		zapcore.NewCore(encoder, zapcore.Lock(stdOut),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return lvl < zapcore.ErrorLevel && levels.isEnabled(module, Level(lvl))
			}),
		),
	)

	return zap.New(core, zap.AddCaller()).Named(module)
}

func newZapEncoder(encoding Encoding) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:        timestampKey,
		LevelKey:       levelKey,
		NameKey:        moduleKey,
		CallerKey:      callerKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     messageKey,
		StacktraceKey:  stacktraceKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	switch strings.ToLower(encoding) {
	case JSON:
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder

		return zapcore.NewJSONEncoder(cfg)
	case Console:
		cfg.EncodeName = func(moduleName string, encoder zapcore.PrimitiveArrayEncoder) {
			encoder.AppendString(fmt.Sprintf("[%s]", moduleName))
		}

		return zapcore.NewConsoleEncoder(cfg)
	default:
		panic("unsupported encoding " + encoding)
	}
}

func getOptions(opts []Option) *options {
	options := &options{
		encoding: DefaultEncoding,
		stdOut:   os.Stdout,
		stdErr:   os.Stderr,
	}

	for _, opt := range opts {
		opt(options)
	}

	return options
}
