package zapobs

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/leofalp/aibridge/providers/observability"
)

// TraceLevel sits one step below zap's DEBUG.
const TraceLevel = zapcore.DebugLevel - 1

// Option configures an Observer.
type Option func(*config)

type config struct {
	logger *zap.Logger
	level  zapcore.Level
	json   bool
	output io.Writer
}

// WithLogger uses an existing zap logger; level, format and output are ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithLevel sets the minimum level of the logger New builds.
func WithLevel(level zapcore.Level) Option {
	return func(c *config) { c.level = level }
}

// WithJSON switches the built logger from the console encoder to JSON.
func WithJSON(json bool) Option {
	return func(c *config) { c.json = json }
}

// WithOutput sets the writer of the built logger.
func WithOutput(output io.Writer) Option {
	return func(c *config) { c.output = output }
}

// Observer implements observability.Provider with a *zap.Logger.
type Observer struct {
	logger *zap.Logger

	mu         sync.Mutex
	counters   map[string]*counter
	histograms map[string]*histogram
}

var _ observability.Provider = (*Observer)(nil)

// New builds an observer. Without WithLogger it writes console output at INFO to stderr.
func New(opts ...Option) *Observer {
	cfg := &config{level: zapcore.InfoLevel, output: os.Stderr}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderCfg.EncodeLevel = encodeLevel
		encoder := zapcore.NewConsoleEncoder(encoderCfg)
		if cfg.json {
			encoder = zapcore.NewJSONEncoder(encoderCfg)
		}
		logger = zap.New(zapcore.NewCore(encoder, zapcore.AddSync(cfg.output), zap.NewAtomicLevelAt(cfg.level)))
	}

	return &Observer{
		logger:     logger,
		counters:   make(map[string]*counter),
		histograms: make(map[string]*histogram),
	}
}

// Logger returns the underlying zap logger.
func (o *Observer) Logger() *zap.Logger {
	return o.logger
}

// Sync flushes buffered log entries.
func (o *Observer) Sync() error {
	return o.logger.Sync()
}

func encodeLevel(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if level == TraceLevel {
		enc.AppendString("trace")
		return
	}
	zapcore.LowercaseLevelEncoder(level, enc)
}

// ParseLevel maps trace, debug, info, warn/warning and error to zap levels.
// Anything else yields INFO.
func ParseLevel(s string) zapcore.Level {
	switch s {
	case "trace":
		return TraceLevel
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func fields(attrs []observability.Attribute) []zap.Field {
	out := make([]zap.Field, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, zap.Any(attr.Key, attr.Value))
	}
	return out
}

// --- LOGGING ---

func (o *Observer) log(level zapcore.Level, msg string, attrs []observability.Attribute) {
	if ce := o.logger.Check(level, msg); ce != nil {
		ce.Write(fields(attrs)...)
	}
}

func (o *Observer) Trace(_ context.Context, msg string, attrs ...observability.Attribute) {
	o.log(TraceLevel, msg, attrs)
}

func (o *Observer) Debug(_ context.Context, msg string, attrs ...observability.Attribute) {
	o.log(zapcore.DebugLevel, msg, attrs)
}

func (o *Observer) Info(_ context.Context, msg string, attrs ...observability.Attribute) {
	o.log(zapcore.InfoLevel, msg, attrs)
}

func (o *Observer) Warn(_ context.Context, msg string, attrs ...observability.Attribute) {
	o.log(zapcore.WarnLevel, msg, attrs)
}

func (o *Observer) Error(_ context.Context, msg string, attrs ...observability.Attribute) {
	o.log(zapcore.ErrorLevel, msg, attrs)
}

// --- TRACING ---

// StartSpan begins a span and stores it in the returned context.
func (o *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	s := &span{
		logger: o.logger.With(zap.String("span", name)),
		start:  time.Now(),
		attrs:  append([]observability.Attribute(nil), attrs...),
	}
	s.logger.Debug("Span started", fields(attrs)...)
	return observability.ContextWithSpan(ctx, s), s
}

type span struct {
	logger *zap.Logger
	start  time.Time

	mu     sync.Mutex
	attrs  []observability.Attribute
	status observability.StatusCode
}

// End logs the span with every attribute collected so far; failed spans are logged at WARN.
func (s *span) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs := append(fields(s.attrs), zap.Duration("duration", time.Since(s.start)))
	if s.status == observability.StatusError {
		s.logger.Warn("Span ended", fs...)
		return
	}
	s.logger.Debug("Span ended", fs...)
}

func (s *span) SetAttributes(attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, attrs...)
}

func (s *span) SetStatus(code observability.StatusCode, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = code
	if description != "" {
		s.attrs = append(s.attrs, observability.String(observability.AttrStatusDescription, description))
	}
}

func (s *span) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, observability.Error(err))
}

func (s *span) AddEvent(name string, attrs ...observability.Attribute) {
	s.logger.Debug("Span event", append(fields(attrs), zap.String("event", name))...)
}

// --- METRICS ---

func (o *Observer) Counter(name string) observability.Counter {
	o.mu.Lock()
	defer o.mu.Unlock()
	c, ok := o.counters[name]
	if !ok {
		c = &counter{name: name, logger: o.logger}
		o.counters[name] = c
	}
	return c
}

func (o *Observer) Histogram(name string) observability.Histogram {
	o.mu.Lock()
	defer o.mu.Unlock()
	h, ok := o.histograms[name]
	if !ok {
		h = &histogram{name: name, logger: o.logger}
		o.histograms[name] = h
	}
	return h
}

// CounterValue returns the running total of the named counter.
func (o *Observer) CounterValue(name string) int64 {
	o.mu.Lock()
	c, ok := o.counters[name]
	o.mu.Unlock()
	if !ok {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

type counter struct {
	name   string
	logger *zap.Logger
	mu     sync.Mutex
	value  int64
}

func (c *counter) Add(_ context.Context, value int64, attrs ...observability.Attribute) {
	c.mu.Lock()
	c.value += value
	current := c.value
	c.mu.Unlock()

	c.logger.Debug("Counter", append(fields(attrs),
		zap.String("metric", c.name), zap.Int64("value", current), zap.Int64("delta", value))...)
}

type histogram struct {
	name   string
	logger *zap.Logger
	mu     sync.Mutex
	count  int64
}

func (h *histogram) Record(_ context.Context, value float64, attrs ...observability.Attribute) {
	h.mu.Lock()
	h.count++
	count := h.count
	h.mu.Unlock()

	h.logger.Debug("Histogram", append(fields(attrs),
		zap.String("metric", h.name), zap.Float64("value", value), zap.Int64("count", count))...)
}
