package recsplit

import (
	"fmt"
	"reflect"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/puzpuzpuz/xsync/v4"
)

var fixedSizerType = reflect.TypeFor[FixedSizer]()

// Registry owns the encoded length of every record kind it has seen.
// Lengths are computed once per kind and never invalidated, so a Registry
// is safe for concurrent use and cheap to share.
type Registry struct {
	lengths *xsync.Map[reflect.Type, int]
	logger  log.Logger
	metrics *Metrics
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewNopLogger()
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(o.registerer)
	}
	return &Registry{
		lengths: xsync.NewMap[reflect.Type, int](),
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// Logger returns the logger diagnostics are written to.
func (r *Registry) Logger() log.Logger { return r.logger }

// Metrics returns the collectors the registry reports into.
func (r *Registry) Metrics() *Metrics { return r.metrics }

// Kinds returns the number of record kinds with a cached length.
func (r *Registry) Kinds() int { return r.lengths.Size() }

// Lookup returns the cached encoded length of kind, if any.
func (r *Registry) Lookup(kind reflect.Type) (int, bool) {
	return r.lengths.Load(kind)
}

// EncodedLength returns the number of bytes one T occupies when encoded.
//
// A static FixedSize declaration is used when present. Otherwise a zero
// sample is marshalled once, and a warning suggesting the declaration is
// logged. Either way the result is cached in r, so subsequent calls are a
// single map lookup.
func EncodedLength[T any, PT Record[T]](r *Registry) (int, error) {
	if r == nil {
		return 0, ErrNilRegistry
	}
	kind := reflect.TypeFor[T]()

	// Attempt to load from the concurrent-safe cache first for performance.
	if size, ok := r.lengths.Load(kind); ok {
		return size, nil
	}

	// The bucket stays locked while measuring, so a kind is measured at most once.
	// A failed measurement is cancelled and therefore not cached.
	var err error
	size, _ := r.lengths.LoadOrCompute(kind, func() (int, bool) {
		var n int
		n, err = measure[T, PT](r, kind)
		return n, err != nil
	})
	return size, err
}

func measure[T any, PT Record[T]](r *Registry, kind reflect.Type) (int, error) {
	if kind.Implements(fixedSizerType) {
		var zero T
		return checkLength(kind, any(zero).(FixedSizer).FixedSize())
	}
	if reflect.PointerTo(kind).Implements(fixedSizerType) {
		return checkLength(kind, any(PT(nil)).(FixedSizer).FixedSize())
	}

	sample, err := PT(new(T)).MarshalBinary()
	if err != nil {
		return 0, fmt.Errorf("%w: %v sample: %w", ErrInvalidLength, kind, err)
	}
	size, err := checkLength(kind, len(sample))
	if err != nil {
		return 0, err
	}

	level.Warn(r.logger).Log(
		"msg", "record kind has no static size declaration, measured from a sample",
		"kind", kind.String(),
		"size", size,
		"hint", fmt.Sprintf("add FixedSize() int { return %d } to %v", size, kind),
	)
	r.metrics.sampleFallbacks.WithLabelValues(kind.String()).Inc()
	return size, nil
}

func checkLength(kind reflect.Type, size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("%w: %v encodes to %d bytes", ErrInvalidLength, kind, size)
	}
	return size, nil
}
