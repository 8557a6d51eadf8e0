package interact

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"exhibition/internal/scenegraph"
	"exhibition/internal/signal"
)

// Config controls the gaze raycast.
type Config struct {
	Interval    time.Duration `mapstructure:"interval"`
	MaxDistance float32       `mapstructure:"maxDistance"`
}

// DefaultConfig returns a 120 ms cadence and a reach of 10 units.
func DefaultConfig() Config {
	return Config{Interval: 120 * time.Millisecond, MaxDistance: 10}
}

// Channels are the cross-boundary states. The service is the only writer of LookingAt and Target;
// the presentation layer is the only writer of the state behind DetailOpen.
type Channels struct {
	LookingAt  *signal.State[bool]
	Target     *signal.State[*scenegraph.Metadata]
	DetailOpen signal.Reader[bool]
}

// NewChannels returns the two service-owned states and binds detailOpen as the read side of the
// UI-owned flag.
func NewChannels(detailOpen signal.Reader[bool]) Channels {
	return Channels{
		LookingAt:  signal.New(false),
		Target:     signal.New[*scenegraph.Metadata](nil),
		DetailOpen: detailOpen,
	}
}

// Target is a resolved gaze or click result.
type Target struct {
	Owner    *scenegraph.Node
	Hit      *scenegraph.Node
	Kind     scenegraph.Kind
	Metadata *scenegraph.Metadata
	Distance float32
}

// Service evaluates what the viewer is looking at on a throttled cadence and publishes it.
type Service struct {
	reg *Registry
	ch  Channels
	cfg Config
	log zerolog.Logger

	elapsed float32
	primed  bool
	current Target
	has     bool

	ctx         context.Context
	evaluations metric.Int64Counter
	resolved    metric.Int64Counter
}

// NewService returns a service querying reg and publishing on ch.
func NewService(reg *Registry, ch Channels, cfg Config, log zerolog.Logger) *Service {
	meter := otel.Meter("exhibition/interact")
	evals, _ := meter.Int64Counter("interact.raycast.evaluations",
		metric.WithDescription("gaze raycasts run"))
	resolved, _ := meter.Int64Counter("interact.raycast.targets",
		metric.WithDescription("gaze raycasts that resolved an artwork"))
	return &Service{
		reg:         reg,
		ch:          ch,
		cfg:         cfg,
		log:         log,
		ctx:         context.Background(),
		evaluations: evals,
		resolved:    resolved,
	}
}

// Update advances the throttle by dt seconds and evaluates ray once at least Interval of
// simulated time has passed since the last evaluation. The first call always evaluates.
func (s *Service) Update(dt float32, ray scenegraph.Ray) {
	if s.primed {
		s.elapsed += dt
		if s.elapsed < float32(s.cfg.Interval.Seconds()) {
			return
		}
	}
	s.primed = true
	s.elapsed = 0
	s.Evaluate(ray)
}

// Evaluate runs the gaze raycast now and publishes the result. The nearest hit within
// MaxDistance whose owner carries metadata wins; hits without metadata are skipped. With no
// eligible hit the target is cleared, unless the detail view is open.
func (s *Service) Evaluate(ray scenegraph.Ray) (Target, bool) {
	t, ok := s.cast(ray, func(owner *scenegraph.Node) bool {
		return owner.Interactable.Metadata != nil
	})

	if s.evaluations != nil {
		s.evaluations.Add(s.ctx, 1, metric.WithAttributes(attribute.Bool("hit", ok)))
	}

	if ok {
		if s.resolved != nil {
			s.resolved.Add(s.ctx, 1)
		}
		if !s.has || s.current.Owner != t.Owner {
			s.log.Debug().Str("node", t.Owner.Name).Float32("distance", t.Distance).Msg("gaze target")
		}
		s.current, s.has = t, true
		s.ch.LookingAt.Set(true)
		s.ch.Target.Set(t.Metadata)
		return t, true
	}

	s.ch.LookingAt.Set(false)
	if s.ch.DetailOpen.Get() {
		return Target{}, false
	}
	if s.has {
		s.log.Debug().Str("node", s.current.Owner.Name).Msg("gaze target cleared")
	}
	s.current, s.has = Target{}, false
	s.ch.Target.Set(nil)
	return Target{}, false
}

// Current returns the last published target while something is targeted.
func (s *Service) Current() (Target, bool) {
	return s.current, s.has && s.ch.LookingAt.Get()
}

// Click resolves a primary click at pointer. While the gaze holds an artwork, the click opens
// that artwork wherever the pointer is. Otherwise the nearest seat within MaxDistance along
// pointer is returned. It publishes nothing.
func (s *Service) Click(pointer scenegraph.Ray) (Target, bool) {
	if t, ok := s.Current(); ok && t.Kind == scenegraph.KindArtwork {
		return t, true
	}
	return s.cast(pointer, func(owner *scenegraph.Node) bool {
		return owner.Interactable.Kind == scenegraph.KindSeat
	})
}

func (s *Service) cast(ray scenegraph.Ray, eligible func(owner *scenegraph.Node) bool) (Target, bool) {
	candidates := s.reg.Nodes()
	if len(candidates) == 0 {
		// An empty cache may just be stale; query the whole scene rather than report nothing.
		if g := s.reg.Graph(); g != nil {
			candidates = g.Meshes()
		}
	}
	for _, h := range scenegraph.Intersect(candidates, ray) {
		if h.Distance > s.cfg.MaxDistance {
			break
		}
		owner := s.reg.Resolve(h.Node)
		if owner == nil || !eligible(owner) {
			continue
		}
		return Target{
			Owner:    owner,
			Hit:      h.Node,
			Kind:     owner.Interactable.Kind,
			Metadata: owner.Interactable.Metadata,
			Distance: h.Distance,
		}, true
	}
	return Target{}, false
}
