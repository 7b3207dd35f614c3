package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/input"
	"github.com/san-kum/ballpit/internal/physics"
)

// World owns the bodies and the interaction state of one simulation.
// It is not safe for concurrent use; readers on other goroutines should use
// Snapshot between frames.
type World struct {
	params physics.Params
	cfg    Config
	bounds physics.Bounds
	keys   input.Keymap

	bodies []*physics.Body
	input  input.State
	tether physics.Tether

	rng    *rand.Rand
	logger *zap.Logger

	metrics   []Metric
	observers []Observer

	time  float64
	steps int
}

type Option func(*World)

func WithLogger(l *zap.Logger) Option {
	return func(w *World) { w.logger = l }
}

func WithSeed(seed int64) Option {
	return func(w *World) { w.rng = rand.New(rand.NewSource(seed)) }
}

func WithConfig(cfg Config) Option {
	return func(w *World) { w.cfg = cfg }
}

func WithKeymap(k input.Keymap) Option {
	return func(w *World) { w.keys = k }
}

// WithBodies replaces the seed bodies.
func WithBodies(bodies ...*physics.Body) Option {
	return func(w *World) { w.bodies = append([]*physics.Body(nil), bodies...) }
}

func WithMetric(m Metric) Option {
	return func(w *World) { w.metrics = append(w.metrics, m) }
}

func WithObserver(o Observer) Option {
	return func(w *World) { w.observers = append(w.observers, o) }
}

// SeedBodies returns the three bodies a new world starts with.
func SeedBodies() []*physics.Body {
	return []*physics.Body{
		physics.NewBody(3, dynamo.V2(0, -25)),
		physics.NewBody(3, dynamo.V2(-45, 20)),
		physics.NewBody(3, dynamo.V2(30, 50)),
	}
}

func New(params physics.Params, bounds physics.Bounds, opts ...Option) (*World, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if bounds == nil {
		return nil, fmt.Errorf("bounds are required: %w", dynamo.ErrInvalidConfig)
	}

	w := &World{
		params: params,
		cfg:    DefaultConfig(),
		bounds: bounds,
		keys:   input.DefaultKeymap(),
		bodies: SeedBodies(),
		rng:    rand.New(rand.NewSource(1)),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.cfg.FrameDt <= 0 {
		return nil, fmt.Errorf("frame_dt must be positive, got %f: %w", w.cfg.FrameDt, dynamo.ErrParameterBounds)
	}
	if err := w.keys.Validate(); err != nil {
		return nil, err
	}
	if w.cfg.Substeps < 1 {
		return nil, fmt.Errorf("substeps must be at least 1, got %d: %w", w.cfg.Substeps, dynamo.ErrParameterBounds)
	}

	return w, nil
}

// Update advances the world by one sub-step of length dt.
func (w *World) Update(dt float64) {
	mode := w.input.Mode
	cursor := w.input.Pointer.Pos

	if mode.Constrained {
		w.tether.Capture(w.bodies, cursor)
	}

	physics.ResolveCollisions(w.bodies, w.params.Restitution)
	physics.ResolveBoundary(w.bodies, w.bounds)

	switch {
	case mode.Fixed:
		physics.DampVelocities(w.bodies, w.params.BoundaryDamp, dt)
	case mode.Pulling:
		physics.ApplyPull(w.bodies, cursor, w.params.PullRate, dt)
	case mode.Pushing:
		physics.ApplyPush(w.bodies, cursor, w.params.PushRate, dt)
	default:
		physics.ApplySwirl(w.bodies, w.params.ForceFactor, dt)
	}

	physics.Integrate(w.bodies, dt)

	if mode.Constrained {
		if w.tether.Len() != len(w.bodies) {
			w.logger.Fatal("constraint snapshot out of sync",
				zap.Int("step", w.steps),
				zap.Int("captured", w.tether.Len()),
				zap.Int("bodies", len(w.bodies)))
		}
		w.tether.Enforce(w.bodies, cursor)
	}

	physics.ResolveBoundary(w.bodies, w.bounds)

	if w.input.Pointer.RightDown {
		w.despawn(cursor)
	}

	w.time += dt
	w.steps++

	for _, m := range w.metrics {
		m.Observe(w.bodies, w.time)
	}
	for _, o := range w.observers {
		o.OnStep(w.bodies, dt)
	}
}

// Frame runs the configured number of sub-steps over frameDt and then
// records trails.
func (w *World) Frame(frameDt float64) {
	n := w.cfg.Substeps
	dt := frameDt / float64(n)
	for i := 0; i < n; i++ {
		w.Update(dt)
	}
	for _, b := range w.bodies {
		b.RecordTrail(w.params.TrailCapacity)
	}
}

// Step runs one frame with the configured frame time.
func (w *World) Step() {
	w.Frame(w.cfg.FrameDt)
}

// HandleEvent applies an input event. Call it between frames only.
func (w *World) HandleEvent(ev input.Event) {
	next, fx := input.Transition(w.input, ev, w.keys)
	w.input = next

	if fx.Spawn {
		w.Spawn(next.Pointer.Pos)
	}
	if fx.Nudge {
		physics.Nudge(w.bodies, next.Pointer.Pos, w.params.NudgeSpeed, w.params.NudgeBlend)
	}
	if fx.Resize != 0 {
		w.Resize(fx.Resize)
	}
}

// Spawn adds a body with a randomized radius at pos.
func (w *World) Spawn(pos dynamo.Vec2) *physics.Body {
	r := w.params.SpawnRadius + w.params.SpawnSpread*w.rng.Float64()
	b := physics.NewBody(r, pos)
	w.bodies = append(w.bodies, b)
	w.logger.Debug("spawned body",
		zap.Float64("radius", r),
		zap.Float64("x", pos.X),
		zap.Float64("y", pos.Y),
		zap.Int("count", len(w.bodies)))
	return b
}

// Scatter spawns n bodies at random points inside the bounds with random
// velocities of up to maxSpeed.
func (w *World) Scatter(n int, maxSpeed float64) {
	lo, hi := physics.MinMax(w.bounds)
	inset := w.params.SpawnRadius + w.params.SpawnSpread
	for i := 0; i < n; i++ {
		pos := dynamo.V2(
			lo.X+inset+w.rng.Float64()*math.Max(0, hi.X-lo.X-2*inset),
			lo.Y+inset+w.rng.Float64()*math.Max(0, hi.Y-lo.Y-2*inset),
		)
		b := w.Spawn(pos)
		angle := 2 * math.Pi * w.rng.Float64()
		b.Vel = dynamo.V2(math.Cos(angle), math.Sin(angle)).Scale(maxSpeed * w.rng.Float64())
	}
}

// Resize grows (dir > 0) or shrinks (dir < 0) every body under the cursor
// by one step. It returns the number of bodies changed.
func (w *World) Resize(dir int) int {
	delta := float64(dir) * w.params.ResizeStep
	n := 0
	for _, b := range w.bodies {
		if b.ContainsPoint(w.input.Pointer.Pos) {
			b.Grow(delta, w.params.RadiusMin, w.params.RadiusMax)
			n++
		}
	}
	return n
}

func (w *World) despawn(p dynamo.Vec2) {
	kept := w.bodies[:0]
	for _, b := range w.bodies {
		if !b.ContainsPoint(p) {
			kept = append(kept, b)
		}
	}
	removed := len(w.bodies) - len(kept)
	for i := len(kept); i < len(w.bodies); i++ {
		w.bodies[i] = nil
	}
	w.bodies = kept
	if removed > 0 {
		w.logger.Debug("despawned bodies", zap.Int("removed", removed), zap.Int("count", len(w.bodies)))
	}
}

// Validate returns a SimulationError for the first body with a non-finite
// position or velocity.
func (w *World) Validate() error {
	for i, b := range w.bodies {
		if !b.IsFinite() {
			return &dynamo.SimulationError{Step: w.steps, Time: w.time, Body: i, Wrapped: dynamo.ErrInvalidState}
		}
	}
	return nil
}

// FrameHook is called before frame i of a run. It may feed input events
// to the world.
type FrameHook func(i int)

// Run advances the world frames times, validating after each frame.
func (w *World) Run(ctx context.Context, frames int) (*Result, error) {
	return w.RunWith(ctx, frames, nil)
}

// RunWith is Run with a hook called before every frame. hook may be nil.
func (w *World) RunWith(ctx context.Context, frames int, hook FrameHook) (*Result, error) {
	for _, m := range w.metrics {
		m.Reset()
	}

	res := &Result{
		Energy:  make([]float64, 0, frames),
		Metrics: make(map[string]float64),
	}

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		if hook != nil {
			hook(i)
		}
		w.Step()
		if err := w.Validate(); err != nil {
			return res, err
		}

		res.Frames++
		res.Energy = append(res.Energy, w.KineticEnergy())
	}

	res.Time = w.time
	res.Bodies = len(w.bodies)
	for _, m := range w.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}

// Snapshot returns deep copies of the bodies.
func (w *World) Snapshot() []physics.Body {
	out := make([]physics.Body, len(w.bodies))
	for i, b := range w.bodies {
		out[i] = b.Clone()
	}
	return out
}

func (w *World) KineticEnergy() float64 {
	total := 0.0
	for _, b := range w.bodies {
		total += b.KineticEnergy()
	}
	return total
}

func (w *World) Len() int                   { return len(w.bodies) }
func (w *World) Input() input.State         { return w.input }
func (w *World) Mode() input.Mode           { return w.input.Mode }
func (w *World) Pointer() input.Pointer     { return w.input.Pointer }
func (w *World) Time() float64              { return w.time }
func (w *World) Steps() int                 { return w.steps }
func (w *World) Params() physics.Params     { return w.params }
func (w *World) Config() Config             { return w.cfg }
func (w *World) Bounds() physics.Bounds     { return w.bounds }
func (w *World) Keymap() input.Keymap       { return w.keys }
func (w *World) SetBounds(b physics.Bounds) { w.bounds = b }
