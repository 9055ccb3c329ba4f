package ecs

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	StageCount      int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Stage          int
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (st *systemStatsInternal) record(duration time.Duration) {
	st.executionCount++
	st.lastDuration = duration
	st.totalDuration += duration

	if duration < st.minDuration {
		st.minDuration = duration
	}
	if duration > st.maxDuration {
		st.maxDuration = duration
	}
}

type systemEntry struct {
	system     System
	name       string
	index      int
	access     Access
	after      []System
	afterNames []string
	deps       []*systemEntry
	stage      int
	stats      systemStatsInternal
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithLogger sets the logger used for build diagnostics.
func WithLogger(logger *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithParallel runs the systems of each stage concurrently.
func WithParallel(parallel bool) SchedulerOption {
	return func(s *Scheduler) {
		s.parallel = parallel
	}
}

// RegisterOption configures a single system registration.
type RegisterOption func(*systemEntry)

// RunsAfter orders the system after each of the given, already or later registered, systems.
func RunsAfter(systems ...System) RegisterOption {
	return func(e *systemEntry) {
		e.after = append(e.after, systems...)
	}
}

// RunsAfterNamed orders the system after the systems registered under the given names.
func RunsAfterNamed(names ...string) RegisterOption {
	return func(e *systemEntry) {
		e.afterNames = append(e.afterNames, names...)
	}
}

// WithName overrides the name derived from the system's type.
func WithName(name string) RegisterOption {
	return func(e *systemEntry) {
		e.name = name
	}
}

// WithAccess adds to the access collected from the system's fields.
func WithAccess(access Access) RegisterOption {
	return func(e *systemEntry) {
		e.access = e.access.Merge(access)
	}
}

// fieldInitializer is implemented by Query, Read and Write fields.
type fieldInitializer interface {
	Init(storage *Storage)
}

// Scheduler manages and executes systems in dependency order.
type Scheduler struct {
	storage  *Storage
	logger   *zap.Logger
	parallel bool
	entries  []*systemEntry
	order    []*systemEntry
	stages   [][]*systemEntry
	built    bool
	borrows  *borrowTracker
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		storage: storage,
		logger:  zap.NewNop(),
		borrows: newBorrowTracker(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a system to the scheduler, initializes its Query, Read and
// Write fields and records the access they declare.
func (s *Scheduler) Register(system System, opts ...RegisterOption) {
	entry := &systemEntry{
		system: system,
		index:  len(s.entries),
		stats:  systemStatsInternal{minDuration: time.Duration(1<<63 - 1)},
	}
	entry.access = s.initializeFields(system)
	if declarer, ok := system.(AccessDeclarer); ok {
		entry.access = entry.access.Merge(declarer.Access())
	}
	for _, opt := range opts {
		opt(entry)
	}
	if entry.name == "" {
		entry.name = s.uniqueName(systemTypeName(system))
	}

	s.entries = append(s.entries, entry)
	s.built = false
}

func systemTypeName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

func (s *Scheduler) uniqueName(base string) string {
	name := base
	for n := 2; s.lookupName(name) != nil; n++ {
		name = fmt.Sprintf("%s#%d", base, n)
	}
	return name
}

func (s *Scheduler) lookupName(name string) *systemEntry {
	for _, e := range s.entries {
		if e.name == name {
			return e
		}
	}
	return nil
}

func (s *Scheduler) lookupSystem(system System) *systemEntry {
	t := reflect.TypeOf(system)
	if t == nil || !t.Comparable() {
		return nil
	}
	for _, e := range s.entries {
		if reflect.TypeOf(e.system) == t && e.system == system {
			return e
		}
	}
	return nil
}

func (s *Scheduler) initializeFields(system System) Access {
	var access Access

	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return access
	}

	systemType := systemValue.Type()

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()
		if !strings.HasPrefix(typeName, "Query[") &&
			!strings.HasPrefix(typeName, "Read[") &&
			!strings.HasPrefix(typeName, "Write[") {
			continue
		}

		initializer, ok := field.Addr().Interface().(fieldInitializer)
		if !ok {
			panic("Init method not found on system field: " + fieldType.Name)
		}
		initializer.Init(s.storage)

		if a, ok := field.Addr().Interface().(accessor); ok {
			access = access.Merge(a.access())
		}
	}

	return access
}

// Build validates dependencies and partitions the systems into stages.
// Every problem found is reported in the returned error.
func (s *Scheduler) Build() error {
	var errs error

	names := make(map[string]bool, len(s.entries))
	for _, e := range s.entries {
		if names[e.name] {
			errs = multierr.Append(errs, fmt.Errorf("duplicate system name %q", e.name))
		}
		names[e.name] = true
	}

	for _, e := range s.entries {
		e.deps = e.deps[:0]
		for _, other := range e.after {
			dep := s.lookupSystem(other)
			if dep == nil {
				errs = multierr.Append(errs, fmt.Errorf("system %s runs after unregistered system %T", e.name, other))
				continue
			}
			e.deps = append(e.deps, dep)
		}
		for _, name := range e.afterNames {
			dep := s.lookupName(name)
			if dep == nil {
				errs = multierr.Append(errs, fmt.Errorf("system %s runs after unknown system %q", e.name, name))
				continue
			}
			e.deps = append(e.deps, dep)
		}
	}

	order, err := s.topologicalOrder()
	if err != nil {
		errs = multierr.Append(errs, err)
	}
	if errs != nil {
		return errs
	}

	ancestors := make(map[*systemEntry]map[*systemEntry]bool, len(order))
	for _, e := range order {
		set := make(map[*systemEntry]bool)
		for _, dep := range e.deps {
			set[dep] = true
			for a := range ancestors[dep] {
				set[a] = true
			}
		}
		ancestors[e] = set
	}

	stageCount := 0
	for i, e := range order {
		e.stage = 0
		for _, dep := range e.deps {
			e.stage = max(e.stage, dep.stage+1)
		}
		for _, earlier := range order[:i] {
			conflicts := e.access.Conflicts(earlier.access)
			if len(conflicts) == 0 {
				continue
			}
			if !ancestors[e][earlier] {
				if s.parallel {
					errs = multierr.Append(errs, fmt.Errorf("systems %s and %s conflict without an ordering: %s",
						earlier.name, e.name, strings.Join(conflicts, ", ")))
					continue
				}
				s.logger.Debug("conflict resolved by registration order",
					zap.String("first", earlier.name),
					zap.String("second", e.name),
					zap.Strings("conflicts", conflicts))
			}
			e.stage = max(e.stage, earlier.stage+1)
		}
		stageCount = max(stageCount, e.stage+1)
	}
	if errs != nil {
		return errs
	}

	s.order = order
	s.stages = make([][]*systemEntry, stageCount)
	for _, e := range order {
		s.stages[e.stage] = append(s.stages[e.stage], e)
	}
	s.built = true

	s.logger.Info("scheduler built",
		zap.Int("systems", len(order)),
		zap.Int("stages", stageCount),
		zap.Bool("parallel", s.parallel),
		zap.Strings("order", s.Order()))
	return nil
}

// topologicalOrder is Kahn's algorithm, choosing the earliest registered
// ready system at every step.
func (s *Scheduler) topologicalOrder() ([]*systemEntry, error) {
	pending := make(map[*systemEntry]int, len(s.entries))
	for _, e := range s.entries {
		pending[e] = len(e.deps)
	}

	order := make([]*systemEntry, 0, len(s.entries))
	placed := make(map[*systemEntry]bool, len(s.entries))
	for len(order) < len(s.entries) {
		var next *systemEntry
		for _, e := range s.entries {
			if !placed[e] && pending[e] == 0 {
				next = e
				break
			}
		}
		if next == nil {
			var cycle []string
			for _, e := range s.entries {
				if !placed[e] {
					cycle = append(cycle, e.name)
				}
			}
			return nil, fmt.Errorf("dependency cycle among systems: %s", strings.Join(cycle, ", "))
		}

		placed[next] = true
		order = append(order, next)
		for _, e := range s.entries {
			for _, dep := range e.deps {
				if dep == next {
					pending[e]--
				}
			}
		}
	}
	return order, nil
}

// Order returns the system names in dependency order, registration order
// breaking ties. Sequential schedulers execute exactly this order. It is
// empty until Build succeeds.
func (s *Scheduler) Order() []string {
	var names []string
	for _, e := range s.order {
		names = append(names, e.name)
	}
	return names
}

// Stages returns the system names grouped by stage. Only parallel
// schedulers execute by stage.
func (s *Scheduler) Stages() [][]string {
	out := make([][]string, len(s.stages))
	for i, stage := range s.stages {
		for _, e := range stage {
			out[i] = append(out[i], e.name)
		}
	}
	return out
}

// Once executes all registered systems once with the given delta time.
// Structural changes queued by the systems are applied by Storage.Maintain,
// not here.
func (s *Scheduler) Once(dt float64) {
	if !s.built {
		if err := s.Build(); err != nil {
			panic("ecs: scheduler build failed: " + err.Error())
		}
	}

	frame := newUpdateFrame(dt, s.storage)

	if !s.parallel {
		for _, e := range s.order {
			s.execute(e, frame)
		}
		return
	}

	for _, stage := range s.stages {
		if len(stage) == 1 {
			for _, e := range stage {
				s.execute(e, frame)
			}
			continue
		}

		var g errgroup.Group
		for _, e := range stage {
			g.Go(func() error {
				s.execute(e, frame)
				return nil
			})
		}
		_ = g.Wait()
	}
}

func (s *Scheduler) execute(e *systemEntry, frame *UpdateFrame) {
	s.borrows.acquire(e.name, e.access)
	defer s.borrows.release(e.access)

	start := time.Now()
	e.system.Execute(frame)
	e.stats.record(time.Since(start))
}

// Run executes all systems repeatedly at the given interval until the context
// is cancelled, applying queued structural changes after every frame.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
			s.storage.Maintain()
		}
	}
}

// GetStats returns statistics about system execution in registration order.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.entries),
		StageCount:  len(s.stages),
		Systems:     make([]SystemStats, len(s.entries)),
	}

	var totalExecs int64
	for i, e := range s.entries {
		internal := e.stats
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           e.name,
			Stage:          e.stage,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
