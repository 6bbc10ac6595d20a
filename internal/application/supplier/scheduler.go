package supplier

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/dropforge-api/internal/application/dto"
	"github.com/jhoicas/dropforge-api/pkg/logger"
)

// Syncer ejecuta una sincronización.
type Syncer interface {
	Sync(ctx context.Context) (dto.SyncStats, error)
}

// Ticker abstrae time.Ticker.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock fuente de tiempo inyectable para el scheduler.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

// RealClock usa el reloj del sistema.
type RealClock struct{}

// NewTicker implementa Clock.
func (RealClock) NewTicker(d time.Duration) Ticker { return realTicker{time.NewTicker(d)} }

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// Scheduler dispara la sincronización cada Interval mientras el proceso vive.
// Cada disparo corre en su propia goroutine: si una pasada sigue en curso, la siguiente no la espera.
type Scheduler struct {
	syncer     Syncer
	interval   time.Duration
	clock      Clock
	runOnStart bool
	log        *logger.Logger

	runs    sync.WaitGroup
	started atomic.Bool
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewScheduler construye el scheduler. clock nil usa RealClock.
func NewScheduler(syncer Syncer, interval time.Duration, runOnStart bool, clock Clock, log *logger.Logger) *Scheduler {
	if clock == nil {
		clock = RealClock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		syncer:     syncer,
		interval:   interval,
		clock:      clock,
		runOnStart: runOnStart,
		log:        log.Component("supplier_scheduler"),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start lanza el bucle en segundo plano. Termina con Stop o al cancelarse ctx.
func (s *Scheduler) Start(ctx context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	ticker := s.clock.NewTicker(s.interval)
	if s.runOnStart {
		s.trigger(ctx)
	}
	go func() {
		defer close(s.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C():
				s.trigger(ctx)
			case <-s.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	s.log.Info().Dur("interval", s.interval).Msg("scheduler de sincronización iniciado")
}

// Stop detiene el bucle y espera a que terminen las pasadas en curso.
func (s *Scheduler) Stop() {
	if !s.started.Load() {
		return
	}
	s.once.Do(func() { close(s.stop) })
	<-s.done
	s.runs.Wait()
	s.log.Info().Msg("scheduler de sincronización detenido")
}

func (s *Scheduler) trigger(ctx context.Context) {
	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		if _, err := s.syncer.Sync(ctx); err != nil {
			s.log.Error().Err(err).Msg("sincronización programada falló")
		}
	}()
}
