package stats

import (
	"context"
	"time"

	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/pkg/logger"
)

// Command comando de recálculo de un contador.
type Command struct {
	Type   string
	Period string
}

// Worker consume comandos de recálculo desde una cola acotada en memoria y,
// opcionalmente, dispara una pasada completa en un intervalo fijo. Desacopla la
// latencia de escritura de los ledgers del costo de la agregación: la capa HTTP
// solo encola.
type Worker struct {
	agg      *Aggregator
	cmds     chan Command
	interval time.Duration
	log      *logger.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewWorker construye el worker. queueSize <= 0 usa 64; interval 0 desactiva el
// recálculo programado.
func NewWorker(agg *Aggregator, queueSize int, interval time.Duration, log *logger.Logger) *Worker {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Worker{
		agg:      agg,
		cmds:     make(chan Command, queueSize),
		interval: interval,
		log:      log,
		done:     make(chan struct{}),
	}
}

// Start arranca el consumo en segundo plano.
func (w *Worker) Start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	w.cancel = cancel
	go w.run(ctx)
}

// Stop detiene el worker y espera a que termine el comando en curso.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	<-w.done
}

// Enqueue encola un comando sin bloquear. Devuelve false si la cola está llena;
// el dato es advisory, perder un comando solo retrasa la próxima instantánea.
func (w *Worker) Enqueue(cmd Command) bool {
	select {
	case w.cmds <- cmd:
		return true
	default:
		w.log.Warn().Str("type", cmd.Type).Str("period", cmd.Period).
			Msg("cola de recálculo llena, comando descartado")
		return false
	}
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)

	var tick <-chan time.Time
	if w.interval > 0 {
		t := time.NewTicker(w.interval)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-w.cmds:
			w.execute(ctx, cmd)
		case <-tick:
			w.RecomputeAll(ctx)
		}
	}
}

// RecomputeAll recalcula todos los contadores estándar (cada tipo en cada periodo).
func (w *Worker) RecomputeAll(ctx context.Context) {
	types := []string{entity.StatTypeSales, entity.StatTypeInventory, entity.StatTypeOrders}
	periods := []string{entity.StatPeriodDaily, entity.StatPeriodWeekly, entity.StatPeriodMonthly}
	for _, t := range types {
		for _, p := range periods {
			w.execute(ctx, Command{Type: t, Period: p})
		}
	}
}

func (w *Worker) execute(ctx context.Context, cmd Command) {
	if err := w.agg.Recompute(ctx, cmd.Type, cmd.Period); err != nil {
		w.log.Error().Err(err).Str("type", cmd.Type).Str("period", cmd.Period).
			Msg("recálculo de contador fallido")
	}
}
