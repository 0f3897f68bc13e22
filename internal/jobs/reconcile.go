package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Reconciler é implementado por usecase/subscription.Reconcile.
type Reconciler interface {
	Execute(ctx context.Context) (int, error)
}

const runTimeout = 5 * time.Minute

// StartReconcile agenda a reconciliação de assinaturas. Expressão vazia
// desativa o job e devolve nil.
func StartReconcile(spec string, uc Reconciler) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	if _, err := c.AddFunc(spec, func() { runReconcile(uc) }); err != nil {
		return nil, err
	}

	c.Start()
	log.Info().Str("schedule", spec).Msg("reconcile job scheduled")
	return c, nil
}

func runReconcile(uc Reconciler) {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	updated, err := uc.Execute(ctx)
	if err != nil {
		log.Error().Err(err).Int("updated", updated).Msg("reconcile finished with errors")
		return
	}
	log.Info().Int("updated", updated).Msg("reconcile finished")
}
