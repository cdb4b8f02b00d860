package scheduler

import (
	"context"
	"fmt"

	"leadreach_backend/internal/crm"
	"leadreach_backend/internal/leads/handler"
	"leadreach_backend/internal/leads/repository"
	"leadreach_backend/internal/leads/service"
	"leadreach_backend/platform/config"
	"leadreach_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Worker consumes queued tasks: bulk outreach delivery, lead
// re-enrichment and CRM synchronization.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	leads     *service.Service
	deliverer handler.OutreachDeliverer
	crm       *crm.Service
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, leads *service.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		leads:  leads,
		log:    log,
	}

	mux.HandleFunc(TaskBulkOutreach, w.handleBulkOutreach)
	mux.HandleFunc(TaskLeadEnrich, w.handleLeadEnrich)
	mux.HandleFunc(TaskCRMSync, w.handleCRMSync)

	return w, nil
}

// SetDeliverer enables outreach email delivery for bulk tasks.
func (w *Worker) SetDeliverer(deliverer handler.OutreachDeliverer) {
	w.deliverer = deliverer
}

// SetCRMService enables CRM sync tasks.
func (w *Worker) SetCRMService(svc *crm.Service) {
	w.crm = svc
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleBulkOutreach(ctx context.Context, task *asynq.Task) error {
	if w.deliverer == nil {
		w.log.Warn("bulk outreach task skipped, email delivery not configured")
		return nil
	}

	if _, err := ParseBulkOutreachPayload(task); err != nil {
		return err
	}

	leads, err := w.leads.ListHighValue(ctx)
	if err != nil {
		return err
	}

	sent := 0
	failed := 0
	for _, lead := range leads {
		if err := w.sendOutreach(ctx, lead); err != nil {
			failed++
			w.log.Error("bulk outreach delivery failed",
				"lead_id", lead.ID,
				"recipient", lead.Email,
				"error", err,
			)
			continue
		}
		sent++
	}

	w.log.Info("bulk outreach run finished", "candidates", len(leads), "sent", sent, "failed", failed)
	return nil
}

// sendOutreach delivers the stored outreach message, composing one first
// when the lead does not have one yet.
func (w *Worker) sendOutreach(ctx context.Context, lead repository.Lead) error {
	if lead.OutreachMessage == nil || lead.OutreachSubject == nil {
		composed, err := w.leads.ComposeOutreach(ctx, lead.ID, false)
		if err != nil {
			return err
		}
		lead = composed
	}

	if err := w.deliverer.SendOutreach(ctx, lead.Email, lead.Name, *lead.OutreachSubject, *lead.OutreachMessage); err != nil {
		return err
	}

	source := "template"
	if lead.OutreachSource != nil {
		source = *lead.OutreachSource
	}
	return w.leads.RecordOutreachEmail(ctx, lead.ID, lead.Email, *lead.OutreachSubject, *lead.OutreachMessage, source)
}

func (w *Worker) handleLeadEnrich(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadEnrichPayload(task)
	if err != nil {
		return err
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return err
	}

	if _, err := w.leads.Enrich(ctx, leadID); err != nil {
		return err
	}

	_, err = w.leads.ComposeOutreach(ctx, leadID, false)
	return err
}

func (w *Worker) handleCRMSync(ctx context.Context, task *asynq.Task) error {
	if w.crm == nil {
		w.log.Warn("crm sync task skipped, no crm providers configured")
		return nil
	}

	payload, err := ParseCRMSyncPayload(task)
	if err != nil {
		return err
	}

	_, err = w.crm.SyncAll(ctx, payload.Provider)
	return err
}
