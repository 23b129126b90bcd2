package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"mentorhub/config"
	"mentorhub/services/scheduling"

	"github.com/hibiken/asynq"
)

const (
	TypeCompleteSweep = "booking:complete_sweep"
	TypeReminderSweep = "booking:reminder_sweep"
)

// InitSchedulingWorker runs the async worker and its periodic scheduler in
// the background. The complete sweep drives confirmed bookings past their
// end time to completed; the reminder sweep notifies upcoming sessions.
func InitSchedulingWorker(engine scheduling.SchedulingEngine) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCompleteSweep, handleCompleteSweep(engine))
	mux.HandleFunc(TypeReminderSweep, handleReminderSweep(engine))

	interval := config.AppConfig.SweepIntervalMinutes
	if interval < 1 {
		interval = 1
	}
	spec := fmt.Sprintf("@every %dm", interval)

	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeCompleteSweep, nil)); err != nil {
		log.Fatalf("[SchedulingWorker] failed to register complete sweep: %v", err)
	}
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeReminderSweep, nil)); err != nil {
		log.Fatalf("[SchedulingWorker] failed to register reminder sweep: %v", err)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[SchedulingWorker] scheduler stopped: %v", err)
		}
	}()

	// Start async worker with retry logic.
	go func() {
		log.Println("[SchedulingWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SchedulingWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SchedulingWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleCompleteSweep(engine scheduling.SchedulingEngine) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		n, err := engine.CompleteElapsed(ctx)
		if err != nil {
			log.Printf("[CompleteSweep] sweep failed: %v", err)
			return err
		}
		if n > 0 {
			log.Printf("[CompleteSweep] completed %d elapsed bookings", n)
		}
		return nil
	}
}

func handleReminderSweep(engine scheduling.SchedulingEngine) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
		if lead <= 0 {
			lead = 30 * time.Minute
		}
		n, err := engine.RemindUpcoming(ctx, lead)
		if err != nil {
			log.Printf("[ReminderSweep] sweep failed: %v", err)
			return err
		}
		if n > 0 {
			log.Printf("[ReminderSweep] sent %d session reminders", n)
		}
		return nil
	}
}
