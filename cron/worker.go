package cron

import (
	"context"
	"time"

	"courier/config"
	"courier/services/reminder"
	"courier/services/tasks"
	"courier/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitReminderWorker runs the async sweep worker in background.
func InitReminderWorker(remSvc reminder.ReminderService) {
	log := utils.GetLogger()

	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReminderSweep, handleSweepTask(remSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Info("reminder worker starting")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Error("reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Int("max_attempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					log.Fatal("reminder worker: max retry attempts reached")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// InitSweepScheduler enqueues a sweep task on the configured cron spec. The
// sweep itself never self-schedules; this is its external trigger.
func InitSweepScheduler() {
	log := utils.GetLogger()

	scheduler := asynq.NewScheduler(redisOpts(), &asynq.SchedulerOpts{
		Location: time.UTC,
	})

	if _, err := scheduler.Register(config.AppConfig.ReminderSweepCron, tasks.NewSweepTask()); err != nil {
		log.Fatal("failed to register sweep schedule",
			zap.String("spec", config.AppConfig.ReminderSweepCron), zap.Error(err))
	}

	go func() {
		log.Info("sweep scheduler starting", zap.String("spec", config.AppConfig.ReminderSweepCron))
		if err := scheduler.Run(); err != nil {
			log.Error("sweep scheduler stopped", zap.Error(err))
		}
	}()
}

func handleSweepTask(remSvc reminder.ReminderService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		log := utils.GetLogger()

		summary, err := remSvc.RunSweep(ctx, time.Now())
		if err != nil {
			log.Error("reminder sweep failed", zap.Error(err))
			return err
		}

		log.Info("scheduled reminder sweep finished",
			zap.Int("sent", summary.Sent),
			zap.Int("skipped", summary.Skipped),
			zap.Int("failed", summary.Failed),
		)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			utils.GetLogger().Warn("redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
