// Package job menjalankan pekerjaan terjadwal di dalam proses API.
package job

import (
	"context"
	"time"

	"github.com/BarenJ/AplikasiPanti/internal/usecase"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

type OccupancyReconciler interface {
	ReconcileOccupancy(ctx context.Context) ([]usecase.Correction, error)
}

type Scheduler struct {
	sched gocron.Scheduler
	log   *zap.Logger
}

// StartReconciler menjadwalkan sinkronisasi current_occupants tiap interval.
// Interval 0 berarti job dimatikan dan nilai kembali nil.
func StartReconciler(reconciler OccupancyReconciler, interval time.Duration, log *zap.Logger) (*Scheduler, error) {
	if interval <= 0 {
		log.Info("job rekonsiliasi kamar dimatikan")
		return nil, nil
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		corrections, err := reconciler.ReconcileOccupancy(ctx)
		if err != nil {
			log.Error("rekonsiliasi kamar gagal", zap.Error(err))
			return
		}
		log.Debug("rekonsiliasi kamar selesai", zap.Int("corrected", len(corrections)))
	}

	j, err := sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(run),
		gocron.WithName("reconcile-occupancy"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	log.Info("job rekonsiliasi kamar aktif", zap.String("job_id", j.ID().String()), zap.Duration("interval", interval))
	return &Scheduler{sched: sched, log: log}, nil
}

func (s *Scheduler) Shutdown() error {
	if s == nil {
		return nil
	}
	return s.sched.Shutdown()
}
