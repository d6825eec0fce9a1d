package session

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Janitor sweeps a MemoryStore on a cron schedule.
type Janitor struct {
	Cron  *cron.Cron
	store *MemoryStore
	log   *logrus.Entry
}

func NewJanitor(store *MemoryStore, log *logrus.Logger) *Janitor {
	return &Janitor{
		Cron:  cron.New(),
		store: store,
		log:   log.WithField("component", "session-janitor"),
	}
}

// Register adds the sweep job. schedule is a standard cron expression or a
// descriptor such as "@every 5m".
func (j *Janitor) Register(schedule string) error {
	if _, err := j.Cron.AddFunc(schedule, j.sweep); err != nil {
		return fmt.Errorf("register session sweep: %w", err)
	}
	return nil
}

func (j *Janitor) sweep() {
	removed := j.store.Sweep()
	if removed > 0 {
		j.log.WithField("removed", removed).Info("Expired sessions swept")
	}
}

func (j *Janitor) Start() {
	j.Cron.Start()
	j.log.Info("Session janitor started")
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (j *Janitor) Stop() {
	<-j.Cron.Stop().Done()
	j.log.Info("Session janitor stopped")
}
