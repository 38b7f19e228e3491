// Пакет scheduler запускает периодическую синхронизацию проектов с GitHub
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher повторно импортирует сохранённые репозитории
type Refresher interface {
	RefreshAll(ctx context.Context) (int, error)
}

// syncTimeout ограничивает один проход синхронизации
const syncTimeout = 5 * time.Minute

// Scheduler выполняет синхронизацию по cron-расписанию
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
}

// New создаёт планировщик; задача добавляется в Start
func New(r Refresher) *Scheduler {
	return &Scheduler{cron: cron.New(), refresher: r}
}

// Start регистрирует синхронизацию по расписанию schedule и запускает cron.
// Пустое расписание отключает синхронизацию
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		log.Printf("[Cron] GitHub sync disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(schedule, s.Sync); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("[Cron] GitHub sync scheduled: %s", schedule)
	return nil
}

// Sync выполняет один проход синхронизации
func (s *Scheduler) Sync() {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()
	n, err := s.refresher.RefreshAll(ctx)
	if err != nil {
		log.Printf("[Cron] GitHub sync failed: %v", err)
		return
	}
	log.Printf("[Cron] GitHub sync refreshed %d projects", n)
}

// Stop останавливает cron и ждёт завершения запущенной задачи
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Entries количество зарегистрированных задач
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
