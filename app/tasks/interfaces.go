package tasks

// TaskSchedulerInterface defines the interface for background task scheduling.
// Used by the main application and the API layer to run crawls and digest
// deliveries outside of their periodic schedule.
// Example usage:
//
//	scheduler := NewScheduler(crawler, builder, runner, keywordRepo, seeds)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewCrawlTask(crawler))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
