package services

import (
	"context"
	"log"
	"sync"
)

// Worker runs review jobs after their originating request has returned. Each
// job is an independent failure domain: errors are logged, never surfaced.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(job ReviewJob)
}

type worker struct {
	reviewerService ReviewerService
	jobQueue        chan ReviewJob
	concurrency     int
	wg              sync.WaitGroup
	stopChan        chan struct{}
}

func NewWorker(reviewerService ReviewerService, concurrency int) Worker {
	return &worker{
		reviewerService: reviewerService,
		jobQueue:        make(chan ReviewJob, 100),
		concurrency:     concurrency,
		stopChan:        make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(job ReviewJob) {
	select {
	case w.jobQueue <- job:
		log.Printf("📥 Review job for resume %s enqueued\n", job.ResumeID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue job for resume %s\n", job.ResumeID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing jobs\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case job := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing review for resume %s\n", workerID, job.ResumeID)
			if err := w.reviewerService.ProcessReview(ctx, job); err != nil {
				log.Printf("❌ Worker #%d review for resume %s aborted: %v\n", workerID, job.ResumeID, err)
			} else {
				log.Printf("✅ Worker #%d completed review for resume %s\n", workerID, job.ResumeID)
			}
		}
	}
}
