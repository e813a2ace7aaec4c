package receipt_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/sistema-extras/internal/core/events"
	"github.com/frahmantamala/sistema-extras/internal/receipt"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Pool", func() {
	var (
		logger    *slog.Logger
		mu        sync.Mutex
		processed []string
	)

	record := func(ctx context.Context, job receipt.Job) error {
		mu.Lock()
		defer mu.Unlock()
		processed = append(processed, job.ExtraID)
		return nil
	}

	processedIDs := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), processed...)
	}

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		processed = nil
	})

	It("processes every queued job and drains on stop", func() {
		pool := receipt.NewPool(record, 3, 10, logger)
		pool.Start()

		for _, id := range []string{"a", "b", "c", "d", "e"} {
			Expect(pool.Enqueue(receipt.Job{ExtraID: id})).To(Succeed())
		}
		Expect(pool.Stop(context.Background())).To(Succeed())
		Expect(processedIDs()).To(ConsistOf("a", "b", "c", "d", "e"))
	})

	It("rejects jobs when the queue is full", func() {
		release := make(chan struct{})
		blocking := func(ctx context.Context, job receipt.Job) error {
			<-release
			return record(ctx, job)
		}
		pool := receipt.NewPool(blocking, 1, 1, logger)

		// not started: the single slot fills and stays full
		Expect(pool.Enqueue(receipt.Job{ExtraID: "a"})).To(Succeed())
		Expect(pool.Enqueue(receipt.Job{ExtraID: "b"})).To(MatchError(receipt.ErrQueueFull))
		Expect(pool.Stats()).To(Equal(receipt.PoolStats{Workers: 1, Queued: 1, Capacity: 1}))

		pool.Start()
		close(release)
		Expect(pool.Stop(context.Background())).To(Succeed())
		Expect(processedIDs()).To(ConsistOf("a"))
	})

	It("refuses work after stop", func() {
		pool := receipt.NewPool(record, 1, 1, logger)
		pool.Start()
		Expect(pool.Stop(context.Background())).To(Succeed())

		Expect(pool.Enqueue(receipt.Job{ExtraID: "late"})).To(MatchError(receipt.ErrPoolStopped))
		Expect(pool.Submit(context.Background(), receipt.Job{ExtraID: "late"})).To(MatchError(receipt.ErrPoolStopped))
		Expect(pool.Stats().Stopped).To(BeTrue())
		Expect(pool.Stop(context.Background())).To(Succeed())
	})

	It("keeps going after a failed job", func() {
		failing := func(ctx context.Context, job receipt.Job) error {
			if job.ExtraID == "bad" {
				return errors.New("boom")
			}
			return record(ctx, job)
		}
		pool := receipt.NewPool(failing, 1, 5, logger)
		pool.Start()
		Expect(pool.Submit(context.Background(), receipt.Job{ExtraID: "bad"})).To(Succeed())
		Expect(pool.Submit(context.Background(), receipt.Job{ExtraID: "good"})).To(Succeed())
		Expect(pool.Stop(context.Background())).To(Succeed())
		Expect(processedIDs()).To(Equal([]string{"good"}))
	})

	It("gives up waiting when the stop deadline passes", func() {
		release := make(chan struct{})
		defer close(release)
		slow := func(ctx context.Context, job receipt.Job) error {
			select {
			case <-release:
			case <-ctx.Done():
			}
			return nil
		}
		pool := receipt.NewPool(slow, 1, 1, logger)
		pool.Start()
		Expect(pool.Enqueue(receipt.Job{ExtraID: "a"})).To(Succeed())

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		Expect(pool.Stop(ctx)).To(MatchError(context.DeadlineExceeded))
	})
})

type recordingQueue struct {
	jobs []receipt.Job
	err  error
}

func (q *recordingQueue) Enqueue(job receipt.Job) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

type recordingInvalidator struct {
	ids []string
}

func (i *recordingInvalidator) Invalidate(ctx context.Context, extraID string) error {
	i.ids = append(i.ids, extraID)
	return nil
}

var _ = Describe("EventHandler", func() {
	var (
		ctx         context.Context
		queue       *recordingQueue
		invalidator *recordingInvalidator
		handler     *receipt.EventHandler
	)

	BeforeEach(func() {
		ctx = context.Background()
		queue = &recordingQueue{}
		invalidator = &recordingInvalidator{}
		handler = receipt.NewEventHandler(queue, invalidator, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	It("queues generation on approval", func() {
		Expect(handler.HandleExtraApproved(ctx, events.NewExtraApprovedEvent("x-1", "g-1", 100))).To(Succeed())
		Expect(queue.jobs).To(Equal([]receipt.Job{{ExtraID: "x-1"}}))
	})

	It("does not fail the event when the queue is full", func() {
		queue.err = receipt.ErrQueueFull
		Expect(handler.HandleExtraApproved(ctx, events.NewExtraApprovedEvent("x-1", "g-1", 100))).To(Succeed())
	})

	It("invalidates the receipt on reset", func() {
		Expect(handler.HandleExtraReset(ctx, events.NewExtraResetEvent("x-1", "u-1"))).To(Succeed())
		Expect(invalidator.ids).To(Equal([]string{"x-1"}))
	})

	It("rejects mismatched events", func() {
		Expect(handler.HandleExtraApproved(ctx, events.NewExtraResetEvent("x-1", "u-1"))).To(HaveOccurred())
		Expect(handler.HandleExtraReset(ctx, events.NewExtraApprovedEvent("x-1", "g-1", 1))).To(HaveOccurred())
	})

	It("wires through the event bus", func() {
		bus := events.NewEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
		handler.RegisterEventHandlers(bus)

		Expect(bus.PublishSync(ctx, events.NewExtraApprovedEvent("x-9", "g-1", 5))).To(Succeed())
		Expect(queue.jobs).To(ContainElement(receipt.Job{ExtraID: "x-9"}))
	})
})
