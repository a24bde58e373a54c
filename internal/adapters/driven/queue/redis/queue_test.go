package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/harbor-labs/docflow-core/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

// setupTestQueue creates a miniredis-backed queue
func setupTestQueue(t *testing.T) (*Queue, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	q, err := NewQueue(client, "test-worker")
	if err != nil {
		t.Fatalf("failed to create queue: %v", err)
	}

	return q, mr, func() {
		client.Close()
		mr.Close()
	}
}

func testTask() *domain.Task {
	return domain.NewExtractTask(domain.DocumentPayload{
		DocumentID: "doc-1",
		BlobPath:   "raw/doc-1.txt",
		Extension:  ".txt",
	})
}

func TestNewQueue_RequiresClient(t *testing.T) {
	if _, err := NewQueue(nil, "worker"); err == nil {
		t.Fatal("expected error for nil client")
	}
}

func TestQueue_EnqueueDequeue(t *testing.T) {
	q, _, cleanup := setupTestQueue(t)
	defer cleanup()

	ctx := context.Background()
	task := testTask()

	if err := q.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error enqueueing: %v", err)
	}

	got, err := q.DequeueWithTimeout(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error dequeueing: %v", err)
	}
	if got == nil {
		t.Fatal("expected a task")
	}
	if got.ID != task.ID {
		t.Errorf("expected task %s, got %s", task.ID, got.ID)
	}
	if got.Status != domain.TaskStatusProcessing {
		t.Errorf("expected status processing, got %s", got.Status)
	}
	if got.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", got.Attempts)
	}
	if got.Payload.DocumentID != "doc-1" {
		t.Errorf("expected payload document doc-1, got %s", got.Payload.DocumentID)
	}
}

func TestQueue_Enqueue_NilTask(t *testing.T) {
	q, _, cleanup := setupTestQueue(t)
	defer cleanup()

	if err := q.Enqueue(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil task")
	}
}

func TestQueue_Dequeue_Empty(t *testing.T) {
	q, _, cleanup := setupTestQueue(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	got, err := q.DequeueWithTimeout(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected no task, got %s", got.ID)
	}
}

func TestQueue_Ack(t *testing.T) {
	q, _, cleanup := setupTestQueue(t)
	defer cleanup()

	ctx := context.Background()
	task := testTask()

	if err := q.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error enqueueing: %v", err)
	}
	got, err := q.DequeueWithTimeout(ctx, 1)
	if err != nil || got == nil {
		t.Fatalf("dequeue failed: task=%v err=%v", got, err)
	}

	if err := q.Ack(ctx, got.ID); err != nil {
		t.Fatalf("unexpected error acking: %v", err)
	}

	stored, err := q.GetTask(ctx, got.ID)
	if err != nil {
		t.Fatalf("unexpected error getting task: %v", err)
	}
	if stored.Status != domain.TaskStatusCompleted {
		t.Errorf("expected status completed, got %s", stored.Status)
	}
	if stored.CompletedAt == nil {
		t.Error("expected completed timestamp")
	}
}

func TestQueue_Nack_Retries(t *testing.T) {
	q, _, cleanup := setupTestQueue(t)
	defer cleanup()

	ctx := context.Background()
	task := testTask()

	if err := q.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error enqueueing: %v", err)
	}
	got, err := q.DequeueWithTimeout(ctx, 1)
	if err != nil || got == nil {
		t.Fatalf("dequeue failed: task=%v err=%v", got, err)
	}

	if err := q.Nack(ctx, got.ID, "extraction failed"); err != nil {
		t.Fatalf("unexpected error nacking: %v", err)
	}

	stored, err := q.GetTask(ctx, got.ID)
	if err != nil {
		t.Fatalf("unexpected error getting task: %v", err)
	}
	if stored.Status != domain.TaskStatusPending {
		t.Errorf("expected status pending for retry, got %s", stored.Status)
	}
	if stored.Error != "extraction failed" {
		t.Errorf("expected error message recorded, got %q", stored.Error)
	}
	if !stored.ScheduledFor.After(time.Now()) {
		t.Error("expected retry to be scheduled in the future")
	}
}

func TestQueue_Nack_ExhaustedRetries(t *testing.T) {
	q, _, cleanup := setupTestQueue(t)
	defer cleanup()

	ctx := context.Background()
	task := testTask()
	task.MaxAttempts = 1

	if err := q.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error enqueueing: %v", err)
	}
	got, err := q.DequeueWithTimeout(ctx, 1)
	if err != nil || got == nil {
		t.Fatalf("dequeue failed: task=%v err=%v", got, err)
	}

	if err := q.Nack(ctx, got.ID, "embedding service down"); err != nil {
		t.Fatalf("unexpected error nacking: %v", err)
	}

	stored, err := q.GetTask(ctx, got.ID)
	if err != nil {
		t.Fatalf("unexpected error getting task: %v", err)
	}
	if stored.Status != domain.TaskStatusFailed {
		t.Errorf("expected status failed, got %s", stored.Status)
	}
	if stored.Error != "embedding service down" {
		t.Errorf("expected error message recorded, got %q", stored.Error)
	}
}

func TestQueue_ScheduledTaskPromotion(t *testing.T) {
	q, _, cleanup := setupTestQueue(t)
	defer cleanup()

	ctx := context.Background()
	task := testTask()
	task.ScheduledFor = time.Now().Add(150 * time.Millisecond)

	if err := q.Enqueue(ctx, task); err != nil {
		t.Fatalf("unexpected error enqueueing: %v", err)
	}

	// Not due yet
	got, err := q.DequeueWithTimeout(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no task before schedule, got %s", got.ID)
	}

	time.Sleep(200 * time.Millisecond)

	got, err = q.DequeueWithTimeout(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected task after schedule elapsed")
	}
	if got.ID != task.ID {
		t.Errorf("expected task %s, got %s", task.ID, got.ID)
	}
}

func TestQueue_GetTask_Missing(t *testing.T) {
	q, _, cleanup := setupTestQueue(t)
	defer cleanup()

	got, err := q.GetTask(context.Background(), "no-such-task")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil task, got %v", got)
	}
}

func TestQueue_Stats(t *testing.T) {
	q, _, cleanup := setupTestQueue(t)
	defer cleanup()

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := q.Enqueue(ctx, testTask()); err != nil {
			t.Fatalf("unexpected error enqueueing: %v", err)
		}
	}

	stats, err := q.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error getting stats: %v", err)
	}
	if stats.PendingCount != 3 {
		t.Errorf("expected 3 pending, got %d", stats.PendingCount)
	}
}

func TestQueue_Ping(t *testing.T) {
	q, mr, cleanup := setupTestQueue(t)
	defer cleanup()

	if err := q.Ping(context.Background()); err != nil {
		t.Errorf("unexpected ping error: %v", err)
	}

	mr.Close()
	if err := q.Ping(context.Background()); err == nil {
		t.Error("expected ping error after server shutdown")
	}
}
