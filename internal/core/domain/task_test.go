package domain

import (
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	payload := DocumentPayload{
		DocumentID: "doc-1",
		BlobPath:   "raw/doc-1.txt",
		Extension:  ".txt",
	}
	task := NewExtractTask(payload)

	if task.ID == "" {
		t.Error("expected generated task ID")
	}
	if task.Type != TaskTypeExtract {
		t.Errorf("expected type %s, got %s", TaskTypeExtract, task.Type)
	}
	if task.Status != TaskStatusPending {
		t.Errorf("expected pending status, got %s", task.Status)
	}
	if task.MaxAttempts != 3 {
		t.Errorf("expected default max attempts 3, got %d", task.MaxAttempts)
	}
	if task.Payload.DocumentID != "doc-1" {
		t.Errorf("expected payload document ID doc-1, got %s", task.Payload.DocumentID)
	}
}

func TestTask_Lifecycle(t *testing.T) {
	task := NewProcessTask(DocumentPayload{DocumentID: "doc-1", ContentPath: "processed/doc-1.json"})

	task.MarkProcessing()
	if task.Status != TaskStatusProcessing {
		t.Errorf("expected processing, got %s", task.Status)
	}
	if task.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", task.Attempts)
	}
	if task.StartedAt == nil {
		t.Error("expected StartedAt to be set")
	}

	task.MarkCompleted()
	if task.Status != TaskStatusCompleted {
		t.Errorf("expected completed, got %s", task.Status)
	}
	if task.CompletedAt == nil {
		t.Error("expected CompletedAt to be set")
	}
	if task.Error != "" {
		t.Errorf("expected error cleared, got %q", task.Error)
	}
}

func TestTask_Retry(t *testing.T) {
	task := NewProcessTask(DocumentPayload{DocumentID: "doc-1"})
	task.MarkProcessing()

	task.Retry("embedding service unreachable")
	if task.Status != TaskStatusPending {
		t.Errorf("expected pending after retry, got %s", task.Status)
	}
	if task.Error != "embedding service unreachable" {
		t.Errorf("unexpected error message: %q", task.Error)
	}
	if !task.ScheduledFor.After(time.Now()) {
		t.Error("expected retry to be scheduled in the future")
	}
}

func TestTask_CanRetry(t *testing.T) {
	task := NewExtractTask(DocumentPayload{DocumentID: "doc-1"})

	for i := 0; i < task.MaxAttempts; i++ {
		if !task.CanRetry() {
			t.Fatalf("expected CanRetry at attempt %d", i)
		}
		task.MarkProcessing()
	}
	if task.CanRetry() {
		t.Error("expected retries exhausted")
	}
}
