// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package provision

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryQueue struct {
	jobs []Job
}

func (queue *memoryQueue) Enqueue(_ context.Context, job Job) error {
	queue.jobs = append(queue.jobs, job)
	return nil
}

func (queue *memoryQueue) Dequeue(_ context.Context) (*Job, error) {
	if len(queue.jobs) == 0 {
		return nil, nil
	}
	job := queue.jobs[0]
	queue.jobs = queue.jobs[1:]
	return &job, nil
}

type recordingWriter struct {
	created []Job
	fail    map[string]bool
}

func (writer *recordingWriter) CreateProfile(_ context.Context, job Job) error {
	if writer.fail[job.UserID] {
		return assert.AnError
	}
	writer.created = append(writer.created, job)
	return nil
}

/*
TestWorker_Drain verifies pending jobs are materialized in FIFO order and
one failing job does not block the rest.
*/
func TestWorker_Drain(t *testing.T) {
	queue := &memoryQueue{}
	require.NoError(t, queue.Enqueue(context.Background(), Job{UserID: "u1", Username: "first", Email: "first@example.com"}))
	require.NoError(t, queue.Enqueue(context.Background(), Job{UserID: "u2", Username: "broken", Email: "broken@example.com"}))
	require.NoError(t, queue.Enqueue(context.Background(), Job{UserID: "u3", Username: "third", Email: "third@example.com"}))

	writer := &recordingWriter{fail: map[string]bool{"u2": true}}
	worker := NewWorker(queue, writer, slog.Default())

	worker.drain(context.Background())

	require.Len(t, writer.created, 2)
	assert.Equal(t, "u1", writer.created[0].UserID)
	assert.Equal(t, "u3", writer.created[1].UserID)
	assert.Empty(t, queue.jobs, "the queue must be fully drained")
}
