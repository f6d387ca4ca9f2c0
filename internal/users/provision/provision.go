// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

/*
Package provision materializes user profiles asynchronously.

Signup creates only a credential; the public profile row appears moments
later when the provisioner drains the pending queue. The session resolver
is built to tolerate this window: a profile fetch can return not-found
shortly after signup and succeed on retry.

Architecture:

  - Job: The unit of work (credential ID, username, email).
  - Queue: Redis-list backed job transport.
  - Worker: Polling loop that inserts profile rows.
*/
package provision

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/av3hub/avhub/internal/platform/constants"
)

// Job describes one profile waiting to be materialized.
type Job struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Queue is the job transport between signup and the worker.
type Queue interface {
	Enqueue(context context.Context, job Job) error
	// Dequeue pops the oldest pending job. It returns (nil, nil) when the
	// queue is empty.
	Dequeue(context context.Context) (*Job, error)
}

// # Redis Queue

// RedisQueue stores pending jobs in a Redis list, oldest at the tail.
type RedisQueue struct {
	client *redis.Client
}

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

func (queue *RedisQueue) Enqueue(context context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return queue.client.LPush(context, constants.RedisKeyProvisionJobs, payload).Err()
}

func (queue *RedisQueue) Dequeue(context context.Context) (*Job, error) {
	payload, err := queue.client.RPop(context, constants.RedisKeyProvisionJobs).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	job := &Job{}
	if err := json.Unmarshal([]byte(payload), job); err != nil {
		return nil, err
	}
	return job, nil
}

// # Worker

// ProfileWriter persists the materialized profile row.
type ProfileWriter interface {
	CreateProfile(context context.Context, job Job) error
}

// Worker drains the queue on a fixed interval until its context ends.
type Worker struct {
	queue    Queue
	writer   ProfileWriter
	interval time.Duration
	logger   *slog.Logger
}

func NewWorker(queue Queue, writer ProfileWriter, logger *slog.Logger) *Worker {
	return &Worker{
		queue:    queue,
		writer:   writer,
		interval: constants.ProvisionPollInterval,
		logger:   logger,
	}
}

// Run polls until ctx is canceled. It is intended to be launched as a
// goroutine from main.
func (worker *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(worker.interval)
	defer ticker.Stop()

	worker.logger.Info("profile provisioner started", "interval", worker.interval.String())

	for {
		select {
		case <-ctx.Done():
			worker.logger.Info("profile provisioner stopped")
			return
		case <-ticker.C:
			worker.drain(ctx)
		}
	}
}

// drain processes every pending job currently in the queue.
func (worker *Worker) drain(ctx context.Context) {
	for {
		job, err := worker.queue.Dequeue(ctx)
		if err != nil {
			worker.logger.Error("provision dequeue failed", "error", err)
			return
		}
		if job == nil {
			return
		}

		if err := worker.writer.CreateProfile(ctx, *job); err != nil {
			worker.logger.Error("profile provisioning failed",
				"user_id", job.UserID, "username", job.Username, "error", err)
			continue
		}

		worker.logger.Info("profile provisioned", "user_id", job.UserID, "username", job.Username)
	}
}
