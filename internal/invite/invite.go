// Package invite delivers room invitations asynchronously. Delivery is
// an external collaborator: the authorizing call records the attempt
// and returns; failures here are logged and retried, never surfaced as
// domain errors.
package invite

import (
	"context"
	"log/slog"
	"time"

	"github.com/jagmansidhu/DaRoommate/internal/models"
)

// Sender delivers one invitation. Implementations wrap the external
// mail collaborator.
type Sender interface {
	Send(ctx context.Context, inv models.Invitation, roomName string) error
}

// LogSender stands in for the mail collaborator and just logs the
// delivery. Useful for development and tests.
type LogSender struct{}

func (LogSender) Send(_ context.Context, inv models.Invitation, roomName string) error {
	slog.Info("invitation delivered", "email", inv.Email, "room", roomName)
	return nil
}

const (
	maxAttempts  = 3
	retryBackoff = 2 * time.Second
	queueSize    = 64
)

type job struct {
	inv      models.Invitation
	roomName string
}

// Dispatcher queues invitations and delivers them on a worker
// goroutine with bounded retry. Enqueue never blocks the caller past
// the queue capacity and is always called outside room locks.
type Dispatcher struct {
	sender Sender
	jobs   chan job
	done   chan struct{}
}

// NewDispatcher starts a dispatcher delivering through sender.
func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		jobs:   make(chan job, queueSize),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// Enqueue schedules an invitation for delivery. If the queue is full
// the invitation is dropped with a warning; the recorded attempt in
// storage is the durable source of truth.
func (d *Dispatcher) Enqueue(inv models.Invitation, roomName string) {
	select {
	case d.jobs <- job{inv: inv, roomName: roomName}:
	default:
		slog.Warn("invitation queue full, dropping delivery", "email", inv.Email, "room_id", inv.RoomID)
	}
}

// Close stops the worker after draining queued deliveries.
func (d *Dispatcher) Close() {
	close(d.jobs)
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for j := range d.jobs {
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := d.sender.Send(ctx, j.inv, j.roomName)
		cancel()
		if err == nil {
			return
		}
		slog.Warn("invitation delivery failed",
			"email", j.inv.Email,
			"room_id", j.inv.RoomID,
			"attempt", attempt,
			"error", err,
		)
		if attempt < maxAttempts {
			time.Sleep(retryBackoff)
		}
	}
	slog.Error("invitation delivery abandoned", "email", j.inv.Email, "room_id", j.inv.RoomID)
}
