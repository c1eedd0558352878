package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"courier/models"
	"courier/utils"

	"go.uber.org/zap"
)

// Executor sends a validated dispatch request across its channels and
// produces the aggregated delivery outcome. Channel sends fan out
// concurrently; the tally is a commutative sum, so completion order does
// not matter. Every channel contributes exactly one success or one failure.
type Executor struct {
	senders  map[models.ContactType]Sender
	retryMax int
	timeout  time.Duration
	log      *zap.Logger
}

// NewExecutor creates an Executor over the given sender registry. retryMax
// bounds retries per channel when the request asks for them; timeout caps
// each individual sender call.
func NewExecutor(senders map[models.ContactType]Sender, retryMax int, timeout time.Duration, log *zap.Logger) *Executor {
	if retryMax < 0 {
		retryMax = 0
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Executor{
		senders:  senders,
		retryMax: retryMax,
		timeout:  timeout,
		log:      log,
	}
}

type attemptResult struct {
	ok          bool
	unreachable bool
}

// Execute runs the request to completion and returns the final tallies.
// Partial failure is never an error; Execute only fails when the request
// itself is malformed (no targets, a target with no channels) or when every
// single channel was unreachable, which degrades to a transport outage.
// The send_immediately option is a scheduling hint to the transport; the
// outcome contract is identical either way.
func (e *Executor) Execute(ctx context.Context, req *models.DispatchRequest) (*models.DeliveryOutcome, error) {
	if req == nil || len(req.Recipients) == 0 {
		return nil, ErrEmptyRequest
	}
	total := 0
	for _, t := range req.Recipients {
		if len(t.Channels) == 0 {
			return nil, fmt.Errorf("target %s has no channels: %w", t.UserID, ErrEmptyRequest)
		}
		total += len(t.Channels)
	}

	results := make(chan attemptResult, total)
	var wg sync.WaitGroup
	for _, target := range req.Recipients {
		for _, ch := range target.Channels {
			wg.Add(1)
			go func(t models.DeliveryTarget, ch models.DeliveryChannel) {
				defer wg.Done()
				results <- e.attempt(ctx, req, t, ch)
			}(target, ch)
		}
	}
	wg.Wait()
	close(results)

	outcome := &models.DeliveryOutcome{
		NotificationID:  req.NotificationID,
		TotalRecipients: len(req.Recipients),
		TotalChannels:   total,
	}
	unreachable := 0
	for res := range results {
		if res.ok {
			outcome.SuccessfulSends++
			continue
		}
		outcome.FailedSends++
		if res.unreachable {
			unreachable++
		}
	}

	if unreachable == total {
		utils.DispatchRequestsTotal.WithLabelValues("fatal").Inc()
		return nil, ErrTransportUnavailable
	}

	outcome.SentAt = time.Now()
	utils.DispatchRequestsTotal.WithLabelValues("ok").Inc()
	e.log.Info("dispatch complete",
		zap.String("notification_id", req.NotificationID),
		zap.Int("total_recipients", outcome.TotalRecipients),
		zap.Int("total_channels", outcome.TotalChannels),
		zap.Int("successful_sends", outcome.SuccessfulSends),
		zap.Int("failed_sends", outcome.FailedSends),
	)
	return outcome, nil
}

// attempt delivers one channel, retrying up to the configured bound when
// the request asks for retries. Only the final status is reported; retries
// are invisible to the tally.
func (e *Executor) attempt(ctx context.Context, req *models.DispatchRequest, t models.DeliveryTarget, ch models.DeliveryChannel) attemptResult {
	sender, ok := e.senders[ch.Type]
	if !ok || sender == nil {
		e.log.Warn("no sender registered for channel type",
			zap.String("user_id", t.UserID),
			zap.String("channel", string(ch.Type)),
		)
		utils.DispatchSendsTotal.WithLabelValues(string(ch.Type), "failed").Inc()
		return attemptResult{unreachable: true}
	}

	attempts := 1
	if req.Options.RetryFailed {
		attempts += e.retryMax
	}

	var last error
retry:
	for i := 0; i < attempts; i++ {
		if i > 0 {
			utils.DispatchRetriesTotal.WithLabelValues(string(ch.Type)).Inc()
			backoff := time.NewTimer(time.Duration(200+100*i) * time.Millisecond)
			select {
			case <-ctx.Done():
				// Caller gave up; remaining retries are abandoned.
				backoff.Stop()
				break retry
			case <-backoff.C:
			}
		}
		sendCtx, cancel := context.WithTimeout(ctx, e.timeout)
		err := sender.Send(sendCtx, ch.Address, req.Subject, req.MessageContent)
		cancel()
		if err == nil {
			utils.DispatchSendsTotal.WithLabelValues(string(ch.Type), "sent").Inc()
			return attemptResult{ok: true}
		}
		last = err
	}

	e.log.Warn("channel delivery failed",
		zap.String("user_id", t.UserID),
		zap.String("channel", string(ch.Type)),
		zap.String("address", ch.Address),
		zap.Error(last),
	)
	utils.DispatchSendsTotal.WithLabelValues(string(ch.Type), "failed").Inc()
	return attemptResult{
		unreachable: errors.Is(last, ErrSenderUnavailable) || errors.Is(last, context.DeadlineExceeded),
	}
}
