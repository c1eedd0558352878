package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"courier/models"
	"courier/services/selection"

	"go.uber.org/zap"
)

// fakeSender counts calls and fails according to its knobs. failFirst
// makes the first N calls fail with a transient error before succeeding.
type fakeSender struct {
	mu          sync.Mutex
	calls       int
	alwaysFail  bool
	unavailable bool
	failFirst   int
}

func (f *fakeSender) Send(ctx context.Context, address, subject, body string) error {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()

	if f.unavailable {
		return ErrSenderUnavailable
	}
	if f.alwaysFail {
		return errors.New("provider rejected message")
	}
	if n <= f.failFirst {
		return errors.New("transient provider error")
	}
	return nil
}

func (f *fakeSender) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func twoChannelRequest(opts models.SendOptions) *models.DispatchRequest {
	return &models.DispatchRequest{
		NotificationID: "welcome",
		Subject:        "Welcome",
		MessageContent: "hello",
		Options:        opts,
		Recipients: []models.DeliveryTarget{
			{
				UserID: "1",
				Name:   "John Doe",
				Channels: []models.DeliveryChannel{
					{ContactID: "101", Type: models.ContactTypeEmail, Address: "john@example.org", Priority: 1},
					{ContactID: "102", Type: models.ContactTypeSMS, Address: "+1-555-0101", Priority: 2},
				},
			},
		},
	}
}

func TestExecuteEmptyRequest(t *testing.T) {
	t.Parallel()
	exec := NewExecutor(nil, 0, time.Second, zap.NewNop())

	if _, err := exec.Execute(context.Background(), nil); !errors.Is(err, ErrEmptyRequest) {
		t.Errorf("nil request: err = %v, want ErrEmptyRequest", err)
	}
	if _, err := exec.Execute(context.Background(), &models.DispatchRequest{}); !errors.Is(err, ErrEmptyRequest) {
		t.Errorf("no targets: err = %v, want ErrEmptyRequest", err)
	}

	req := &models.DispatchRequest{
		Recipients: []models.DeliveryTarget{{UserID: "1"}},
	}
	if _, err := exec.Execute(context.Background(), req); !errors.Is(err, ErrEmptyRequest) {
		t.Errorf("zero-channel target: err = %v, want ErrEmptyRequest", err)
	}
}

func TestExecuteAllSucceed(t *testing.T) {
	t.Parallel()
	senders := map[models.ContactType]Sender{
		models.ContactTypeEmail: &fakeSender{},
		models.ContactTypeSMS:   &fakeSender{},
	}
	exec := NewExecutor(senders, 0, time.Second, zap.NewNop())

	outcome, err := exec.Execute(context.Background(), twoChannelRequest(models.SendOptions{}))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if outcome.TotalRecipients != 1 || outcome.TotalChannels != 2 {
		t.Errorf("totals = %d/%d, want 1/2", outcome.TotalRecipients, outcome.TotalChannels)
	}
	if outcome.SuccessfulSends != 2 || outcome.FailedSends != 0 {
		t.Errorf("sends = %d ok / %d failed, want 2/0", outcome.SuccessfulSends, outcome.FailedSends)
	}
	if outcome.SentAt.IsZero() {
		t.Error("SentAt must be stamped")
	}
}

func TestExecutePartialFailure(t *testing.T) {
	t.Parallel()
	senders := map[models.ContactType]Sender{
		models.ContactTypeEmail: &fakeSender{},
		models.ContactTypeSMS:   &fakeSender{alwaysFail: true},
	}
	exec := NewExecutor(senders, 0, time.Second, zap.NewNop())

	outcome, err := exec.Execute(context.Background(), twoChannelRequest(models.SendOptions{}))
	if err != nil {
		t.Fatalf("partial failure must not be an error: %v", err)
	}
	if outcome.SuccessfulSends != 1 || outcome.FailedSends != 1 {
		t.Errorf("sends = %d ok / %d failed, want 1/1", outcome.SuccessfulSends, outcome.FailedSends)
	}
	if outcome.SuccessfulSends+outcome.FailedSends != outcome.TotalChannels {
		t.Errorf("tally %d+%d does not cover %d channels",
			outcome.SuccessfulSends, outcome.FailedSends, outcome.TotalChannels)
	}
}

func TestExecuteRetryFailed(t *testing.T) {
	t.Parallel()
	email := &fakeSender{failFirst: 1}
	senders := map[models.ContactType]Sender{models.ContactTypeEmail: email}
	exec := NewExecutor(senders, 2, time.Second, zap.NewNop())

	req := twoChannelRequest(models.SendOptions{RetryFailed: true})
	req.Recipients[0].Channels = req.Recipients[0].Channels[:1]

	outcome, err := exec.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if outcome.SuccessfulSends != 1 || outcome.FailedSends != 0 {
		t.Errorf("sends = %d ok / %d failed, want 1/0", outcome.SuccessfulSends, outcome.FailedSends)
	}
	if got := email.callCount(); got != 2 {
		t.Errorf("sender calls = %d, want 2", got)
	}
}

func TestExecuteRetryDisabled(t *testing.T) {
	t.Parallel()
	email := &fakeSender{failFirst: 1}
	senders := map[models.ContactType]Sender{models.ContactTypeEmail: email}
	exec := NewExecutor(senders, 2, time.Second, zap.NewNop())

	req := twoChannelRequest(models.SendOptions{})
	req.Recipients[0].Channels = req.Recipients[0].Channels[:1]

	outcome, err := exec.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if outcome.FailedSends != 1 {
		t.Errorf("failed = %d, want 1", outcome.FailedSends)
	}
	if got := email.callCount(); got != 1 {
		t.Errorf("sender calls = %d, want 1 when retries are off", got)
	}
}

func TestExecuteCancelledContextAbandonsRetries(t *testing.T) {
	t.Parallel()
	email := &fakeSender{alwaysFail: true}
	senders := map[models.ContactType]Sender{models.ContactTypeEmail: email}
	exec := NewExecutor(senders, 5, time.Second, zap.NewNop())

	req := twoChannelRequest(models.SendOptions{RetryFailed: true})
	req.Recipients[0].Channels = req.Recipients[0].Channels[:1]

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	outcome, err := exec.Execute(ctx, req)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if outcome.FailedSends != 1 {
		t.Errorf("failed = %d, want 1", outcome.FailedSends)
	}
	if got := email.callCount(); got != 1 {
		t.Errorf("sender calls = %d, want 1 once the caller has given up", got)
	}
	// Five retries would back off for well over a second.
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("Execute took %v, want an immediate return on a cancelled context", elapsed)
	}
}

func TestExecuteTransportOutage(t *testing.T) {
	t.Parallel()
	senders := map[models.ContactType]Sender{
		models.ContactTypeEmail: &fakeSender{unavailable: true},
		models.ContactTypeSMS:   &fakeSender{unavailable: true},
	}
	exec := NewExecutor(senders, 0, time.Second, zap.NewNop())

	outcome, err := exec.Execute(context.Background(), twoChannelRequest(models.SendOptions{}))
	if !errors.Is(err, ErrTransportUnavailable) {
		t.Fatalf("err = %v, want ErrTransportUnavailable", err)
	}
	if outcome != nil {
		t.Error("a transport outage must not produce an outcome")
	}
}

func TestExecuteMissingSenderIsUnreachable(t *testing.T) {
	t.Parallel()
	exec := NewExecutor(map[models.ContactType]Sender{}, 0, time.Second, zap.NewNop())

	_, err := exec.Execute(context.Background(), twoChannelRequest(models.SendOptions{}))
	if !errors.Is(err, ErrTransportUnavailable) {
		t.Fatalf("err = %v, want ErrTransportUnavailable", err)
	}
}

func TestExecuteOutageRequiresEveryChannel(t *testing.T) {
	t.Parallel()
	senders := map[models.ContactType]Sender{
		models.ContactTypeEmail: &fakeSender{},
		models.ContactTypeSMS:   &fakeSender{unavailable: true},
	}
	exec := NewExecutor(senders, 0, time.Second, zap.NewNop())

	outcome, err := exec.Execute(context.Background(), twoChannelRequest(models.SendOptions{}))
	if err != nil {
		t.Fatalf("one reachable channel must keep the dispatch alive: %v", err)
	}
	if outcome.SuccessfulSends != 1 || outcome.FailedSends != 1 {
		t.Errorf("sends = %d ok / %d failed, want 1/1", outcome.SuccessfulSends, outcome.FailedSends)
	}
}

// End-to-end through the builder: one recipient with a primary email and a
// manually selected SMS yields a two-channel outcome for a single recipient.
func TestBuildAndExecute(t *testing.T) {
	t.Parallel()
	recipients := []models.User{
		{
			ID:        "1",
			FirstName: "John",
			LastName:  "Doe",
			Contacts: []models.Contact{
				{ID: "101", Type: models.ContactTypeEmail, Address: "john@example.org", Verified: true, IsPrimary: true},
				{ID: "102", Type: models.ContactTypeSMS, Address: "+1-555-0101", Verified: true},
			},
		},
	}
	state := selection.Initialize(recipients)
	state, _ = state.SetContact("1", "102", true)

	req, err := BuildRequest(recipients, state, "welcome", "hello", models.SendOptions{SendImmediately: true})
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}

	senders := map[models.ContactType]Sender{
		models.ContactTypeEmail: &fakeSender{},
		models.ContactTypeSMS:   &fakeSender{},
	}
	exec := NewExecutor(senders, 0, time.Second, zap.NewNop())
	outcome, err := exec.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if outcome.TotalRecipients != 1 {
		t.Errorf("total_recipients = %d, want 1", outcome.TotalRecipients)
	}
	if outcome.TotalChannels != 2 {
		t.Errorf("total_channels = %d, want 2", outcome.TotalChannels)
	}
	if outcome.SuccessfulSends != 2 {
		t.Errorf("successful_sends = %d, want 2", outcome.SuccessfulSends)
	}
}
