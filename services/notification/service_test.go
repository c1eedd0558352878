package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"courier/database/repository"
	"courier/models"
	"courier/services/selection"
)

type fakeDirectory struct {
	users []models.User
	err   error
}

func (f *fakeDirectory) GetByIDs(ids []string) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	byID := make(map[string]models.User, len(f.users))
	for _, u := range f.users {
		byID[u.ID] = u
	}
	var out []models.User
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeDirectory) GetByID(id string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, errors.New("user not found")
}

func (f *fakeDirectory) Create(user *models.User) error { return nil }

type fakeTemplates struct {
	tpls map[string]*models.NotificationTemplate
}

func (f *fakeTemplates) GetByID(id string) (*models.NotificationTemplate, error) {
	tpl, ok := f.tpls[id]
	if !ok {
		return nil, repository.ErrTemplateNotFound
	}
	return tpl, nil
}

func (f *fakeTemplates) GetAll() ([]models.NotificationTemplate, error) {
	var out []models.NotificationTemplate
	for _, tpl := range f.tpls {
		out = append(out, *tpl)
	}
	return out, nil
}

func (f *fakeTemplates) Create(tpl *models.NotificationTemplate) error { return nil }

type fakeDispatcher struct {
	mu   sync.Mutex
	reqs []*models.DispatchRequest
	err  error
}

func (d *fakeDispatcher) Execute(ctx context.Context, req *models.DispatchRequest) (*models.DeliveryOutcome, error) {
	d.mu.Lock()
	d.reqs = append(d.reqs, req)
	d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	total := 0
	for _, t := range req.Recipients {
		total += len(t.Channels)
	}
	return &models.DeliveryOutcome{
		NotificationID:  req.NotificationID,
		TotalRecipients: len(req.Recipients),
		TotalChannels:   total,
		SuccessfulSends: total,
		SentAt:          time.Now(),
	}, nil
}

func (d *fakeDispatcher) calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.reqs)
}

func serviceFixture() (*fakeDirectory, *fakeDispatcher, *DefaultNotificationService) {
	directory := &fakeDirectory{users: []models.User{
		{
			ID:        "1",
			FirstName: "John",
			LastName:  "Doe",
			Contacts: []models.Contact{
				{ID: "101", Type: models.ContactTypeEmail, Address: "john@example.org", Verified: true, IsPrimary: true},
			},
		},
	}}
	templates := &fakeTemplates{tpls: map[string]*models.NotificationTemplate{
		"welcome": {ID: "welcome", Subject: "Welcome aboard", Content: "Glad to have you."},
	}}
	dispatcher := &fakeDispatcher{}
	svc := &DefaultNotificationService{
		Directory:  directory,
		Templates:  templates,
		Dispatcher: dispatcher,
	}
	return directory, dispatcher, svc
}

func TestFetchRecipientsOmitsUnknownIDs(t *testing.T) {
	t.Parallel()
	_, _, svc := serviceFixture()

	users, err := svc.FetchRecipients(context.Background(), []string{"1", "missing"})
	if err != nil {
		t.Fatalf("FetchRecipients: %v", err)
	}
	if len(users) != 1 || users[0].ID != "1" {
		t.Fatalf("users = %+v, want only user 1", users)
	}
}

func TestFetchRecipientsEmptyResult(t *testing.T) {
	t.Parallel()
	_, _, svc := serviceFixture()

	if _, err := svc.FetchRecipients(context.Background(), []string{"missing"}); !errors.Is(err, ErrNoRecipientsFound) {
		t.Fatalf("err = %v, want ErrNoRecipientsFound", err)
	}
}

func TestSendUsesTemplateContent(t *testing.T) {
	t.Parallel()
	directory, dispatcher, svc := serviceFixture()
	state := selection.Initialize(directory.users)

	outcome, err := svc.Send(context.Background(), directory.users, state, "welcome", "", models.SendOptions{})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if outcome.SuccessfulSends != 1 {
		t.Errorf("successful_sends = %d, want 1", outcome.SuccessfulSends)
	}
	req := dispatcher.reqs[0]
	if req.MessageContent != "Glad to have you." {
		t.Errorf("body = %q, want the template content", req.MessageContent)
	}
	if req.Subject != "Welcome aboard" {
		t.Errorf("subject = %q, want the template subject", req.Subject)
	}
}

func TestSendContentOverride(t *testing.T) {
	t.Parallel()
	directory, dispatcher, svc := serviceFixture()
	state := selection.Initialize(directory.users)

	if _, err := svc.Send(context.Background(), directory.users, state, "welcome", "Custom body", models.SendOptions{}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	req := dispatcher.reqs[0]
	if req.MessageContent != "Custom body" {
		t.Errorf("body = %q, want the override", req.MessageContent)
	}
	if req.Subject != "Welcome aboard" {
		t.Errorf("subject = %q, the template subject must still apply", req.Subject)
	}
}

func TestSendUnknownTemplate(t *testing.T) {
	t.Parallel()
	directory, dispatcher, svc := serviceFixture()
	state := selection.Initialize(directory.users)

	_, err := svc.Send(context.Background(), directory.users, state, "missing", "hello", models.SendOptions{})
	if !errors.Is(err, repository.ErrTemplateNotFound) {
		t.Fatalf("err = %v, want ErrTemplateNotFound", err)
	}
	if dispatcher.calls() != 0 {
		t.Error("an unknown template must surface before any dispatch")
	}
}
