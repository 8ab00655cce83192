package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/wyfcoding/freshmall/internal/notification/domain"
)

type fakeNotificationRepo struct {
	saved []*domain.Notification
}

func (f *fakeNotificationRepo) Save(_ context.Context, n *domain.Notification) error {
	for i, existing := range f.saved {
		if existing.NotificationID == n.NotificationID {
			f.saved[i] = n
			return nil
		}
	}
	f.saved = append(f.saved, n)
	return nil
}

func (f *fakeNotificationRepo) Get(_ context.Context, notificationID string) (*domain.Notification, error) {
	for _, n := range f.saved {
		if n.NotificationID == notificationID {
			return n, nil
		}
	}
	return nil, nil
}

func (f *fakeNotificationRepo) ListByUserID(_ context.Context, userID uint64, _, _ int) ([]*domain.Notification, int64, error) {
	var out []*domain.Notification
	for _, n := range f.saved {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

type fakeSender struct {
	sent []string
	fail bool
}

func (f *fakeSender) Send(_ context.Context, target, subject, _ string) error {
	if f.fail {
		return errors.New("smtp unreachable")
	}
	f.sent = append(f.sent, target+": "+subject)
	return nil
}

type fixedDirectory struct{}

func (fixedDirectory) Lookup(_ context.Context, userID uint64) (string, error) {
	return "user-100@freshmall.local", nil
}

func TestNotifyOrderCreated(t *testing.T) {
	repo := &fakeNotificationRepo{}
	snd := &fakeSender{}
	svc := NewNotificationService(repo, snd, fixedDirectory{})

	err := svc.NotifyOrderCreated(context.Background(), domain.OrderCreatedPayload{
		OrderID: "20260829120000100-1", UserID: 100, PayMethod: "ALIPAY",
		TotalCount: 3, TotalPrice: "98.70", CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("NotifyOrderCreated() error = %v", err)
	}
	if len(snd.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(snd.sent))
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saved = %d, want 1", len(repo.saved))
	}
	n := repo.saved[0]
	if n.Status != domain.NotificationStatusSent || n.SentAt == nil {
		t.Errorf("notification status = %s sentAt = %v, want SENT with timestamp", n.Status, n.SentAt)
	}
	if !strings.Contains(n.Content, "20260829120000100-1") {
		t.Errorf("content %q should mention the order id", n.Content)
	}
}

func TestNotifySendFailureRecorded(t *testing.T) {
	repo := &fakeNotificationRepo{}
	snd := &fakeSender{fail: true}
	svc := NewNotificationService(repo, snd, fixedDirectory{})

	err := svc.NotifyOrderCreated(context.Background(), domain.OrderCreatedPayload{
		OrderID: "x", UserID: 100, CreatedAt: time.Now(),
	})
	if err == nil {
		t.Fatal("NotifyOrderCreated() expected error")
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saved = %d, want failure record", len(repo.saved))
	}
	n := repo.saved[0]
	if n.Status != domain.NotificationStatusFailed || n.ErrorMessage == "" {
		t.Errorf("notification = %+v, want FAILED with error message", n)
	}
}

func TestNotifyUserRegisteredPrefersPayloadEmail(t *testing.T) {
	repo := &fakeNotificationRepo{}
	snd := &fakeSender{}
	svc := NewNotificationService(repo, snd, fixedDirectory{})

	err := svc.NotifyUserRegistered(context.Background(), domain.UserRegisteredPayload{
		UserID: 100, Username: "zhangsan", Email: "zhangsan@example.com", ActivateToken: "tok123",
	})
	if err != nil {
		t.Fatalf("NotifyUserRegistered() error = %v", err)
	}
	if repo.saved[0].Target != "zhangsan@example.com" {
		t.Errorf("target = %s, want payload email", repo.saved[0].Target)
	}
	if !strings.Contains(repo.saved[0].Content, "tok123") {
		t.Errorf("content %q should carry the activation token", repo.saved[0].Content)
	}
}
