package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotificationExpires(t *testing.T) {
	notifier := NewNotifier(30 * time.Millisecond)

	notifier.Error("transient failure")
	assert.Len(t, notifier.Active(), 1)

	assert.Eventually(t, func() bool {
		return len(notifier.Active()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestBlockingNotificationPersists(t *testing.T) {
	notifier := NewNotifier(20 * time.Millisecond)

	id := notifier.Notify(LevelBlocking, "session expired")
	time.Sleep(80 * time.Millisecond)
	assert.Len(t, notifier.Active(), 1, "blocking notifications must not auto-expire")

	notifier.Dismiss(id)
	assert.Empty(t, notifier.Active())
}

func TestSubscribersReceiveNotifications(t *testing.T) {
	notifier := NewNotifier(time.Minute)

	var got []Notification
	notifier.Subscribe(func(n Notification) { got = append(got, n) })

	notifier.Success("saved")
	if assert.Len(t, got, 1) {
		assert.Equal(t, LevelSuccess, got[0].Level)
		assert.Equal(t, "saved", got[0].Message)
		assert.NotEmpty(t, got[0].ID)
	}
}

func TestActiveOrderedOldestFirst(t *testing.T) {
	notifier := NewNotifier(time.Minute)
	notifier.Success("first")
	time.Sleep(2 * time.Millisecond)
	notifier.Error("second")

	active := notifier.Active()
	if assert.Len(t, active, 2) {
		assert.Equal(t, "first", active[0].Message)
		assert.Equal(t, "second", active[1].Message)
	}
}
