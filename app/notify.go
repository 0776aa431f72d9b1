package app

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Level int

const (
	LevelSuccess Level = iota
	LevelError
	// LevelBlocking notifications do not auto-expire; they must be
	// dismissed. Used for the session-expired notice.
	LevelBlocking
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelBlocking:
		return "blocking"
	default:
		return "error"
	}
}

type Notification struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
}

// DefaultNotificationTTL matches the snackbar auto-hide the site uses.
const DefaultNotificationTTL = 3 * time.Second

// Notifier is the dismissible, auto-expiring notification center. All
// non-validation errors end up here; validation errors never leave their
// form.
type Notifier struct {
	mu          sync.Mutex
	active      map[string]Notification
	ttl         time.Duration
	subscribers []func(Notification)
	logger      zerolog.Logger
}

func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	logger := log.With().Str("component", "notifier").Logger()
	return &Notifier{
		active: make(map[string]Notification),
		ttl:    ttl,
		logger: logger,
	}
}

// Notify posts a notification and returns its id. Non-blocking levels
// expire after the configured TTL.
func (n *Notifier) Notify(level Level, message string) string {
	notification := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	n.active[notification.ID] = notification
	subscribers := make([]func(Notification), len(n.subscribers))
	copy(subscribers, n.subscribers)
	n.mu.Unlock()

	n.logger.Debug().Str("level", level.String()).Str("message", message).Msg("notification posted")
	for _, fn := range subscribers {
		fn(notification)
	}

	if level != LevelBlocking {
		time.AfterFunc(n.ttl, func() { n.Dismiss(notification.ID) })
	}
	return notification.ID
}

func (n *Notifier) Success(message string) string { return n.Notify(LevelSuccess, message) }
func (n *Notifier) Error(message string) string   { return n.Notify(LevelError, message) }

// Blocking satisfies auth.Notifier.
func (n *Notifier) Blocking(message string) { n.Notify(LevelBlocking, message) }

func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.active, id)
}

// Active returns current notifications, oldest first.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, 0, len(n.active))
	for _, notification := range n.active {
		out = append(out, notification)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Subscribe registers a callback invoked for every posted notification.
func (n *Notifier) Subscribe(fn func(Notification)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subscribers = append(n.subscribers, fn)
}
