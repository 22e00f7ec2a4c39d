// Package notify delivers catalog notifications through desktop, log and inbox backends.
package notify

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/productcap/internal/catalog"
	"github.com/jask/productcap/internal/config"
	"github.com/jask/productcap/internal/database"
	"github.com/jask/productcap/internal/database/repository"
)

// Backend names accepted in notify.backends.
const (
	BackendDesktop = "desktop"
	BackendLog     = "log"
	BackendInbox   = "inbox"
)

// Desktop runs an external command such as notify-send with title and body as arguments.
type Desktop struct {
	Command string
	Args    []string
}

func (d Desktop) Notify(ctx context.Context, n catalog.Notification) error {
	name := strings.TrimSpace(d.Command)
	if name == "" {
		return errors.New("desktop notifier: no command configured")
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("desktop notifier: %w", err)
	}
	args := append(append([]string{}, d.Args...), n.Title, n.Body)
	out, err := exec.CommandContext(ctx, path, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("desktop notifier: %s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Log writes notifications to a zerolog logger.
type Log struct {
	Logger zerolog.Logger
}

func (l Log) Notify(_ context.Context, n catalog.Notification) error {
	l.Logger.Info().Str("title", n.Title).Str("body", n.Body).Msg("notification")
	return nil
}

// Inbox records notifications in the sqlite notification inbox.
type Inbox struct {
	Repo      *repository.NotificationRepo
	SessionID string
}

func (i Inbox) Notify(ctx context.Context, n catalog.Notification) error {
	if i.Repo == nil {
		return errors.New("inbox notifier: repo not configured")
	}
	return i.Repo.Insert(ctx, repository.Notification{
		ID:        uuid.NewString(),
		SessionID: i.SessionID,
		Title:     n.Title,
		Body:      n.Body,
		CreatedAt: database.Now(),
	})
}

// Multi delivers to every notifier and joins their errors.
type Multi []catalog.Notifier

func (m Multi) Notify(ctx context.Context, n catalog.Notification) error {
	var errs []error
	for _, target := range m {
		if err := target.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FromConfig builds the notifiers named in cfg.Backends. db is only used by the
// inbox backend and may be nil otherwise.
func FromConfig(cfg config.NotifyConfig, logger zerolog.Logger, db *sql.DB, sessionID string) (Multi, error) {
	var out Multi
	for _, name := range cfg.Backends {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case BackendDesktop:
			out = append(out, Desktop{Command: cfg.Command, Args: cfg.Args})
		case BackendLog:
			out = append(out, Log{Logger: logger})
		case BackendInbox:
			if db == nil {
				return nil, errors.New("inbox backend requires a database")
			}
			out = append(out, Inbox{Repo: repository.NewNotificationRepo(db), SessionID: sessionID})
		default:
			return nil, fmt.Errorf("unknown notify backend %q", name)
		}
	}
	return out, nil
}

// Wants reports whether backend is enabled in cfg.
func Wants(cfg config.NotifyConfig, backend string) bool {
	for _, name := range cfg.Backends {
		if strings.EqualFold(strings.TrimSpace(name), backend) {
			return true
		}
	}
	return false
}
