package logger

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"

	"shoplistbot/internal/buildinfo"
)

// Options selects the output level and format of the process logger.
type Options struct {
	Level  string
	Format string
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string
}

var (
	initOnce sync.Once

	// L is the base logger shared by all components.
	L *slog.Logger

	// App logs process lifecycle events.
	App *slog.Logger
	// DB logs database connection events.
	DB *slog.Logger
	// MIG logs database migration events.
	MIG *slog.Logger
	// SEED logs database seeding operations.
	SEED *slog.Logger
	// Store logs shopping list store activity.
	Store *slog.Logger
	// TG logs Telegram transport events.
	TG *slog.Logger
)

// Init configures the global structured logger. It may be called only once.
func Init(opts Options) {
	initOnce.Do(func() {
		handler := buildHandler(opts)
		L = slog.New(handler)
		slog.SetDefault(L)
		wireComponents()
		logStartup(opts)
	})
}

func buildHandler(opts Options) slog.Handler {
	level := selectLevel(opts.Level)
	if selectFormat(opts) == formatPretty {
		return tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
}

func wireComponents() {
	App = L.With("component", "app")
	DB = L.With("component", "db")
	MIG = L.With("component", "db.migrate")
	SEED = L.With("component", "db.seed")
	Store = L.With("component", "store")
	TG = L.With("component", "tg")
}

func logStartup(opts Options) {
	App.LogAttrs(context.Background(), slog.LevelInfo, "startup",
		slog.String("event", "startup"),
		slog.String("go_version", runtime.Version()),
		slog.String("build_commit", buildinfo.Commit),
		slog.String("build_time", buildinfo.Date),
		slog.String("cfg_profile", selectProfile(opts)),
	)
}

type logFormat int

const (
	formatJSON logFormat = iota
	formatPretty
)

func selectFormat(opts Options) logFormat {
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "kv", "text", "pretty":
		return formatPretty
	case "json":
		return formatJSON
	}
	// Prefer human-friendly format when profile indicates debug/dev mode.
	if strings.EqualFold(opts.Profile, "debug") || strings.EqualFold(opts.Profile, "dev") {
		return formatPretty
	}
	return formatJSON
}

func selectLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func selectProfile(opts Options) string {
	if profile := strings.TrimSpace(opts.Profile); profile != "" {
		return strings.ToLower(profile)
	}
	return "prod"
}

// Component constructs a logger scoped to the provided component attribute.
func Component(name string) *slog.Logger {
	if L == nil {
		return slog.Default()
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return L
	}
	return L.With("component", trimmed)
}
