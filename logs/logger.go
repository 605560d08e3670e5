// Package logs builds the slog logger shared by the commands.
package logs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Level is shared by every handler so it can be changed after New.
var Level = new(slog.LevelVar)

type Options struct {
	Level slog.Level
	// Terminal handler destination, defaults to os.Stderr.
	Writer io.Writer
	// When set, records are also written there as JSON.
	File string
}

// New returns the logger and a function closing the log file, if any.
func New(opts Options) (*slog.Logger, func() error, error) {
	Level.Set(opts.Level)
	closer := func() error { return nil }

	var handlers []slog.Handler

	isSystemdService := false
	if cgroupPath, err := getCgroupPath(); err == nil {
		isSystemdService = isService(cgroupPath)
	}

	// local
	var terminalHandler slog.Handler
	if !isSystemdService {
		w := opts.Writer
		if w == nil {
			w = os.Stderr
		}
		terminalHandler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: Level})
		handlers = append(handlers, terminalHandler)
	} else {
		// systemd journal
		journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: Level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			return nil, nil, fmt.Errorf("new systemd journal handler: %w", err)
		}
		handlers = append(handlers, journalHandler)
	}

	// file
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: Level}))
		closer = f.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// ParseFlag returns the level for -log-debug, -log-info, -log-warn and
// -log-error.
func ParseFlag(arg string) (slog.Level, bool) {
	switch arg {
	case "-log-debug":
		return slog.LevelDebug, true
	case "-log-info":
		return slog.LevelInfo, true
	case "-log-warn":
		return slog.LevelWarn, true
	case "-log-error":
		return slog.LevelError, true
	}
	return 0, false
}

// isService reports whether the cgroup belongs to a systemd unit, either
// directly or through a sub-group.
func isService(cgroupPath string) bool {
	cgroupPath = strings.TrimSpace(cgroupPath)
	return strings.HasSuffix(cgroupPath, ".service") ||
		strings.HasSuffix(path.Dir(cgroupPath), ".service")
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	str = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
	return str
}

func getCgroupPath() (string, error) {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return "", err
	}
	parts := strings.Split(string(content), ":")
	if len(parts) >= 3 {
		return parts[2], nil
	}
	return "", nil
}
