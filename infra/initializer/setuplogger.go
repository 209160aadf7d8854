package initializer

import (
	"log/slog"
	"os"

	"github.com/amirasaad/shoplist/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var levelColors = map[log.Level]lipgloss.AdaptiveColor{
	log.DebugLevel: {Light: "#6C5CE7", Dark: "#A29BFE"},
	log.InfoLevel:  {Light: "#00875A", Dark: "#55EFC4"},
	log.WarnLevel:  {Light: "#B7791F", Dark: "#FDCB6E"},
	log.ErrorLevel: {Light: "#C0392B", Dark: "#FF7675"},
}

var levelLabels = map[log.Level]string{
	log.DebugLevel: "DBG",
	log.InfoLevel:  "INF",
	log.WarnLevel:  "WRN",
	log.ErrorLevel: "ERR",
}

// logStyles colors level labels and the attribute keys the services use
// most often.
func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	for level, c := range levelColors {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(levelLabels[level]).
			Bold(true).
			Padding(0, 1).
			Foreground(c)
	}

	key := lipgloss.NewStyle().Foreground(levelColors[log.DebugLevel])
	for _, k := range []string{"generation", "shopping_uid", "uid", "key", "source"} {
		styles.Keys[k] = key
		styles.Values[k] = lipgloss.NewStyle().Bold(true)
	}
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(levelColors[log.ErrorLevel])
	styles.Values["error"] = lipgloss.NewStyle().Bold(true)
	return styles
}

// setupLogger writes to stderr so command output on stdout stays parseable.
func setupLogger(cfg *config.Log) *slog.Logger {
	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    cfg.Level < 0,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(logStyles())

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}
