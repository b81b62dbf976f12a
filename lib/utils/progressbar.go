package utils

import (
	"io"
	"time"

	"github.com/aquilax/truncate"
	"github.com/schollz/progressbar/v3"
)

func NewProgressBar(total int) *progressbar.ProgressBar {
	return newProgressBar(total)
}

func NewSilentProgressBar(total int) *progressbar.ProgressBar {
	return newProgressBar(total, progressbar.OptionSetWriter(io.Discard))
}

func newProgressBar(total int, extra ...progressbar.Option) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionThrottle(time.Second),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{Saucer: "#", SaucerPadding: " ", BarStart: "|", BarEnd: "|"}),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	}
	opts = append(opts, extra...)

	return progressbar.NewOptions(total, opts...)
}

// TruncateFilename shortens a path for display, keeping its end.
func TruncateFilename(name string) string {
	return truncate.Truncate(name, 40, "...", truncate.PositionStart)
}
