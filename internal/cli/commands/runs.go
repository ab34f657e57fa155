package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"pageObject/internal/cli/ui"
	"pageObject/internal/database"
)

type RunLister interface {
	List(ctx context.Context, limit, offset int) ([]database.Run, error)
}

// RunsHandler показывает журнал прогонов
type RunsHandler struct {
	repo RunLister
	out  io.Writer
	log  *zap.Logger
}

func NewRunsHandler(repo RunLister, out io.Writer, log *zap.Logger) *RunsHandler {
	return &RunsHandler{
		repo: repo,
		out:  out,
		log:  log,
	}
}

// List выводит последние n прогонов
func (h *RunsHandler) List(ctx context.Context, raw string) {
	if h.repo == nil {
		ui.Warn(h.out, "Журнал прогонов не подключен (DB_HOST, DB_NAME)")
		return
	}
	limit := 20
	if raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			ui.Warn(h.out, "Неверное количество: %s", raw)
			return
		}
		limit = n
	}

	runs, err := h.repo.List(ctx, limit, 0)
	if err != nil {
		h.log.Error("Ошибка чтения прогонов", zap.Error(err))
		ui.Fail(h.out, "Ошибка чтения прогонов", err)
		return
	}

	fmt.Fprintln(h.out, "\n"+ui.ColorBold+ui.IconList+" Прогоны:"+ui.ColorReset)
	fmt.Fprintln(h.out)
	for _, r := range runs {
		icon, color, text := ui.FormatStatus(r.Status)
		fmt.Fprintf(h.out, "  "+ui.ColorBold+"#%d"+ui.ColorReset+" %s%s %s"+ui.ColorReset+" %s\n", r.ID, color, icon, text, r.Name)
		fmt.Fprintf(h.out, "  "+ui.ColorGray+"└─ "+ui.IconTime+" %s, %s"+ui.ColorReset+"\n", r.StartedAt.Format("2006-01-02 15:04:05"), r.Duration)
		if r.ScreenshotPath != "" {
			fmt.Fprintf(h.out, "     "+ui.ColorGray+"%s"+ui.ColorReset+"\n", r.ScreenshotPath)
		}
	}
	fmt.Fprintln(h.out)
}
