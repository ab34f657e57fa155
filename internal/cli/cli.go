package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"pageObject/internal/cli/commands"
	"pageObject/internal/cli/ui"
	"pageObject/internal/page"

	"github.com/chzyer/readline"
	"go.uber.org/zap"
)

type CLI struct {
	comp   *page.Component
	log    *zap.Logger
	out    io.Writer
	in     *bufio.Reader
	rl     *readline.Instance
	runs   commands.RunLister
	noTerm bool

	elementHandler *commands.ElementHandler
	windowHandler  *commands.WindowHandler
	tableHandler   *commands.TableHandler
	runsHandler    *commands.RunsHandler
}

type Option func(*CLI)

func WithOutput(w io.Writer) Option {
	return func(c *CLI) {
		c.out = w
	}
}

// WithInput читает команды из r без readline
func WithInput(r io.Reader) Option {
	return func(c *CLI) {
		c.in = bufio.NewReader(r)
		c.noTerm = true
	}
}

func WithRuns(runs commands.RunLister) Option {
	return func(c *CLI) {
		c.runs = runs
	}
}

func New(comp *page.Component, log *zap.Logger, opts ...Option) *CLI {
	if log == nil {
		log = zap.NewNop()
	}
	cli := &CLI{
		comp: comp,
		log:  log.Named("cli"),
		out:  os.Stdout,
	}
	for _, opt := range opts {
		opt(cli)
	}

	// Инициализация handlers
	cli.elementHandler = commands.NewElementHandler(comp, cli.out)
	cli.windowHandler = commands.NewWindowHandler(comp, cli.out)
	cli.tableHandler = commands.NewTableHandler(comp, cli.out)
	cli.runsHandler = commands.NewRunsHandler(cli.runs, cli.out, cli.log)

	if cli.noTerm {
		return cli
	}

	// Инициализация readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".page-object-history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          cli.out,
	})
	if err != nil {
		cli.log.Warn("Не удалось инициализировать readline, будет использован fallback режим", zap.Error(err))
		cli.in = bufio.NewReader(os.Stdin)
	} else {
		cli.rl = rl
	}

	return cli
}

func (c *CLI) readLine() (string, error) {
	if c.rl != nil {
		return c.rl.Readline()
	}
	// Fallback для работы без readline
	fmt.Fprint(c.out, ui.ColorCyan+"> "+ui.ColorReset)
	line, err := c.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *CLI) closeReadline() {
	if c.rl != nil {
		c.rl.Close()
	}
}

func (c *CLI) Run(ctx context.Context) {
	ui.PrintWelcome(c.out, c.comp.URL(""))
	defer c.closeReadline()

	for {
		// Проверка отмены контекста
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out, "\n"+ui.ColorCyan+ui.IconWave+" Получен сигнал завершения..."+ui.ColorReset)
			return
		default:
		}

		line, err := c.readLine()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return
			}
			continue
		} else if err != nil {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !c.Execute(ctx, line) {
			return
		}
	}
}

// Execute выполняет одну команду; false означает выход.
func (c *CLI) Execute(ctx context.Context, line string) bool {
	args, err := SplitArgs(line)
	if err != nil {
		ui.Fail(c.out, "Ошибка разбора", err)
		return true
	}
	if len(args) == 0 {
		return true
	}
	cmd, args := args[0], args[1:]
	c.log.Debug("Команда", zap.String("cmd", cmd), zap.Int("args", len(args)))

	switch cmd {
	case "exit":
		fmt.Fprintln(c.out, ui.ColorCyan+ui.IconWave+" До свидания!"+ui.ColorReset)
		return false

	case "clear":
		ui.ClearScreen(c.out)

	case "help":
		ui.PrintHelp(c.out)

	case "open":
		if c.need(args, 1, "open <url|путь>") {
			c.elementHandler.Open(ctx, args[0])
		}
	case "title":
		c.elementHandler.Title(ctx)
	case "present":
		if c.need(args, 1, "present <локатор>") {
			c.elementHandler.Present(ctx, args[0])
		}
	case "count":
		if c.need(args, 1, "count <локатор>") {
			c.elementHandler.Count(ctx, args[0])
		}
	case "text":
		if c.need(args, 1, "text <локатор>") {
			c.elementHandler.Text(ctx, args[0])
		}
	case "value":
		if c.need(args, 1, "value <локатор>") {
			c.elementHandler.Value(ctx, args[0])
		}
	case "attr":
		if c.need(args, 2, "attr <локатор> <имя>") {
			c.elementHandler.Attr(ctx, args[0], args[1])
		}
	case "click":
		if c.need(args, 1, "click <локатор>") {
			c.elementHandler.Click(ctx, args[0])
		}
	case "scroll":
		if c.need(args, 1, "scroll <локатор>") {
			c.elementHandler.Scroll(ctx, args[0])
		}
	case "type":
		if c.need(args, 2, "type <локатор> <текст>") {
			c.elementHandler.Type(ctx, args[0], strings.Join(args[1:], " "))
		}
	case "select":
		if c.need(args, 2, "select <локатор> <опция>") {
			c.elementHandler.Select(ctx, args[0], args[1])
		}
	case "wait":
		if c.need(args, 1, "wait <локатор> [мс]") {
			if timeout, ok := c.millis(args, 1); ok {
				c.elementHandler.Wait(ctx, args[0], timeout)
			}
		}
	case "wait-load":
		if timeout, ok := c.millis(args, 0); ok {
			c.elementHandler.WaitLoad(ctx, timeout)
		}
	case "until":
		if c.need(args, 1, "until <js> [мс]") {
			if timeout, ok := c.millis(args, 1); ok {
				c.elementHandler.Until(ctx, args[0], timeout)
			}
		}

	case "table":
		if c.need(args, 1, "table <xpath>") {
			c.tableHandler.Use(args[0])
		}
	case "columns":
		c.tableHandler.Columns(ctx)
	case "column":
		if c.need(args, 1, "column <заголовок>") {
			c.tableHandler.Column(ctx, strings.Join(args, " "))
		}
	case "find":
		if c.need(args, 1, "find <ключ>...") {
			c.tableHandler.Find(ctx, args)
		}
	case "row":
		if c.need(args, 1, "row <n>") {
			c.tableHandler.Row(ctx, args[0])
		}
	case "rows":
		c.tableHandler.Rows(ctx)
	case "first", "prev", "next", "last":
		c.tableHandler.Page(ctx, cmd)

	case "windows":
		c.windowHandler.List(ctx)
	case "window":
		if c.need(args, 1, "window <title=|name=>") {
			c.windowHandler.Select(ctx, strings.Join(args, " "))
		}

	case "runs":
		limit := ""
		if len(args) > 0 {
			limit = args[0]
		}
		c.runsHandler.List(ctx, limit)

	default:
		ui.Warn(c.out, "Неизвестная команда: %s", cmd)
		ui.PrintHelp(c.out)
	}
	return true
}

func (c *CLI) need(args []string, n int, usage string) bool {
	if len(args) < n {
		ui.Warn(c.out, "Использование: %s", usage)
		return false
	}
	return true
}

// millis читает необязательный таймаут в миллисекундах из args[i]
func (c *CLI) millis(args []string, i int) (time.Duration, bool) {
	if len(args) <= i {
		return 0, true
	}
	ms, err := strconv.Atoi(args[i])
	if err != nil || ms < 0 {
		ui.Warn(c.out, "Таймаут задается в миллисекундах: %s", args[i])
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}
