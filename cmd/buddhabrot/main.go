package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/gops/agent"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"

	"buddhabrot/internal/config"
)

var (
	configFile   = flag.String("f", "etc/buddhabrot.yaml", "the config file")
	mode         = flag.String("mode", "render", "render: compute and write the image; tonemap: re-render a saved histogram")
	snapshotFile = flag.String("snapshot", "", "histogram snapshot to read in tonemap mode")
)

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)
	logx.MustSetup(c.Log)

	if err := run(&c); err != nil {
		logx.Error(err)
		logx.Close()
		os.Exit(1)
	}
	logx.Close()
}

func run(c *config.Config) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Gops.Enabled {
		if err := agent.Listen(agent.Options{Addr: c.Gops.Addr, ShutdownCleanup: true}); err != nil {
			return fmt.Errorf("start gops agent: %w", err)
		}
		defer agent.Close()
	}

	// 收到信号后不再启动新的分区，已开始的分区会跑完
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := initApp(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	switch *mode {
	case "render":
		return app.Render(ctx)
	case "tonemap":
		return app.Tonemap(*snapshotFile)
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}
}
