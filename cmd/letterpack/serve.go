package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"github.com/letterpack/letterpack/internal/storage"
	"github.com/letterpack/letterpack/internal/web"
)

func (a *app) cmdServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var (
		common commonFlags
		addr   string
	)
	common.register(fs, "")
	fs.StringVar(&addr, "addr", "", "待ち受けアドレス（例: :8080）")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	e, err := common.setup()
	if err != nil {
		return err
	}
	defer e.logger.Sync()
	if addr != "" {
		e.settings.Server.Addr = addr
	}

	sink, err := storage.New(ctx, &e.settings.Storage, storage.WithLogger(e.logger))
	if err != nil {
		return err
	}
	if sink != nil {
		e.logger.Info("Archiving generated documents", zap.String("driver", e.settings.Storage.Driver))
	}

	srv := web.NewServer(web.Config{
		Server:    e.settings.Server,
		Generator: e.gen,
		Sink:      sink,
		Logger:    e.logger,
	})
	return srv.ListenAndServe(ctx)
}
