package cli

import (
	"context"
	"net"

	"MarkBoard/internal/config"
	"MarkBoard/internal/logger"
	boardnet "MarkBoard/internal/net"
	"MarkBoard/internal/state"
	"MarkBoard/internal/ui"
)

// runBoard opens the window and blocks until it is closed.
func runBoard(ctx context.Context, cfg config.Config, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := logger.For("cli")
	sess := ui.NewSession(state.NewBoard(), cfg)

	if cfg.Feed.Enabled {
		startFeed(ctx, cfg.Feed, sess.Board)
	}
	if path != "" {
		go func() {
			if err := config.Watch(ctx, path, sess.Reload); err != nil {
				log.Warn("config watch stopped", "error", err)
			}
		}()
	}

	log.Info("board ready", "version", version)
	sess.Run()
	return nil
}

// startFeed publishes board changes to observers and, if asked, advertises
// the feed over mDNS. Everything stops with ctx.
func startFeed(ctx context.Context, cfg config.Feed, board *ui.BoardWidget) {
	log := logger.For("cli")
	feed := boardnet.NewFeed()
	board.OnStrokeComplete = func(s state.Stroke) { feed.Publish(boardnet.StrokeComplete(s)) }
	board.OnStrokesChange = func(c state.Collection) { feed.Publish(boardnet.StrokesChange(c)) }

	ready := func(addr net.Addr) {
		port := addr.(*net.TCPAddr).Port
		log.Info("observer feed", "url", boardnet.FeedURL(boardnet.OutgoingIP(), port))
		if !cfg.Advertise {
			return
		}
		server, err := boardnet.Advertise(cfg.Instance, port)
		if err != nil {
			log.Warn("feed not advertised", "error", err)
			return
		}
		go func() {
			<-ctx.Done()
			server.Shutdown()
		}()
	}

	go func() {
		if err := feed.Serve(ctx, cfg.Addr, ready); err != nil {
			log.Error("feed stopped", "error", err)
		}
	}()
}
