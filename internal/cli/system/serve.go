package system

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/lawnlog/internal/cli"
	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on." default:"${listen_addr}"`
}

func (c *ServeCmd) Validate() error {
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("invalid listen address %q: %w", c.Addr, err)
	}
	return nil
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(ctx.Service)
	ctx.Printf("Serving lawnlog API on http://%s (Ctrl+C to stop)\n", c.Addr)
	return srv.ListenAndServe(sigCtx, c.Addr)
}

// DefaultVars supplies kong interpolation values for system commands.
func DefaultVars() map[string]string {
	return map[string]string{"listen_addr": constants.DefaultListenAddr}
}
