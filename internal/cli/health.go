package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/medxscan/internal/config"
)

// Health probes the backend and prints its status. In remote mode the
// online indicator is updated immediately instead of waiting for the next
// watcher tick.
func (a *App) Health(ctx context.Context) error {
	resp, err := a.api.Health(ctx)
	if err != nil || !resp.Success || resp.Data == nil {
		if err != nil {
			fmt.Fprintf(a.out, "Backend unavailable: %v\n", err)
		} else {
			fmt.Fprintf(a.out, "Backend unhealthy: %s\n", resp.Error)
		}
		if a.config.Mode == config.SourceModeRemote {
			a.setMode(ModeOffline)
		}
		return nil
	}

	fmt.Fprintf(a.out, "Backend: %s (%s %s)\n",
		resp.Data.Status, resp.Data.Service, resp.Data.Version)
	if a.config.Mode == config.SourceModeRemote {
		a.setMode(ModeOnline)
	}
	return nil
}
