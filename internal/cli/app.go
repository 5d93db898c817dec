package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/medxscan/internal/api"
	"github.com/dmitrijs2005/medxscan/internal/config"
	"github.com/dmitrijs2005/medxscan/internal/filex"
	"github.com/dmitrijs2005/medxscan/internal/logging"
	"github.com/dmitrijs2005/medxscan/internal/models"
	"github.com/dmitrijs2005/medxscan/internal/services"
	"github.com/dmitrijs2005/medxscan/internal/storage"

	_ "modernc.org/sqlite"
)

// Mode reflects where results come from right now. Mock mode is fixed;
// remote mode flips between online and offline based on the health probe.
type Mode string

const (
	ModeMock    Mode = "mock"
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	auth   services.AuthService
	source services.AnalysisSource
	chat   services.ChatService
	api    api.Service

	user       *models.User
	Mode       Mode
	transcript []models.ChatMessage

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the application from config: one database, one API client,
// and the data source picked once by mode. Call sites never branch on
// mock-vs-remote again.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	dataDir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := storage.InitDatabase(ctx, filepath.Join(dataDir, "medxscan.db"))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}
	repos := storage.NewRepositories(db)

	apiService := api.NewService(api.New(c.APIBaseURL))

	app := &App{
		config: c,
		log:    log,
		db:     db,
		auth:   services.NewAuthService(repos.Users, repos.Session),
		api:    apiService,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	switch c.Mode {
	case config.SourceModeRemote:
		app.source = services.NewRemoteSource(apiService, repos.Analyses)
		app.chat = services.NewRemoteChat(apiService)
		app.Mode = ModeOffline
	default:
		app.source = services.NewMockSource(repos.Analyses)
		app.chat = services.NewPlaceholderChat()
		app.Mode = ModeMock
	}

	return app, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(context.Background(), "switched mode", "mode", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if u, err := a.auth.CurrentUser(ctx); err == nil {
		a.user = u
		fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	}

	if a.config.Mode == config.SourceModeRemote {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	a.Root(ctx)
}

// StartOnlineStatusWatcher probes the backend health endpoint on the given
// interval and flips between online and offline mode. Mock mode never
// starts it.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			resp, err := a.api.Health(probeCtx)
			cancel()

			if err != nil || !resp.Success {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
