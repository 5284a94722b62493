// Package cli is the interactive terminal frontend. Views are modelled as
// routes and every view change passes through the navigation guard, so the
// terminal behaves like the routed UI it stands in for.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/hashedin27-max/GCS-Upload/internal/client/api"
	"github.com/hashedin27-max/GCS-Upload/internal/client/auth"
	"github.com/hashedin27-max/GCS-Upload/internal/client/config"
	"github.com/hashedin27-max/GCS-Upload/internal/client/models"
	"github.com/hashedin27-max/GCS-Upload/internal/client/nav"
	"github.com/hashedin27-max/GCS-Upload/internal/client/session"
	"github.com/hashedin27-max/GCS-Upload/internal/client/storage"
	"github.com/hashedin27-max/GCS-Upload/internal/client/upload"
	"github.com/hashedin27-max/GCS-Upload/internal/logging"
)

// App wires the session manager, the authorized transport, and the upload
// orchestrator together and drives them from a REPL.
type App struct {
	config   *config.Config
	log      logging.Logger
	session  *auth.Manager
	uploader *upload.Orchestrator
	reader   *bufio.Reader

	route     string
	returnURL string
	target    models.BucketTarget
}

// NewApp constructs the full client. The session manager is the only writer
// of session state; the transport and the guard read through it.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	a := &App{
		config: cfg,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		route:  nav.RouteLogin,
		target: cfg.DefaultTarget(),
	}

	store := session.NewFileStore(cfg.StateDir)

	transport := &api.AuthTransport{
		Tokens: api.TokenFunc(func() string { return a.session.Token() }),
		OnUnauthorized: func() {
			a.session.ForceLogout(context.Background())
			a.route = nav.RouteLogin
			fmt.Println("Session is no longer valid, please log in again.")
		},
		OnForbidden: func() {
			a.route = nav.RouteLogin
			fmt.Println("Access denied.")
		},
	}
	client := api.New(cfg.APIBaseURL, transport, cfg.RequestTimeout, log)
	a.session = auth.NewManager(client, store, log)

	var uploadTransport upload.Transport = client
	if cfg.DirectUpload {
		direct, err := storage.New(storage.Options{
			Endpoint:  cfg.StorageEndpoint,
			AccessKey: cfg.StorageAccessKey,
			SecretKey: cfg.StorageSecretKey,
			UseSSL:    cfg.StorageUseSSL,
		}, log)
		if err != nil {
			return nil, err
		}
		uploadTransport = direct
	}
	a.uploader = upload.NewOrchestrator(uploadTransport, cfg.Policy(), log)

	return a, nil
}

// Run restores any persisted session and enters the REPL.
func (a *App) Run(ctx context.Context) {
	a.session.Restore(ctx)
	a.navigate(nav.RouteUpload)
	a.Root(ctx)
}

// navigate applies the guard to the requested path, following redirects
// until a route is allowed. The guard is consulted fresh on every attempt.
func (a *App) navigate(path string) {
	for {
		d := nav.Decide(a.session.IsAuthenticated(), path)
		if d.ReturnURL != "" {
			a.returnURL = d.ReturnURL
		}
		if d.Action == nav.Allow {
			a.route = d.Target
			return
		}
		path = d.Target
	}
}

// resume continues to the post-login destination captured by the guard.
func (a *App) resume() {
	target := a.returnURL
	a.returnURL = ""
	if target == "" {
		target = nav.RouteUpload
	}
	a.navigate(target)
}
