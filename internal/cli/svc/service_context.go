package svc

import (
	"context"

	"kat/internal/cli/config"
	httpclient "kat/internal/cli/http"
	"kat/internal/localjudge/runner"
	localsvc "kat/internal/localjudge/service"
	"kat/internal/submission/poller"
	submitsvc "kat/internal/submission/service"
	"kat/internal/submission/watcher"
	appErr "kat/pkg/errors"
	"kat/pkg/utils/logger"

	"github.com/google/uuid"
)

const userAgent = "kat-cli/1"

// ServiceContext wires the collaborators used by one CLI invocation. The
// HTTP client is created once and shared so the judge session survives from
// login through every status poll.
type ServiceContext struct {
	Config config.Config
	RunID  string
	Client *httpclient.Client
	Engine *localsvc.Service
	Poller *poller.Poller
}

// NewServiceContext builds the service context from a loaded config.
func NewServiceContext(c config.Config) (*ServiceContext, error) {
	client, err := httpclient.New(httpclient.Options{Timeout: c.Timeout, UserAgent: userAgent})
	if err != nil {
		return nil, err
	}
	return &ServiceContext{
		Config: c,
		RunID:  uuid.NewString(),
		Client: client,
		Engine: localsvc.NewService(runner.NewProcessRunner()),
		Poller: poller.New(client),
	}, nil
}

// WithRunID tags ctx with this invocation's run id for logging.
func (s *ServiceContext) WithRunID(ctx context.Context) context.Context {
	return logger.WithRunID(ctx, s.RunID)
}

// Judge returns a submission service for the site hosting problemID. When
// requireCredentials is false a missing kattisrc is tolerated, which is
// enough for anonymous requests such as fetching samples.
func (s *ServiceContext) Judge(problemID string, requireCredentials bool) (*submitsvc.Service, error) {
	rc, err := config.LoadKattisrc(s.Config.Kattisrc)
	if err != nil {
		if requireCredentials || !appErr.Is(err, appErr.CredentialsMissing) {
			return nil, err
		}
	}
	host := s.Config.Host(rc.Hostname)
	site := submitsvc.NewSite(host)
	if problemID != "" {
		site = submitsvc.SiteForProblem(host, problemID)
	}
	return submitsvc.NewService(s.Client, site, submitsvc.Credentials{Username: rc.Username, Token: rc.Token}), nil
}

// Watcher returns a submission watcher using the shared poller.
func (s *ServiceContext) Watcher(renderer watcher.Renderer) *watcher.Watcher {
	w := watcher.NewWatcher(s.Poller, renderer)
	w.SetInterval(s.Config.PollInterval)
	return w
}
