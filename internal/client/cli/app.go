package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dmitrijs2005/admissions/internal/client/admin"
	"github.com/dmitrijs2005/admissions/internal/client/client"
	"github.com/dmitrijs2005/admissions/internal/client/config"
	"github.com/dmitrijs2005/admissions/internal/client/export"
	"github.com/dmitrijs2005/admissions/internal/client/guard"
	"github.com/dmitrijs2005/admissions/internal/client/inbox"
	"github.com/dmitrijs2005/admissions/internal/client/services"
	"github.com/dmitrijs2005/admissions/internal/client/session"
	"github.com/dmitrijs2005/admissions/internal/client/storage"
	"github.com/dmitrijs2005/admissions/internal/client/wizard"
	"github.com/dmitrijs2005/admissions/internal/cryptox"
	"github.com/dmitrijs2005/admissions/internal/filex"
	"github.com/dmitrijs2005/admissions/internal/logging"
)

const (
	tokenKeySize = 32
	tokenKeySalt = "admissions-token-v1"
)

// sessionSource is the read side of the session store.
type sessionSource interface {
	Current(ctx context.Context) (*session.Session, error)
}

// navigator is the router surface the REPL drives.
type navigator interface {
	Navigate(ctx context.Context, target string) error
	Current() guard.Location
	OnEnter(route string, fn guard.EnterFunc)
}

// sinkOpener resolves a download destination. Swapped in tests.
type sinkOpener func(ctx context.Context, dest string) (wizard.Sink, error)

type App struct {
	config *config.Config
	log    logging.Logger
	out    io.Writer
	reader *bufio.Reader
	db     *sql.DB

	sessions sessionSource
	router   navigator
	auth     services.AuthService

	wizard    *wizard.Controller
	inbox     *inbox.Inbox
	listing   *admin.Listing
	review    *admin.Review
	dashboard *admin.Dashboard
	openSink  sinkOpener

	unsubscribe func()
}

// NewApp opens the local session database and wires the API client, the
// router and every view controller.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	sealer, err := tokenSealer(c.TokenKeyFile)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store, err := session.NewStore(session.Config{DB: db, TTL: c.TokenTTL, Sealer: sealer, Logger: log})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	router := guard.NewRouter(store, guard.DefaultRoutes(), log)

	authn, err := client.NewAuthenticator(nil, c.ServerURL, store, router, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	api, err := client.NewHTTPClient(client.ClientConfig{
		BaseURL:       c.ServerURL,
		Authenticator: authn,
		Timeout:       c.RequestTimeout,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	reader := bufio.NewReader(os.Stdin)
	wiz, err := wizard.New(wizard.Config{
		Services: wizard.Services{
			PersonalInfo:    services.NewPersonalInfoService(api),
			Documents:       services.NewDocumentService(api),
			AcademicHistory: services.NewAcademicHistoryService(api),
			ContactInfo:     services.NewContactInfoService(api),
		},
		Confirmer:  promptConfirmer{reader: reader, out: os.Stdout},
		Logger:     log,
		SuccessTTL: c.SuccessBannerTTL,
		ErrorTTL:   c.ErrorBannerTTL,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	adminSvc := services.NewAdminService(api)
	s3cfg := export.S3Config{
		Region:    c.AWSRegion,
		Endpoint:  c.S3Endpoint,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
	}

	a := &App{
		config:   c,
		log:      log,
		out:      os.Stdout,
		reader:   reader,
		db:       db,
		sessions: store,
		router:   router,
		auth:     services.NewAuthService(api, store),
		wizard:   wiz,
		inbox:    inbox.New(services.NewNotificationService(api), log),
		listing:  admin.NewListing(adminSvc, c.PageSize, log),
		review: admin.NewReview(admin.ReviewConfig{
			Service:    adminSvc,
			Logger:     log,
			SuccessTTL: c.SuccessBannerTTL,
			ErrorTTL:   c.ErrorBannerTTL,
		}),
		dashboard: admin.NewDashboard(adminSvc, log),
		openSink: func(ctx context.Context, dest string) (wizard.Sink, error) {
			return export.Open(ctx, dest, s3cfg)
		},
	}
	a.unsubscribe = store.Subscribe(a.sessionChanged)
	a.mount()
	return a, nil
}

// tokenSealer returns nil when no key file is configured; the token is then
// stored as issued.
func tokenSealer(keyFile string) (session.TokenSealer, error) {
	if keyFile == "" {
		return nil, nil
	}
	secret, err := filex.ReadOrCreateSecret(keyFile, tokenKeySize)
	if err != nil {
		return nil, err
	}
	s, err := cryptox.NewSealer(cryptox.DeriveKey(secret, []byte(tokenKeySalt)))
	if err != nil {
		return nil, fmt.Errorf("token sealer: %w", err)
	}
	return s, nil
}

// mount loads each view when its route is entered.
func (a *App) mount() {
	a.router.OnEnter(guard.RouteApplicant, func(ctx context.Context, _ guard.Location) {
		_ = a.wizard.Start(ctx)
		a.showSteps()
		for _, m := range a.wizard.Banners() {
			a.printBanner(m)
		}
		a.report(a.inbox.Load(ctx))
		if n := a.inbox.Unread(); n > 0 {
			fmt.Fprintf(a.out, "You have %d unread notification(s)\n", n)
		}
	})
	a.router.OnEnter(guard.RouteAdminDashboard, func(ctx context.Context, _ guard.Location) {
		_ = a.dashboard.Load(ctx)
		a.showDashboard()
	})
	a.router.OnEnter(guard.RouteAdminUsers, func(ctx context.Context, _ guard.Location) {
		_ = a.listing.Load(ctx)
		a.showUsers()
	})
	a.router.OnEnter(guard.RouteAdminUser, func(ctx context.Context, loc guard.Location) {
		id, err := strconv.ParseInt(loc.Vars["id"], 10, 64)
		if err != nil {
			a.report(err)
			return
		}
		_ = a.review.Load(ctx, id)
		a.showApplication()
	})
	a.router.OnEnter(guard.RouteLogin, func(_ context.Context, loc guard.Location) {
		if msg := loginNotice(loc.Query); msg != "" {
			fmt.Fprintln(a.out, msg)
		}
	})
}

// sessionChanged drops applicant state once nobody is signed in.
func (a *App) sessionChanged(s *session.Session) {
	if s == nil && a.wizard != nil {
		a.wizard.Reset()
	}
}

// report prints a view error that has no banner of its own.
func (a *App) report(err error) {
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
	}
}

// Run starts the REPL and releases resources when it returns.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close stops banner timers and closes the session database.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.wizard != nil {
		a.wizard.Close()
	}
	if a.review != nil {
		a.review.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "close database", "error", err)
		}
	}
}

func (a *App) currentSession(ctx context.Context) *session.Session {
	s, err := a.sessions.Current(ctx)
	if err != nil {
		a.log.Warn(ctx, "session unavailable", "error", err)
		return nil
	}
	return s
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.currentSession(ctx) != nil
}
