package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/attendance"
	"github.com/nzaba/tempo/core/directory"
	"github.com/nzaba/tempo/core/note"
	"github.com/nzaba/tempo/core/schedule"
	"github.com/nzaba/tempo/core/timeclock"
)

type (
	ServerDeps struct {
		Conf          *core.Config
		Logger        core.Logger
		DirectorySvc  *directory.Service
		ScheduleSvc   *schedule.Service
		AttendanceSvc *attendance.Service
		TimeclockSvc  *timeclock.Service
		NoteSvc       *note.Service
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps ServerDeps
		app  *echo.Echo

		errs         chan error
		shutdownSigs chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:         deps,
		app:          echo.New(),
		errs:         make(chan error, 1),
		shutdownSigs: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdownSigs, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: conf.Server.RequestTimeout}))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	registerDirectoryAPI(v1, s.deps.DirectorySvc)
	registerScheduleAPI(v1, s.deps.ScheduleSvc)
	registerStaffAPI(v1, s.deps.DirectorySvc, s.deps.TimeclockSvc)
	registerCheckinAPI(v1, s.deps.DirectorySvc, s.deps.AttendanceSvc)
	registerNoteAPI(v1, s.deps.DirectorySvc, s.deps.NoteSvc)
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address()); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errs
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdownSigs
}

// signalShutdown sends a SIGTERM down the shutdown channel when an
// unrecoverable error is caught by the error handler.
func (s *server) signalShutdown() {
	s.shutdownSigs <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Tempo API!")
}
