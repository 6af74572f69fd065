package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"squeedr/docs" //required to register swagger docs
	"squeedr/internal/auth"
	"squeedr/internal/domain/accesscontrol"
	"squeedr/internal/domain/storage"
	"squeedr/internal/domain/waitlist"
	"squeedr/internal/mailer"
	"squeedr/internal/notifications"
	"squeedr/internal/ratelimiter"
	"squeedr/internal/reference"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

type application struct {
	config        config
	store         *storage.Container
	logger        *zap.SugaredLogger
	cld           *cloudinary.Cloudinary
	mailer        mailer.Client
	authenticator auth.Authenticator
	push          notifications.PushSender
	waitlist      *waitlist.Manager
	rateLimiter   *ratelimiter.FixedWindowRateLimiter
	refs          *reference.Generator
	googleOAuth   *oauth2.Config
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	mail        mailConfig
	frontendURL string
	auth        authConfig
	waitlist    waitlistConfig
	google      googleConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}
type tokenConfig struct {
	refreshSecret   string
	secret          string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	iss             string
}
type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	exp       time.Duration
	fromEmail string
	smtp      smtpConfig
}

type smtpConfig struct {
	host     string
	port     int
	username string
	password string
}

type dbConfig struct {
	addr        string
	maxConns    int
	maxIdleTime string
}

type waitlistConfig struct {
	offerWindow   time.Duration
	sweepInterval time.Duration
}

type googleConfig struct {
	clientID     string
	clientSecret string
	redirectURL  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Requests give up through ctx.Done() after this long.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Public routes
		r.Route("/authentication", func(r chi.Router) {
			r.Post("/user", app.registerUserHandler)
			r.Post("/token", app.createTokenHandler)
			r.Post("/refresh", app.refreshTokenHandler)
		})
		r.Put("/users/activate/{token}", app.activateUserHandler)

		r.Route("/users", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/me", app.getMeHandler)
			r.Put("/", app.updateUserHandler)
			r.Post("/role", app.switchRoleHandler)
			r.Get("/role/history", app.roleHistoryHandler)
			r.Post("/profile-picture", app.uploadProfilePictureHandler)
			r.Post("/push-token", app.registerPushTokenHandler)
			r.Delete("/push-token", app.removePushTokenHandler)
			r.Post("/logout", app.logoutHandler)
		})

		r.Route("/workspaces", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.With(app.RequirePermission(accesscontrol.WorkspacesCreate)).Post("/", app.createWorkspaceHandler)
			r.With(app.RequirePermission(accesscontrol.WorkspacesView)).Get("/", app.listWorkspacesHandler)

			r.Route("/{workspaceID}", func(r chi.Router) {
				r.With(app.RequirePermission(accesscontrol.WorkspacesView)).Get("/", app.getWorkspaceHandler)
				r.With(app.RequirePermission(accesscontrol.WorkspacesEdit)).Patch("/", app.updateWorkspaceHandler)
				r.With(app.RequirePermission(accesscontrol.WorkspacesDelete)).Delete("/", app.deleteWorkspaceHandler)
				r.With(app.RequirePermission(accesscontrol.WorkspacesView)).Get("/availability", app.workspaceAvailabilityHandler)
				r.With(app.RequirePermission(accesscontrol.BookingsCreate)).Post("/bookings", app.createBookingHandler)
				r.With(app.RequirePermission(accesscontrol.BookingsManage)).Get("/bookings", app.workspaceBookingsHandler)
				r.With(app.RequirePermission(accesscontrol.WaitlistJoin)).Post("/waitlist", app.joinWaitlistHandler)
				r.With(app.RequirePermission(accesscontrol.WaitlistManage)).Get("/waitlist", app.listWorkspaceWaitlistHandler)
			})
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.With(app.RequirePermission(accesscontrol.SessionsCreate)).Post("/", app.createSessionHandler)
			r.With(app.RequirePermission(accesscontrol.SessionsView)).Get("/", app.listSessionsHandler)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.With(app.RequirePermission(accesscontrol.SessionsView)).Get("/", app.getSessionHandler)
				r.With(app.RequirePermission(accesscontrol.SessionsEdit)).Patch("/", app.updateSessionHandler)
				r.With(app.RequirePermission(accesscontrol.SessionsDelete)).Delete("/", app.deleteSessionHandler)
			})
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/mine", app.myBookingsHandler)
			r.Post("/{bookingID}/cancel", app.cancelBookingHandler)
		})

		r.Route("/waitlist", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/mine", app.myWaitlistHandler)

			r.Route("/{requestID}", func(r chi.Router) {
				r.Post("/claim", app.claimWaitlistHandler)
				r.Post("/decline", app.declineWaitlistHandler)
				r.Post("/cancel", app.cancelWaitlistHandler)
				r.With(app.RequirePermission(accesscontrol.WaitlistManage)).Post("/notify", app.notifyWaitlistHandler)
			})
		})

		r.Route("/calendar/google", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/", app.googleCalendarStatusHandler)
			r.Get("/connect", app.googleCalendarConnectHandler)
			r.Get("/callback", app.googleCalendarCallbackHandler)
			r.Delete("/", app.googleCalendarDisconnectHandler)
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
