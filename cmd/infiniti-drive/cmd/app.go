package cmd

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/infinitidrive/infiniti-drive/api/openapi"
	"github.com/infinitidrive/infiniti-drive/internal/api/handlers"
	"github.com/infinitidrive/infiniti-drive/internal/api/middleware"
	"github.com/infinitidrive/infiniti-drive/internal/cms"
	"github.com/infinitidrive/infiniti-drive/internal/config"
	"github.com/infinitidrive/infiniti-drive/internal/enquiry"
	"github.com/infinitidrive/infiniti-drive/internal/inventory"
)

// app holds the wired components of a running server.
type app struct {
	echo       *echo.Echo
	inventory  *inventory.Inventory
	scheduler  *inventory.Scheduler
	dispatcher *enquiry.Dispatcher
}

func newSource(cfg *config.CMSConfig, log *slog.Logger) *cms.HTTPSource {
	return cms.NewHTTPSource(cfg.BaseURL,
		cms.WithAPIToken(cfg.APIToken),
		cms.WithListingsPath(cfg.ListingsPath),
		cms.WithPageSize(cfg.PageSize),
		cms.WithMaxPages(cfg.MaxPages),
		cms.WithHTTPClient(&http.Client{Timeout: cfg.FetchTimeout}),
		cms.WithRateLimiter(cms.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)),
		cms.WithLogger(log.With("component", "cms")),
	)
}

func newSubmitter(cfg *config.EnquiryConfig, log *slog.Logger) enquiry.Submitter {
	client := &http.Client{Timeout: cfg.Timeout}
	switch cfg.Backend {
	case "webhook":
		return enquiry.NewWebhookSubmitter(cfg.WebhookURL,
			enquiry.WithToken(cfg.Token),
			enquiry.WithHTTPClient(client),
		)
	case "discord":
		return enquiry.NewDiscordSubmitter(cfg.WebhookURL,
			enquiry.WithListingURL(cfg.ListingURL),
			enquiry.WithDiscordHTTPClient(client),
		)
	default:
		return enquiry.NewNoOpSubmitter(log)
	}
}

// newApp wires config into the inventory, enquiry pipeline, and HTTP server.
// Nothing is started.
func newApp(cfg *config.Config, src cms.Source, log *slog.Logger) (*app, error) {
	inv := inventory.New(src, log.With("component", "inventory"))

	sched, err := inventory.NewScheduler(
		inv,
		cfg.CMS.RefreshInterval,
		cfg.CMS.FetchTimeout,
		log.With("component", "scheduler"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}

	enquiryLog := log.With("component", "enquiry")
	disp := enquiry.NewDispatcher(
		newSubmitter(&cfg.Enquiry, enquiryLog),
		enquiryLog,
		enquiry.WithQueueSize(cfg.Enquiry.QueueSize),
		enquiry.WithWorkers(cfg.Enquiry.Workers),
		enquiry.WithSubmitTimeout(cfg.Enquiry.Timeout),
		enquiry.WithRetry(cfg.Enquiry.MaxAttempts, cfg.Enquiry.RetryDelay),
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(inv))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	openapi.RegisterRoutes(e)

	api := openapi.NewAPI(e, Version)
	handlers.RegisterCatalogueRoutes(api, handlers.NewCatalogueHandler(inv, cfg.Catalogue.FeaturedCount))
	handlers.RegisterEnquiryRoutes(api, handlers.NewEnquiryHandler(disp, inv))
	handlers.RegisterSiteRoutes(api, handlers.NewSiteHandler(cfg.Site))

	return &app{
		echo:       e,
		inventory:  inv,
		scheduler:  sched,
		dispatcher: disp,
	}, nil
}
