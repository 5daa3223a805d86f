package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"domainwatch/config"
	"domainwatch/domain"
	"domainwatch/internal/app"
	"domainwatch/notify"
	"domainwatch/ratelimit"
	"domainwatch/registry"
	"domainwatch/scheduler"
	"domainwatch/telegram"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "run a single sweep and exit")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg := config.Cfg

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := buildStore(ctx, cfg.State)
	if err != nil {
		log.Fatalf("open state store: %v", err)
	}
	defer store.Close()

	reg := registry.New()
	for tld, o := range cfg.TLDs {
		reg.Override(tld, buildOverride(o))
	}

	rdap, whois := buildClients(cfg)

	engine := &app.Engine{
		Registry: reg,
		Pacer:    buildPacer(cfg.RateLimit),
		RDAP:     rdap,
		WHOIS:    whois,
		Retry: app.RetryPolicy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			BaseDelay:   seconds(cfg.Retry.BaseDelaySeconds),
			MaxDelay:    seconds(cfg.Retry.MaxDelaySeconds),
		},
		Budget: time.Duration(cfg.CheckTimeoutSeconds) * time.Second,
	}

	checker := &app.CheckerService{
		Engine:      engine,
		Store:       store,
		Notifier:    buildRouter(cfg),
		Concurrency: cfg.Concurrency,
	}

	watchlist, err := domain.LoadList(cfg.DomainFiles)
	if err != nil {
		log.Fatalf("load domain lists: %v", err)
	}
	watchlist = append(watchlist, cfg.Domains...)
	if len(watchlist) == 0 {
		log.Fatalf("no domains to watch; set domains or domainFiles in %s", *configPath)
	}

	interval := time.Duration(cfg.IntervalMinutes) * time.Minute
	if *once {
		interval = 0
	}
	runner := &scheduler.Runner{
		Interval: interval,
		Cycle: func(ctx context.Context) error {
			_, err := checker.Run(ctx, watchlist)
			return err
		},
	}
	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("run: %v", err)
	}
}

func buildStore(ctx context.Context, st config.State) (domain.Store, error) {
	if st.Backend == "sqlite" {
		return domain.NewSQLiteStore(ctx, st.Path)
	}
	return domain.NewFileStore(st.Path, st.HMACSecret)
}

func buildOverride(o config.TLDOverride) []registry.Source {
	var sources []registry.Source
	if o.RDAP != "" {
		sources = append(sources, registry.Source{
			Protocol: registry.ProtocolRDAP,
			Endpoint: o.RDAP,
			Tier:     registry.TierAuthoritative,
		})
	}
	if o.WHOIS != "" {
		sources = append(sources, registry.Source{
			Protocol: registry.ProtocolWHOIS,
			Endpoint: o.WHOIS,
			Tier:     registry.TierFallback,
		})
	}
	return sources
}

func buildPacer(rl config.RateLimit) *ratelimit.Pacer {
	overrides := make(map[string]time.Duration, len(rl.PerSource))
	for key, secs := range rl.PerSource {
		overrides[key] = seconds(secs)
	}
	return ratelimit.New(seconds(rl.MinDelaySeconds), overrides)
}

func buildClients(cfg config.Config) (app.QueryClient, app.QueryClient) {
	if cfg.Simulation {
		outcomes := make(map[string]domain.Outcome, len(cfg.SimulationOutcomes))
		for fqdn, name := range cfg.SimulationOutcomes {
			out, err := domain.ParseOutcome(name)
			if err != nil {
				log.Fatalf("simulationOutcomes[%s]: %v", fqdn, err)
			}
			outcomes[fqdn] = out
		}
		sim := app.SimulatedClient{Outcomes: outcomes, Default: domain.OutcomeTaken}
		log.Printf("simulation mode: no network queries will be made")
		return sim, sim
	}
	timeout := time.Duration(cfg.QueryTimeoutSeconds) * time.Second
	return app.NewRDAPClient(timeout), &app.WHOISClient{Timeout: timeout}
}

func buildRouter(cfg config.Config) *notify.Router {
	var channels []notify.Channel

	if cfg.Telegram.BotToken != "" {
		sender, err := telegram.NewBotSender(
			cfg.Telegram.BotToken,
			cfg.Telegram.ChatID,
			2,
			time.Second,
			10*time.Second,
		)
		if err != nil {
			log.Printf("telegram disabled: %v", err)
		} else {
			channels = append(channels, &notify.TelegramChannel{Sender: sender})
		}
	}
	if cfg.Discord.WebhookURL != "" {
		channels = append(channels, &notify.DiscordChannel{WebhookURL: cfg.Discord.WebhookURL})
	}
	if cfg.Webhook.URL != "" {
		channels = append(channels, &notify.WebhookChannel{URL: cfg.Webhook.URL, Headers: cfg.Webhook.Headers})
	}
	if cfg.Email.Host != "" {
		channels = append(channels, &notify.EmailChannel{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
			To:       cfg.Email.To,
		})
	}
	if len(channels) == 0 {
		log.Printf("no notification channels configured; transitions will only be logged")
	}
	return &notify.Router{Channels: channels, Retries: 2, Backoff: time.Second}
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
