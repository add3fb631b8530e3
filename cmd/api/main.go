package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"bizops-platform/internal/agent"
	"bizops-platform/internal/audit"
	"bizops-platform/internal/auth"
	"bizops-platform/internal/chat"
	"bizops-platform/internal/config"
	"bizops-platform/internal/httpapi"
	"bizops-platform/internal/leads"
	"bizops-platform/internal/llm"
	"bizops-platform/internal/mq"
	"bizops-platform/internal/reporting"
	"bizops-platform/internal/routing"
	"bizops-platform/internal/workflow"
	"bizops-platform/pkg/logger"
	"bizops-platform/pkg/utils"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	auditSvc := audit.NewService(audit.NewPostgresRepo(db))

	// Completion provider: model-backed when configured, offline otherwise.
	var completer agent.Completer = agent.OfflineCompleter{}
	if cfg.LLM.BaseURL != "" {
		client, err := llm.NewClient(cfg.LLM)
		if err != nil {
			log.Error("llm init failed", "err", err)
			os.Exit(1)
		}
		completer = client
		log.Info("llm client configured", "model", cfg.LLM.Model)
	} else {
		log.Warn("no LLM configured, agents run in offline mode")
	}

	agentConfigs := agent.BuiltinConfigs()
	if cfg.Agents.ConfigPath != "" {
		agentConfigs, err = agent.LoadConfigs(cfg.Agents.ConfigPath)
		if err != nil {
			log.Error("agent catalog load failed", "path", cfg.Agents.ConfigPath, "err", err)
			os.Exit(1)
		}
		log.Info("agent catalog loaded", "path", cfg.Agents.ConfigPath, "agents", len(agentConfigs))
	}

	registry, err := agent.NewRegistry(completer, agentConfigs)
	if err != nil {
		log.Error("agent registry init failed", "err", err)
		os.Exit(1)
	}

	chatSvc, err := buildChatService(registry, completer, rdb)
	if err != nil {
		log.Error("chat init failed", "err", err)
		os.Exit(1)
	}

	engine := routing.NewEngine()
	engine.Overrides = routing.NewOverrideEngine(&routing.MemoryOverrideStore{}, routing.AuditAdapter{Audit: auditSvc})

	leadOpts := []leads.ServiceOption{
		leads.WithAuditor(auditSvc),
		leads.WithTrigger(workflow.NewHTTPTrigger(cfg.Workflow)),
		leads.WithLimiter(leads.RedisLimiter{RDB: rdb, Limit: 120, Window: time.Minute}),
	}

	if cfg.MQ.URL != "" {
		producer, err := mq.NewProducer(cfg.MQ.URL)
		if err != nil {
			log.Error("mq init failed", "err", err)
			os.Exit(1)
		}
		defer producer.Close()
		leadOpts = append(leadOpts, leads.WithPublisher(producer))
	} else {
		log.Warn("no RabbitMQ configured, lead events disabled")
	}

	leadRepo := leads.NewPostgresRepo(db)
	leadSvc, err := leads.NewService(engine, leadRepo, log, leadOpts...)
	if err != nil {
		log.Error("leads init failed", "err", err)
		os.Exit(1)
	}

	h := httpapi.Handlers{
		Auth:      authManager,
		Agents:    registry,
		Chat:      chatSvc,
		Leads:     leadSvc,
		Reporting: reporting.NewService(leadRepo),
		Audit:     auditSvc,
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, h, auth.RequireAccessToken(authManager), db, rdb)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}

// buildChatService wires the executive assistant. A catalog loaded from
// agents.yaml may omit the assistant; fall back to the built-in one so /chat
// keeps working.
func buildChatService(registry *agent.Registry, completer agent.Completer, rdb *redis.Client) (*chat.Service, error) {
	assistant, ok := registry.Get(agent.IDExecutiveChat)
	if !ok {
		for _, cfg := range agent.BuiltinConfigs() {
			if cfg.ID != agent.IDExecutiveChat {
				continue
			}
			a, err := agent.New(cfg, completer)
			if err != nil {
				return nil, err
			}
			registry.Register(a)
			assistant = a
			ok = true
			break
		}
	}
	if !ok {
		return nil, errors.New("executive chat agent unavailable")
	}
	return chat.NewService(assistant, chat.NewRedisHistory(rdb, 24*time.Hour))
}
