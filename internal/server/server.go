// Package server exposes the HTTP JSON API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/ledgique/ledgique/internal/client"
	clientdomain "github.com/ledgique/ledgique/internal/client/domain"
	"github.com/ledgique/ledgique/internal/config"
	"github.com/ledgique/ledgique/internal/expense"
	expensedomain "github.com/ledgique/ledgique/internal/expense/domain"
	"github.com/ledgique/ledgique/internal/identity"
	identitydomain "github.com/ledgique/ledgique/internal/identity/domain"
	"github.com/ledgique/ledgique/internal/identity/webhook"
	"github.com/ledgique/ledgique/internal/invoice"
	invoicedomain "github.com/ledgique/ledgique/internal/invoice/domain"
	"github.com/ledgique/ledgique/internal/note"
	notedomain "github.com/ledgique/ledgique/internal/note/domain"
	"github.com/ledgique/ledgique/internal/observability"
	obsmiddleware "github.com/ledgique/ledgique/internal/observability/logger"
	obsmetrics "github.com/ledgique/ledgique/internal/observability/metrics"
	obstracing "github.com/ledgique/ledgique/internal/observability/tracing"
	"github.com/ledgique/ledgique/internal/payment"
	paymentdomain "github.com/ledgique/ledgique/internal/payment/domain"
	"github.com/ledgique/ledgique/internal/project"
	projectdomain "github.com/ledgique/ledgique/internal/project/domain"
	"github.com/ledgique/ledgique/internal/providers/pdf"
	"github.com/ledgique/ledgique/internal/ratelimit"
	"github.com/ledgique/ledgique/internal/report"
	reportdomain "github.com/ledgique/ledgique/internal/report/domain"
	"github.com/ledgique/ledgique/internal/retainer"
	retainerdomain "github.com/ledgique/ledgique/internal/retainer/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Provide(provideWebhookVerifier),
	identity.Module,
	client.Module,
	project.Module,
	payment.Module,
	invoice.Module,
	expense.Module,
	retainer.Module,
	note.Module,
	report.Module,
	pdf.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug: obsCfg.Debug(),
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func provideWebhookVerifier(cfg config.Config, log *zap.Logger) *webhook.Verifier {
	if cfg.IdentityWebhookSecret == "" {
		log.Warn("identity webhook secret is not configured, webhook deliveries will be rejected")
		return nil
	}
	verifier, err := webhook.NewVerifier(cfg.IdentityWebhookSecret)
	if err != nil {
		log.Error("invalid identity webhook secret", zap.Error(err))
		return nil
	}
	return verifier
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	genID           *snowflake.Node
	identitySvc     identitydomain.Service
	webhookVerifier *webhook.Verifier
	clientSvc       clientdomain.Service
	projectSvc      projectdomain.Service
	paymentSvc      paymentdomain.Service
	invoiceSvc      invoicedomain.Service
	expenseSvc      expensedomain.Service
	retainerSvc     retainerdomain.Service
	noteSvc         notedomain.Service
	reportSvc       reportdomain.Service
	pdfRenderer     pdf.Renderer
	obsMetrics      *obsmetrics.Metrics
	tenantLimiter   *ratelimit.TenantLimiter
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	GenID           *snowflake.Node
	IdentitySvc     identitydomain.Service
	WebhookVerifier *webhook.Verifier `optional:"true"`
	ClientSvc       clientdomain.Service
	ProjectSvc      projectdomain.Service
	PaymentSvc      paymentdomain.Service
	InvoiceSvc      invoicedomain.Service
	ExpenseSvc      expensedomain.Service
	RetainerSvc     retainerdomain.Service
	NoteSvc         notedomain.Service
	ReportSvc       reportdomain.Service
	PDFRenderer     pdf.Renderer
	ObsMetrics      *obsmetrics.Metrics      `optional:"true"`
	TenantLimiter   *ratelimit.TenantLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		genID:           p.GenID,
		identitySvc:     p.IdentitySvc,
		webhookVerifier: p.WebhookVerifier,
		clientSvc:       p.ClientSvc,
		projectSvc:      p.ProjectSvc,
		paymentSvc:      p.PaymentSvc,
		invoiceSvc:      p.InvoiceSvc,
		expenseSvc:      p.ExpenseSvc,
		retainerSvc:     p.RetainerSvc,
		noteSvc:         p.NoteSvc,
		reportSvc:       p.ReportSvc,
		pdfRenderer:     p.PDFRenderer,
		obsMetrics:      p.ObsMetrics,
		tenantLimiter:   p.TenantLimiter,
	}

	svc.registerWebhookRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerWebhookRoutes() {
	s.engine.POST("/webhooks/identity", s.HandleIdentityWebhook)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1", s.AuthRequired(), s.RateLimited())

	api.GET("/me", s.GetMe)
	api.PATCH("/me", s.UpdateMe)

	api.GET("/clients", s.ListClients)
	api.POST("/clients", s.CreateClient)
	api.GET("/clients/change", s.ClientsChange)
	api.GET("/clients/:id", s.GetClient)
	api.PATCH("/clients/:id", s.UpdateClient)
	api.DELETE("/clients/:id", s.DeleteClient)

	api.GET("/client-sources", s.ListClientSources)
	api.POST("/client-sources", s.CreateClientSource)
	api.DELETE("/client-sources/:id", s.DeleteClientSource)

	api.GET("/projects", s.ListProjects)
	api.POST("/projects", s.CreateProject)
	api.GET("/projects/change", s.ProjectsChange)
	api.GET("/projects/:id", s.GetProject)
	api.PATCH("/projects/:id", s.UpdateProject)
	api.DELETE("/projects/:id", s.DeleteProject)

	api.GET("/payments", s.ListPayments)
	api.POST("/payments", s.CreatePayment)
	api.GET("/payments/change", s.PaymentsChange)
	api.GET("/payments/:id", s.GetPayment)
	api.PATCH("/payments/:id", s.UpdatePayment)
	api.DELETE("/payments/:id", s.DeletePayment)

	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoice)
	api.PATCH("/invoices/:id", s.UpdateInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.POST("/invoices/:id/pay", s.MarkInvoicePaid)
	api.GET("/invoices/:id/pdf", s.DownloadInvoicePDF)

	api.GET("/expenses", s.ListExpenses)
	api.POST("/expenses", s.CreateExpense)
	api.GET("/expenses/change", s.ExpensesChange)
	api.GET("/expenses/:id", s.GetExpense)
	api.PATCH("/expenses/:id", s.UpdateExpense)
	api.DELETE("/expenses/:id", s.DeleteExpense)

	api.GET("/retainers", s.ListRetainers)
	api.POST("/retainers", s.CreateRetainer)
	api.GET("/retainers/:id", s.GetRetainer)
	api.PATCH("/retainers/:id", s.UpdateRetainer)
	api.DELETE("/retainers/:id", s.DeleteRetainer)
	api.POST("/retainers/:id/usage", s.RecordRetainerUsage)
	api.GET("/retainers/:id/usage", s.ListRetainerUsage)

	api.GET("/notes", s.ListNotes)
	api.POST("/notes", s.CreateNote)
	api.GET("/notes/:id", s.GetNote)
	api.PATCH("/notes/:id", s.UpdateNote)
	api.DELETE("/notes/:id", s.DeleteNote)

	api.GET("/reports/clients", s.ClientReport)
	api.GET("/reports/projects", s.ProjectReport)
	api.GET("/reports/payments", s.PaymentReport)
	api.GET("/reports/expenses", s.ExpenseReport)
	api.GET("/reports/growth", s.GrowthReport)

	api.GET("/dashboard/summary", s.DashboardSummary)
}
