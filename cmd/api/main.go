package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/gestaolivre/fiscal-api/internal/application/analytics"
	"github.com/gestaolivre/fiscal-api/internal/application/auth"
	"github.com/gestaolivre/fiscal-api/internal/application/billing"
	"github.com/gestaolivre/fiscal-api/internal/application/usecase"
	infranfe "github.com/gestaolivre/fiscal-api/internal/infrastructure/nfe"
	infrapdf "github.com/gestaolivre/fiscal-api/internal/infrastructure/pdf"
	"github.com/gestaolivre/fiscal-api/internal/infrastructure/postgres"
	httpRouter "github.com/gestaolivre/fiscal-api/internal/interfaces/http"
	"github.com/gestaolivre/fiscal-api/pkg/config"
	"github.com/gestaolivre/fiscal-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com o PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	notaRepo := postgres.NewNotaFiscalRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo)
	notaFormUC := billing.NewNotaFormUseCase()

	// XML da NF-e (layout 4.00). O ambiente vai no tpAmb do XML.
	xmlBuilder := infranfe.NewXMLBuilderService(cfg.NFe.Ambiente)
	emitirUC := billing.NewEmitirNotaUseCase(
		txRunner, notaRepo, customerRepo, companyRepo, productRepo, xmlBuilder,
		cfg.NFe.SeriePadrao,
	)

	// PDF: DANFE, a representação gráfica da NF-e.
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	notaPDFUC := billing.NewNotaPDFUseCase(notaRepo, companyRepo, pdfGenerator)

	dashboardUC := appanalytics.NewDashboardUseCase(notaRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Fiscal API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		UserUC:      userUC,
		ProductUC:   productUC,
		CustomerUC:  customerUC,
		NotaFormUC:  notaFormUC,
		EmitirUC:    emitirUC,
		NotaPDFUC:   notaPDFUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação finalizada")
}
