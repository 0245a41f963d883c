package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestaolivre/fiscal-api/internal/application/analytics"
	"github.com/gestaolivre/fiscal-api/internal/application/auth"
	"github.com/gestaolivre/fiscal-api/internal/application/billing"
	"github.com/gestaolivre/fiscal-api/internal/application/usecase"
	"github.com/gestaolivre/fiscal-api/internal/domain/entity"
)

// RouterDeps dependências dos handlers HTTP.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	CustomerUC  *billing.CustomerUseCase
	NotaFormUC  *billing.NotaFormUseCase
	EmitirUC    *billing.EmitirNotaUseCase
	NotaPDFUC   *billing.NotaPDFUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router monta todas as rotas da API sob /api.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rotas públicas. O cadastro da empresa é público: é o primeiro passo do
	// onboarding, antes de existir usuário para autenticar.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	// Rotas protegidas por JWT.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/companies/me", companyHandler.Me)

	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/me", userHandler.Me)
	users.Put("/:id/role", RequireRole(entity.RoleAdmin), userHandler.UpdateRole)

	// Escrita de produto exige admin ou estoquista; leitura é livre para
	// qualquer role autenticado (o formulário de nota consulta produtos).
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.Get)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleEstoquista), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleEstoquista), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := protected.Group("/customers")
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.Get)
	customers.Post("/", RequireRole(entity.RoleAdmin, entity.RoleFaturista), customerHandler.Create)
	customers.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleFaturista), customerHandler.Update)
	customers.Delete("/:id", RequireRole(entity.RoleAdmin), customerHandler.Delete)

	// Notas: recálculo e validação são auxiliares do formulário e não tocam o
	// banco; emissão e cancelamento exigem admin ou faturista.
	notaHandler := NewNotaHandler(deps.NotaFormUC, deps.EmitirUC, deps.NotaPDFUC)
	notas := protected.Group("/notas")
	notas.Post("/itens/recalcular", notaHandler.RecalcularItem)
	notas.Post("/validar", notaHandler.ValidarNota)
	notas.Post("/", RequireRole(entity.RoleAdmin, entity.RoleFaturista), notaHandler.Emitir)
	notas.Get("/", notaHandler.List)
	notas.Get("/:id", notaHandler.Get)
	notas.Post("/:id/cancelar", RequireRole(entity.RoleAdmin, entity.RoleFaturista), notaHandler.Cancelar)
	notas.Get("/:id/xml", notaHandler.XML)
	notas.Get("/:id/danfe", notaHandler.DANFE)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/resumo", dashboardHandler.GetResumo)
}
