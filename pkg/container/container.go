package container

import (
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/shared/middleware"
	"storefront/pkg/jwt"
	"storefront/pkg/logger"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domains/user"
	userHandler "storefront/internal/domains/user/handler"
	userRepo "storefront/internal/domains/user/repository"
	userService "storefront/internal/domains/user/service"

	"storefront/internal/domains/category"
	categoryHandler "storefront/internal/domains/category/handler"
	categoryRepo "storefront/internal/domains/category/repository"
	categoryService "storefront/internal/domains/category/service"

	productHandler "storefront/internal/domains/product/handler"
	productModel "storefront/internal/domains/product/model"
	productRepo "storefront/internal/domains/product/repository"
	productService "storefront/internal/domains/product/service"

	cartHandler "storefront/internal/domains/cart/handler"
	cartRepo "storefront/internal/domains/cart/repository"
	cartService "storefront/internal/domains/cart/service"

	orderHandler "storefront/internal/domains/order/handler"
	orderRepo "storefront/internal/domains/order/repository"
	orderService "storefront/internal/domains/order/service"

	"storefront/internal/domains/payment/gateway/mock"
	paymentHandler "storefront/internal/domains/payment/handler"
	paymentService "storefront/internal/domains/payment/service"
)

// Container holds the dependency graph of the mock API server.
// Build order: config, infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config         *config.Config
	JWTManager     *jwt.Manager
	PaymentGateway *mock.MockPayGateway
	AuthLimiter    *middleware.RateLimiter
	StartedAt      time.Time

	// Repositories
	UserRepo     user.Repository
	TokenRepo    user.TokenRepository
	CategoryRepo category.CategoryRepository
	ProductRepo  productRepo.RepositoryInterface
	CartRepo     cartRepo.RepositoryInterface
	OrderRepo    orderRepo.RepositoryInterface

	// Services
	UserService     user.Service
	CategoryService category.CategoryService
	ProductService  productService.ServiceInterface
	CartService     cartService.ServiceInterface
	OrderService    orderService.OrderService
	PaymentService  paymentService.ServiceInterface

	// Handlers
	UserHandler     *userHandler.UserHandler
	CategoryHandler *categoryHandler.CategoryHandler
	ProductHandler  *productHandler.Handler
	CartHandler     *cartHandler.Handler
	OrderHandler    *orderHandler.Handler
	PaymentHandler  *paymentHandler.Handler
}

// NewContainer wires every layer from cfg. The stores are in memory and
// seeded with the demo catalog and accounts.
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.Component("container")
	log.Info().Str("env", cfg.App.Environment).Msg("initializing container")

	c := &Container{
		Config:         cfg,
		JWTManager:     jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL(), cfg.JWT.RefreshTokenTTL()),
		PaymentGateway: mock.NewMockPayGateway(cfg.Mock.PaymentSecret),
		AuthLimiter:    middleware.NewRateLimiter(cfg.Mock.AuthRateLimit, cfg.Mock.AuthRateBurst),
		StartedAt:      time.Now(),
	}

	if err := c.initRepositories(); err != nil {
		return nil, fmt.Errorf("failed to init repositories: %w", err)
	}
	c.initServices()
	c.initHandlers()

	log.Info().Msg("container initialized")
	return c, nil
}

func (c *Container) initRepositories() error {
	// hashing the seed with the default cost makes test servers slow to start
	cost := bcrypt.DefaultCost
	if c.Config.App.Environment == "test" {
		cost = bcrypt.MinCost
	}

	users, err := userRepo.NewMemoryRepository(user.DefaultSeed, cost)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	c.UserRepo = users
	c.TokenRepo = userRepo.NewMemoryTokenRepository()
	c.CategoryRepo = categoryRepo.NewMemoryRepository(category.DefaultSeed)
	c.ProductRepo = productRepo.NewMemoryRepository(productModel.DefaultSeed())
	c.CartRepo = cartRepo.NewMemoryRepository()
	c.OrderRepo = orderRepo.NewMemoryRepository()
	return nil
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.TokenRepo, c.JWTManager)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo)
	c.ProductService = productService.NewProductService(c.ProductRepo, c.CategoryService)
	c.CartService = cartService.NewCartService(c.CartRepo, c.ProductService)
	c.OrderService = orderService.NewOrderService(
		c.OrderRepo,
		c.CartService,    // drains the cart at checkout
		c.ProductService, // stock reservations
		c.UserService,    // default shipping address
		c.PaymentGateway,
	)
	c.PaymentService = paymentService.NewPaymentService(c.PaymentGateway, c.OrderService)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService, c.JWTManager)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.ProductHandler = productHandler.NewHandler(c.ProductService)
	c.CartHandler = cartHandler.NewHandler(c.CartService)
	c.OrderHandler = orderHandler.NewHandler(c.OrderService)
	c.PaymentHandler = paymentHandler.NewHandler(c.PaymentService)
}

// Cleanup releases resources on shutdown
func (c *Container) Cleanup() {
	log := logger.Component("container")
	log.Info().Dur("uptime", time.Since(c.StartedAt)).Msg("container cleanup completed")
}
