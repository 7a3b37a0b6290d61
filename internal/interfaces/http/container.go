package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"boxmas/internal/infrastructure/auth"
	"boxmas/internal/infrastructure/config"
	"boxmas/internal/infrastructure/ratelimit"
	"boxmas/internal/interfaces/http/middleware"
	"boxmas/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers, and is responsible for wiring them together.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client // nil when Redis is unavailable

	// Auth infrastructure
	tokenCodec *auth.TokenCodec
	hasher     *auth.BcryptPasswordHasher

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    ratelimit.RateLimiter // nil when rate limiting is off
}

// NewContainer creates a new Container with all dependencies wired together.
// redisClient may be nil, in which case rate limiting is disabled.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Container {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	c.initEngine()
	c.initInfrastructure()
	c.initRepositories()
	c.initUseCases()
	c.initHandlers()
	c.initMiddlewares()

	return c
}

// initEngine limits which peers may set the client address through
// X-Forwarded-For. An empty list trusts no proxy.
func (c *Container) initEngine() {
	if err := c.engine.SetTrustedProxies(c.cfg.Server.TrustedProxies); err != nil {
		c.log.Errorw("invalid server.trusted_proxies, trusting no proxy",
			"trusted_proxies", c.cfg.Server.TrustedProxies,
			"error", err)
		_ = c.engine.SetTrustedProxies(nil)
	}
}

func (c *Container) initInfrastructure() {
	c.tokenCodec = auth.NewTokenCodec(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.Validity())
	c.hasher = auth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost)

	if c.tokenCodec.UsesInsecureSecret() {
		c.log.Warnw("auth.jwt.secret is not set, signing tokens with the built-in development secret")
	}
}

func (c *Container) initMiddlewares() {
	c.authMiddleware = middleware.NewAuthMiddleware(c.ucs.authorizeUC, c.log)

	if !c.cfg.RateLimit.Enabled {
		return
	}
	if c.redis == nil {
		c.log.Warnw("rate limiting enabled but Redis is unavailable, continuing without it")
		return
	}
	c.rateLimiter = ratelimit.NewRedisRateLimiter(
		c.redis,
		"auth",
		c.cfg.RateLimit.Requests,
		c.cfg.RateLimit.Window(),
	)
}
