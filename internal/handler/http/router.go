package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"mdd-backend/internal/handler/http/article"
	"mdd-backend/internal/handler/http/auth"
	"mdd-backend/internal/handler/http/comment"
	"mdd-backend/internal/handler/http/middleware"
	"mdd-backend/internal/handler/http/requestid"
	"mdd-backend/internal/handler/http/topic"
	"mdd-backend/internal/handler/http/user"
	"mdd-backend/internal/observability/tracing"
	"mdd-backend/internal/repository"
	artUC "mdd-backend/internal/usecase/article"
	authUC "mdd-backend/internal/usecase/auth"
	commentUC "mdd-backend/internal/usecase/comment"
	topicUC "mdd-backend/internal/usecase/topic"
	userUC "mdd-backend/internal/usecase/user"
)

// DefaultMaxBodyBytes caps request bodies when RouterConfig leaves it unset.
const DefaultMaxBodyBytes = 1 << 20

// Repositories are the stores behind the services.
type Repositories struct {
	Users    repository.UserRepository
	Topics   repository.TopicRepository
	Articles repository.ArticleRepository
	Comments repository.CommentRepository
}

// Services are the use cases the handlers call.
type Services struct {
	Auth     *authUC.Service
	Users    *userUC.Service
	Topics   *topicUC.Service
	Articles *artUC.Service
	Comments *commentUC.Service
}

// NewServices wires the use cases over repos. Tokens signs the session tokens
// returned by registration and login.
func NewServices(repos Repositories, tokens authUC.TokenIssuer, bcryptCost int) Services {
	users := &userUC.Service{Users: repos.Users, Topics: repos.Topics, BcryptCost: bcryptCost}
	comments := &commentUC.Service{Comments: repos.Comments, Articles: repos.Articles, Users: users}
	return Services{
		Auth:   &authUC.Service{Users: repos.Users, Registrar: users, Tokens: tokens, BcryptCost: bcryptCost},
		Users:  users,
		Topics: &topicUC.Service{Repo: repos.Topics},
		Articles: &artUC.Service{
			Articles: repos.Articles,
			Topics:   repos.Topics,
			Users:    users,
			Comments: comments,
		},
		Comments: comments,
	}
}

// RouterConfig is everything NewRouter needs.
type RouterConfig struct {
	Services Services
	Verifier auth.TokenVerifier
	Tokens   authUC.TokenIssuer
	Cookie   auth.Cookie
	// Throttle guards login and registration. Nil disables it.
	Throttle func(http.Handler) http.Handler
	// CORS is skipped when its Validator is nil.
	CORS middleware.CORSConfig

	Store   Pinger
	Driver  string
	Version string

	Logger *slog.Logger
	// RequestTimeout of zero disables the per-request deadline.
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// NewRouter registers every route and wraps the mux in the middleware chain,
// outermost first: CORS, security headers, request ID, recovery, timeout,
// logging, input validation, body limit, tracing and metrics.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	mux := http.NewServeMux()
	svc := cfg.Services
	auth.Register(mux, auth.Routes{
		Auth:     svc.Auth,
		Users:    svc.Users,
		Verifier: cfg.Verifier,
		Cookie:   cfg.Cookie,
		Throttle: cfg.Throttle,
	})
	user.Register(mux, user.Routes{
		Users:    svc.Users,
		Verifier: cfg.Verifier,
		Tokens:   cfg.Tokens,
		Cookie:   cfg.Cookie,
	})
	topic.Register(mux, svc.Topics, cfg.Verifier)
	article.Register(mux, svc.Articles, cfg.Verifier, logger)
	comment.Register(mux, svc.Comments, cfg.Verifier)

	mux.Handle("GET /health", &HealthHandler{Store: cfg.Store, Driver: cfg.Driver, Version: cfg.Version})
	mux.Handle("GET /ready", &ReadyHandler{Store: cfg.Store})
	mux.Handle("GET /live", &LiveHandler{})
	mux.Handle("GET /metrics", MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	var h http.Handler = mux
	h = MetricsMiddleware(h)
	h = tracing.Middleware(h)
	h = LimitRequestBody(maxBody)(h)
	h = InputValidation()(h)
	h = Logging(logger)(h)
	h = Timeout(cfg.RequestTimeout)(h)
	h = Recover(logger)(h)
	h = requestid.Middleware(h)
	h = middleware.SecurityHeaders(h)
	if cfg.CORS.Validator != nil {
		h = middleware.CORS(cfg.CORS)(h)
	}
	return h
}
