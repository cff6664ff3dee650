package router

import (
	"net/http"
	"net/url"

	docs "github.com/culturabase/backend/api"
	"github.com/culturabase/backend/internal/auth"
	"github.com/culturabase/backend/internal/config"
	v1 "github.com/culturabase/backend/internal/controllers/v1"
	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Router sets up the engine with all middlewares and routes.
func Router(cfg *config.Config, authority *auth.Authenticator, url *url.URL) (*gin.Engine, error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": "This HTTP method is not allowed for the endpoint you called",
		})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if len(cfg.CORS.AllowOrigins) > 0 {
		log.Debug().Strs("allowOrigins", cfg.CORS.AllowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, err
	}

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "Culturabase"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The backend for Culturabase, financial management for cultural institutions."

	AttachRoutes(r, cfg, authority)

	log.Info().Str("version", version).Msg("backend startup complete")

	return r, nil
}

// AttachRoutes attaches all API routes to the engine. Login and refresh
// are public, everything below /v1 requires a valid access token.
func AttachRoutes(r *gin.Engine, cfg *config.Config, authority *auth.Authenticator) {
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)
	r.GET("/version", GetVersion)
	r.OPTIONS("/version", OptionsVersion)
	r.GET("/healthz", GetHealthz)
	r.OPTIONS("/healthz", OptionsHealthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	if cfg.Server.EnablePprof {
		pprof.Register(r, "debug/pprof")
	}

	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authController := v1.AuthController{Auth: authority}

	// API v1 setup
	public := r.Group("/v1")
	{
		public.GET("", GetV1)
		public.OPTIONS("", OptionsV1)
	}

	protected := r.Group("/v1")
	protected.Use(AuthMiddleware(authority))

	authController.RegisterAuthRoutes(public.Group("/auth"), protected.Group("/auth"))

	v1.RegisterFundingSourceRoutes(protected.Group("/funding-sources"))
	v1.RegisterGoalRoutes(protected.Group("/goals"))
	v1.RegisterActivityRoutes(protected.Group("/activities"))
	v1.RegisterLineItemRoutes(protected.Group("/line-items"))
	v1.RegisterSectorRoutes(protected.Group("/sectors"))
	v1.RegisterVendorRoutes(protected.Group("/vendors"))
	v1.RegisterRecipientRoutes(protected.Group("/recipients"))
	v1.RegisterAllocationRoutes(protected.Group("/allocations"))
	v1.RegisterContractRoutes(protected.Group("/contracts"))
	v1.RegisterInstallmentRoutes(protected.Group("/installments"))
	v1.RegisterTransferRoutes(protected.Group("/transfers"))
	v1.RegisterStatusHistoryRoutes(protected.Group("/status-history"))
	v1.RegisterMovementRoutes(protected.Group("/movements"))
	v1.RegisterNotificationRoutes(protected.Group("/notifications"))
	v1.RegisterReportRoutes(protected.Group("/reports"))
	v1.RegisterValidationRoutes(protected.Group("/validation"))
	v1.RegisterDashboardRoutes(protected.Group("/dashboard"))

	// Managing users and the system configuration is reserved for
	// administrators
	v1.RegisterUserRoutes(protected.Group("/users", v1.RequireAdmin()))
	v1.RegisterSystemConfigRoutes(protected.Group("/system-config", v1.RequireAdmin()))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs    string `json:"docs" example:"https://example.com/api/docs/index.html"` // Swagger API documentation
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"`      // Health check endpoint
	Version string `json:"version" example:"https://example.com/api/version"`      // Endpoint returning the version of the backend
	V1      string `json:"v1" example:"https://example.com/api/v1"`                // List endpoint for all v1 endpoints
}

// GetRoot returns the link list for the API root
//
//	@Summary		API root
//	@Description	Entrypoint for the API, listing all endpoints
//	@Tags			General
//	@Success		200	{object}	RootResponse
//	@Router			/ [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:    url + "/docs/index.html",
			Healthz: url + "/healthz",
			Version: url + "/version",
			V1:      url + "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// GetVersion returns the API version object
//
//	@Summary		API version
//	@Description	Returns the software version of the API
//	@Tags			General
//	@Success		200	{object}	VersionResponse
//	@Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// GetHealthz verifies that the database is reachable
//
//	@Summary		Health check
//	@Description	Returns an empty response when the backend is able to serve requests
//	@Tags			General
//	@Success		204
//	@Failure		500
//	@Router			/healthz [get]
func GetHealthz(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "the database cannot be accessed",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsVersion returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsHealthz returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/healthz [options]
func OptionsHealthz(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Auth           string `json:"auth" example:"https://example.com/api/v1/auth"`                     // URL of the authentication endpoints
	FundingSources string `json:"fundingSources" example:"https://example.com/api/v1/funding-sources"` // URL of funding source list endpoint
	Goals          string `json:"goals" example:"https://example.com/api/v1/goals"`                   // URL of goal list endpoint
	Activities     string `json:"activities" example:"https://example.com/api/v1/activities"`         // URL of activity list endpoint
	LineItems      string `json:"lineItems" example:"https://example.com/api/v1/line-items"`          // URL of line item list endpoint
	Sectors        string `json:"sectors" example:"https://example.com/api/v1/sectors"`               // URL of sector list endpoint
	Vendors        string `json:"vendors" example:"https://example.com/api/v1/vendors"`               // URL of vendor list endpoint
	Recipients     string `json:"recipients" example:"https://example.com/api/v1/recipients"`         // URL of recipient list endpoint
	Allocations    string `json:"allocations" example:"https://example.com/api/v1/allocations"`       // URL of allocation list endpoint
	Contracts      string `json:"contracts" example:"https://example.com/api/v1/contracts"`           // URL of contract list endpoint
	Installments   string `json:"installments" example:"https://example.com/api/v1/installments"`     // URL of installment list endpoint
	Transfers      string `json:"transfers" example:"https://example.com/api/v1/transfers"`           // URL of transfer list endpoint
	StatusHistory  string `json:"statusHistory" example:"https://example.com/api/v1/status-history"`  // URL of status history list endpoint
	Movements      string `json:"movements" example:"https://example.com/api/v1/movements"`           // URL of movement list endpoint
	Notifications  string `json:"notifications" example:"https://example.com/api/v1/notifications"`   // URL of notification list endpoint
	Reports        string `json:"reports" example:"https://example.com/api/v1/reports"`               // URL of the report endpoints
	Validation     string `json:"validation" example:"https://example.com/api/v1/validation"`         // URL of the validation endpoints
	Dashboard      string `json:"dashboard" example:"https://example.com/api/v1/dashboard"`           // URL of the dashboard endpoints
	Users          string `json:"users" example:"https://example.com/api/v1/users"`                   // URL of user list endpoint
	SystemConfig   string `json:"systemConfig" example:"https://example.com/api/v1/system-config"`    // URL of system configuration list endpoint
}

// GetV1 returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Auth:           url + "/v1/auth",
			FundingSources: url + "/v1/funding-sources",
			Goals:          url + "/v1/goals",
			Activities:     url + "/v1/activities",
			LineItems:      url + "/v1/line-items",
			Sectors:        url + "/v1/sectors",
			Vendors:        url + "/v1/vendors",
			Recipients:     url + "/v1/recipients",
			Allocations:    url + "/v1/allocations",
			Contracts:      url + "/v1/contracts",
			Installments:   url + "/v1/installments",
			Transfers:      url + "/v1/transfers",
			StatusHistory:  url + "/v1/status-history",
			Movements:      url + "/v1/movements",
			Notifications:  url + "/v1/notifications",
			Reports:        url + "/v1/reports",
			Validation:     url + "/v1/validation",
			Dashboard:      url + "/v1/dashboard",
			Users:          url + "/v1/users",
			SystemConfig:   url + "/v1/system-config",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
