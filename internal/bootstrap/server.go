package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	infragin "github.com/jonesrussell/north-cloud/email-classifier/infrastructure/gin"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/api"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/logging"
)

// NewServer builds the HTTP server around the pipeline.
func NewServer(comps *Components) *infragin.Server {
	cfg := comps.Config
	svc := cfg.Service

	handler := api.NewHandler(comps.Classifier, comps.Extractor, api.Options{
		MaxUploadBytes:   svc.MaxUploadBytes,
		EmailTypes:       comps.EmailTypes(),
		SentimentEnabled: comps.Classifier.HybridEnabled(),
	}, logging.NewAdapter(comps.Logger))

	var metrics http.Handler
	if comps.Telemetry != nil {
		metrics = comps.Telemetry.Handler()
	}

	builder := infragin.NewServerBuilder(svc.Name, svc.Port).
		WithLogger(comps.Logger).
		WithDebug(svc.Debug).
		WithVersion(svc.Version).
		WithTimeouts(svc.ReadTimeout, svc.WriteTimeout, 0).
		WithShutdownTimeout(svc.ShutdownTimeout).
		WithCORSOrigins(svc.CORSOrigins).
		WithBodyLimit(svc.MaxUploadBytes, domain.MsgFileTooLarge).
		WithInternalErrorMessage(domain.MsgInternalError).
		WithRoutes(func(router *gin.Engine) {
			api.SetupServiceRoutes(router, handler, metrics)
		})

	if comps.Telemetry != nil {
		builder = builder.WithMiddleware(comps.Telemetry.HTTP.Middleware())
	}
	if comps.Sentiment != nil {
		builder = builder.WithHealthCheck("sentiment", sentimentHealthChecker(comps))
	}
	if comps.Redis != nil {
		builder = builder.WithRedisHealthCheck(comps.pingRedis)
	}

	return builder.Build()
}

// sentimentHealthChecker reports degraded while the circuit is open; rules still classify.
func sentimentHealthChecker(comps *Components) infragin.HealthChecker {
	return func() infragin.CheckResult {
		stats := comps.Sentiment.BreakerStats()
		if err := comps.Sentiment.Health(context.Background()); err != nil {
			return infragin.CheckResult{
				Status:  infragin.HealthStatusDegraded,
				Message: fmt.Sprintf("%v since %s", err, stats.LastFailureTime.UTC().Format(time.RFC3339)),
			}
		}
		return infragin.CheckResult{
			Status:  infragin.HealthStatusHealthy,
			Message: fmt.Sprintf("circuit %s, %d consecutive failures", stats.State, stats.FailureCount),
		}
	}
}
