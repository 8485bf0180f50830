package observability

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AttachmentUploads counts upload attempts by result (success, rejected, error)
	AttachmentUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coursecreator",
		Name:      "attachment_uploads_total",
		Help:      "Attachment upload attempts by result.",
	}, []string{"result"})

	// AICCRequestDuration observes calls to the AI course-generation service
	AICCRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "coursecreator",
		Name:      "aicc_request_duration_seconds",
		Help:      "Latency of requests to the AI course-generation service.",
		Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"operation", "outcome"})

	// CourseImports counts import webhook outcomes
	CourseImports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coursecreator",
		Name:      "course_imports_total",
		Help:      "Course import webhook calls by result.",
	}, []string{"result"})
)

// MetricsHandler exposes the default Prometheus registry on a Fiber route
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
