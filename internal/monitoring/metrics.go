package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var startTime = time.Now()

var (
	// Deployment metrics
	deploymentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "botwizard_deployments_total",
			Help: "Total number of bot deployments",
		},
		[]string{"bot_type", "status"},
	)

	deploymentAmount = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "botwizard_deployment_amount",
			Help:    "Distribution of per-buy amounts on deployed bots",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"bot_type"},
	)

	// Wizard metrics
	wizardStep = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "botwizard_wizard_step",
			Help: "Current wizard main step of the active session",
		},
	)

	metricAddsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "botwizard_metric_adds_total",
			Help: "Total metric add attempts",
		},
		[]string{"kind", "outcome"},
	)

	// Verification metrics
	verificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "botwizard_credential_verifications_total",
			Help: "Total credential verification attempts",
		},
		[]string{"outcome"},
	)

	// Error metrics
	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "botwizard_errors_total",
			Help: "Total number of errors",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(deploymentsTotal)
	prometheus.MustRegister(deploymentAmount)
	prometheus.MustRegister(wizardStep)
	prometheus.MustRegister(metricAddsTotal)
	prometheus.MustRegister(verificationsTotal)
	prometheus.MustRegister(errorsTotal)
}

// MetricsHandler handles Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordDeployment records a deployment attempt
func RecordDeployment(botType, status string, amount float64) {
	deploymentsTotal.WithLabelValues(botType, status).Inc()
	if status == "success" {
		deploymentAmount.WithLabelValues(botType).Observe(amount)
	}
}

// UpdateWizardStep updates the current wizard step gauge
func UpdateWizardStep(step int) {
	wizardStep.Set(float64(step))
}

// RecordMetricAdd records an add-metric attempt and its outcome
func RecordMetricAdd(kind, outcome string) {
	metricAddsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordVerification records a credential verification outcome
func RecordVerification(outcome string) {
	verificationsTotal.WithLabelValues(outcome).Inc()
}

// RecordError records an error metric
func RecordError(errorType string) {
	errorsTotal.WithLabelValues(errorType).Inc()
}
