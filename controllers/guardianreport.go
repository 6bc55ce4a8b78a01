package controllers

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/newscred/queue-guardian/guardian"
)

const (
	guardianReportPath = "/guardian-report"
	metricsPath        = "/metrics"
)

// GuardianReport is the enforcement state exposed to operators
type GuardianReport struct {
	WarnedQueues     []string  `json:"warnedQueues"`
	DeletedLastCycle []string  `json:"deletedLastCycle"`
	LastCycleAt      time.Time `json:"lastCycleAt"`
}

// NewGuardianReportController Factory for new GuardianReportController
func NewGuardianReportController(guardianSvc guardian.QueueGuardian) *GuardianReportController {
	return &GuardianReportController{guardianSvc: guardianSvc}
}

// GuardianReportController is the controller for `/guardian-report` endpoint
type GuardianReportController struct {
	guardianSvc guardian.QueueGuardian
}

// GetPath returns the endpoint path
func (cont *GuardianReportController) GetPath() string {
	return guardianReportPath
}

// FormatAsRelativeLink Format as relative URL of this resource based on the params
func (cont *GuardianReportController) FormatAsRelativeLink(params ...httprouter.Param) string {
	return guardianReportPath
}

// Get is the GET /guardian-report endpoint controller
func (cont *GuardianReportController) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	warned, err := cont.guardianSvc.WarnedQueues()
	if err != nil {
		writeErr(w, err)
		return
	}
	report := GuardianReport{
		WarnedQueues:     warned,
		DeletedLastCycle: cont.guardianSvc.DeletedLastCycle(),
		LastCycleAt:      cont.guardianSvc.LastCycleAt(),
	}
	writeJSON(w, report)
}

// NewMetricsController Factory for new MetricsController
func NewMetricsController(promHandler http.Handler) *MetricsController {
	return &MetricsController{promHandler: promHandler}
}

// MetricsController exposes the Prometheus metrics endpoint
type MetricsController struct {
	promHandler http.Handler
}

// GetPath returns the endpoint path
func (cont *MetricsController) GetPath() string {
	return metricsPath
}

// FormatAsRelativeLink Format as relative URL of this resource based on the params
func (cont *MetricsController) FormatAsRelativeLink(params ...httprouter.Param) string {
	return metricsPath
}

// Get is the GET /metrics endpoint controller
func (cont *MetricsController) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cont.promHandler.ServeHTTP(w, r)
}
