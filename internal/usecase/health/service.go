package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status  Status
	Checks  map[string]CheckResult
	Texts   int
	Authors int
}

// Service coordinates health checks.
type Service struct {
	engine  EnginePinger
	catalog CatalogInfo
}

// New creates a Service.
func New(engine EnginePinger, catalog CatalogInfo) *Service {
	return &Service{engine: engine, catalog: catalog}
}

// Check pings the engine and reports catalog sizes. The catalog itself is an
// in-memory snapshot, so an empty catalog is the only failure it can show.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.engine.Ping(ctx); err != nil {
		checks["engine"] = CheckError
	} else {
		checks["engine"] = CheckOK
	}

	if s.catalog.TextCount() == 0 {
		checks["catalog"] = CheckError
	} else {
		checks["catalog"] = CheckOK
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{
		Status:  status,
		Checks:  checks,
		Texts:   s.catalog.TextCount(),
		Authors: s.catalog.AuthorCount(),
	}
}
