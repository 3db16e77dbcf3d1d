// Package metrics defines and registers all custom Prometheus metrics for
// the employee API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry via
// promauto; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "employee_api"

// EmployeesCreatedTotal counts successfully created employee records.
// Label:
//   - status: the employment status the record was created with ("active"/"inactive")
var EmployeesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employees_created_total",
		Help:      "Total number of employee records created, by status.",
	},
	[]string{"status"},
)

// EmployeesUpdatedTotal counts successful updates.
// Label:
//   - kind: "replace" (full update) or "patch" (partial update)
var EmployeesUpdatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employees_updated_total",
		Help:      "Total number of successful employee updates, by kind.",
	},
	[]string{"kind"},
)

// EmployeesDeletedTotal counts permanently deleted employee records.
var EmployeesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employees_deleted_total",
		Help:      "Total number of employee records deleted.",
	},
)

// RateLimitRejectionsTotal counts requests rejected by the rate limiter.
var RateLimitRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Total number of requests rejected with 429 by the rate limiter.",
	},
)
