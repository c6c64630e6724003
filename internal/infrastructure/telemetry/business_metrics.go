package telemetry

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// MetricsError reports a metric setup failure
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// ErrMeterNil is returned when no meter is supplied
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// BusinessMetrics counts what the order flow produces: submitted orders,
// split children, proformas and agreement transitions.
type BusinessMetrics struct {
	logger *zap.Logger

	ordersSubmitted      *Counter
	orderAmount          *Counter
	ordersSplit          *Counter
	childOrdersCreated   *Counter
	proformasCreated     *Counter
	agreementTransitions *Counter
	jobDuration          *Histogram
}

// NewBusinessMetrics registers the business instruments on meter
func NewBusinessMetrics(meter metric.Meter, logger *zap.Logger) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	bm := &BusinessMetrics{logger: logger}

	var err error
	if bm.ordersSubmitted, err = NewCounter(meter, "culinary_sales_orders_submitted_total",
		"Sales orders submitted", "{orders}"); err != nil {
		return nil, err
	}
	if bm.orderAmount, err = NewCounter(meter, "culinary_sales_order_amount_total",
		"Grand total of submitted sales orders in cents", "{cents}"); err != nil {
		return nil, err
	}
	if bm.ordersSplit, err = NewCounter(meter, "culinary_sales_orders_split_total",
		"Parent orders split into child orders", "{orders}"); err != nil {
		return nil, err
	}
	if bm.childOrdersCreated, err = NewCounter(meter, "culinary_child_orders_created_total",
		"Child orders created by splits", "{orders}"); err != nil {
		return nil, err
	}
	if bm.proformasCreated, err = NewCounter(meter, "culinary_proformas_created_total",
		"Proforma invoices submitted", "{invoices}"); err != nil {
		return nil, err
	}
	if bm.agreementTransitions, err = NewCounter(meter, "culinary_agreement_transitions_total",
		"Agreement status transitions", "{transitions}"); err != nil {
		return nil, err
	}
	if bm.jobDuration, err = NewHistogram(meter, "culinary_job_duration_seconds",
		"Scheduled job run duration", "s"); err != nil {
		return nil, err
	}
	return bm, nil
}

// RecordOrderSubmitted counts a submitted order and its grand total.
// Child orders carry their parent in sourceWebSO and are labelled as such.
func (bm *BusinessMetrics) RecordOrderSubmitted(ctx context.Context, company, sourceWebSO string, grandTotal decimal.Decimal) {
	kind := "parent"
	if sourceWebSO != "" {
		kind = "child"
	}
	attrs := []attribute.KeyValue{AttrCompanyKey.String(company), AttrOrderKindKey.String(kind)}
	bm.ordersSubmitted.Inc(ctx, attrs...)
	bm.orderAmount.Add(ctx, grandTotal.Shift(2).Round(0).IntPart(), attrs...)
}

// RecordSplit counts one split parent and its children
func (bm *BusinessMetrics) RecordSplit(ctx context.Context, children int) {
	bm.ordersSplit.Inc(ctx)
	bm.childOrdersCreated.Add(ctx, int64(children))
}

// RecordProformaCreated counts a proforma for a supplier company
func (bm *BusinessMetrics) RecordProformaCreated(ctx context.Context, company string) {
	bm.proformasCreated.Inc(ctx, AttrCompanyKey.String(company))
}

// RecordAgreementTransition counts an agreement entering status
func (bm *BusinessMetrics) RecordAgreementTransition(ctx context.Context, status string) {
	bm.agreementTransitions.Inc(ctx, AttrStatusKey.String(status))
}

// RecordJobRun records how long a scheduled job ran and whether it failed
func (bm *BusinessMetrics) RecordJobRun(ctx context.Context, job string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	bm.jobDuration.RecordDuration(ctx, d, AttrJobKey.String(job), AttrStatusKey.String(status))
}
