package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordPlan(t *testing.T) {
	before := testutil.ToFloat64(PlansTotal.WithLabelValues("fast", "ok"))
	RecordPlan("fast", "ok", 0.2)
	RecordPlan("fast", "ok", 0.3)

	assert.Equal(t, before+2, testutil.ToFloat64(PlansTotal.WithLabelValues("fast", "ok")))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(PlanDuration, "mealplan_plan_duration_seconds"), 1)
}

func TestRecordInfeasibleAndStoreErrors(t *testing.T) {
	RecordInfeasible("lunch", "role_shortage")
	RecordStoreError("save")
	RecordDay(0.04)

	assert.Equal(t, 1.0, testutil.ToFloat64(InfeasibleTotal.WithLabelValues("lunch", "role_shortage")))
	assert.Equal(t, 1.0, testutil.ToFloat64(PlanStoreErrors.WithLabelValues("save")))
	assert.Equal(t, 1, testutil.CollectAndCount(DayRelErr))
}
