package guard

import (
	"testing"

	"github.com/lukefi/metsi-go/stand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayload(t *testing.T) *stand.Payload {
	t.Helper()
	unit, err := stand.NewComputationalUnit("u1")
	require.NoError(t, err)
	return stand.NewPayload(unit)
}

func TestMinimumTimeIntervalClearsWhenNeverApplied(t *testing.T) {
	p := newTestPayload(t)
	g := MinimumTimeInterval(5, stand.TreatmentThinBasalArea)(10)
	assert.NoError(t, g(p))
}

func TestMinimumTimeIntervalFailsWithinWindow(t *testing.T) {
	p := newTestPayload(t)
	p.AppendHistory(8, stand.TreatmentThinBasalArea, nil)
	g := MinimumTimeInterval(5, stand.TreatmentThinBasalArea)(10)
	assert.ErrorIs(t, g(p), ErrConditionFailed)
}

func TestMinimumTimeIntervalClearsAtExactBoundary(t *testing.T) {
	p := newTestPayload(t)
	p.AppendHistory(5, stand.TreatmentThinBasalArea, nil)
	g := MinimumTimeInterval(5, stand.TreatmentThinBasalArea)(10)
	assert.NoError(t, g(p))
}

func TestAndShortCircuitsOnFirstFailure(t *testing.T) {
	p := newTestPayload(t)
	calls := 0
	ok := func(*stand.Payload) error { calls++; return nil }
	fail := func(*stand.Payload) error { calls++; return ErrConditionFailed }
	never := func(*stand.Payload) error { calls++; return nil }

	err := And(ok, fail, never)(p)
	assert.ErrorIs(t, err, ErrConditionFailed)
	assert.Equal(t, 2, calls)
}

func TestOrClearsIfAnyClears(t *testing.T) {
	p := newTestPayload(t)
	fail := func(*stand.Payload) error { return ErrConditionFailed }
	ok := func(*stand.Payload) error { return nil }

	assert.NoError(t, Or(fail, ok)(p))
	assert.ErrorIs(t, Or(fail, fail)(p), ErrConditionFailed)
}

func TestNotInverts(t *testing.T) {
	p := newTestPayload(t)
	ok := func(*stand.Payload) error { return nil }
	fail := func(*stand.Payload) error { return ErrConditionFailed }

	assert.ErrorIs(t, Not(ok)(p), ErrConditionFailed)
	assert.NoError(t, Not(fail)(p))
}
