package eventtree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lukefi/metsi-go/guard"
	"github.com/lukefi/metsi-go/stand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// incTreatment is a minimal counter treatment used only to exercise the
// tree-building and evaluation machinery independent of the domain
// treatment library.
func incTreatment(p *stand.Payload, params map[string]any) error {
	p.Stand.Year++
	return nil
}

func incEvent(preconditions ...GuardFactory) Generator {
	return Event(EventSpec{
		Treatment:     stand.TreatmentGrowth,
		Fn:            incTreatment,
		Preconditions: preconditions,
	})
}

func newCounterPayload(t *testing.T) *stand.Payload {
	t.Helper()
	unit, err := stand.NewComputationalUnit("counter")
	require.NoError(t, err)
	return stand.NewPayload(unit)
}

func years(payloads []*stand.Payload) []int {
	out := make([]int, len(payloads))
	for i, p := range payloads {
		out[i] = p.Stand.Year
	}
	return out
}

// scenario #1: Sequence(inc, inc) at time points [0,1] -> terminal [4].
func TestCounterTreeSequenceAtTwoTimePoints(t *testing.T) {
	root, err := Build([]Instruction{
		{TimePoints: []int{0, 1}, Events: Sequence(incEvent(), incEvent())},
	})
	require.NoError(t, err)

	results, err := Evaluate(root, newCounterPayload(t), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, years(results))
}

// scenario #2: Sequence(inc, Alternatives(inc, inc), inc) at [0] -> [3, 3].
func TestBranchingAlternativesProducesTwoTerminals(t *testing.T) {
	root, err := Build([]Instruction{
		{TimePoints: []int{0}, Events: Sequence(incEvent(), Alternatives(incEvent(), incEvent()), incEvent())},
	})
	require.NoError(t, err)

	results, err := Evaluate(root, newCounterPayload(t), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3}, years(results))
}

// scenario #3: a straight-line sequence with no Alternatives anywhere;
// a guard failure propagates all the way to the top as an error (this
// stand's run aborts), since there is no branch point to absorb it.
func TestGuardFailurePropagatesWithoutEnclosingAlternatives(t *testing.T) {
	minInterval := GuardFactory(guard.MinimumTimeInterval(2, stand.TreatmentGrowth))
	seq := Sequence(
		incEvent(minInterval),
		incEvent(minInterval),
	)
	root, err := Build([]Instruction{
		{TimePoints: []int{1, 3}, Events: seq},
	})
	require.NoError(t, err)

	results, err := Evaluate(root, newCounterPayload(t), nil)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, guard.ErrConditionFailed)
}

// An Alternatives node whose every child fails its guard aborts upward
// to its own parent rather than silently returning an empty result.
func TestAllBranchesAbortedPropagatesToParent(t *testing.T) {
	alwaysFail := guard.Guard(func(*stand.Payload) error { return guard.ErrConditionFailed })
	root, err := Build([]Instruction{
		{TimePoints: []int{0}, Events: Alternatives(incEvent(Static(alwaysFail)), incEvent(Static(alwaysFail)))},
	})
	require.NoError(t, err)

	results, err := Evaluate(root, newCounterPayload(t), nil)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, ErrAllBranchesAborted)
}

// A do-nothing tree yields exactly one terminal payload, unchanged
// modulo history.
func TestDoNothingTreeYieldsOneUnchangedTerminal(t *testing.T) {
	doNothing := Event(EventSpec{Treatment: stand.TreatmentDoNothing, Fn: func(p *stand.Payload, params map[string]any) error { return nil }})
	root, err := Build([]Instruction{
		{TimePoints: []int{0, 5}, Events: doNothing},
	})
	require.NoError(t, err)

	p := newCounterPayload(t)
	results, err := Evaluate(root, p, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].Stand.Year)
	assert.Len(t, results[0].History, 2)
}

func TestEventRejectsOverlappingParameterKeys(t *testing.T) {
	ev := Event(EventSpec{
		Treatment:      stand.TreatmentGrowth,
		Fn:             incTreatment,
		Parameters:     map[string]any{"k": 1},
		FileParameters: map[string]string{"k": "/tmp/does-not-matter"},
	})
	root := &Node{}
	_, err := ev.(*eventGenerator).build(0, []*Node{root})
	assert.ErrorIs(t, err, ErrParameterConflict)
}

func TestEventRejectsMissingFileParameter(t *testing.T) {
	ev := Event(EventSpec{
		Treatment:      stand.TreatmentGrowth,
		Fn:             incTreatment,
		FileParameters: map[string]string{"table": "/no/such/file-eventtree-test"},
	})
	root := &Node{}
	_, err := ev.(*eventGenerator).build(0, []*Node{root})
	assert.ErrorIs(t, err, ErrFileNotFound)
}

// A file-parameter path that actually exists on disk must build cleanly
// and carry the path through into the merged parameters (§4.5 step (a)).
func TestEventAcceptsPresentFileParameter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.txt")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	ev := Event(EventSpec{
		Treatment:      stand.TreatmentGrowth,
		Fn:             incTreatment,
		FileParameters: map[string]string{"table": path},
	})
	root := &Node{}
	children, err := ev.(*eventGenerator).build(0, []*Node{root})
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, path, children[0].Treatment.Params["table"])
}

func TestPathIdentifiersAreDashJoinedAndStable(t *testing.T) {
	root, err := Build([]Instruction{
		{TimePoints: []int{0}, Events: Sequence(incEvent(), Alternatives(incEvent(), incEvent()))},
	})
	require.NoError(t, err)

	var paths []string
	_, err = Evaluate(root, newCounterPayload(t), func(path string, p *stand.Payload) error {
		paths = append(paths, path)
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, paths, "0")
	assert.Contains(t, paths, "0-0")
	assert.Contains(t, paths, "0-0-0")
	assert.Contains(t, paths, "0-0-1")
}
