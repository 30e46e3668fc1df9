package stand

// TreatmentID tags a treatment by kind rather than by function identity
// (the source compares treatments by pointer; history entries and guards
// here compare by this enum tag instead, per the design notes).
type TreatmentID int

const (
	TreatmentDoNothing TreatmentID = iota
	TreatmentCut
	TreatmentThinBasalArea
	TreatmentThinNumberOfStems
	TreatmentMarkTrees
	TreatmentRegeneration
	TreatmentSoilSurfacePreparation
	TreatmentGrowth
	TreatmentAjourat
)

// String renders the TreatmentID the way persistence and logs expect.
func (t TreatmentID) String() string {
	switch t {
	case TreatmentDoNothing:
		return "do_nothing"
	case TreatmentCut:
		return "cut"
	case TreatmentThinBasalArea:
		return "thin_basal_area"
	case TreatmentThinNumberOfStems:
		return "thin_number_of_stems"
	case TreatmentMarkTrees:
		return "mark_trees"
	case TreatmentRegeneration:
		return "regeneration"
	case TreatmentSoilSurfacePreparation:
		return "soil_surface_preparation"
	case TreatmentGrowth:
		return "growth"
	case TreatmentAjourat:
		return "ajourat"
	default:
		return "unknown"
	}
}

// HistoryEntry records one successfully applied treatment for condition
// guards (e.g. minimum-time-interval-since-treatment) to inspect.
type HistoryEntry struct {
	TimePoint int
	Treatment TreatmentID
	Params    map[string]any
}

// CollectedData is the append-only, per-payload record of treatment side
// effects, keyed by treatment name. Each entry is an independent snapshot
// (e.g. removed-tree rows, before/after Metrics) a treatment appends to
// under its own key; readers type-assert the values they expect for that
// key.
type CollectedData struct {
	entries map[string][]any
}

// NewCollectedData builds an empty CollectedData log.
func NewCollectedData() *CollectedData {
	return &CollectedData{entries: make(map[string][]any)}
}

// Append records one side-effect value under key.
func (c *CollectedData) Append(key string, value any) {
	c.entries[key] = append(c.entries[key], value)
}

// Get returns every side-effect value recorded under key, in append order.
func (c *CollectedData) Get(key string) []any { return c.entries[key] }

// Keys returns the set of treatment keys with at least one recorded entry.
func (c *CollectedData) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Clone deep-copies the collected-data log so a branch fork's copy is
// independent of its siblings.
func (c *CollectedData) Clone() *CollectedData {
	clone := NewCollectedData()
	for k, v := range c.entries {
		cp := make([]any, len(v))
		copy(cp, v)
		clone.entries[k] = cp
	}
	return clone
}

// Payload is the unit the event tree pushes through treatments: a stand,
// its append-only collected-data log, and its operation history.
type Payload struct {
	Stand     *ComputationalUnit
	Collected *CollectedData
	History   []HistoryEntry
}

// NewPayload wraps a fresh stand with empty collected-data and history, as
// the simulator driver does for each stand at the start of a run.
func NewPayload(unit *ComputationalUnit) *Payload {
	return &Payload{Stand: unit, Collected: NewCollectedData(), History: nil}
}

// AppendHistory records a successfully applied treatment.
func (p *Payload) AppendHistory(timePoint int, treatment TreatmentID, params map[string]any) {
	p.History = append(p.History, HistoryEntry{TimePoint: timePoint, Treatment: treatment, Params: params})
}

// LastApplication returns the most recent history entry for treatment, and
// whether one was found.
func (p *Payload) LastApplication(treatment TreatmentID) (HistoryEntry, bool) {
	for i := len(p.History) - 1; i >= 0; i-- {
		if p.History[i].Treatment == treatment {
			return p.History[i], true
		}
	}
	return HistoryEntry{}, false
}

// Fork finalizes the stand's vector stores and returns an independent
// payload: stand columns shared via copy-on-write, history and collected
// data deep-copied. Called once per branch at an Alternatives node.
func (p *Payload) Fork() *Payload {
	p.Stand.Finalize()
	history := make([]HistoryEntry, len(p.History))
	copy(history, p.History)
	return &Payload{
		Stand:     p.Stand.Clone(),
		Collected: p.Collected.Clone(),
		History:   history,
	}
}
