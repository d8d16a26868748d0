package metric

import "errors"

// MaxMetrics caps the number of metrics in a collection.
const MaxMetrics = 10

var (
	// ErrDuplicateKind is returned when a metric of the same derived
	// kind already exists in the collection.
	ErrDuplicateKind = errors.New("a metric of this kind is already added")

	// ErrCapReached is returned when the collection already holds the
	// maximum number of metrics.
	ErrCapReached = errors.New("metric limit reached")

	// ErrActionCapReached is returned when a technical metric already
	// holds the maximum number of sub-rules for an order side.
	ErrActionCapReached = errors.New("action limit reached for this side")
)

// supportedRiskAssets lists the symbols RISK metrics are available for.
// RISK metrics watching any other asset are pruned automatically when
// the asset changes.
var supportedRiskAssets = map[string]bool{
	"BTCUSDT":  true,
	"BTC/USDT": true,
	"ETHUSDT":  true,
	"ETH/USDT": true,
}

// Collection is an ordered set of metrics plus the per-metric expansion
// view state. All operations are pure: they return a new Collection and
// never mutate the receiver's backing storage.
type Collection struct {
	Metrics []Metric
	// Expanded tracks which detail editors are open. Presentation
	// state, kept off the domain records.
	Expanded map[string]bool
}

// NewCollection returns an empty collection.
func NewCollection() Collection {
	return Collection{Expanded: map[string]bool{}}
}

// Add appends a new metric named name with kind-appropriate defaults.
// The add is rejected when the collection is full or a metric of the
// same derived kind already exists; the original collection is returned
// alongside the error so callers can surface a transient notice without
// touching state.
func (c Collection) Add(name string) (Collection, error) {
	if len(c.Metrics) >= MaxMetrics {
		return c, ErrCapReached
	}

	kind := DeriveKind(name)
	for _, m := range c.Metrics {
		if m.Kind == kind {
			return c, ErrDuplicateKind
		}
	}

	m := New(name)
	out := c.clone()
	out.Metrics = append(out.Metrics, m)
	out.Expanded[m.ID] = true
	return out, nil
}

// Remove filters out the metric with the given id. Removing an absent
// id is a no-op.
func (c Collection) Remove(id string) Collection {
	out := c.clone()
	kept := out.Metrics[:0]
	for _, m := range out.Metrics {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	out.Metrics = kept
	delete(out.Expanded, id)
	return out
}

// ToggleEnabled flips the enabled flag of the matching metric. No-op if
// the id is absent.
func (c Collection) ToggleEnabled(id string) Collection {
	return c.Update(id, func(m *Metric) { m.Enabled = !m.Enabled })
}

// ToggleExpanded flips the expansion view state of the matching metric.
func (c Collection) ToggleExpanded(id string) Collection {
	if _, ok := c.Find(id); !ok {
		return c
	}
	out := c.clone()
	out.Expanded[id] = !out.Expanded[id]
	return out
}

// ToggleGroupExpand batch-toggles expansion for every metric of the
// given kind: if all of them are currently expanded they all collapse,
// otherwise they all expand.
func (c Collection) ToggleGroupExpand(kind Kind) Collection {
	ids := make([]string, 0, len(c.Metrics))
	allExpanded := true
	for _, m := range c.Metrics {
		if m.Kind != kind {
			continue
		}
		ids = append(ids, m.ID)
		if !c.Expanded[m.ID] {
			allExpanded = false
		}
	}
	if len(ids) == 0 {
		return c
	}

	out := c.clone()
	for _, id := range ids {
		out.Expanded[id] = !allExpanded
	}
	return out
}

// Update applies fn to a copy of the matching metric and stores the
// result. No-op if the id is absent.
func (c Collection) Update(id string, fn func(*Metric)) Collection {
	out := c.clone()
	for i := range out.Metrics {
		if out.Metrics[i].ID == id {
			fn(&out.Metrics[i])
			break
		}
	}
	return out
}

// Reset returns an empty collection.
func (c Collection) Reset() Collection {
	return NewCollection()
}

// PruneUnsupported drops RISK metrics when the watched asset is not in
// the supported set. Called as a reaction to asset-symbol changes.
func (c Collection) PruneUnsupported(assetSymbol string) Collection {
	if supportedRiskAssets[assetSymbol] {
		return c
	}

	out := c.clone()
	kept := out.Metrics[:0]
	for _, m := range out.Metrics {
		if m.Kind == KindRisk {
			delete(out.Expanded, m.ID)
			continue
		}
		kept = append(kept, m)
	}
	out.Metrics = kept
	return out
}

// Find returns the metric with the given id.
func (c Collection) Find(id string) (Metric, bool) {
	for _, m := range c.Metrics {
		if m.ID == id {
			return m, true
		}
	}
	return Metric{}, false
}

// HasKind reports whether any metric of the given kind exists.
func (c Collection) HasKind(kind Kind) bool {
	for _, m := range c.Metrics {
		if m.Kind == kind {
			return true
		}
	}
	return false
}

// Enabled returns the metrics whose condition is active, in order.
func (c Collection) Enabled() []Metric {
	out := make([]Metric, 0, len(c.Metrics))
	for _, m := range c.Metrics {
		if m.Enabled {
			out = append(out, m)
		}
	}
	return out
}

// IsExpanded reports whether the metric's detail editor is open.
func (c Collection) IsExpanded(id string) bool {
	return c.Expanded[id]
}

// Len returns the number of metrics.
func (c Collection) Len() int {
	return len(c.Metrics)
}

func (c Collection) clone() Collection {
	metrics := make([]Metric, len(c.Metrics))
	copy(metrics, c.Metrics)
	expanded := make(map[string]bool, len(c.Expanded))
	for k, v := range c.Expanded {
		expanded[k] = v
	}
	return Collection{Metrics: metrics, Expanded: expanded}
}
