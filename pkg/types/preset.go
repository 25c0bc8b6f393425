package types

// PresetName identifies one of the named configuration bundles in spec.md
// §6.4.
type PresetName string

const (
	PresetFast      PresetName = "fast"
	PresetBalanced  PresetName = "balanced"
	PresetDeep      PresetName = "deep"
	PresetThorough  PresetName = "thorough"
)

// Preset bundles the (index depth, scoring signals, budgets) that drive one
// end-to-end query, per spec.md §6.4. Only the Scoring Engine reads the
// signal flags; the Selector reads only the budget fields.
//
// The Rust original models Preset as a type with behavior
// (needs_deep_index/force_rebuild/use_structural_signals as methods, not
// just table lookups); this module follows that shape rather than a bare
// struct literal table, per SPEC_FULL.md §4.
type Preset struct {
	Name PresetName

	// Index depth.
	Deep  bool // false = shallow: metadata only, no chunks/term bags/imports/pagerank
	Fresh bool // true = force=true semantics when driving build_or_refresh_index

	// Scoring signals.
	UseBM25F     bool
	UsePageRank  bool
	UseRecency   bool
	UseStructural bool // true when PageRank and/or recency participate in RRF fusion

	// Selector budget fields.
	MaxBytes  int64
	MaxTokens int64
	Top       int
	MinScore  float64
}

// NeedsDeepIndex reports whether this preset requires a deep index build
// (chunks, term bags, imports, PageRank) rather than a shallow scan-only
// build.
func (p Preset) NeedsDeepIndex() bool { return p.Deep }

// ForceRebuild reports whether build_or_refresh_index should be invoked
// with force=true for this preset (bypassing incremental merge).
func (p Preset) ForceRebuild() bool { return p.Fresh }

// UseStructuralSignals reports whether PageRank and/or recency should be
// fused into the final ranking via RRF rather than the blended base score
// alone.
func (p Preset) UseStructuralSignals() bool { return p.UseStructural }

// Presets is the preset table from spec.md §6.4. max_bytes values are
// converted from KiB; max_tokens and top are left at zero (unbounded) since
// the table only specifies max_bytes and min_score per preset.
var Presets = map[PresetName]Preset{
	PresetFast: {
		Name: PresetFast, Deep: false, Fresh: false,
		UseBM25F: false, UsePageRank: false, UseRecency: false, UseStructural: false,
		MaxBytes: 50 * 1024, MinScore: 0.05,
	},
	PresetBalanced: {
		Name: PresetBalanced, Deep: true, Fresh: false,
		UseBM25F: true, UsePageRank: false, UseRecency: false, UseStructural: false,
		MaxBytes: 100 * 1024, MinScore: 0.01,
	},
	PresetDeep: {
		Name: PresetDeep, Deep: true, Fresh: true,
		UseBM25F: true, UsePageRank: true, UseRecency: false, UseStructural: true,
		MaxBytes: 200 * 1024, MinScore: 0.005,
	},
	PresetThorough: {
		Name: PresetThorough, Deep: true, Fresh: true,
		UseBM25F: true, UsePageRank: true, UseRecency: true, UseStructural: true,
		MaxBytes: 500 * 1024, MinScore: 0.001,
	},
}

// LookupPreset returns the named preset, or PresetBalanced if name is
// unrecognized.
func LookupPreset(name PresetName) Preset {
	if p, ok := Presets[name]; ok {
		return p
	}
	return Presets[PresetBalanced]
}
