package compass

import "github.com/pkg/errors"

// ContentType is one of the five fixed target-mix categories.
type ContentType string

const (
	ContentEducational   ContentType = "educational"
	ContentEntertaining  ContentType = "entertaining"
	ContentPromotional   ContentType = "promotional"
	ContentInspirational ContentType = "inspirational"
	ContentInteractive   ContentType = "interactive"
)

// ContentTypes lists all categories in presentation order.
var ContentTypes = []ContentType{
	ContentEducational,
	ContentEntertaining,
	ContentPromotional,
	ContentInspirational,
	ContentInteractive,
}

var contentTypeLabels = map[ContentType]string{
	ContentEducational:   "تعليمي",
	ContentEntertaining:  "ترفيهي",
	ContentPromotional:   "ترويجي",
	ContentInspirational: "ملهم",
	ContentInteractive:   "تفاعلي",
}

// Label returns the user-facing Arabic label of the content type.
func (ct ContentType) Label() string {
	if l, ok := contentTypeLabels[ct]; ok {
		return l
	}
	return string(ct)
}

var (
	errMixKeys = errors.New("target mix must cover exactly the five content types")
	errMixSum  = errors.New("target mix percentages must sum to 100")
)

type (
	KPI struct {
		Metric string `json:"metric"`
		Target string `json:"target"`
	}

	Goals struct {
		Objective string `json:"objective"`
		KPIs      []KPI  `json:"kpis"`
	}

	Persona struct {
		Name               string     `json:"name"`
		Age                int        `json:"age"`
		JobTitle           string     `json:"job_title"`
		Goals              string     `json:"goals"`
		Challenges         string     `json:"challenges"`
		PreferredPlatforms []Platform `json:"preferred_platforms"`
		AvatarURL          string     `json:"avatar_url,omitempty"`
	}

	Pillar struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
		Color       string `json:"color" validate:"omitempty,hexcolor_"` // hex, eg. #E11D48
	}

	Tone struct {
		Description string   `json:"description"`
		Dos         []string `json:"dos"`
		Donts       []string `json:"donts"`
	}

	// TargetMix maps every content type to a desired percentage of the
	// publishing schedule. Construct through NewTargetMix: the sum-to-100
	// invariant is enforced here, not at the edit dialog.
	TargetMix map[ContentType]int

	ChecklistItem struct {
		Task      string `json:"task"`
		Completed bool   `json:"completed"`
	}

	// ChannelStrategy items keep their insertion order; so do their
	// publishing checklists.
	ChannelStrategy struct {
		Platform            Platform        `json:"platform"`
		StrategicGoal       string          `json:"strategic_goal"`
		PreferredPostTypes  []PostTypeID    `json:"preferred_post_types"`
		PublishingChecklist []ChecklistItem `json:"publishing_checklist"`
	}

	// Compass is the strategic planning document attached to a Space.
	Compass struct {
		Goals             Goals             `json:"goals"`
		Personas          []Persona         `json:"personas"`
		Pillars           []Pillar          `json:"pillars"`
		Tone              Tone              `json:"tone"`
		TargetMix         TargetMix         `json:"target_mix"`
		ChannelStrategies []ChannelStrategy `json:"channel_strategies"`
	}
)

// NewTargetMix validates that pcts covers exactly the five content types
// with non-negative percentages summing to 100.
func NewTargetMix(pcts map[ContentType]int) (TargetMix, error) {
	if len(pcts) != len(ContentTypes) {
		return nil, errMixKeys
	}
	var sum int
	for _, ct := range ContentTypes {
		pct, ok := pcts[ct]
		if !ok || pct < 0 {
			return nil, errMixKeys
		}
		sum += pct
	}
	if sum != 100 {
		return nil, errMixSum
	}

	mix := make(TargetMix, len(pcts))
	for ct, pct := range pcts {
		mix[ct] = pct
	}
	return mix, nil
}

// Default returns a fresh detached default Compass: an even target mix and
// empty collections. Re-initializing an existing compass discards prior
// edits; guarding against that is the caller's responsibility.
func Default() Compass {
	return Compass{
		Goals:    Goals{KPIs: []KPI{}},
		Personas: []Persona{},
		Pillars:  []Pillar{},
		Tone:     Tone{Dos: []string{}, Donts: []string{}},
		TargetMix: TargetMix{
			ContentEducational:   20,
			ContentEntertaining:  20,
			ContentPromotional:   20,
			ContentInspirational: 20,
			ContentInteractive:   20,
		},
		ChannelStrategies: []ChannelStrategy{},
	}
}

// The With* updaters each return a copy of the compass with exactly one
// section replaced; the receiver is never mutated, so callers can diff the
// old and new aggregates.

func (c Compass) WithGoals(g Goals) Compass {
	c.Goals = g
	return c
}

func (c Compass) WithPersonas(personas []Persona) Compass {
	c.Personas = personas
	return c
}

func (c Compass) WithPillars(pillars []Pillar) Compass {
	c.Pillars = pillars
	return c
}

func (c Compass) WithTone(t Tone) Compass {
	c.Tone = t
	return c
}

func (c Compass) WithTargetMix(pcts map[ContentType]int) (Compass, error) {
	mix, err := NewTargetMix(pcts)
	if err != nil {
		return c, err
	}
	c.TargetMix = mix
	return c, nil
}

// WithChannelStrategy replaces the strategy for the same platform in place,
// or appends when the platform has no strategy yet.
func (c Compass) WithChannelStrategy(cs ChannelStrategy) Compass {
	strategies := make([]ChannelStrategy, len(c.ChannelStrategies))
	copy(strategies, c.ChannelStrategies)

	for i, existing := range strategies {
		if existing.Platform == cs.Platform {
			strategies[i] = cs
			c.ChannelStrategies = strategies
			return c
		}
	}
	c.ChannelStrategies = append(strategies, cs)
	return c
}

// StrategyFor returns the channel strategy for a platform, if any.
func (c Compass) StrategyFor(p Platform) (ChannelStrategy, bool) {
	for _, cs := range c.ChannelStrategies {
		if cs.Platform == p {
			return cs, true
		}
	}
	return ChannelStrategy{}, false
}
