package compass

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func evenMix() map[ContentType]int {
	return map[ContentType]int{
		ContentEducational:   20,
		ContentEntertaining:  20,
		ContentPromotional:   20,
		ContentInspirational: 20,
		ContentInteractive:   20,
	}
}

func TestNewTargetMix(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[ContentType]int)
		wantErr error
	}{
		{name: "even mix", mutate: func(m map[ContentType]int) {}},
		{name: "skewed but valid", mutate: func(m map[ContentType]int) {
			m[ContentEducational] = 60
			m[ContentEntertaining] = 0
			m[ContentPromotional] = 10
			m[ContentInspirational] = 10
			m[ContentInteractive] = 20
		}},
		{name: "missing category", mutate: func(m map[ContentType]int) {
			delete(m, ContentInteractive)
		}, wantErr: errMixKeys},
		{name: "unknown category", mutate: func(m map[ContentType]int) {
			delete(m, ContentInteractive)
			m["viral"] = 20
		}, wantErr: errMixKeys},
		{name: "negative percentage", mutate: func(m map[ContentType]int) {
			m[ContentEducational] = -20
			m[ContentEntertaining] = 60
		}, wantErr: errMixKeys},
		{name: "sums above 100", mutate: func(m map[ContentType]int) {
			m[ContentEducational] = 40
		}, wantErr: errMixSum},
		{name: "sums below 100", mutate: func(m map[ContentType]int) {
			m[ContentEducational] = 10
		}, wantErr: errMixSum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pcts := evenMix()
			tt.mutate(pcts)
			mix, err := NewTargetMix(pcts)
			if err != tt.wantErr {
				t.Errorf("NewTargetMix() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				assert.Equal(t, TargetMix(pcts), mix)
			}
		})
	}
}

func TestNewTargetMix_detachesInput(t *testing.T) {
	pcts := evenMix()
	mix, err := NewTargetMix(pcts)
	assert.NoError(t, err)

	pcts[ContentEducational] = 99
	assert.Equal(t, 20, mix[ContentEducational])
}

func TestCompass_sectionUpdatesAreIsolated(t *testing.T) {
	base := Default()
	base.Pillars = []Pillar{{Name: "خلف الكواليس", Color: "#E11D48"}}
	base.Personas = []Persona{{Name: "سارة"}}

	t.Run("WithGoals", func(t *testing.T) {
		updated := base.WithGoals(Goals{Objective: "زيادة الوعي"})
		assert.Equal(t, "زيادة الوعي", updated.Goals.Objective)
		assert.Equal(t, "", base.Goals.Objective)
		// untouched sections carried over
		assert.Equal(t, base.Pillars, updated.Pillars)
		assert.Equal(t, base.Personas, updated.Personas)
		assert.Equal(t, base.TargetMix, updated.TargetMix)
	})

	t.Run("WithTone", func(t *testing.T) {
		updated := base.WithTone(Tone{Description: "ودّية", Dos: []string{"كن مباشراً"}})
		assert.Equal(t, "ودّية", updated.Tone.Description)
		assert.Empty(t, base.Tone.Description)
		assert.Equal(t, base.Goals, updated.Goals)
	})

	t.Run("WithPillars", func(t *testing.T) {
		updated := base.WithPillars([]Pillar{{Name: "تعليم"}, {Name: "منتجات"}})
		assert.Len(t, updated.Pillars, 2)
		assert.Len(t, base.Pillars, 1)
	})

	t.Run("WithTargetMix valid", func(t *testing.T) {
		pcts := evenMix()
		pcts[ContentEducational] = 40
		pcts[ContentEntertaining] = 0
		updated, err := base.WithTargetMix(pcts)
		assert.NoError(t, err)
		assert.Equal(t, 40, updated.TargetMix[ContentEducational])
		assert.Equal(t, 20, base.TargetMix[ContentEducational])
	})

	t.Run("WithTargetMix invalid keeps receiver", func(t *testing.T) {
		_, err := base.WithTargetMix(map[ContentType]int{ContentEducational: 100})
		assert.Error(t, err)
		assert.Equal(t, 20, base.TargetMix[ContentEducational])
	})
}

func TestCompass_WithChannelStrategy(t *testing.T) {
	base := Default()

	one := base.WithChannelStrategy(ChannelStrategy{Platform: PlatformInstagram, StrategicGoal: "نمو المتابعين"})
	two := one.WithChannelStrategy(ChannelStrategy{Platform: PlatformX, StrategicGoal: "نقاشات"})
	assert.Empty(t, base.ChannelStrategies)
	assert.Len(t, one.ChannelStrategies, 1)
	assert.Len(t, two.ChannelStrategies, 2)

	// insertion order is preserved
	assert.Equal(t, PlatformInstagram, two.ChannelStrategies[0].Platform)
	assert.Equal(t, PlatformX, two.ChannelStrategies[1].Platform)

	// same-platform update replaces in place, keeping the slot
	three := two.WithChannelStrategy(ChannelStrategy{Platform: PlatformInstagram, StrategicGoal: "مبيعات"})
	assert.Len(t, three.ChannelStrategies, 2)
	assert.Equal(t, "مبيعات", three.ChannelStrategies[0].StrategicGoal)
	assert.Equal(t, "نمو المتابعين", two.ChannelStrategies[0].StrategicGoal)

	cs, ok := three.StrategyFor(PlatformInstagram)
	assert.True(t, ok)
	assert.Equal(t, "مبيعات", cs.StrategicGoal)
	_, ok = three.StrategyFor(PlatformTikTok)
	assert.False(t, ok)
}

func TestDefault(t *testing.T) {
	c := Default()
	sum := 0
	for _, ct := range ContentTypes {
		sum += c.TargetMix[ct]
	}
	assert.Equal(t, 100, sum)
	assert.Empty(t, c.Personas)
	assert.Empty(t, c.Pillars)
	assert.Empty(t, c.ChannelStrategies)
}

func TestLookupPostType(t *testing.T) {
	pt, ok := LookupPostType(PlatformInstagram, "ig_reel")
	assert.True(t, ok)
	assert.Equal(t, "ريلز", pt.Name)
	assert.NotEmpty(t, pt.Fields)

	// a post type never leaks across platforms
	_, ok = LookupPostType(PlatformX, "ig_reel")
	assert.False(t, ok)

	_, ok = LookupPostType("myspace", "ig_reel")
	assert.False(t, ok)
}
