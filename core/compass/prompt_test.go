package compass

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func promptFixture() (PromptInput, Compass) {
	pillar := Pillar{Name: "خلف الكواليس", Description: "قصص من داخل الفريق"}
	c := Default().
		WithGoals(Goals{Objective: "زيادة الوعي بالعلامة"}).
		WithPersonas([]Persona{{Name: "سارة"}, {Name: "خالد"}}).
		WithPillars([]Pillar{pillar}).
		WithTone(Tone{Description: "ودّية ومهنية", Dos: []string{"كن مباشراً"}, Donts: []string{"لا تبالغ"}}).
		WithChannelStrategy(ChannelStrategy{Platform: PlatformInstagram, StrategicGoal: "نمو المتابعين"})

	in := PromptInput{
		IdeaText:    "جولة في مكتبنا الجديد",
		ContentType: ContentEntertaining,
		Pillar:      &pillar,
		Platform:    PlatformInstagram,
		PostTypeID:  "ig_reel",
		FieldValues: map[string]string{"hook": "شاهد قبل الجميع", "audio": "موسيقى هادئة"},
	}
	return in, c
}

func TestRenderPrompt_deterministic(t *testing.T) {
	in, c := promptFixture()

	first := RenderPrompt(in, c)
	second := RenderPrompt(in, c)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)

	// every editorial choice surfaces in the output
	for _, want := range []string{
		"زيادة الوعي بالعلامة",
		"سارة، خالد",
		"ودّية ومهنية",
		"جولة في مكتبنا الجديد",
		"ترفيهي",       // content type label
		"خلف الكواليس", // pillar
		"انستغرام",     // platform label
		"نمو المتابعين",
		"ريلز", // post type name
	} {
		assert.Contains(t, first, want)
	}
}

func TestRenderPrompt_requiredSelections(t *testing.T) {
	in, c := promptFixture()

	tests := []struct {
		name   string
		mutate func(*PromptInput)
	}{
		{name: "no platform", mutate: func(p *PromptInput) { p.Platform = "" }},
		{name: "no content type", mutate: func(p *PromptInput) { p.ContentType = "" }},
		{name: "no pillar", mutate: func(p *PromptInput) { p.Pillar = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			partial := in
			tt.mutate(&partial)
			if got := RenderPrompt(partial, c); got != "" {
				t.Errorf("RenderPrompt() = %q, want empty", got)
			}
		})
	}
}

func TestRenderPrompt_fieldDetails(t *testing.T) {
	in, c := promptFixture()

	t.Run("values render in field-definition order", func(t *testing.T) {
		out := RenderPrompt(in, c)
		assert.Contains(t, out, "## تفاصيل المنشور")
		assert.Contains(t, out, "- الخطاف الافتتاحي: شاهد قبل الجميع")
		assert.Contains(t, out, "- الصوت المقترح: موسيقى هادئة")
		// hook is defined before audio in the registry
		assert.Less(t, strings.Index(out, "شاهد قبل الجميع"), strings.Index(out, "موسيقى هادئة"))
	})

	t.Run("no values, no section", func(t *testing.T) {
		bare := in
		bare.FieldValues = nil
		out := RenderPrompt(bare, c)
		assert.NotEmpty(t, out)
		assert.NotContains(t, out, "## تفاصيل المنشور")
	})

	t.Run("blank values, no section", func(t *testing.T) {
		bare := in
		bare.FieldValues = map[string]string{"hook": "  ", "unknown_field": "x"}
		out := RenderPrompt(bare, c)
		assert.NotContains(t, out, "## تفاصيل المنشور")
	})
}

func TestRenderPrompt_missingOptionals(t *testing.T) {
	pillar := Pillar{Name: "تعليم"}
	in := PromptInput{
		IdeaText:    "فكرة",
		ContentType: ContentEducational,
		Pillar:      &pillar,
		Platform:    PlatformFacebook, // no channel strategy, no post type chosen
	}

	out := RenderPrompt(in, Default())
	assert.NotEmpty(t, out)
	assert.Contains(t, out, notSpecified)
	// stable shape: sections are present even when their values are not
	assert.Contains(t, out, "الهدف الاستراتيجي للقناة: "+notSpecified)
	assert.Contains(t, out, "نوع المنشور: "+notSpecified)
	assert.Contains(t, out, "## تعليمات الإخراج")
}
