package compass

import "strings"

// notSpecified is rendered in place of missing optional values so the
// prompt keeps a stable shape regardless of which fields are filled.
const notSpecified = "غير محدد"

// PromptInput carries the raw idea plus the editorial choices made for it.
type PromptInput struct {
	IdeaText    string
	ContentType ContentType
	Pillar      *Pillar
	Platform    Platform
	PostTypeID  PostTypeID
	FieldValues map[string]string
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}

// RenderPrompt projects the compass and the idea into one long-form
// instruction block for the text-generation service. It is a pure
// function: identical inputs yield byte-identical output, so it is safe to
// call on every keystroke for a live preview. If the platform, content
// type or pillar is missing, no partial prompt is emitted.
func RenderPrompt(in PromptInput, c Compass) string {
	if in.Platform == "" || in.ContentType == "" || in.Pillar == nil {
		return ""
	}

	var b strings.Builder

	// role preamble
	b.WriteString("أنت خبير في صناعة المحتوى لوسائل التواصل الاجتماعي وكتابة النصوص التسويقية باللغة العربية.\n\n")

	// strategic context
	b.WriteString("## السياق الاستراتيجي\n")
	b.WriteString("- الهدف الرئيسي: " + orNotSpecified(c.Goals.Objective) + "\n")
	b.WriteString("- الجمهور المستهدف: " + personaNames(c.Personas) + "\n")
	b.WriteString("- نبرة الصوت: " + orNotSpecified(c.Tone.Description) + "\n")
	b.WriteString("- افعل: " + joinOrNotSpecified(c.Tone.Dos) + "\n")
	b.WriteString("- لا تفعل: " + joinOrNotSpecified(c.Tone.Donts) + "\n\n")

	// task statement
	b.WriteString("## المهمة\n")
	b.WriteString("حوّل الفكرة التالية إلى منشور كامل جاهز للنشر:\n\n")

	b.WriteString("الفكرة: " + orNotSpecified(in.IdeaText) + "\n")
	b.WriteString("نوع المحتوى: " + in.ContentType.Label() + "\n")
	b.WriteString("المحور: " + in.Pillar.Name + " — " + orNotSpecified(in.Pillar.Description) + "\n")
	b.WriteString("المنصة: " + in.Platform.Label() + "\n")

	goal := notSpecified
	if cs, ok := c.StrategyFor(in.Platform); ok {
		goal = orNotSpecified(cs.StrategicGoal)
	}
	b.WriteString("الهدف الاستراتيجي للقناة: " + goal + "\n")

	postTypeName := notSpecified
	postType, knownType := LookupPostType(in.Platform, in.PostTypeID)
	if knownType {
		postTypeName = postType.Name
	}
	b.WriteString("نوع المنشور: " + postTypeName + "\n")

	// per-field details, in the post type's field-definition order; the
	// section is omitted entirely when no field has a value
	if knownType && len(in.FieldValues) > 0 {
		var details strings.Builder
		for _, fld := range postType.Fields {
			val := strings.TrimSpace(in.FieldValues[fld.ID])
			if val == "" {
				continue
			}
			details.WriteString("- " + fld.Label + ": " + val + "\n")
		}
		if details.Len() > 0 {
			b.WriteString("\n## تفاصيل المنشور\n")
			b.WriteString(details.String())
		}
	}

	// output instructions
	b.WriteString("\n## تعليمات الإخراج\n")
	b.WriteString("1. اكتب النص النهائي للمنشور فقط دون أي مقدمات أو شروحات.\n")
	b.WriteString("2. التزم بنبرة الصوت وقوائم افعل ولا تفعل أعلاه.\n")
	b.WriteString("3. راعِ أعراف المنصة المختارة في الطول والتنسيق والوسوم.\n")
	b.WriteString("4. اكتب باللغة العربية الفصحى المبسطة.\n")

	return b.String()
}

func personaNames(personas []Persona) string {
	names := make([]string, 0, len(personas))
	for _, p := range personas {
		if strings.TrimSpace(p.Name) != "" {
			names = append(names, p.Name)
		}
	}
	if len(names) == 0 {
		return notSpecified
	}
	return strings.Join(names, "، ")
}

func joinOrNotSpecified(items []string) string {
	kept := make([]string, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 {
		return notSpecified
	}
	return strings.Join(kept, "؛ ")
}
