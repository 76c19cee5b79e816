package compass

// Platform is a supported social-media channel.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformX         Platform = "x"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformFacebook  Platform = "facebook"
)

var platformLabels = map[Platform]string{
	PlatformInstagram: "انستغرام",
	PlatformX:         "إكس",
	PlatformLinkedIn:  "لينكد إن",
	PlatformTikTok:    "تيك توك",
	PlatformYouTube:   "يوتيوب",
	PlatformFacebook:  "فيسبوك",
}

func (p Platform) Label() string {
	if l, ok := platformLabels[p]; ok {
		return l
	}
	return string(p)
}

// FieldKind tells the presentation layer which input widget to render.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldNumber   FieldKind = "number"
	FieldURL      FieldKind = "url"
)

type (
	PostTypeID string

	// Field describes one input of a post type, in authoring order.
	Field struct {
		ID          string    `json:"id"`
		Label       string    `json:"label"`
		Kind        FieldKind `json:"kind"`
		Placeholder string    `json:"placeholder,omitempty"`
	}

	PostType struct {
		ID     PostTypeID `json:"id"`
		Name   string     `json:"name"`
		Fields []Field    `json:"fields"`
	}
)

// registry is the static per-platform schema of post types and their field
// descriptors. The prompt assembler iterates it exhaustively, so entries
// are typed records, never free-form maps.
var registry = map[Platform][]PostType{
	PlatformInstagram: {
		{ID: "ig_reel", Name: "ريلز", Fields: []Field{
			{ID: "hook", Label: "الخطاف الافتتاحي", Kind: FieldText, Placeholder: "أول 3 ثوانٍ"},
			{ID: "scenes", Label: "تسلسل المشاهد", Kind: FieldTextarea},
			{ID: "audio", Label: "الصوت المقترح", Kind: FieldText},
			{ID: "cta", Label: "دعوة لاتخاذ إجراء", Kind: FieldText},
		}},
		{ID: "ig_carousel", Name: "منشور متعدد الصور", Fields: []Field{
			{ID: "slides", Label: "عدد الشرائح", Kind: FieldNumber},
			{ID: "slide_outline", Label: "مخطط الشرائح", Kind: FieldTextarea},
			{ID: "caption_angle", Label: "زاوية التعليق", Kind: FieldText},
		}},
		{ID: "ig_story", Name: "ستوري", Fields: []Field{
			{ID: "frames", Label: "عدد المقاطع", Kind: FieldNumber},
			{ID: "sticker", Label: "عنصر تفاعلي", Kind: FieldText, Placeholder: "استطلاع، سؤال، عد تنازلي"},
		}},
	},
	PlatformX: {
		{ID: "x_post", Name: "تغريدة", Fields: []Field{
			{ID: "text", Label: "النص", Kind: FieldTextarea},
		}},
		{ID: "x_thread", Name: "سلسلة تغريدات", Fields: []Field{
			{ID: "hook", Label: "التغريدة الافتتاحية", Kind: FieldText},
			{ID: "points", Label: "النقاط الرئيسية", Kind: FieldTextarea},
			{ID: "closer", Label: "التغريدة الختامية", Kind: FieldText},
		}},
	},
	PlatformLinkedIn: {
		{ID: "li_post", Name: "منشور نصي", Fields: []Field{
			{ID: "hook", Label: "السطر الافتتاحي", Kind: FieldText},
			{ID: "body", Label: "المحتوى", Kind: FieldTextarea},
			{ID: "cta", Label: "دعوة لاتخاذ إجراء", Kind: FieldText},
		}},
		{ID: "li_article", Name: "مقال", Fields: []Field{
			{ID: "title", Label: "العنوان", Kind: FieldText},
			{ID: "outline", Label: "المخطط", Kind: FieldTextarea},
		}},
	},
	PlatformTikTok: {
		{ID: "tt_video", Name: "فيديو قصير", Fields: []Field{
			{ID: "hook", Label: "الخطاف الافتتاحي", Kind: FieldText},
			{ID: "scenes", Label: "تسلسل المشاهد", Kind: FieldTextarea},
			{ID: "trend", Label: "الترند المرتبط", Kind: FieldText},
		}},
	},
	PlatformYouTube: {
		{ID: "yt_video", Name: "فيديو", Fields: []Field{
			{ID: "title", Label: "العنوان", Kind: FieldText},
			{ID: "outline", Label: "هيكل الفيديو", Kind: FieldTextarea},
			{ID: "thumbnail", Label: "فكرة الصورة المصغرة", Kind: FieldText},
		}},
		{ID: "yt_short", Name: "شورت", Fields: []Field{
			{ID: "hook", Label: "الخطاف الافتتاحي", Kind: FieldText},
			{ID: "scenes", Label: "تسلسل المشاهد", Kind: FieldTextarea},
		}},
	},
	PlatformFacebook: {
		{ID: "fb_post", Name: "منشور", Fields: []Field{
			{ID: "text", Label: "النص", Kind: FieldTextarea},
			{ID: "link", Label: "رابط مرفق", Kind: FieldURL},
		}},
	},
}

// platformOrder fixes iteration order for API listings.
var platformOrder = []Platform{
	PlatformInstagram,
	PlatformX,
	PlatformLinkedIn,
	PlatformTikTok,
	PlatformYouTube,
	PlatformFacebook,
}

// Platforms returns the supported platforms in presentation order.
func Platforms() []Platform {
	out := make([]Platform, len(platformOrder))
	copy(out, platformOrder)
	return out
}

// PostTypesFor returns the post types of a platform in registry order.
func PostTypesFor(p Platform) []PostType {
	return registry[p]
}

// LookupPostType resolves a post type by platform and id.
func LookupPostType(p Platform, id PostTypeID) (PostType, bool) {
	for _, pt := range registry[p] {
		if pt.ID == id {
			return pt, true
		}
	}
	return PostType{}, false
}

// KnownPlatform reports whether p is a supported channel.
func KnownPlatform(p Platform) bool {
	_, ok := platformLabels[p]
	return ok
}
