package schema

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindAnime      Kind = "Anime"
	KindAudio      Kind = "Audio"
	KindLiterature Kind = "Literature"
	KindLiveAction Kind = "Live Action"
	KindPictures   Kind = "Pictures"
	KindSoftware   Kind = "Software"
)

type Variant string

const (
	VariantAnimeMusicVideo      Variant = "Anime Music Video"
	VariantEnglishTranslated    Variant = "English-translated"
	VariantNonEnglishTranslated Variant = "Non-English-translated"
	VariantRaw                  Variant = "Raw"
	VariantLossless             Variant = "Lossless"
	VariantLossy                Variant = "Lossy"
	VariantIdolPromotionalVideo Variant = "Idol/Promotional Video"
	VariantGraphics             Variant = "Graphics"
	VariantPhotos               Variant = "Photos"
	VariantApplications         Variant = "Applications"
	VariantGames                Variant = "Games"
)

// Category is a (kind, variant) pair. Only the pairs listed in CategoryList
// exist on the site.
type Category struct {
	Kind    Kind
	Variant Variant
}

var (
	AnimeMusicVideo             = Category{KindAnime, VariantAnimeMusicVideo}
	AnimeEnglishTranslated      = Category{KindAnime, VariantEnglishTranslated}
	AnimeNonEnglishTranslated   = Category{KindAnime, VariantNonEnglishTranslated}
	AnimeRaw                    = Category{KindAnime, VariantRaw}
	AudioLossless               = Category{KindAudio, VariantLossless}
	AudioLossy                  = Category{KindAudio, VariantLossy}
	LiteratureEnglishTranslated = Category{KindLiterature, VariantEnglishTranslated}
	LiteratureNonEnglish        = Category{KindLiterature, VariantNonEnglishTranslated}
	LiteratureRaw               = Category{KindLiterature, VariantRaw}
	LiveActionEnglishTranslated = Category{KindLiveAction, VariantEnglishTranslated}
	LiveActionIdolPromotional   = Category{KindLiveAction, VariantIdolPromotionalVideo}
	LiveActionNonEnglish        = Category{KindLiveAction, VariantNonEnglishTranslated}
	LiveActionRaw               = Category{KindLiveAction, VariantRaw}
	PicturesGraphics            = Category{KindPictures, VariantGraphics}
	PicturesPhotos              = Category{KindPictures, VariantPhotos}
	SoftwareApplications        = Category{KindSoftware, VariantApplications}
	SoftwareGames               = Category{KindSoftware, VariantGames}
)

// CategoryList holds every known category in the order the site lists them.
// The position inside a kind gives the site id (e.g. "1_2").
var CategoryList = []Category{
	AnimeMusicVideo,
	AnimeEnglishTranslated,
	AnimeNonEnglishTranslated,
	AnimeRaw,
	AudioLossless,
	AudioLossy,
	LiteratureEnglishTranslated,
	LiteratureNonEnglish,
	LiteratureRaw,
	LiveActionEnglishTranslated,
	LiveActionIdolPromotional,
	LiveActionNonEnglish,
	LiveActionRaw,
	PicturesGraphics,
	PicturesPhotos,
	SoftwareApplications,
	SoftwareGames,
}

var kindList = []Kind{
	KindAnime,
	KindAudio,
	KindLiterature,
	KindLiveAction,
	KindPictures,
	KindSoftware,
}

var categoriesByLabel = func() map[string]Category {
	m := make(map[string]Category, len(CategoryList))
	for _, c := range CategoryList {
		m[c.Label()] = c
	}
	return m
}()

// Label returns the human readable name used by the site, e.g.
// "Anime - English-translated".
func (c Category) Label() string {
	return fmt.Sprintf("%s - %s", c.Kind, c.Variant)
}

func (c Category) String() string {
	return c.Label()
}

// ID returns the site's "<kind>_<variant>" identifier, e.g. "1_2".
// It returns an empty string for unknown categories.
func (c Category) ID() string {
	kind := 0
	for i, k := range kindList {
		if k == c.Kind {
			kind = i + 1
			break
		}
	}
	if kind == 0 {
		return ""
	}

	variant := 0
	for _, known := range CategoryList {
		if known.Kind != c.Kind {
			continue
		}
		variant++
		if known == c {
			return fmt.Sprintf("%d_%d", kind, variant)
		}
	}
	return ""
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	_, ok := categoriesByLabel[c.Label()]
	return ok
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("unknown category: %q", c.Label())
	}
	return []byte(c.Label()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := GetCategoryFromLabel(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// GetCategoryFromLabel maps the site's "Kind - Variant" label to a Category.
// Labels outside the known table are an error, there is no fallback.
func GetCategoryFromLabel(label string) (Category, error) {
	c, ok := categoriesByLabel[label]
	if !ok {
		return Category{}, fmt.Errorf("unknown category label: %q", label)
	}
	return c, nil
}

// MatchCategory reports whether c matches filter. The filter can be a full
// label, a kind name, or a site id ("1_2" or the kind-wide "1_0").
// Matching is case-insensitive.
func MatchCategory(c Category, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" || filter == "0_0" {
		return true
	}
	if strings.EqualFold(filter, c.Label()) || strings.EqualFold(filter, string(c.Kind)) {
		return true
	}
	// "liveaction" and "live-action" are accepted for "Live Action"
	normalized := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(filter))
	if normalized == strings.ReplaceAll(strings.ToLower(string(c.Kind)), " ", "") {
		return true
	}

	id := c.ID()
	if id == "" {
		return false
	}
	if filter == id {
		return true
	}
	kindID, _, _ := strings.Cut(id, "_")
	return filter == kindID+"_0"
}
