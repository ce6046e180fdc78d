package catalog

import (
	"slices"

	"ponydex/internal/names"
)

const (
	CategoryPonies = "ponies"
	CategoryHouses = "houses"
	CategoryShops  = "shops"
	CategoryDecor  = "decor"
)

const fallbackLanguage = "english"

type Entity struct {
	ID          string
	Category    string
	Index       int
	Order       int
	Name        map[string]string
	AltNames    map[string][]string
	Description map[string]string
	Tags        []string
	Location    string
	Image       Image
	Attributes  Attributes
}

type Image struct {
	Full     string
	Portrait string
}

// Attributes holds the category-specific part of an entity. The concrete
// type is one of *PonyAttributes, *HouseAttributes, *ShopAttributes,
// *DecorAttributes or *GenericAttributes.
type Attributes interface {
	attributes()
}

type PonyAttributes struct {
	House       string
	MaxLevel    bool
	Changeling  Changeling
	Group       []string
	GroupMaster bool
	Pro         string
	UnlockLevel int
	ArrivalXP   int
	Minigame    Minigame
	Rewards     []Reward
}

type Changeling struct {
	IsChangeling bool
	ID           string
}

type Minigame struct {
	Cooldown        int
	SkipCost        int
	CanPlayMinecart bool
}

type Reward struct {
	Item string
}

type Build struct {
	Time     int
	SkipCost int
	XP       int
}

type HouseAttributes struct {
	GridSize  int
	Build     Build
	Residents []string
	Visitors  []string
}

type ShopAttributes struct {
	GridSize    int
	UnlockLevel int
	Build       Build
	Product     Product
	CanSell     bool
	Residents   []string
	Visitors    []string
}

type Product struct {
	Name     map[string]string
	Time     int
	SkipCost int
	XP       int
	Bits     int
	Gems     int
}

func (p Product) NameFor(lang string) string {
	return translate(p.Name, lang)
}

type DecorAttributes struct {
	XP           int
	UnlockLevel  int
	GridSize     int
	Limit        int
	FusionPoints int
	Pro          DecorPro
}

type DecorPro struct {
	IsPro bool
	Size  int
	Time  int
	Bits  int
}

// GenericAttributes keeps the raw JSON of entities in categories without a
// dedicated shape.
type GenericAttributes struct {
	Raw string
}

func (*PonyAttributes) attributes()    {}
func (*HouseAttributes) attributes()   {}
func (*ShopAttributes) attributes()    {}
func (*DecorAttributes) attributes()   {}
func (*GenericAttributes) attributes() {}

func (e *Entity) Pony() (*PonyAttributes, bool) {
	a, ok := e.Attributes.(*PonyAttributes)
	return a, ok
}

func (e *Entity) House() (*HouseAttributes, bool) {
	a, ok := e.Attributes.(*HouseAttributes)
	return a, ok
}

func (e *Entity) Shop() (*ShopAttributes, bool) {
	a, ok := e.Attributes.(*ShopAttributes)
	return a, ok
}

func (e *Entity) Decor() (*DecorAttributes, bool) {
	a, ok := e.Attributes.(*DecorAttributes)
	return a, ok
}

func (e *Entity) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// IsVariant reports whether the entity is a palette swap of another pony.
// Its canonical identity belongs to the pony it points at.
func (e *Entity) IsVariant() bool {
	pony, ok := e.Pony()
	return ok && pony.Changeling.ID != ""
}

// MaxLevel reports whether the entity always sits at the maximum progress level.
func (e *Entity) MaxLevel() bool {
	pony, ok := e.Pony()
	return ok && pony.MaxLevel
}

// Leveled reports whether inventory records for the entity carry a progress level.
func (e *Entity) Leveled() bool {
	return e.Category == CategoryPonies
}

// NameFor returns the display name in lang, falling back to english.
func (e *Entity) NameFor(lang string) string {
	return names.Fix(translate(e.Name, lang))
}

func (e *Entity) AltNamesFor(lang string) []string {
	alts := e.AltNames[lang]
	out := make([]string, 0, len(alts))
	for _, alt := range alts {
		out = append(out, names.Fix(alt))
	}
	return out
}

func (e *Entity) DescriptionFor(lang string) string {
	return translate(e.Description, lang)
}

func translate(values map[string]string, lang string) string {
	if value, ok := values[lang]; ok {
		return value
	}
	return values[fallbackLanguage]
}
