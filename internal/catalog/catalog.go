package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ponydex/internal/names"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownLanguage = errors.New("unknown language")
)

type Language struct {
	Key  string
	Name string
	Code string
}

type Category struct {
	Key  string
	Name map[string]string
	ids  []string
}

// Catalog is the immutable game data plus a lazily built, per-language
// search index. It is safe for concurrent use.
type Catalog struct {
	languages     []Language
	categories    []*Category
	categoryIndex map[string]*Category
	entities      map[string]*Entity
	quests        map[string]map[string]string
	locations     map[string]map[string]string

	nameOptions names.Options
	logger      *slog.Logger

	mu       sync.RWMutex
	language string
	index    *searchIndex
}

type Option func(*Catalog)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithLanguage(lang string) Option {
	return func(c *Catalog) {
		if lang != "" {
			c.language = lang
		}
	}
}

func WithNameOptions(opts names.Options) Option {
	return func(c *Catalog) {
		c.nameOptions = opts
	}
}

func newCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		categoryIndex: make(map[string]*Category),
		entities:      make(map[string]*Entity),
		nameOptions:   names.DefaultOptions(),
		logger:        slog.Default(),
		language:      fallbackLanguage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the entity with the given id. An empty category matches any
// category; a non-empty one that does not match yields nil.
func (c *Catalog) Get(id, category string) *Entity {
	e, ok := c.entities[id]
	if !ok {
		return nil
	}
	if category != "" && e.Category != category {
		return nil
	}
	return e
}

func (c *Catalog) IDs(category string) ([]string, error) {
	cat, ok := c.categoryIndex[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return append([]string(nil), cat.ids...), nil
}

func (c *Catalog) HasCategory(category string) bool {
	_, ok := c.categoryIndex[category]
	return ok
}

func (c *Catalog) Categories() []*Category {
	return append([]*Category(nil), c.categories...)
}

func (c *Catalog) Languages() []Language {
	return append([]Language(nil), c.languages...)
}

func (c *Catalog) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.language
}

// LanguageCode returns the BCP 47 code of the active language, "en" when the
// catalog does not declare one.
func (c *Catalog) LanguageCode() string {
	lang := c.Language()
	for _, l := range c.languages {
		if l.Key == lang && l.Code != "" {
			return l.Code
		}
	}
	return "en"
}

func (c *Catalog) SetLanguage(lang string) error {
	if len(c.languages) > 0 && !c.knownLanguage(lang) {
		return fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.language != lang {
		c.language = lang
		c.index = nil
	}
	return nil
}

func (c *Catalog) knownLanguage(lang string) bool {
	for _, l := range c.languages {
		if l.Key == lang {
			return true
		}
	}
	return false
}

func (c *Catalog) NameOptions() names.Options {
	return c.nameOptions
}

func (c *Catalog) DisplayName(e *Entity) string {
	return e.NameFor(c.Language())
}

func (c *Catalog) CategoryName(key string) string {
	cat, ok := c.categoryIndex[key]
	if !ok {
		return key
	}
	if name := translate(cat.Name, c.Language()); name != "" {
		return name
	}
	return key
}

// QuestName returns the localized name of a group quest, "" when unknown.
func (c *Catalog) QuestName(id string) string {
	return translate(c.quests[id], c.Language())
}

func (c *Catalog) HasQuest(id string) bool {
	_, ok := c.quests[id]
	return ok
}

func (c *Catalog) HasLocation(key string) bool {
	_, ok := c.locations[key]
	return ok
}

// LocationName returns the translated, title-cased name of a location key.
func (c *Catalog) LocationName(key string) string {
	name := translate(c.locations[key], c.Language())
	if name == "" {
		name = strings.ReplaceAll(key, "_", " ")
	}
	return cases.Title(c.languageTag()).String(name)
}

func (c *Catalog) languageTag() language.Tag {
	tag, err := language.Parse(c.LanguageCode())
	if err != nil {
		return language.English
	}
	return tag
}
