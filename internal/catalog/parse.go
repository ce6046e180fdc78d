package catalog

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

func Load(path string, opts ...Option) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	cat, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse builds a catalog from game-data JSON. Categories and entities keep
// the order in which they appear in the document.
func Parse(data []byte, opts ...Option) (*Catalog, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing catalog: invalid JSON")
	}
	root := gjson.ParseBytes(data)

	categories := root.Get("categories")
	if !categories.IsObject() {
		return nil, fmt.Errorf("parsing catalog: missing categories")
	}

	c := newCatalog(opts...)
	c.languages = parseLanguages(root.Get("languages"))
	c.quests = parseQuests(root.Get("group_quests.quests"))
	c.locations = parseLocations(root.Get("locations"))

	var parseErr error
	order := 0
	categories.ForEach(func(key, value gjson.Result) bool {
		category := &Category{
			Key:  key.String(),
			Name: stringMap(value.Get("name")),
		}

		items := value.Get("objects")
		if !items.Exists() {
			items = value.Get("items")
		}

		position := 0
		items.ForEach(func(id, item gjson.Result) bool {
			e := parseEntity(category.Key, id.String(), item, position)
			e.Order = order
			if existing, ok := c.entities[e.ID]; ok {
				parseErr = fmt.Errorf("parsing catalog: duplicate id %q in %s and %s", e.ID, existing.Category, category.Key)
				return false
			}
			c.entities[e.ID] = e
			category.ids = append(category.ids, e.ID)
			order++
			position++
			return true
		})
		if parseErr != nil {
			return false
		}

		c.categories = append(c.categories, category)
		c.categoryIndex[category.Key] = category
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return c, nil
}

func parseEntity(category, id string, item gjson.Result, position int) *Entity {
	e := &Entity{
		ID:          id,
		Category:    category,
		Index:       position,
		Name:        stringMap(item.Get("name")),
		AltNames:    stringListMap(item.Get("alt_name")),
		Description: stringMap(item.Get("description")),
		Tags:        stringSlice(item.Get("tags")),
		Location:    item.Get("location").String(),
		Image:       parseImage(item.Get("image")),
	}
	if index := item.Get("index"); index.Exists() {
		e.Index = int(index.Int())
	}

	switch category {
	case CategoryPonies:
		e.Attributes = parsePony(item)
	case CategoryHouses:
		e.Attributes = &HouseAttributes{
			GridSize:  int(item.Get("grid_size").Int()),
			Build:     parseBuild(item.Get("build")),
			Residents: stringSlice(item.Get("residents")),
			Visitors:  stringSlice(item.Get("visitors")),
		}
	case CategoryShops:
		product := item.Get("product")
		e.Attributes = &ShopAttributes{
			GridSize:    int(item.Get("grid_size").Int()),
			UnlockLevel: int(item.Get("unlock_level").Int()),
			Build:       parseBuild(item.Get("build")),
			Product: Product{
				Name:     stringMap(product.Get("name")),
				Time:     int(product.Get("time").Int()),
				SkipCost: int(product.Get("skip_cost").Int()),
				XP:       int(product.Get("xp").Int()),
				Bits:     int(product.Get("bits").Int()),
				Gems:     int(product.Get("gems").Int()),
			},
			CanSell:   item.Get("can_sell").Bool(),
			Residents: stringSlice(item.Get("residents")),
			Visitors:  stringSlice(item.Get("visitors")),
		}
	case CategoryDecor:
		pro := item.Get("pro")
		e.Attributes = &DecorAttributes{
			XP:           int(item.Get("xp").Int()),
			UnlockLevel:  int(item.Get("unlock_level").Int()),
			GridSize:     int(item.Get("grid_size").Int()),
			Limit:        int(item.Get("limit").Int()),
			FusionPoints: int(item.Get("fusion_points").Int()),
			Pro: DecorPro{
				IsPro: pro.Get("is_pro").Bool(),
				Size:  int(pro.Get("size").Int()),
				Time:  int(pro.Get("time").Int()),
				Bits:  int(pro.Get("bits").Int()),
			},
		}
	default:
		e.Attributes = &GenericAttributes{Raw: item.Raw}
	}

	return e
}

func parsePony(item gjson.Result) *PonyAttributes {
	minigame := item.Get("minigame")
	changeling := item.Get("changeling")

	pony := &PonyAttributes{
		House:    item.Get("house").String(),
		MaxLevel: item.Get("max_level").Bool(),
		Changeling: Changeling{
			IsChangeling: changeling.Get("is_changeling").Bool(),
			ID:           changeling.Get("id").String(),
		},
		Group:       stringSlice(item.Get("group")),
		GroupMaster: item.Get("group_master").Bool(),
		UnlockLevel: int(item.Get("unlock_level").Int()),
		ArrivalXP:   int(item.Get("arrival_xp").Int()),
		Minigame: Minigame{
			Cooldown:        int(minigame.Get("cooldown").Int()),
			SkipCost:        int(minigame.Get("skip_cost").Int()),
			CanPlayMinecart: minigame.Get("can_play_minecart").Bool(),
		},
	}
	if pro := item.Get("pro"); pro.Exists() && pro.Type != gjson.Null {
		pony.Pro = pro.String()
	}
	item.Get("rewards").ForEach(func(_, reward gjson.Result) bool {
		pony.Rewards = append(pony.Rewards, Reward{Item: reward.Get("item").String()})
		return true
	})
	return pony
}

func parseBuild(r gjson.Result) Build {
	return Build{
		Time:     int(r.Get("time").Int()),
		SkipCost: int(r.Get("skip_cost").Int()),
		XP:       int(r.Get("xp").Int()),
	}
}

func parseImage(r gjson.Result) Image {
	if r.IsObject() {
		return Image{
			Full:     r.Get("full").String(),
			Portrait: r.Get("portrait").String(),
		}
	}
	return Image{Full: r.String()}
}

func parseLanguages(r gjson.Result) []Language {
	var languages []Language
	r.ForEach(func(key, value gjson.Result) bool {
		languages = append(languages, Language{
			Key:  key.String(),
			Name: value.Get("name").String(),
			Code: value.Get("code").String(),
		})
		return true
	})
	return languages
}

func parseQuests(r gjson.Result) map[string]map[string]string {
	quests := make(map[string]map[string]string)
	r.ForEach(func(key, value gjson.Result) bool {
		quests[key.String()] = stringMap(value.Get("name"))
		return true
	})
	return quests
}

func parseLocations(r gjson.Result) map[string]map[string]string {
	locations := make(map[string]map[string]string)
	r.ForEach(func(key, value gjson.Result) bool {
		if value.IsObject() {
			locations[key.String()] = stringMap(value)
		} else {
			locations[key.String()] = map[string]string{fallbackLanguage: value.String()}
		}
		return true
	})
	return locations
}

func stringMap(r gjson.Result) map[string]string {
	out := make(map[string]string)
	if !r.IsObject() {
		if r.Type == gjson.String {
			out[fallbackLanguage] = r.String()
		}
		return out
	}
	r.ForEach(func(key, value gjson.Result) bool {
		out[key.String()] = value.String()
		return true
	})
	return out
}

func stringListMap(r gjson.Result) map[string][]string {
	out := make(map[string][]string)
	r.ForEach(func(key, value gjson.Result) bool {
		out[key.String()] = stringSlice(value)
		return true
	})
	return out
}

func stringSlice(r gjson.Result) []string {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	if !r.IsArray() {
		return []string{r.String()}
	}
	var out []string
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}
