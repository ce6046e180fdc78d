package inventory

import (
	"ponydex/internal/catalog"
)

type Stats struct {
	Ponies         int     `json:"ponies"`
	PoniesTotal    int     `json:"ponies_total"`
	MaxLevelPonies int     `json:"max_level_ponies"`
	Houses         int     `json:"houses"`
	HousesTotal    int     `json:"houses_total"`
	Shops          int     `json:"shops"`
	ShopsTotal     int     `json:"shops_total"`
	TotalPlaytime  float64 `json:"total_playtime"`
	JoinDate       string  `json:"join_date,omitempty"`
}

func (m *Manager) Stats() Stats {
	ponies := m.OwnedIDs(catalog.CategoryPonies)
	info := m.PlayerInfo()

	s := Stats{
		Ponies:        len(ponies),
		PoniesTotal:   m.total(catalog.CategoryPonies),
		Houses:        len(m.DerivedHouses()),
		HousesTotal:   m.total(catalog.CategoryHouses),
		Shops:         len(m.OwnedIDs(catalog.CategoryShops)),
		ShopsTotal:    m.total(catalog.CategoryShops),
		TotalPlaytime: info.TotalPlaytime,
		JoinDate:      info.JoinDate,
	}
	for _, id := range ponies {
		if rec, ok := m.GetInfo(id); ok && rec.Level == MaxLevel {
			s.MaxLevelPonies++
		}
	}
	return s
}

func (m *Manager) total(category string) int {
	ids, err := m.catalog.IDs(category)
	if err != nil {
		return 0
	}
	return len(ids)
}
