// Package cloudsync replaces the local inventory with a remote save.
package cloudsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ponydex/internal/catalog"
	"ponydex/internal/inventory"
	"ponydex/internal/saveapi"
)

var (
	ErrEmptyFriendCode   = errors.New("friend code is empty")
	ErrInvalidFriendCode = errors.New("friend code contains path characters")
)

type Fetcher interface {
	GetSave(ctx context.Context, friendCode string) (*saveapi.Save, error)
}

type Importer struct {
	fetcher   Fetcher
	inventory *inventory.Manager
	logger    *slog.Logger
}

func NewImporter(fetcher Fetcher, inv *inventory.Manager, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{fetcher: fetcher, inventory: inv, logger: logger}
}

type Result struct {
	FriendCode string
	PlayerInfo inventory.PlayerInfo
	Ponies     int
	Shops      int
	// Skipped lists remote ids the catalog does not know.
	Skipped []string
	// Clamped lists ponies whose remote level was outside 0..MaxLevel.
	Clamped []string
}

func NormalizeFriendCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Import fetches the save for friendCode and, only if that succeeds,
// replaces the whole local inventory with it. Local-only ownership is lost.
func (im *Importer) Import(ctx context.Context, friendCode string) (*Result, error) {
	code := NormalizeFriendCode(friendCode)
	if code == "" {
		return nil, ErrEmptyFriendCode
	}
	if strings.ContainsAny(code, "/?#") || code == "." || code == ".." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFriendCode, code)
	}

	// Fetch errors are returned as is so a rejection reads as the server's
	// message.
	save, err := im.fetcher.GetSave(ctx, code)
	if err != nil {
		return nil, err
	}

	result := &Result{
		FriendCode: code,
		PlayerInfo: inventory.PlayerInfo{
			JoinDate:      save.PlayerInfo.JoinDate,
			TotalPlaytime: save.PlayerInfo.TotalPlaytime,
		},
	}

	err = im.inventory.Update(ctx, func(b *inventory.Batch) error {
		b.Reset()
		b.SetPlayerInfo(result.PlayerInfo)

		for _, pony := range save.Inventory.Ponies {
			if !known(b, pony.ID, catalog.CategoryPonies) {
				result.Skipped = append(result.Skipped, pony.ID)
				continue
			}
			level := pony.Level
			if level < 0 || level > inventory.MaxLevel {
				level = min(max(level, 0), inventory.MaxLevel)
				result.Clamped = append(result.Clamped, pony.ID)
			}
			if err := b.SetOwned(pony.ID, true, &level); err != nil {
				return err
			}
			result.Ponies++
		}

		for _, id := range save.Inventory.Shops {
			if !known(b, id, catalog.CategoryShops) {
				result.Skipped = append(result.Skipped, id)
				continue
			}
			if err := b.SetOwned(id, true, nil); err != nil {
				return err
			}
			result.Shops++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", code, err)
	}

	im.logger.Info("imported save",
		"friend_code", code,
		"ponies", result.Ponies,
		"shops", result.Shops,
		"skipped", len(result.Skipped),
		"clamped", len(result.Clamped),
	)
	return result, nil
}

func known(b *inventory.Batch, id, category string) bool {
	e := b.Entity(id)
	return e != nil && e.Category == category
}
