package shopper

import (
	"sync"

	"go.uber.org/zap"
)

const favoritesKey = "favorites"

// Favorites is the shopper's set of favorite product ids. Only
// membership is stored; there is no denormalized product data.
type Favorites struct {
	mu      sync.Mutex
	storage Storage
	logger  *zap.Logger
	ids     []string
}

// NewFavorites hydrates the favorite set from storage.
func NewFavorites(storage Storage, logger *zap.Logger) *Favorites {
	f := &Favorites{storage: storage, logger: logger}
	loadState(storage, favoritesKey, &f.ids, logger)
	if f.ids == nil {
		f.ids = []string{}
	}
	return f
}

// Toggle adds the id if absent and removes it if present, and reports
// whether the product is a favorite afterwards. Toggling twice always
// restores the original state.
func (f *Favorites) Toggle(productID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, id := range f.ids {
		if id == productID {
			f.ids = append(f.ids[:i], f.ids[i+1:]...)
			f.save()
			return false
		}
	}

	f.ids = append(f.ids, productID)
	f.save()
	return true
}

// IsFavorite reports membership.
func (f *Favorites) IsFavorite(productID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, id := range f.ids {
		if id == productID {
			return true
		}
	}
	return false
}

// Count returns the number of favorites.
func (f *Favorites) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ids)
}

// IDs returns the favorite product ids in the order they were added.
func (f *Favorites) IDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ids...)
}

func (f *Favorites) save() {
	saveState(f.storage, favoritesKey, f.ids, f.logger)
}
