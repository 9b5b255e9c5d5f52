package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	tripdomain "explorehub-backend/internal/trip/domain"

	"github.com/google/uuid"
)

type memoryFavoriteFlightRepository struct {
	mu      sync.RWMutex
	seq     uint64
	flights map[string]storedFlight
}

// storedFlight keeps insertion order so flights saved in one request list in
// the order they were sent.
type storedFlight struct {
	seq    uint64
	flight tripdomain.FavoriteFlight
}

// NewMemoryFavoriteFlightRepository creates an empty in-memory FavoriteFlightRepository
func NewMemoryFavoriteFlightRepository() FavoriteFlightRepository {
	return &memoryFavoriteFlightRepository{
		flights: make(map[string]storedFlight),
	}
}

func (r *memoryFavoriteFlightRepository) Create(_ context.Context, flight *tripdomain.FavoriteFlight) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	flight.ID = uuid.New().String()
	flight.CreatedAt = time.Now().UTC()
	r.seq++
	r.flights[flight.ID] = storedFlight{seq: r.seq, flight: *flight}
	return nil
}

func (r *memoryFavoriteFlightRepository) FindByUserID(_ context.Context, userID string) ([]*tripdomain.FavoriteFlight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := make([]storedFlight, 0)
	for _, s := range r.flights {
		if s.flight.UserID == userID {
			stored = append(stored, s)
		}
	}
	sort.Slice(stored, func(i, j int) bool { return stored[i].seq < stored[j].seq })

	flights := make([]*tripdomain.FavoriteFlight, 0, len(stored))
	for i := range stored {
		flights = append(flights, &stored[i].flight)
	}
	return flights, nil
}

func (r *memoryFavoriteFlightRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.flights[id]
	if !ok || s.flight.UserID != userID {
		return tripdomain.ErrNotFound
	}
	delete(r.flights, id)
	return nil
}

func (r *memoryFavoriteFlightRepository) EnsureIndexes(context.Context) error { return nil }
