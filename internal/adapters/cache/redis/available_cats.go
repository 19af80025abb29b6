package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cat-rescue/internal/domain/cats"

	"github.com/go-redis/redis/v8"
)

const availableKey = "cat-rescue:cats:available"

// AvailableCats implementa cats.AvailableCache sobre un único key JSON.
type AvailableCats struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailableCats(client *redis.Client, ttl time.Duration) *AvailableCats {
	return &AvailableCats{client: client, ttl: ttl}
}

// Connect crea el cliente y verifica la conexión con PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

type cachedCat struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Age         *int        `json:"age,omitempty"`
	Gender      string      `json:"gender,omitempty"`
	Description string      `json:"description,omitempty"`
	BreedID     string      `json:"breed_id,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
	Address     string      `json:"address,omitempty"`
	Latitude    *float64    `json:"latitude,omitempty"`
	Longitude   *float64    `json:"longitude,omitempty"`
	Status      cats.Status `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (c *AvailableCats) GetAvailable(ctx context.Context) ([]cats.Cat, bool, error) {
	raw, err := c.client.Get(ctx, availableKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var stored []cachedCat
	if err := json.Unmarshal(raw, &stored); err != nil {
		// entrada corrupta: se trata como miss y se pisa en el próximo Set
		return nil, false, nil
	}

	out := make([]cats.Cat, 0, len(stored))
	for _, s := range stored {
		out = append(out, cats.Cat{
			ID:          s.ID,
			Name:        s.Name,
			Age:         s.Age,
			Gender:      s.Gender,
			Description: s.Description,
			BreedID:     s.BreedID,
			ImageURL:    s.ImageURL,
			Address:     s.Address,
			Latitude:    s.Latitude,
			Longitude:   s.Longitude,
			Status:      s.Status,
			CreatedAt:   s.CreatedAt,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	return out, true, nil
}

func (c *AvailableCats) SetAvailable(ctx context.Context, items []cats.Cat) error {
	stored := make([]cachedCat, 0, len(items))
	for _, it := range items {
		stored = append(stored, cachedCat{
			ID:          it.ID,
			Name:        it.Name,
			Age:         it.Age,
			Gender:      it.Gender,
			Description: it.Description,
			BreedID:     it.BreedID,
			ImageURL:    it.ImageURL,
			Address:     it.Address,
			Latitude:    it.Latitude,
			Longitude:   it.Longitude,
			Status:      it.Status,
			CreatedAt:   it.CreatedAt,
			UpdatedAt:   it.UpdatedAt,
		})
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, availableKey, raw, c.ttl).Err()
}

func (c *AvailableCats) InvalidateAvailable(ctx context.Context) error {
	return c.client.Del(ctx, availableKey).Err()
}
