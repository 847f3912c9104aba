package cache

import (
	"context"
	"encoding/json"
	"time"

	"neroli_back_end/internal/models"

	"github.com/redis/go-redis/v9"
)

const cartTTL = 30 * 24 * time.Hour

// CartStore est le panier serveur, cloisonné par utilisateur.
// Chaque opération retourne la liste complète résultante.
type CartStore interface {
	List(ctx context.Context, userID string) ([]models.CartItem, error)
	Upsert(ctx context.Context, userID string, item models.CartItem) ([]models.CartItem, error)
	SetQuantity(ctx context.Context, userID, productID string, quantity int) ([]models.CartItem, error)
	Remove(ctx context.Context, userID, productID string) ([]models.CartItem, error)
	Clear(ctx context.Context, userID string) error
}

// redisCartStore stocke chaque panier en blob JSON sous "cart:<userID>" (30 jours),
// et notifie les clients websocket via pub/sub sur le même canal.
type redisCartStore struct {
	rdb *redis.Client
}

func NewRedisCartStore(rdb *redis.Client) CartStore {
	return &redisCartStore{rdb: rdb}
}

func cartKey(userID string) string { return "cart:" + userID }

func (s *redisCartStore) load(ctx context.Context, userID string) ([]models.CartItem, error) {
	data, err := s.rdb.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil || data == "" {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cart []models.CartItem
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *redisCartStore) save(ctx context.Context, userID string, cart []models.CartItem) error {
	jsonData, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, cartKey(userID), jsonData, cartTTL).Err(); err != nil {
		return err
	}
	s.rdb.Publish(ctx, cartKey(userID), "updated")
	return nil
}

func (s *redisCartStore) List(ctx context.Context, userID string) ([]models.CartItem, error) {
	return s.load(ctx, userID)
}

func (s *redisCartStore) Upsert(ctx context.Context, userID string, item models.CartItem) ([]models.CartItem, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart = upsertItem(cart, item)
	if err := s.save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *redisCartStore) SetQuantity(ctx context.Context, userID, productID string, quantity int) ([]models.CartItem, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart = setItemQuantity(cart, productID, quantity)
	if err := s.save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *redisCartStore) Remove(ctx context.Context, userID, productID string) ([]models.CartItem, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart = removeItem(cart, productID)
	if err := s.save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *redisCartStore) Clear(ctx context.Context, userID string) error {
	if err := s.rdb.Del(ctx, cartKey(userID)).Err(); err != nil {
		return err
	}
	s.rdb.Publish(ctx, cartKey(userID), "cleared")
	return nil
}

// --- Mutations pures, partagées par les deux implémentations ---

// upsertItem incrémente la quantité si le produit est déjà présent,
// sinon ajoute la ligne. Quantité absente → 1.
func upsertItem(cart []models.CartItem, item models.CartItem) []models.CartItem {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	for i := range cart {
		if cart[i].ProductID == item.ProductID {
			cart[i].Quantity += item.Quantity
			return cart
		}
	}
	return append(cart, item)
}

// setItemQuantity remplace la quantité du produit visé ; id inconnu → no-op.
func setItemQuantity(cart []models.CartItem, productID string, quantity int) []models.CartItem {
	for i := range cart {
		if cart[i].ProductID == productID {
			cart[i].Quantity = quantity
			break
		}
	}
	return cart
}

func removeItem(cart []models.CartItem, productID string) []models.CartItem {
	newCart := []models.CartItem{}
	for _, item := range cart {
		if item.ProductID != productID {
			newCart = append(newCart, item)
		}
	}
	return newCart
}
