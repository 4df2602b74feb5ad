package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/models"
)

const (
	sessionHeader   = "X-Session-ID"
	maxLineQuantity = 99
)

// APIError is a 4xx answer from the cart API. It is never masked by the
// local fallback.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cart api: status=%d: %s", e.StatusCode, e.Message)
}

// Item is what the client knows about a product when adding it to the cart.
// Name and Price only feed the local copy; the server prices lines itself.
type Item struct {
	ProductID uuid.UUID
	Name      string
	Slug      string
	Image     string
	Price     float64
	Quantity  int
	Size      string
	Color     string
}

// CartState is a cart plus whether it came from the local fallback.
type CartState struct {
	Cart     *models.Cart
	Degraded bool
}

// CartClient talks to the cart API on behalf of one browser-like session.
// Mutations go to the server first; on a network error or 5xx the same
// mutation is applied to the local copy and no error is returned.
type CartClient struct {
	baseURL   string
	client    *http.Client
	store     LocalStore
	logger    *zap.Logger
	sessionID string

	mu    sync.Mutex
	token string
}

// NewCartClient resolves the session id from store, creating and saving one
// on first use.
func NewCartClient(baseURL string, httpClient *http.Client, store LocalStore, logger *zap.Logger) (*CartClient, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sessionID, err := store.SessionID()
	if err != nil {
		return nil, fmt.Errorf("load session id: %w", err)
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
		if err := store.SaveSessionID(sessionID); err != nil {
			return nil, fmt.Errorf("save session id: %w", err)
		}
	}

	return &CartClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    httpClient,
		store:     store,
		logger:    logger,
		sessionID: sessionID,
	}, nil
}

// SessionID returns the guest session id sent with every request.
func (c *CartClient) SessionID() string {
	return c.sessionID
}

// SetToken attaches a bearer token; the server then addresses the user's
// cart. The guest cart is not merged into it.
func (c *CartClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *CartClient) GetCart(ctx context.Context) (*CartState, error) {
	return c.call(ctx, http.MethodGet, "/api/cart", nil, func(cart *models.Cart) {})
}

func (c *CartClient) AddItem(ctx context.Context, item Item) (*CartState, error) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	body := map[string]interface{}{
		"product_id": item.ProductID.String(),
		"quantity":   item.Quantity,
		"size":       item.Size,
		"color":      item.Color,
	}
	return c.call(ctx, http.MethodPost, "/api/cart/items", body, func(cart *models.Cart) {
		addLocal(cart, item)
	})
}

// UpdateItem sets a line's quantity; zero or less removes it.
func (c *CartClient) UpdateItem(ctx context.Context, itemID uuid.UUID, quantity int) (*CartState, error) {
	body := map[string]int{"quantity": quantity}
	return c.call(ctx, http.MethodPut, "/api/cart/items/"+itemID.String(), body, func(cart *models.Cart) {
		if quantity <= 0 {
			removeLocal(cart, itemID)
			return
		}
		for i := range cart.Items {
			if cart.Items[i].ID == itemID {
				cart.Items[i].Quantity = min(quantity, maxLineQuantity)
			}
		}
	})
}

func (c *CartClient) RemoveItem(ctx context.Context, itemID uuid.UUID) (*CartState, error) {
	return c.call(ctx, http.MethodDelete, "/api/cart/items/"+itemID.String(), nil, func(cart *models.Cart) {
		removeLocal(cart, itemID)
	})
}

// ClearCart empties the cart, e.g. after the server acknowledged an order.
func (c *CartClient) ClearCart(ctx context.Context) (*CartState, error) {
	return c.call(ctx, http.MethodDelete, "/api/cart", nil, func(cart *models.Cart) {
		cart.Items = nil
	})
}

// call performs the request and keeps the local copy in step with the
// server. fallback applies the same mutation locally when the server is
// unavailable.
func (c *CartClient) call(ctx context.Context, method, path string, body interface{}, fallback func(*models.Cart)) (*CartState, error) {
	cart, err := c.do(ctx, method, path, body)
	if err == nil {
		if cart == nil {
			cart = &models.Cart{Items: []models.CartLine{}}
		}
		if err := c.store.SaveCart(cart); err != nil {
			c.logger.Warn("Failed to save local cart", zap.Error(err))
		}
		return &CartState{Cart: cart}, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return nil, err
	}

	c.logger.Warn("Cart API unavailable, using local cart",
		zap.String("method", method), zap.String("path", path), zap.Error(err))

	local, loadErr := c.store.LoadCart()
	if loadErr != nil {
		return nil, fmt.Errorf("load local cart: %w", loadErr)
	}
	if local == nil {
		local = &models.Cart{}
	}
	fallback(local)
	recompute(local)
	if err := c.store.SaveCart(local); err != nil {
		return nil, fmt.Errorf("save local cart: %w", err)
	}
	return &CartState{Cart: local, Degraded: true}, nil
}

// do returns an *APIError for 4xx and a plain error for transport failures
// and 5xx.
func (c *CartClient) do(ctx context.Context, method, path string, body interface{}) (*models.Cart, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(sessionHeader, c.sessionID)
	c.mu.Lock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.Unlock()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("upstream error: status=%d body=%s", resp.StatusCode, string(raw))
	}
	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &e)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	// An update to zero answers {"removed": true, "cart": {...}} and a clear
	// answers with a message only.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if nested, ok := fields["cart"]; ok {
		raw = nested
	} else if _, ok := fields["items"]; !ok {
		return nil, nil
	}
	var cart models.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartLine{}
	}
	return &cart, nil
}

func addLocal(cart *models.Cart, item Item) {
	for i := range cart.Items {
		l := &cart.Items[i]
		if l.ProductID == item.ProductID && l.Size == item.Size && l.Color == item.Color {
			l.Quantity = min(l.Quantity+item.Quantity, maxLineQuantity)
			return
		}
	}
	cart.Items = append(cart.Items, models.CartLine{
		ID:        uuid.New(),
		ProductID: item.ProductID,
		Name:      item.Name,
		Slug:      item.Slug,
		Image:     item.Image,
		Price:     item.Price,
		Quantity:  min(item.Quantity, maxLineQuantity),
		Size:      item.Size,
		Color:     item.Color,
	})
}

func removeLocal(cart *models.Cart, itemID uuid.UUID) {
	kept := cart.Items[:0]
	for _, l := range cart.Items {
		if l.ID != itemID {
			kept = append(kept, l)
		}
	}
	cart.Items = kept
}

// recompute sums line totals in paise, the same way the server does.
func recompute(cart *models.Cart) {
	var total int64
	count := 0
	for i := range cart.Items {
		l := &cart.Items[i]
		line := int64(math.Round(l.Price*100)) * int64(l.Quantity)
		l.LineTotal = float64(line) / 100
		total += line
		count += l.Quantity
	}
	if cart.Items == nil {
		cart.Items = []models.CartLine{}
	}
	cart.Total = float64(total) / 100
	cart.Count = count
}
