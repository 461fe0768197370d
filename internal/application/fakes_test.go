package application

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"archie-core-vtex-connector/internal/domain"
)

// prefixEncryption marks values instead of encrypting them so tests can see what was stored
type prefixEncryption struct{}

func (prefixEncryption) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	return "enc:" + plaintext, nil
}

func (prefixEncryption) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}
	if !strings.HasPrefix(ciphertext, "enc:") {
		return "", fmt.Errorf("not encrypted: %q", ciphertext)
	}
	return strings.TrimPrefix(ciphertext, "enc:"), nil
}

type fakeSettingsRepo struct {
	mu       sync.Mutex
	byShop   map[string]*domain.ShopSettings
	byHash   map[string]string
	upserted []*domain.ShopSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		byShop: map[string]*domain.ShopSettings{},
		byHash: map[string]string{},
	}
}

func (r *fakeSettingsRepo) GetByShop(_ context.Context, shop string) (*domain.ShopSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byShop[shop]
	if !ok {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

func (r *fakeSettingsRepo) GetByAccessTokenHash(ctx context.Context, tokenHash string) (*domain.ShopSettings, error) {
	r.mu.Lock()
	shop, ok := r.byHash[tokenHash]
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.GetByShop(ctx, shop)
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, settings *domain.ShopSettings, accessTokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *settings
	if existing, ok := r.byShop[settings.Shop]; ok {
		clone.ShopifyToken = existing.ShopifyToken
	}
	r.byShop[settings.Shop] = &clone
	if accessTokenHash != "" {
		r.byHash[accessTokenHash] = settings.Shop
	}
	r.upserted = append(r.upserted, &clone)
	return nil
}

func (r *fakeSettingsRepo) SetStorefrontToken(_ context.Context, shop, encryptedToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byShop[shop]
	if !ok {
		s = &domain.ShopSettings{Shop: shop}
		r.byShop[shop] = s
	}
	s.ShopifyToken = encryptedToken
	return nil
}

func (r *fakeSettingsRepo) ClearStorefrontToken(_ context.Context, shop string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byShop[shop]; ok {
		s.ShopifyToken = ""
	}
	return nil
}

// seed stores settings the way SettingsService would, secrets encrypted
func (r *fakeSettingsRepo) seed(s domain.ShopSettings) {
	enc := prefixEncryption{}
	hash := domain.HashAccessToken(s.AccessToken)
	s.AppToken, _ = enc.Encrypt(s.AppToken)
	s.AccessToken, _ = enc.Encrypt(s.AccessToken)
	s.ShopifyToken, _ = enc.Encrypt(s.ShopifyToken)
	r.byShop[s.Shop] = &s
	if hash != "" {
		r.byHash[hash] = s.Shop
	}
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*domain.Session{}}
}

func (r *fakeSessionRepo) Save(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *session
	r.sessions[session.Shop] = &clone
	return nil
}

func (r *fakeSessionRepo) Get(_ context.Context, shop string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[shop], nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, shop string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, shop)
	return nil
}

type fakeStateStore struct {
	mu     sync.Mutex
	states map[string]string
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{states: map[string]string{}}
}

func (s *fakeStateStore) Put(_ context.Context, state, shop string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = shop
	return nil
}

func (s *fakeStateStore) Consume(_ context.Context, state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	shop, ok := s.states[state]
	if !ok {
		return "", domain.ErrInvalidState
	}
	delete(s.states, state)
	return shop, nil
}

type fakeActivityRepo struct {
	mu      sync.Mutex
	entries []*domain.ActivityLogEntry
	err     error
}

func (r *fakeActivityRepo) Append(_ context.Context, entry *domain.ActivityLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []*domain.ActivityLogEntry
}

func (p *fakePublisher) Publish(_ context.Context, entry *domain.ActivityLogEntry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, entry)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

// fakeShopify records storefront calls; unset behaviour succeeds with zero values
type fakeShopify struct {
	mu sync.Mutex

	variants      map[int64]*domain.Variant
	variantDelay  map[int64]time.Duration
	zones         []domain.ShippingZone
	createdOrders []*domain.StorefrontOrder
	createOrderID int64
	createErr     error
	cancelled     []int64
	webhooks      []domain.WebhookSubscription
	createdHooks  []domain.WebhookSubscription
	hookErr       map[string]error
	verifyOK      bool
	exchanged     string
	calls         int
}

func (f *fakeShopify) GenerateAuthURL(shop, redirectURI, state string) (string, error) {
	q := url.Values{"redirect_uri": {redirectURI}, "state": {state}}
	return "https://" + shop + "/admin/oauth/authorize?" + q.Encode(), nil
}

func (f *fakeShopify) ExchangeToken(_ context.Context, _ string, code string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.exchanged = code
	return "shpat_" + code, nil
}

func (f *fakeShopify) VerifyAuthorizationURL(*url.URL) (bool, error) { return f.verifyOK, nil }

func (f *fakeShopify) VerifyWebhook(*http.Request) bool { return f.verifyOK }

func (f *fakeShopify) GetShop(context.Context, string, string) (*domain.ShopInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return &domain.ShopInfo{Currency: "USD"}, nil
}

func (f *fakeShopify) ListShippingZones(context.Context, string, string) ([]domain.ShippingZone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.zones, nil
}

func (f *fakeShopify) GetVariant(ctx context.Context, _ string, _ string, variantID int64) (*domain.Variant, error) {
	f.mu.Lock()
	f.calls++
	delay := f.variantDelay[variantID]
	v := f.variants[variantID]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return v, nil
}

func (f *fakeShopify) CreateOrder(_ context.Context, _ string, _ string, order *domain.StorefrontOrder) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.createdOrders = append(f.createdOrders, order)
	return f.createOrderID, nil
}

func (f *fakeShopify) CancelOrder(_ context.Context, _ string, _ string, orderID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.cancelled = append(f.cancelled, orderID)
	return nil
}

func (f *fakeShopify) ListWebhooks(context.Context, string, string) ([]domain.WebhookSubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return append([]domain.WebhookSubscription(nil), f.webhooks...), nil
}

func (f *fakeShopify) CreateWebhook(_ context.Context, _ string, _ string, topic, address string) (*domain.WebhookSubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.hookErr[topic]; err != nil {
		return nil, err
	}
	sub := domain.WebhookSubscription{Topic: topic, Address: address}
	f.createdHooks = append(f.createdHooks, sub)
	f.webhooks = append(f.webhooks, sub)
	return &sub, nil
}

func (f *fakeShopify) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
