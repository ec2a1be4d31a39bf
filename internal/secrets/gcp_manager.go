package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// ErrNoSecret is returned when no signing secret is configured
var ErrNoSecret = errors.New("no product signing secret configured")

// cacheEntry represents a cached secret with expiration
type cacheEntry struct {
	value     string
	expiresAt time.Time
}

type accessFunc func(ctx context.Context, name string) ([]byte, error)

// GCPSecretManager reads secrets from Google Cloud Secret Manager
type GCPSecretManager struct {
	client    *secretmanager.Client
	projectID string
	access    accessFunc
	cache     map[string]*cacheEntry
	cacheMu   sync.RWMutex
	cacheTTL  time.Duration
}

// NewGCPSecretManager creates a new GCP Secret Manager client
func NewGCPSecretManager(ctx context.Context, projectID string) (*GCPSecretManager, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret manager client: %w", err)
	}

	sm := newManager(projectID, func(ctx context.Context, name string) ([]byte, error) {
		result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
			Name: name + "/versions/latest",
		})
		if err != nil {
			return nil, err
		}
		return result.Payload.Data, nil
	})
	sm.client = client
	return sm, nil
}

func newManager(projectID string, access accessFunc) *GCPSecretManager {
	return &GCPSecretManager{
		projectID: projectID,
		access:    access,
		cache:     make(map[string]*cacheEntry),
		cacheTTL:  5 * time.Minute,
	}
}

// Close closes the Secret Manager client
func (sm *GCPSecretManager) Close() error {
	if sm.client != nil {
		return sm.client.Close()
	}
	return nil
}

// BuildSecretName expands a secret id to its full resource name.
// Full names are returned unchanged.
func (sm *GCPSecretManager) BuildSecretName(secretID string) string {
	if strings.HasPrefix(secretID, "projects/") {
		return secretID
	}
	return fmt.Sprintf("projects/%s/secrets/%s", sm.projectID, secretID)
}

// GetSecretValue returns the latest version of a secret as a string
func (sm *GCPSecretManager) GetSecretValue(ctx context.Context, secretID string) (string, error) {
	name := sm.BuildSecretName(secretID)

	sm.cacheMu.RLock()
	if entry, ok := sm.cache[name]; ok && time.Now().Before(entry.expiresAt) {
		sm.cacheMu.RUnlock()
		return entry.value, nil
	}
	sm.cacheMu.RUnlock()

	data, err := sm.access(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to access secret: %w", err)
	}
	value := strings.TrimSpace(string(data))

	sm.cacheMu.Lock()
	sm.cache[name] = &cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(sm.cacheTTL),
	}
	sm.cacheMu.Unlock()

	return value, nil
}

// InvalidateCache removes a secret from the cache
func (sm *GCPSecretManager) InvalidateCache(secretID string) {
	sm.cacheMu.Lock()
	delete(sm.cache, sm.BuildSecretName(secretID))
	sm.cacheMu.Unlock()
}

// SecretReader is the part of GCPSecretManager the resolver needs
type SecretReader interface {
	GetSecretValue(ctx context.Context, secretID string) (string, error)
}

// ProductSecretResolver resolves the HMAC key used to sign product
// submissions: from Secret Manager when a secret name is set, otherwise
// from the static fallback value.
type ProductSecretResolver struct {
	reader     SecretReader
	secretName string
	fallback   string
}

// NewProductSecretResolver creates a resolver. reader may be nil.
func NewProductSecretResolver(reader SecretReader, secretName, fallback string) *ProductSecretResolver {
	return &ProductSecretResolver{reader: reader, secretName: secretName, fallback: fallback}
}

// Resolve returns the current signing secret.
func (r *ProductSecretResolver) Resolve(ctx context.Context) (string, error) {
	if r.reader != nil && r.secretName != "" {
		value, err := r.reader.GetSecretValue(ctx, r.secretName)
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
	}
	if r.fallback != "" {
		return r.fallback, nil
	}
	return "", ErrNoSecret
}
