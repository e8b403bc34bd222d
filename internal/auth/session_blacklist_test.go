package auth

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewInMemoryBlacklistStore(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	assert.NotNil(t, store)
	assert.NotNil(t, store.blacklist)
}

func TestAddToBlacklist(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	token := "test-token"
	exp := time.Now().Add(time.Hour)

	err := store.AddToBlacklist(token, exp)
	assert.NoError(t, err)

	// Verify it was added
	store.mu.RLock()
	expTime, exists := store.blacklist[token]
	store.mu.RUnlock()

	assert.True(t, exists)
	assert.Equal(t, exp, expTime)
}

func TestIsBlacklisted(t *testing.T) {
	store := NewInMemoryBlacklistStore()

	isBlacklisted, err := store.IsBlacklisted("unknown-token")
	assert.NoError(t, err)
	assert.False(t, isBlacklisted)

	exp := time.Now().Add(time.Hour)
	err = store.AddToBlacklist("revoked-token", exp)
	assert.NoError(t, err)

	isBlacklisted, err = store.IsBlacklisted("revoked-token")
	assert.NoError(t, err)
	assert.True(t, isBlacklisted)
}

func TestCleanUpExpired(t *testing.T) {
	store := NewInMemoryBlacklistStore()

	expiredTime := time.Now().Add(-time.Hour)
	validTime := time.Now().Add(time.Hour)

	assert.NoError(t, store.AddToBlacklist("expired-token-1", expiredTime))
	assert.NoError(t, store.AddToBlacklist("expired-token-2", expiredTime))
	assert.NoError(t, store.AddToBlacklist("valid-token", validTime))

	store.mu.RLock()
	assert.Len(t, store.blacklist, 3)
	store.mu.RUnlock()

	store.CleanUpExpired()

	// Verify only valid token remains
	store.mu.RLock()
	assert.Len(t, store.blacklist, 1)
	_, exists := store.blacklist["valid-token"]
	assert.True(t, exists)
	_, exists = store.blacklist["expired-token-1"]
	assert.False(t, exists)
	_, exists = store.blacklist["expired-token-2"]
	assert.False(t, exists)
	store.mu.RUnlock()
}

func TestAddToBlacklistUpdateExpiration(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	token := "test-token"

	exp1 := time.Now().Add(time.Hour)
	assert.NoError(t, store.AddToBlacklist(token, exp1))

	exp2 := time.Now().Add(2 * time.Hour)
	assert.NoError(t, store.AddToBlacklist(token, exp2))

	// Verify expiration was updated
	store.mu.RLock()
	expTime, exists := store.blacklist[token]
	store.mu.RUnlock()

	assert.True(t, exists)
	assert.Equal(t, exp2, expTime)
}

func TestConcurrentAccess(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	exp := time.Now().Add(time.Hour)

	// Concurrent writes
	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			token := fmt.Sprintf("token-%d", id)
			err := store.AddToBlacklist(token, exp)
			assert.NoError(t, err)
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	// Concurrent reads
	for i := 0; i < 10; i++ {
		go func(id int) {
			token := fmt.Sprintf("token-%d", id)
			isBlacklisted, err := store.IsBlacklisted(token)
			assert.NoError(t, err)
			assert.True(t, isBlacklisted)
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
