package config

import (
	"fmt"
	"strings"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// LoginAttemptsKey returns the cache key counting failed logins for an email
// from one client address. The email is lower-cased so case variants share
// one counter.
func (r *CacheKeyStruct) LoginAttemptsKey(clientIP, email string) string {
	return fmt.Sprintf("login_attempts:%s:%s", strings.TrimSpace(clientIP), strings.ToLower(strings.TrimSpace(email)))
}

var CacheKey = NewCacheKeyStruct()
