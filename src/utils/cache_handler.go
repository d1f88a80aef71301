package utils

import "time"

// CacheHandlerI abstracts the durable key/value cache backend so clients and
// services can be tested with an in-memory fake.
type CacheHandlerI interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, result interface{}) error
	Delete(key string) error
	Exists(key string) (bool, error)
}
