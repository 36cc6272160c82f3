package cache

import (
	"fmt"
)

type EntityType string

const (
	EntityAdmin  EntityType = "admin"
	EntityWallet EntityType = "wallet"
)

type KeyType string

const (
	KeyID       KeyType = "id"
	KeyOverview KeyType = "overview"
)

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entity, keyType, value)
}

// AdminOverviewKey is the single key the dashboard snapshot is cached under.
func AdminOverviewKey() string {
	return GenerateKey(EntityAdmin, KeyOverview, "current")
}
