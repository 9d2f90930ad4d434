package config

import (
	"os"
	"strings"
	"sync"
)

type StorageConfig struct {
	URL          string
	ServiceKey   string
	Bucket       string
	CacheControl string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		storageConfig = &StorageConfig{
			URL:          strings.TrimRight(os.Getenv("STORAGE_URL"), "/"),
			ServiceKey:   os.Getenv("STORAGE_SERVICE_KEY"),
			Bucket:       getEnv("STORAGE_BUCKET", "resumes"),
			CacheControl: getEnv("STORAGE_CACHE_CONTROL", "3600"),
		}
	})
	return storageConfig
}
