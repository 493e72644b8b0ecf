package config

import "github.com/flowbot-io/flowbot/analytics"

type StorageType string

const STORAGE_TYPE_REDIS StorageType = "redis"
const STORAGE_TYPE_INMEM StorageType = "memory"

type Config struct {
	HttpPort         int
	StorageType      StorageType
	RedisConfig      RedisStorageConfig
	AiServiceUrl     string
	AiTimeoutSeconds int
	AnalyticsConfig  analytics.DataCollectorConfig
}

type RedisStorageConfig struct {
	Addrs     []string
	Namespace string
}
