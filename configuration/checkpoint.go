package configuration

import "time"

type CheckpointConfiguration struct {
	PathCostTableStorage string
	SaveInterval         time.Duration
	IsLoadCostTable      bool
	EstimateCacheSize    int
}

func DefCheckpointConfiguration() *CheckpointConfiguration {
	return &CheckpointConfiguration{
		PathCostTableStorage: "StorageInfo/StorageCostTable",
		SaveInterval:         2 * time.Second,
		IsLoadCostTable:      true,
		EstimateCacheSize:    10 * 1024,
	}
}

func (config *CheckpointConfiguration) Check() *CheckpointConfiguration {
	conf := *config
	if conf.PathCostTableStorage == "" {
		conf.PathCostTableStorage = DefCheckpointConfiguration().PathCostTableStorage
	}
	if conf.SaveInterval < DefCheckpointConfiguration().SaveInterval {
		conf.SaveInterval = DefCheckpointConfiguration().SaveInterval
	}
	if conf.EstimateCacheSize <= 0 {
		conf.EstimateCacheSize = DefCheckpointConfiguration().EstimateCacheSize
	}

	return &conf
}
