package configuration

import (
	"sync"
)

var config *Configuration
var once sync.Once

type Configuration struct {
	CostConfig *CostConfiguration
	ChkConfig  *CheckpointConfiguration
}

func GetConfiguration() *Configuration {
	once.Do(func() {
		config = &Configuration{
			CostConfig: DefCostConfiguration(),
			ChkConfig:  DefCheckpointConfiguration(),
		}
	})

	return config
}
