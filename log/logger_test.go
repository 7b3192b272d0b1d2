package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateMainLogger(t *testing.T) {
	i := 100
	str := "TestCreate"
	log, err := CreateMainLogger(DebugLevel, JSONFormat, StdErrOutput, "")
	assert.Equal(t, err, nil)
	log.Debug("TestCreateMainLogger ok")
	log.Info("TestCreateMainLogger ok")
	log.Infof("TestCreateMainLogger ok i=%d, str=%s", i, str)

	log.UpdateLoggerLevel(InfoLevel)

	log.Debug("TestCreateMainLogger ok after update")
	log.Info("TestCreateMainLogger ok after update")
}

func TestCreateModuleLogger(t *testing.T) {
	log, err := CreateMainLogger(DebugLevel, JSONFormat, StdErrOutput, "")
	assert.Equal(t, err, nil)
	log.Debug("MainLogger ok")
	log.Info("MainLogger ok")

	ml := CreateModuleLogger(InfoLevel, "costmodel", log)

	ml.Debug("costmodel logger ok after update")
	ml.Info("costmodel logger ok after update")
}
