package providers

import (
	"os"
	"path/filepath"
	"testing"

	"sld/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggerConfig(t *testing.T) *structures.Config {
	t.Helper()
	conf := &structures.Config{}
	conf.Logger.Level = "debug"
	conf.Logger.Mode = 0644
	conf.Logger.Dir = t.TempDir()
	return conf
}

func TestNewLogProvider_CreatesPerConcernFiles(t *testing.T) {
	conf := loggerConfig(t)

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer logger.Close()

	for _, name := range []string{"app.log", "message.log", "command.log", "http.log", "store.log"} {
		_, err := os.Stat(filepath.Join(conf.Logger.Dir, name))
		assert.NoError(t, err, name)
	}
}

func TestNewLogProvider_WritesToMatchingFile(t *testing.T) {
	conf := loggerConfig(t)

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)

	logger.Infof(TypeCommand, "profile %s saved", "76561198000000001")
	logger.Close()

	data, err := os.ReadFile(filepath.Join(conf.Logger.Dir, "command.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "profile 76561198000000001 saved")

	appLog, err := os.ReadFile(filepath.Join(conf.Logger.Dir, "app.log"))
	require.NoError(t, err)
	assert.Empty(t, appLog)
}

func TestNewLogProvider_LevelFilters(t *testing.T) {
	conf := loggerConfig(t)
	conf.Logger.Level = "warn"

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)

	logger.Infof(TypeApp, "filtered out")
	logger.Warnf(TypeApp, "kept")
	logger.Close()

	data, err := os.ReadFile(filepath.Join(conf.Logger.Dir, "app.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "filtered out")
	assert.Contains(t, string(data), "kept")
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := loggerConfig(t)
	conf.Logger.Level = "verbose"

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_UnusableDir(t *testing.T) {
	conf := loggerConfig(t)
	conf.Logger.Dir = filepath.Join(conf.Logger.Dir, "missing")

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}
