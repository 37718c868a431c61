package log

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/pegfee/pegfee-node/config"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()
	home := t.TempDir()

	cfg := config.DefaultConfig(home)
	cfg.LogFormat = config.LogFormatJSON
	cfg.LogPath = filepath.Join(home, "node.log")
	cfg.LogLevel = "feetoken:info,*:error"

	logger, err := NewLogger(cfg)
	require.NoError(t, err)

	logger.With("module", "feetoken").Info("issued", "amount", "500")
	logger.With("module", "api").Info("hidden")

	data, err := ioutil.ReadFile(cfg.LogPath)
	require.NoError(t, err)
	require.Contains(t, string(data), `"_msg":"issued"`)
	require.NotContains(t, string(data), "hidden")
}

func TestNewLogger_Errors(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig(t.TempDir())
	cfg.LogFormat = "xml"
	_, err := NewLogger(cfg)
	require.Error(t, err)

	cfg = config.DefaultConfig(t.TempDir())
	cfg.LogLevel = "feetoken:loud"
	_, err = NewLogger(cfg)
	require.Error(t, err)
}
