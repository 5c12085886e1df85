package yaml_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/linksum"
	lsyaml "github.com/fwojciec/linksum/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("overrides defaults with document values", func(t *testing.T) {
		t.Parallel()

		doc := `
max_words: 4000
auto_sum: false
trigger_word: "summarize"
backend: readability
white_url_list:
  - https://news.example.com
`
		cfg, err := lsyaml.Load(strings.NewReader(doc))
		require.NoError(t, err)

		assert.Equal(t, 4000, cfg.MaxWords)
		assert.False(t, cfg.AutoSum)
		assert.Equal(t, "summarize", cfg.TriggerWord)
		assert.Equal(t, linksum.BackendReadability, cfg.Backend)
		assert.Equal(t, []string{"https://news.example.com"}, cfg.WhiteURLList)

		// Keys absent from the document keep their defaults.
		assert.Equal(t, 300, cfg.CacheTimeout)
		assert.Contains(t, cfg.BlackURLList, "https://support.weixin.qq.com")
	})

	t.Run("empty document yields the defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := lsyaml.Load(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, linksum.DefaultConfig(), cfg)
	})

	t.Run("malformed YAML is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := lsyaml.Load(strings.NewReader("max_words: [unclosed"))
		require.Error(t, err)
		assert.Equal(t, linksum.EINVALID, linksum.ErrorCode(err))
	})

	t.Run("validation failures surface", func(t *testing.T) {
		t.Parallel()

		_, err := lsyaml.Load(strings.NewReader("backend: magic"))
		require.Error(t, err)
		assert.Equal(t, linksum.EINVALID, linksum.ErrorCode(err))
	})
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads an existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "linksum.yaml")
		require.NoError(t, os.WriteFile(path, []byte("max_words: 1234\n"), 0o600))

		cfg, err := lsyaml.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 1234, cfg.MaxWords)
	})

	t.Run("missing file yields the defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := lsyaml.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, linksum.DefaultConfig(), cfg)
	})
}
