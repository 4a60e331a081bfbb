package internal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("BADGER_FILEPATH", t.TempDir())
	t.Setenv("BLUGE_FILEPATH", t.TempDir())
	t.Setenv("SESSION_SECRET", strings.Repeat("s", 32))
}

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)
	setRequired(t)

	config, err := LoadConfig()

	req.NoError(err)
	req.Equal(8080, config.Port)
	req.Equal(30*time.Second, config.PollTimeout)
	req.Equal(2*time.Second, config.PollInterval)
	req.Equal("*", config.CharReplacement)
	req.False(config.CensorMessages)
}

func TestLoadConfig_Rejects_Invalid_Values(t *testing.T) {
	cases := map[string][2]string{
		"short secret":           {"SESSION_SECRET", "too-short"},
		"admin tag alone":        {"ADMIN_TAG", "root"},
		"threshold over 100":     {"LOW_CAPACITY_THRESHOLD", "120"},
		"zero poll timeout":      {"POLL_TIMEOUT", "0s"},
		"malformed poll timeout": {"POLL_TIMEOUT", "soon"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(kv[0], kv[1])

			_, err := LoadConfig()

			require.Error(t, err)
		})
	}
}

func TestCharacterRune(t *testing.T) {
	req := require.New(t)
	r, err := CharacterRune("#")
	req.NoError(err)
	req.Equal('#', r)

	_, err = CharacterRune("##")
	req.Error(err)
}
