package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	got := FilterArgs([]string{"-d", "studyos.db", "-x", "junk"}, []string{"-d"})
	assert.Equal(t, []string{"-d", "studyos.db"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	got := FilterArgs([]string{"--config=conf.json", "-n=5"}, []string{"--config"})
	assert.Equal(t, []string{"--config=conf.json"}, got)
}

func TestFilterArgs_FlagFollowedByFlag(t *testing.T) {
	// the next token starts with '-' and must not be consumed as a value
	got := FilterArgs([]string{"-d", "-n", "5"}, []string{"-d", "-n"})
	assert.Equal(t, []string{"-d", "-n", "5"}, got)
}

func TestFilterArgs_EmptyResultIsNotNil(t *testing.T) {
	got := FilterArgs([]string{"-a", "b"}, []string{"-z"})
	require.NotNil(t, got)
	assert.Len(t, got, 0)
}

func TestJsonConfigFlags(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"studyos", "-c", "conf.json", "-d", "other.db"}
	assert.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"studyos", "-config=long.json"}
	assert.Equal(t, "long.json", JsonConfigFlags())

	os.Args = []string{"studyos"}
	assert.Equal(t, "", JsonConfigFlags())
}
