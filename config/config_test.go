package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadYAML(t *testing.T, content string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(content)))
	return v
}

func TestKeyDeclaredNullValue(t *testing.T) {
	// "distance:"不带值的写法必须算作显式配置
	v := loadYAML(t, "filters:\n  distance:\n")
	assert.True(t, keyDeclared(v, "filters.distance"))
}

func TestKeyDeclaredEmptyString(t *testing.T) {
	v := loadYAML(t, "filters:\n  distance: \"\"\n")
	assert.True(t, keyDeclared(v, "filters.distance"))
}

func TestKeyDeclaredAbsent(t *testing.T) {
	v := loadYAML(t, "filters:\n  location: Berlin\n")
	assert.False(t, keyDeclared(v, "filters.distance"))

	v = loadYAML(t, "browser:\n  cdp_url: http://localhost:9222\n")
	assert.False(t, keyDeclared(v, "filters.distance"))
}
