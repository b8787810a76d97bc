package mysql

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"backoffice/internal/config"
)

func TestDriverConfig(t *testing.T) {
	mc := DriverConfig(config.DatabaseConfig{
		Host:     "db.internal",
		Port:     3307,
		User:     "backoffice",
		Password: "secret",
		Name:     "shop",
	})

	assert.Equal(t, "tcp", mc.Net)
	assert.Equal(t, "db.internal:3307", mc.Addr)
	assert.Equal(t, "shop", mc.DBName)
	assert.True(t, mc.ParseTime)
	assert.Equal(t, time.UTC, mc.Loc)

	dsn := mc.FormatDSN()
	assert.True(t, strings.HasPrefix(dsn, "backoffice:secret@tcp(db.internal:3307)/shop?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
}
