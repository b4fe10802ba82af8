package database

import (
	"context"
	"net"
	"path/filepath"
	"testing"

	"github.com/Salvaberticci/proyecto-laboratorio/config"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSQLite(t *testing.T) {
	cfg := &config.Config{
		StorageDriver: config.StorageSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "lab.db"),
	}

	db, err := Connect(cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	sqlDB.Close()
}

func TestConnectMemoryDriverHasNoDatabase(t *testing.T) {
	_, err := Connect(&config.Config{StorageDriver: config.StorageMemory})
	assert.Error(t, err)
}

func TestConnectRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	client, err := ConnectRedis(context.Background(), &config.Config{RedisAddr: host, RedisPort: port})
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = ConnectRedis(context.Background(), &config.Config{RedisAddr: host, RedisPort: port})
	assert.Error(t, err)
}
