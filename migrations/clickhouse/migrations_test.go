package clickhouse_test

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/ClickHouse/clickhouse-go"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/clickhouse"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/stretchr/testify/require"
)

// TestClickhouseMigrations проверяет up/down миграции журнала событий
func TestClickhouseMigrations(t *testing.T) {
	dsn := os.Getenv("CLICKHOUSE_TEST_DSN")
	if dsn == "" {
		t.Skip("CLICKHOUSE_TEST_DSN env var not set; skipping ClickHouse migration tests")
	}

	db, err := sql.Open("clickhouse", dsn)
	require.NoError(t, err, "ошибка при открытии соединения с ClickHouse")
	defer func() {
		require.NoError(t, db.Close())
	}()

	drv, err := clickhouse.WithInstance(db, &clickhouse.Config{})
	require.NoError(t, err, "failed to create ClickHouse migrate driver")
	m, err := migrate.NewWithDatabaseInstance("file://.", "clickhouse", drv)
	require.NoError(t, err, "failed to create ClickHouse migrate instance")
	_ = m.Down()
	require.NoError(t, m.Up(), "failed to apply ClickHouse migrations")

	tableCount := func() int {
		var n int
		err := db.QueryRow(
			"SELECT count() FROM system.tables WHERE database=currentDatabase() AND name='events_log'",
		).Scan(&n)
		require.NoError(t, err)
		return n
	}
	require.Equal(t, 1, tableCount(), "events_log должна существовать после migrate Up")

	// колонки и типы
	expected := map[string]string{
		"Kind":      "LowCardinality(String)",
		"EntityId":  "String",
		"Title":     "String",
		"Payload":   "String",
		"EventTime": "DateTime",
	}
	rows, err := db.Query(
		"SELECT name, type FROM system.columns WHERE database = currentDatabase() AND table = 'events_log'",
	)
	require.NoError(t, err)
	defer rows.Close()
	found := make(map[string]string)
	for rows.Next() {
		var name, ctype string
		require.NoError(t, rows.Scan(&name, &ctype))
		found[name] = ctype
	}
	require.NoError(t, rows.Err())
	require.Equal(t, expected, found)

	var idxCount int
	err = db.QueryRow(
		"SELECT count() FROM system.data_skipping_indices WHERE database=currentDatabase() AND table='events_log' AND name='idx_events_log_entity_id'",
	).Scan(&idxCount)
	require.NoError(t, err)
	require.Equal(t, 1, idxCount, "skip-индекс idx_events_log_entity_id должен существовать")

	require.NoError(t, m.Steps(-2), "failed to rollback ClickHouse migrations")
	require.Equal(t, 0, tableCount(), "events_log должна быть удалена после migrate Down")
}
