package errors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpFlattensChainAndCode(t *testing.T) {
	inner := fmt.Errorf("connection reset")
	err := Wrap(CodeDependency, fmt.Errorf("insert order: %w", inner), "persist order")

	d := Dump(err)
	assert.Equal(t, CodeDependency, d.Code)
	assert.Equal(t, err.Error(), d.TopMessage)
	require.Len(t, d.Chain, 3)
	assert.Contains(t, d.Chain[2], "connection reset")
}

func TestDumpSurfacesPostgresDetail(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "orders_pkey",
		TableName:      "orders",
		Detail:         "Key (id) already exists.",
	}
	d := Dump(fmt.Errorf("insert order: %w", pgErr))
	assert.Equal(t, "23505", d.PGCode)
	assert.Equal(t, "orders_pkey", d.PGConstraint)
	assert.Equal(t, "orders", d.PGTable)
	assert.Equal(t, "Key (id) already exists.", d.PGDetail)

	pqd := Dump(fmt.Errorf("insert order: %w", &pq.Error{Code: "23503", Constraint: "order_items_order_id_fkey"}))
	assert.Equal(t, "23503", pqd.PGCode)
	assert.Equal(t, "order_items_order_id_fkey", pqd.PGConstraint)
}

func TestDumpNilError(t *testing.T) {
	assert.Equal(t, ErrorDump{}, Dump(nil))
}
