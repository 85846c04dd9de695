package domain_test

import (
	"testing"

	"veridor-server/internal/records/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynamicTableSoftDelete(t *testing.T) {
	table, err := domain.NewDynamicTableBuilder().
		WithTenant("tenant-1").
		WithName("employees").
		Build()
	require.NoError(t, err)
	require.False(t, table.IsDeleted())

	table.SoftDelete()

	assert.True(t, table.IsDeleted())
	require.NotNil(t, table.DeletedAt)
	assert.Equal(t, *table.DeletedAt, table.UpdatedAt)
}
