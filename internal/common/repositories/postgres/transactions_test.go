package postgres

import (
	"testing"
	"time"

	"github.com/leonid6372/portfolio-service/internal/common/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilter(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)

	t.Run("owner only", func(t *testing.T) {
		where, args := buildFilter(42, domain.TransactionFilter{})
		assert.Equal(t, "owner_id = $1", where)
		assert.Equal(t, []any{int64(42)}, args)
	})

	t.Run("all filters keep placeholder order", func(t *testing.T) {
		where, args := buildFilter(42, domain.TransactionFilter{
			Symbol: "AAP",
			Kind:   "buy",
			From:   &from,
			To:     &to,
		})

		assert.Equal(t,
			"owner_id = $1 AND symbol ILIKE $2 AND kind = $3 AND executed_at >= $4 AND executed_at <= $5",
			where,
		)
		require.Len(t, args, 5)
		assert.Equal(t, "%AAP%", args[1])
		assert.Equal(t, "BUY", args[2])
		assert.Equal(t, from, args[3])
		assert.Equal(t, to, args[4])
	})

	t.Run("date range only", func(t *testing.T) {
		where, args := buildFilter(1, domain.TransactionFilter{From: &from})
		assert.Equal(t, "owner_id = $1 AND executed_at >= $2", where)
		assert.Len(t, args, 2)
	})
}

func TestPageMeta(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		page      int64
		limit     int64
		wantPages int64
	}{
		{name: "exact fit", total: 20, page: 1, limit: 10, wantPages: 2},
		{name: "remainder adds page", total: 21, page: 3, limit: 10, wantPages: 3},
		{name: "empty set", total: 0, page: 1, limit: 10, wantPages: 0},
		{name: "single short page", total: 3, page: 1, limit: 10, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pageMeta(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.wantPages, meta.TotalPages)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.page, meta.CurrentPage)
			assert.Equal(t, tt.limit, meta.Limit)
		})
	}
}
