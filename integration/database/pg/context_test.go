package pg_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forumkit/integration/database/pg"
)

// fakeTx satisfies pgx.Tx for context plumbing tests; no methods are called.
type fakeTx struct {
	pgx.Tx
	id int
}

func TestWithTx(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		tx := &fakeTx{id: 1}
		ctx := pg.WithTx(context.Background(), tx)

		got, ok := pg.TxFromContext(ctx)
		require.True(t, ok)
		assert.Same(t, tx, got)
	})

	t.Run("nil tx leaves context unchanged", func(t *testing.T) {
		t.Parallel()

		ctx := pg.WithTx(context.Background(), nil)
		_, ok := pg.TxFromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("empty context has no tx", func(t *testing.T) {
		t.Parallel()

		_, ok := pg.TxFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("nested tx shadows outer", func(t *testing.T) {
		t.Parallel()

		outer := &fakeTx{id: 1}
		inner := &fakeTx{id: 2}

		ctx := pg.WithTx(context.Background(), outer)
		ctx = pg.WithTx(ctx, inner)

		got, ok := pg.TxFromContext(ctx)
		require.True(t, ok)
		assert.Same(t, inner, got)
	})
}
