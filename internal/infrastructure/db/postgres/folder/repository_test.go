package folder

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudnest-api/internal/domain/user"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock
}

func folderRows(id uint64, name string, ownerID uint64) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "folder_name", "user_id", "created_at", "updated_at"}).
		AddRow(id, name, ownerID, now, now)
}

func TestRepository_FetchFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		repo := NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(SelectFolder)).
			WithArgs(user.ID(1), "docs").
			WillReturnRows(folderRows(7, "docs", 1))

		f, err := repo.FetchFolder(ctx, 1, "docs")
		require.NoError(t, err)
		require.NotNil(t, f)
		assert.Equal(t, "docs", f.Name)
		assert.Equal(t, user.ID(1), f.OwnerID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows means nil, not an error", func(t *testing.T) {
		mock := newMock(t)
		repo := NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(SelectFolder)).
			WithArgs(user.ID(1), "ghost").
			WillReturnError(pgx.ErrNoRows)

		f, err := repo.FetchFolder(ctx, 1, "ghost")
		require.NoError(t, err)
		assert.Nil(t, f)
	})
}

func TestRepository_CreateFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("created", func(t *testing.T) {
		mock := newMock(t)
		repo := NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(InsertFolder)).
			WithArgs(user.ID(1), "docs").
			WillReturnRows(folderRows(7, "docs", 1))

		f, err := repo.CreateFolder(ctx, 1, "docs")
		require.NoError(t, err)
		assert.Equal(t, "docs", f.Name)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to the sentinel", func(t *testing.T) {
		mock := newMock(t)
		repo := NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(InsertFolder)).
			WithArgs(user.ID(1), "docs").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err := repo.CreateFolder(ctx, 1, "docs")
		require.ErrorIs(t, err, ErrFolderNameTaken)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		mock := newMock(t)
		repo := NewRepository(mock)

		boom := errors.New("connection reset")
		mock.ExpectQuery(regexp.QuoteMeta(InsertFolder)).
			WithArgs(user.ID(1), "docs").
			WillReturnError(boom)

		_, err := repo.CreateFolder(ctx, 1, "docs")
		require.ErrorIs(t, err, boom)
	})
}

func TestRepository_RenameFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("renamed", func(t *testing.T) {
		mock := newMock(t)
		repo := NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(RenameFolder)).
			WithArgs(user.ID(1), "old", "new").
			WillReturnRows(folderRows(7, "new", 1))

		f, err := repo.RenameFolder(ctx, 1, "old", "new")
		require.NoError(t, err)
		assert.Equal(t, "new", f.Name)
	})

	t.Run("missing row yields nil", func(t *testing.T) {
		mock := newMock(t)
		repo := NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(RenameFolder)).
			WithArgs(user.ID(1), "ghost", "new").
			WillReturnError(pgx.ErrNoRows)

		f, err := repo.RenameFolder(ctx, 1, "ghost", "new")
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("name conflict maps to the sentinel", func(t *testing.T) {
		mock := newMock(t)
		repo := NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(RenameFolder)).
			WithArgs(user.ID(1), "old", "taken").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err := repo.RenameFolder(ctx, 1, "old", "taken")
		require.ErrorIs(t, err, ErrFolderNameTaken)
	})
}

func TestRepository_DeleteFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mock := newMock(t)
		repo := NewRepository(mock)

		mock.ExpectExec(regexp.QuoteMeta(DeleteFolder)).
			WithArgs(user.ID(1), "docs").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		deleted, err := repo.DeleteFolder(ctx, 1, "docs")
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("nothing to delete", func(t *testing.T) {
		mock := newMock(t)
		repo := NewRepository(mock)

		mock.ExpectExec(regexp.QuoteMeta(DeleteFolder)).
			WithArgs(user.ID(1), "ghost").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		deleted, err := repo.DeleteFolder(ctx, 1, "ghost")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
