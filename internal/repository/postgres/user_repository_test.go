package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/daterly/members-api/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

var memberCols = []string{
	"id", "username", "known_as", "date_of_birth", "gender", "introduction",
	"looking_for", "interests", "city", "country", "created", "last_active",
	"photo_url",
}

func memberRowValues(id int, username, gender string) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, username, nil, now.AddDate(-30, 0, 0), gender, nil,
		nil, nil, nil, nil, now, now,
		nil,
	}
}

func TestGetGender(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT gender FROM users").
		WithArgs("lisa").
		WillReturnRows(sqlmock.NewRows([]string{"gender"}).AddRow("female"))

	gender, err := repo.GetGender(context.Background(), "lisa")
	require.NoError(t, err)
	require.Equal(t, "female", gender)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGenderNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT gender FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetGender(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetUserByUsernameLoadsPhotos(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	now := time.Now()
	userCols := []string{
		"id", "username", "gender", "date_of_birth", "known_as", "introduction",
		"looking_for", "interests", "city", "country", "created", "last_active",
	}
	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("lisa").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "lisa", "female", now.AddDate(-28, 0, 0), nil, nil, nil, nil, nil, nil, now, now))

	mock.ExpectQuery("FROM photos WHERE user_id").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "url", "asset_id", "is_main"}).
			AddRow(10, 1, "https://cdn.test/a", "photos/a", true).
			AddRow(11, 1, "https://cdn.test/b", nil, false))

	user, err := repo.GetUserByUsername(context.Background(), "lisa")
	require.NoError(t, err)
	require.Equal(t, "lisa", user.Username)
	require.Len(t, user.Photos, 2)
	require.True(t, user.Photos[0].IsMain)
	require.Nil(t, user.Photos[1].AssetID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByUsernameNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetMembersAppliesFiltersAndPaging(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("lisa", sqlmock.AnyArg(), sqlmock.AnyArg(), "male").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	rows := sqlmock.NewRows(memberCols).
		AddRow(memberRowValues(2, "todd", "male")...).
		AddRow(memberRowValues(3, "mike", "male")...)
	mock.ExpectQuery("FROM users u").
		WithArgs("lisa", sqlmock.AnyArg(), sqlmock.AnyArg(), "male", 5, 5).
		WillReturnRows(rows)

	params := domain.NewUserParams()
	params.CurrentUsername = "lisa"
	params.Gender = "male"
	params.Page = 2
	params.PageSize = 5

	page, err := repo.GetMembers(context.Background(), params)
	require.NoError(t, err)
	require.Equal(t, 12, page.TotalCount)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, 2, page.CurrentPage)
	require.Len(t, page.Items, 2)
	require.Equal(t, "todd", page.Items[0].Username)
	require.Equal(t, 30, page.Items[0].Age)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMembersWithoutGenderFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("sam", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery("FROM users u").
		WithArgs("sam", sqlmock.AnyArg(), sqlmock.AnyArg(), 10, 0).
		WillReturnRows(sqlmock.NewRows(memberCols))

	params := domain.NewUserParams()
	params.CurrentUsername = "sam"

	page, err := repo.GetMembers(context.Background(), params)
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.Equal(t, 0, page.TotalPages)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMembersClampsPageSize(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("sam", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	// 500 requested, 50 is the cap.
	mock.ExpectQuery("FROM users u").
		WithArgs("sam", sqlmock.AnyArg(), sqlmock.AnyArg(), 50, 0).
		WillReturnRows(sqlmock.NewRows(memberCols))

	params := domain.NewUserParams()
	params.CurrentUsername = "sam"
	params.PageSize = 500

	page, err := repo.GetMembers(context.Background(), params)
	require.NoError(t, err)
	require.Equal(t, 50, page.PageSize)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWorkCommitsBufferedWrites(t *testing.T) {
	db, mock := newMockDB(t)
	factory := NewUnitOfWorkFactory(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE photos SET is_main").
		WithArgs(false, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE photos SET is_main").
		WithArgs(true, 11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx := context.Background()
	uow, err := factory.Begin(ctx)
	require.NoError(t, err)
	require.False(t, uow.HasChanges())

	require.NoError(t, uow.Users().SetPhotoMain(ctx, 10, false))
	require.NoError(t, uow.Users().SetPhotoMain(ctx, 11, true))
	require.True(t, uow.HasChanges())

	require.NoError(t, uow.Complete(ctx))
	require.NoError(t, uow.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWorkCommitFailure(t *testing.T) {
	db, mock := newMockDB(t)
	factory := NewUnitOfWorkFactory(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM photos").
		WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(sql.ErrConnDone)

	ctx := context.Background()
	uow, err := factory.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, uow.Users().DeletePhoto(ctx, 11))
	require.ErrorIs(t, uow.Complete(ctx), domain.ErrPersistence)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWorkRollbackDiscardsWrites(t *testing.T) {
	db, mock := newMockDB(t)
	factory := NewUnitOfWorkFactory(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").
		WithArgs(nil, nil, nil, nil, nil, nil, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	ctx := context.Background()
	uow, err := factory.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, uow.Users().UpdateUser(ctx, &domain.User{ID: 1}))
	require.True(t, uow.HasChanges())
	require.NoError(t, uow.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddPhotoReturnsAssignedID(t *testing.T) {
	db, mock := newMockDB(t)
	factory := NewUnitOfWorkFactory(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO photos").
		WithArgs(1, "https://cdn.test/a", sqlmock.AnyArg(), true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	ctx := context.Background()
	uow, err := factory.Begin(ctx)
	require.NoError(t, err)

	assetID := "photos/a"
	photo := &domain.Photo{URL: "https://cdn.test/a", AssetID: &assetID, IsMain: true}
	require.NoError(t, uow.Users().AddPhoto(ctx, 1, photo))
	require.Equal(t, 42, photo.ID)
	require.Equal(t, 1, photo.UserID)

	require.NoError(t, uow.Complete(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePhotoNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	factory := NewUnitOfWorkFactory(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM photos").
		WithArgs(999).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	ctx := context.Background()
	uow, err := factory.Begin(ctx)
	require.NoError(t, err)

	require.ErrorIs(t, uow.Users().DeletePhoto(ctx, 999), domain.ErrPhotoNotFound)
	require.False(t, uow.HasChanges())
	require.NoError(t, uow.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}
