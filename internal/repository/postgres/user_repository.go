package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/daterly/members-api/internal/domain"
	"github.com/daterly/members-api/internal/pagination"
	"github.com/daterly/members-api/internal/repository"
	"github.com/jmoiron/sqlx"
)

type userRepository struct {
	db sqlx.ExtContext
	// onWrite is set by the unit of work to count buffered mutations.
	onWrite func()
}

// NewUserRepository returns a read-only repository over the connection pool.
// Write methods still work but bypass any unit of work; use one for mutations.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func newTxUserRepository(tx *sqlx.Tx, onWrite func()) repository.UserRepository {
	return &userRepository{db: tx, onWrite: onWrite}
}

func (r *userRepository) markWrite() {
	if r.onWrite != nil {
		r.onWrite()
	}
}

func (r *userRepository) GetGender(ctx context.Context, username string) (string, error) {
	var gender string
	query := `SELECT gender FROM users WHERE username = $1`
	err := sqlx.GetContext(ctx, r.db, &gender, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}
	return gender, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	query := `
		SELECT id, username, gender, date_of_birth, known_as, introduction,
		       looking_for, interests, city, country, created, last_active
		FROM users WHERE username = $1
	`
	err := sqlx.GetContext(ctx, r.db, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	photos, err := r.photosByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Photos = photos

	return &user, nil
}

// memberRow carries the raw projection; age is derived from date_of_birth.
type memberRow struct {
	ID           int       `db:"id"`
	Username     string    `db:"username"`
	KnownAs      *string   `db:"known_as"`
	DateOfBirth  time.Time `db:"date_of_birth"`
	Gender       string    `db:"gender"`
	Introduction *string   `db:"introduction"`
	LookingFor   *string   `db:"looking_for"`
	Interests    *string   `db:"interests"`
	City         *string   `db:"city"`
	Country      *string   `db:"country"`
	Created      time.Time `db:"created"`
	LastActive   time.Time `db:"last_active"`
	PhotoURL     *string   `db:"photo_url"`
}

func (row *memberRow) toMemberView() domain.MemberView {
	user := domain.User{DateOfBirth: row.DateOfBirth}
	return domain.MemberView{
		Username:     row.Username,
		KnownAs:      row.KnownAs,
		Age:          user.Age(),
		Gender:       row.Gender,
		Introduction: row.Introduction,
		LookingFor:   row.LookingFor,
		Interests:    row.Interests,
		City:         row.City,
		Country:      row.Country,
		Created:      row.Created,
		LastActive:   row.LastActive,
		PhotoURL:     row.PhotoURL,
	}
}

const memberColumns = `
	u.id, u.username, u.known_as, u.date_of_birth, u.gender, u.introduction,
	u.looking_for, u.interests, u.city, u.country, u.created, u.last_active,
	(SELECT p.url FROM photos p WHERE p.user_id = u.id AND p.is_main) AS photo_url
`

func (r *userRepository) GetMember(ctx context.Context, username string) (*domain.MemberView, error) {
	var row memberRow
	query := `SELECT` + memberColumns + `FROM users u WHERE u.username = $1`
	err := sqlx.GetContext(ctx, r.db, &row, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	member := row.toMemberView()

	photos, err := r.photosByUserID(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	member.Photos = photos

	return &member, nil
}

func (r *userRepository) GetMembers(ctx context.Context, params domain.UserParams) (*pagination.PagedResult[domain.MemberView], error) {
	page := pagination.ClampPage(params.Page)
	size := pagination.ClampPageSize(params.PageSize)

	// Age filter translates to a date-of-birth window.
	today := time.Now().Truncate(24 * time.Hour)
	minDob := today.AddDate(-params.MaxAge-1, 0, 0)
	maxDob := today.AddDate(-params.MinAge, 0, 0)

	where := ` WHERE u.username <> $1 AND u.date_of_birth BETWEEN $2 AND $3`
	args := []interface{}{params.CurrentUsername, minDob, maxDob}

	if params.Gender != "" {
		args = append(args, params.Gender)
		where += fmt.Sprintf(" AND u.gender = $%d", len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM users u` + where
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery, args...); err != nil {
		return nil, err
	}

	// Id tiebreak keeps pages disjoint when order values collide.
	orderBy := " ORDER BY u.last_active DESC, u.id DESC"
	if params.OrderBy == domain.OrderByCreated {
		orderBy = " ORDER BY u.created DESC, u.id DESC"
	}

	args = append(args, size, pagination.Offset(page, size))
	query := `SELECT` + memberColumns + `FROM users u` + where + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var rows []memberRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, err
	}

	members := make([]domain.MemberView, 0, len(rows))
	for i := range rows {
		members = append(members, rows[i].toMemberView())
	}

	return pagination.NewPagedResult(members, total, page, size), nil
}

func (r *userRepository) photosByUserID(ctx context.Context, userID int) ([]domain.Photo, error) {
	var photos []domain.Photo
	query := `
		SELECT id, user_id, url, asset_id, is_main
		FROM photos WHERE user_id = $1 ORDER BY id
	`
	if err := sqlx.SelectContext(ctx, r.db, &photos, query, userID); err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET known_as = $1, introduction = $2, looking_for = $3,
		    interests = $4, city = $5, country = $6, last_active = CURRENT_TIMESTAMP
		WHERE id = $7
	`
	result, err := r.db.ExecContext(
		ctx, query,
		user.KnownAs, user.Introduction, user.LookingFor,
		user.Interests, user.City, user.Country,
		user.ID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	r.markWrite()
	return nil
}

func (r *userRepository) AddPhoto(ctx context.Context, userID int, photo *domain.Photo) error {
	query := `
		INSERT INTO photos (user_id, url, asset_id, is_main)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query, userID, photo.URL, photo.AssetID, photo.IsMain).Scan(&photo.ID)
	if err != nil {
		return err
	}
	photo.UserID = userID
	r.markWrite()
	return nil
}

func (r *userRepository) SetPhotoMain(ctx context.Context, photoID int, isMain bool) error {
	query := `UPDATE photos SET is_main = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, isMain, photoID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrPhotoNotFound
	}
	r.markWrite()
	return nil
}

func (r *userRepository) DeletePhoto(ctx context.Context, photoID int) error {
	query := `DELETE FROM photos WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, photoID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrPhotoNotFound
	}
	r.markWrite()
	return nil
}
