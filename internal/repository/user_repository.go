package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"blogHub/internal/auth"
	"blogHub/internal/models"
	"blogHub/internal/pagination"
)

type userRepository struct {
	db *sqlx.DB
}

type UserFilter struct {
	Search      string
	SearchEmail bool
	Role        string
	ActiveOnly  bool
	Sort        string
	Page        pagination.Params
}

var userSortColumns = map[string]string{
	"createdAt": "u.created_at",
	"username":  "u.username",
	"lastLogin": "u.last_login",
	"role":      "u.role",
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = hashedPassword
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Followers == nil {
		user.Followers = pq.StringArray{}
	}
	if user.Following == nil {
		user.Following = pq.StringArray{}
	}
	if user.Bookmarks == nil {
		user.Bookmarks = pq.StringArray{}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (user_id, username, email, password_hash, role, avatar, bio, is_active,
			followers, following, bookmarks, refresh_token, refresh_token_expiry_time, created_at, updated_at)
		VALUES (:user_id, :username, :email, :password_hash, :role, :avatar, :bio, :is_active,
			:followers, :following, :bookmarks, :refresh_token, :refresh_token_expiry_time, :created_at, :updated_at)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if c := uniqueConstraint(err); c == usersUsernameKey || c == usersEmailKey {
			return fmt.Errorf("%w: %s", ErrDuplicate, c)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE user_id = $1`, userID)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE email = $1`, email)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, `SELECT * FROM users WHERE username = $1`, username)
}

// VerifyPassword returns ErrNotFound for both an unknown email and a wrong password.
func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrNotFound
	}

	return user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users
		SET username = :username, avatar = :avatar, bio = :bio, location = :location,
			website = :website, twitter = :twitter, github = :github, updated_at = :updated_at
		WHERE user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if uniqueConstraint(err) == usersUsernameKey {
			return fmt.Errorf("%w: %s", ErrDuplicate, usersUsernameKey)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return expectRows(result)
}

func (r *userRepository) UpdateRole(ctx context.Context, userID, role string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = $1, updated_at = now() WHERE user_id = $2`, role, userID)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return expectRows(result)
}

func (r *userRepository) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = $1 WHERE user_id = $2`, at, userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// DeleteUser removes the user together with their posts, comments and uploads, and scrubs their id
// from every follow, like and bookmark set.
func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`UPDATE users SET followers = array_remove(followers, $1), following = array_remove(following, $1)
			WHERE $1 = ANY(followers) OR $1 = ANY(following)`,
		`UPDATE posts SET liked_by = array_remove(liked_by, $1), likes = cardinality(array_remove(liked_by, $1)) WHERE $1 = ANY(liked_by)`,
		`UPDATE comments SET liked_by = array_remove(liked_by, $1), likes = cardinality(array_remove(liked_by, $1)) WHERE $1 = ANY(liked_by)`,
		`UPDATE users SET bookmarks = ARRAY(
			SELECT b FROM unnest(bookmarks) AS b WHERE b NOT IN (SELECT post_id FROM posts WHERE author_id = $1))
			WHERE bookmarks && ARRAY(SELECT post_id FROM posts WHERE author_id = $1)`,
		`DELETE FROM comments WHERE author_id = $1 OR post_id IN (SELECT post_id FROM posts WHERE author_id = $1)`,
		`DELETE FROM posts WHERE author_id = $1`,
		`DELETE FROM images WHERE uploader_id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, userID); err != nil {
			return fmt.Errorf("failed to delete user content: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if err := expectRows(result); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user delete: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	query := `
		UPDATE users
		SET refresh_token = $1, refresh_token_expiry_time = $2
		WHERE user_id = $3
	`

	_, err := r.db.ExecContext(ctx, query, refreshToken, expiryTime, userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	query := `
		SELECT * FROM users
		WHERE refresh_token = $1
		AND refresh_token_expiry_time > CURRENT_TIMESTAMP
	`
	return r.getOne(ctx, query, refreshToken)
}

// Follow adds the followerID -> targetID edge on both users in one transaction. Existing edges are kept as is.
func (r *userRepository) Follow(ctx context.Context, followerID, targetID string) error {
	return r.editEdge(ctx,
		`UPDATE users SET following = array_append(following, $2) WHERE user_id = $1 AND NOT ($2 = ANY(following))`,
		`UPDATE users SET followers = array_append(followers, $1) WHERE user_id = $2 AND NOT ($1 = ANY(followers))`,
		followerID, targetID)
}

func (r *userRepository) Unfollow(ctx context.Context, followerID, targetID string) error {
	return r.editEdge(ctx,
		`UPDATE users SET following = array_remove(following, $2) WHERE user_id = $1`,
		`UPDATE users SET followers = array_remove(followers, $1) WHERE user_id = $2`,
		followerID, targetID)
}

func (r *userRepository) editEdge(ctx context.Context, followerStmt, targetStmt, followerID, targetID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, followerStmt, followerID, targetID); err != nil {
		return fmt.Errorf("failed to update following: %w", err)
	}
	if _, err := tx.ExecContext(ctx, targetStmt, followerID, targetID); err != nil {
		return fmt.Errorf("failed to update followers: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit follow: %w", err)
	}
	return nil
}

func (r *userRepository) AddBookmark(ctx context.Context, userID, postID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET bookmarks = array_append(bookmarks, $2) WHERE user_id = $1 AND NOT ($2 = ANY(bookmarks))`,
		userID, postID)
	if err != nil {
		return fmt.Errorf("failed to add bookmark: %w", err)
	}
	return nil
}

func (r *userRepository) RemoveBookmark(ctx context.Context, userID, postID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET bookmarks = array_remove(bookmarks, $2) WHERE user_id = $1`, userID, postID)
	if err != nil {
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}
	return nil
}

// ListSummaries returns the public projection of the given users, ordered by username.
func (r *userRepository) ListSummaries(ctx context.Context, userIDs []string, p pagination.Params) ([]*models.UserSummary, int, error) {
	q := NewQuery().In("u.user_id", userIDs)

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users u`+q.Where(), q.Args()...); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	window, args := q.Page(p)
	users := make([]*models.UserSummary, 0)
	query := `SELECT u.user_id, u.username, u.avatar, u.bio FROM users u` + q.Where() + ` ORDER BY u.username ASC` + window
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (r *userRepository) List(ctx context.Context, f UserFilter) ([]*models.AdminUser, int, error) {
	q := NewQuery()
	if f.SearchEmail {
		q.Search(f.Search, "u.username", "u.email")
	} else {
		q.Search(f.Search, "u.username", "u.bio")
	}
	q.Eq("u.role", f.Role)
	if f.ActiveOnly {
		q.Raw("u.is_active")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users u`+q.Where(), q.Args()...); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	window, args := q.Page(f.Page)
	query := `
		SELECT u.*, (SELECT COUNT(*) FROM posts p WHERE p.author_id = u.user_id) AS post_count
		FROM users u` + q.Where() + OrderBy(f.Sort, userSortColumns, "-createdAt", "u.user_id") + window

	users := make([]*models.AdminUser, 0)
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Stats aggregates the user's published posts and comments. Follow counts are filled in by the caller.
func (r *userRepository) Stats(ctx context.Context, userID string) (models.UserStats, error) {
	var stats models.UserStats
	query := `
		SELECT
			COUNT(*) AS posts,
			COALESCE(SUM(likes), 0) AS likes,
			COALESCE(SUM(views), 0) AS views,
			(SELECT COUNT(*) FROM comments WHERE author_id = $1) AS comments
		FROM posts
		WHERE author_id = $1 AND status = 'published'
	`
	if err := r.db.GetContext(ctx, &stats, query, userID); err != nil {
		return stats, fmt.Errorf("failed to get user stats: %w", err)
	}
	return stats, nil
}

func (r *userRepository) CountAdmins(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE role = $1`, models.RoleAdmin); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

func expectRows(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
