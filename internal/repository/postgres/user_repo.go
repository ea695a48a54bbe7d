package postgres

import (
	"context"

	"heyjob-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

// Upsert creates the profile on first sight and refreshes the contact claims afterwards.
func (r *userRepo) Upsert(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, phone, email, created_at, updated_at)
              VALUES ($1, $2, $3, now(), now())
              ON CONFLICT (id) DO UPDATE SET phone = EXCLUDED.phone, email = EXCLUDED.email, updated_at = now()
              RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query, user.ID, user.Phone, user.Email).Scan(&user.CreatedAt, &user.UpdatedAt)
	return classify(err)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, phone, email, created_at, updated_at FROM users WHERE id = $1`
	var user domain.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Phone, &user.Email, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, classify(err)
	}
	return &user, nil
}
