package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventmarketplace/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, name, last_name
		FROM users
		WHERE id = $1
	`
	u := &domain.User{}
	var nameNull, lastNameNull sql.NullString
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &nameNull, &lastNameNull)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u.Name = nameNull.String
	u.LastName = lastNameNull.String
	return u, nil
}
