package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-auth-keeper/models"
)

var userColumns = []string{"user_id", "email", "password_hash", "created_at"}

func buildCreateUserQuery(placeholder sq.PlaceholderFormat, user models.User) (string, []any, error) {
	return sq.Insert(user.TableName()).
		Columns(userColumns...).
		Values(user.UserID, user.Email, user.PasswordHash, user.CreatedAt).
		PlaceholderFormat(placeholder).
		ToSql()
}

func buildFindUserByEmailQuery(placeholder sq.PlaceholderFormat, email string) (string, []any, error) {
	return sq.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"email": email}).
		Limit(1).
		PlaceholderFormat(placeholder).
		ToSql()
}
