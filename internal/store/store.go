// Package store is the data access layer for every Birikio collection.
//
// Each method is scoped to a single owning user; nothing here ever
// aggregates across users.
package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/model"
)

type Store struct {
	conn    database.Queryable
	builder sq.StatementBuilderType
}

// New creates a Store over a database connection.
func New(conn database.Queryable) *Store {
	return &Store{
		conn:    conn,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// IsNotFound reports whether an error means a row did not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, database.ErrNoRows)
}

func scanUser(row database.Row, user *model.User) error {
	return row.Scan(&user.ID, &user.Username)
}

// GetUserByUsername loads a user and their password hash for login.
func (s *Store) GetUserByUsername(username string) (model.User, string, error) {
	query, args, err := s.builder.
		Select("id", "username", "password").
		From("birikio_user").
		Where(sq.Eq{"username": username}).
		ToSql()

	if err != nil {
		return model.User{}, "", errors.Wrap(err, "build user query")
	}

	var user model.User
	var passwordHash string

	row := s.conn.QueryRow(query, args...)

	if err := row.Scan(&user.ID, &user.Username, &passwordHash); err != nil {
		return model.User{}, "", err
	}

	return user, passwordHash, nil
}

// CreateUser inserts a login user with an already-hashed password.
func (s *Store) CreateUser(username, passwordHash string) error {
	query, args, err := s.builder.
		Insert("birikio_user").
		Columns("username", "password").
		Values(username, passwordHash).
		ToSql()

	if err != nil {
		return errors.Wrap(err, "build insert user")
	}

	if err := s.conn.Exec(query, args...); err != nil {
		return errors.Wrap(err, "exec insert user")
	}

	return nil
}

// ListUserIDs returns the IDs of every user, for batch jobs.
func (s *Store) ListUserIDs() ([]int, error) {
	var idList []int

	err := model.LoadList(
		s.conn,
		&idList,
		100,
		func(row database.Row, id *int) error {
			return row.Scan(id)
		},
		"select id from birikio_user order by id",
	)

	return idList, err
}
