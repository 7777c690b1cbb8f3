package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/concrem/helpdesk/internal/model"
	"github.com/concrem/helpdesk/internal/store"
)

const userCols = "id, name, username, setor, cargo, tier, password_hash, created_at"

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

func scanUsuario(row interface{ Scan(...any) error }) (model.Usuario, error) {
	var (
		u                       model.Usuario
		setor, cargo, createdAt sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Username, &setor, &cargo, &u.Tier, &u.PasswordHash, &createdAt); err != nil {
		return model.Usuario{}, err
	}
	u.Setor = setor.String
	u.Cargo = cargo.String
	u.CreatedAt = createdAt.String
	return u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]model.Usuario, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userCols+" FROM app_users ORDER BY created_at DESC")
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()
	out := []model.Usuario{}
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// GetByUsername fetches a user by normalized username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.Usuario, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM app_users WHERE username = ? LIMIT 1", username)
	u, err := scanUsuario(row)
	if err != nil {
		return model.Usuario{}, translateErr(err)
	}
	return u, nil
}

func (r *UserRepo) Get(ctx context.Context, id string) (model.Usuario, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM app_users WHERE id = ? LIMIT 1", id)
	u, err := scanUsuario(row)
	if err != nil {
		return model.Usuario{}, translateErr(err)
	}
	return u, nil
}

// Create inserts a user. Name and setor arrive already uppercased by
// the handler; username is normalized here like the login path does.
func (r *UserRepo) Create(ctx context.Context, u model.Usuario) (model.Usuario, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO app_users (id, name, username, setor, cargo, tier, password_hash) VALUES (?,?,?,?,?,?,?)",
		u.ID, u.Name, u.Username, nullable(u.Setor), nullable(u.Cargo), u.Tier, u.PasswordHash)
	if err != nil {
		return model.Usuario{}, translateErr(err)
	}
	return r.Get(ctx, u.ID)
}

func (r *UserRepo) Update(ctx context.Context, id string, p model.UsuarioPatch) (model.Usuario, error) {
	var set setClause
	if p.Name != nil {
		set.add("name", *p.Name)
	}
	if p.Username != nil {
		set.add("username", strings.ToLower(strings.TrimSpace(*p.Username)))
	}
	if p.Setor != nil {
		set.add("setor", *p.Setor)
	}
	if p.Cargo != nil {
		set.add("cargo", *p.Cargo)
	}
	if p.Tier != nil {
		set.add("tier", *p.Tier)
	}
	if p.PasswordHash != nil {
		set.add("password_hash", *p.PasswordHash)
	}
	if set.empty() {
		return r.Get(ctx, id)
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE app_users SET "+set.sql()+" WHERE id = ?", append(set.args, id)...); err != nil {
		return model.Usuario{}, translateErr(err)
	}
	return r.Get(ctx, id)
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM app_users WHERE id = ?", id)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}
