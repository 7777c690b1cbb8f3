package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/concrem/helpdesk/internal/model"
	"github.com/concrem/helpdesk/internal/store"
)

type SectorRepo struct{ DB *sql.DB }

func NewSectorRepo(db *sql.DB) *SectorRepo { return &SectorRepo{DB: db} }

func scanSetor(row interface{ Scan(...any) error }) (model.Setor, error) {
	var (
		s                                    model.Setor
		responsavel, ramal, local, createdAt sql.NullString
	)
	if err := row.Scan(&s.ID, &s.Nome, &responsavel, &ramal, &local, &createdAt); err != nil {
		return model.Setor{}, err
	}
	s.Responsavel = responsavel.String
	s.Ramal = ramal.String
	s.Localizacao = local.String
	s.CreatedAt = createdAt.String
	return s, nil
}

func (r *SectorRepo) List(ctx context.Context) ([]model.Setor, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, nome, responsavel, ramal, localizacao, created_at FROM setores ORDER BY created_at DESC")
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()
	out := []model.Setor{}
	for rows.Next() {
		s, err := scanSetor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SectorRepo) get(ctx context.Context, id string) (model.Setor, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT id, nome, responsavel, ramal, localizacao, created_at FROM setores WHERE id = ? LIMIT 1", id)
	s, err := scanSetor(row)
	if err != nil {
		return model.Setor{}, translateErr(err)
	}
	return s, nil
}

// Create canonicalizes nome to upper case before the insert; the
// sector directory is stored uppercase throughout.
func (r *SectorRepo) Create(ctx context.Context, s model.Setor) (model.Setor, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO setores (id, nome, responsavel, ramal, localizacao) VALUES (?,?,?,?,?)",
		s.ID, strings.ToUpper(s.Nome), nullable(s.Responsavel), nullable(s.Ramal), nullable(s.Localizacao))
	if err != nil {
		return model.Setor{}, translateErr(err)
	}
	return r.get(ctx, s.ID)
}

func (r *SectorRepo) Update(ctx context.Context, id string, p model.SetorPatch) (model.Setor, error) {
	var set setClause
	if p.Nome != nil {
		set.add("nome", strings.ToUpper(*p.Nome))
	}
	if p.Responsavel != nil {
		set.add("responsavel", *p.Responsavel)
	}
	if p.Ramal != nil {
		set.add("ramal", *p.Ramal)
	}
	if p.Localizacao != nil {
		set.add("localizacao", *p.Localizacao)
	}
	if set.empty() {
		return r.get(ctx, id)
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE setores SET "+set.sql()+" WHERE id = ?", append(set.args, id)...); err != nil {
		return model.Setor{}, translateErr(err)
	}
	return r.get(ctx, id)
}

func (r *SectorRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM setores WHERE id = ?", id)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}
