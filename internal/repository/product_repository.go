package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/concrem/helpdesk/internal/model"
	"github.com/concrem/helpdesk/internal/store"
)

type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

func scanProduto(row interface{ Scan(...any) error }) (model.Produto, error) {
	var (
		p                    model.Produto
		descricao, createdAt sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Nome, &p.Categoria, &descricao, &p.Estoque, &createdAt); err != nil {
		return model.Produto{}, err
	}
	p.Descricao = descricao.String
	p.CreatedAt = createdAt.String
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]model.Produto, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, nome, categoria, descricao, estoque, created_at FROM produtos ORDER BY created_at DESC")
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()
	out := []model.Produto{}
	for rows.Next() {
		p, err := scanProduto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) get(ctx context.Context, id string) (model.Produto, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT id, nome, categoria, descricao, estoque, created_at FROM produtos WHERE id = ? LIMIT 1", id)
	p, err := scanProduto(row)
	if err != nil {
		return model.Produto{}, translateErr(err)
	}
	return p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p model.Produto) (model.Produto, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO produtos (id, nome, categoria, descricao, estoque) VALUES (?,?,?,?,?)",
		p.ID, p.Nome, p.Categoria, nullable(p.Descricao), p.Estoque)
	if err != nil {
		return model.Produto{}, translateErr(err)
	}
	return r.get(ctx, p.ID)
}

func (r *ProductRepo) Update(ctx context.Context, id string, p model.ProdutoPatch) (model.Produto, error) {
	var set setClause
	if p.Nome != nil {
		set.add("nome", *p.Nome)
	}
	if p.Categoria != nil {
		set.add("categoria", *p.Categoria)
	}
	if p.Descricao != nil {
		set.add("descricao", *p.Descricao)
	}
	if p.Estoque != nil {
		set.add("estoque", *p.Estoque)
	}
	if set.empty() {
		return r.get(ctx, id)
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE produtos SET "+set.sql()+" WHERE id = ?", append(set.args, id)...); err != nil {
		return model.Produto{}, translateErr(err)
	}
	return r.get(ctx, id)
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM produtos WHERE id = ?", id)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}
