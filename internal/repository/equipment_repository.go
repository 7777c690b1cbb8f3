package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/concrem/helpdesk/internal/model"
	"github.com/concrem/helpdesk/internal/store"
)

const equipCols = `id, nome, tipo, patrimonio, marca, modelo, status, usuario, setor,
	ram, armazenamento, processador, polegadas, ghz, created_at`

type EquipmentRepo struct{ DB *sql.DB }

func NewEquipmentRepo(db *sql.DB) *EquipmentRepo { return &EquipmentRepo{DB: db} }

func scanEquipamento(row interface{ Scan(...any) error }) (model.Equipamento, error) {
	var (
		e                                        model.Equipamento
		marca, modelo, usuario, setor            sql.NullString
		ram, arm, proc, pol, ghz, createdAt      sql.NullString
	)
	err := row.Scan(&e.ID, &e.Nome, &e.Tipo, &e.Patrimonio, &marca, &modelo,
		&e.Status, &usuario, &setor, &ram, &arm, &proc, &pol, &ghz, &createdAt)
	if err != nil {
		return model.Equipamento{}, err
	}
	e.Marca = marca.String
	e.Modelo = modelo.String
	e.Usuario = usuario.String
	e.Setor = setor.String
	e.RAM = ram.String
	e.Armazenamento = arm.String
	e.Processador = proc.String
	e.Polegadas = pol.String
	e.GHz = ghz.String
	e.CreatedAt = createdAt.String
	return e, nil
}

func (r *EquipmentRepo) List(ctx context.Context) ([]model.Equipamento, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+equipCols+" FROM equipamentos ORDER BY created_at DESC")
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()
	out := []model.Equipamento{}
	for rows.Next() {
		e, err := scanEquipamento(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EquipmentRepo) get(ctx context.Context, id string) (model.Equipamento, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+equipCols+" FROM equipamentos WHERE id = ? LIMIT 1", id)
	e, err := scanEquipamento(row)
	if err != nil {
		return model.Equipamento{}, translateErr(err)
	}
	return e, nil
}

func (r *EquipmentRepo) Create(ctx context.Context, e model.Equipamento) (model.Equipamento, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO equipamentos
		 (id, nome, tipo, patrimonio, marca, modelo, status, usuario, setor,
		  ram, armazenamento, processador, polegadas, ghz)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		e.ID, e.Nome, e.Tipo, e.Patrimonio, nullable(e.Marca), nullable(e.Modelo),
		e.Status, nullable(e.Usuario), nullable(e.Setor), nullable(e.RAM),
		nullable(e.Armazenamento), nullable(e.Processador), nullable(e.Polegadas), nullable(e.GHz))
	if err != nil {
		return model.Equipamento{}, translateErr(err)
	}
	return r.get(ctx, e.ID)
}

func (r *EquipmentRepo) Update(ctx context.Context, id string, p model.EquipamentoPatch) (model.Equipamento, error) {
	var set setClause
	if p.Nome != nil {
		set.add("nome", *p.Nome)
	}
	if p.Tipo != nil {
		set.add("tipo", *p.Tipo)
	}
	if p.Patrimonio != nil {
		set.add("patrimonio", *p.Patrimonio)
	}
	if p.Marca != nil {
		set.add("marca", *p.Marca)
	}
	if p.Modelo != nil {
		set.add("modelo", *p.Modelo)
	}
	if p.Status != nil {
		set.add("status", *p.Status)
	}
	if p.Usuario != nil {
		set.add("usuario", *p.Usuario)
	}
	if p.Setor != nil {
		set.add("setor", *p.Setor)
	}
	if p.RAM != nil {
		set.add("ram", *p.RAM)
	}
	if p.Armazenamento != nil {
		set.add("armazenamento", *p.Armazenamento)
	}
	if p.Processador != nil {
		set.add("processador", *p.Processador)
	}
	if p.Polegadas != nil {
		set.add("polegadas", *p.Polegadas)
	}
	if p.GHz != nil {
		set.add("ghz", *p.GHz)
	}
	if set.empty() {
		return r.get(ctx, id)
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE equipamentos SET "+set.sql()+" WHERE id = ?", append(set.args, id)...); err != nil {
		return model.Equipamento{}, translateErr(err)
	}
	return r.get(ctx, id)
}

func (r *EquipmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM equipamentos WHERE id = ?", id)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}
