// Package restapi implements the store interfaces against the legacy
// REST backend. It is the fallback transport for deployments that have
// no MySQL instance: the handlers stay identical and only the wiring
// in main decides which backend serves.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/concrem/helpdesk/internal/model"
	"github.com/concrem/helpdesk/internal/store"
)

// Client talks JSON to the legacy API. One Client is shared by all
// resource views; it is safe for concurrent use.
type Client struct {
	base string
	key  string
	http *http.Client
}

// New builds a client for the API at base. key, when non-empty, is
// sent as a bearer token on every request.
func New(base, key string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		key:  key,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+c.key)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return c.httpError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// httpError maps HTTP failures onto the store sentinels so handlers
// behave the same regardless of backend.
func (c *Client) httpError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	msg := strings.ToLower(string(b))
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return store.ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", store.ErrDuplicate, strings.TrimSpace(string(b)))
	case strings.Contains(msg, "unknown column") || strings.Contains(msg, "1054"):
		return fmt.Errorf("%w: %s", store.ErrUnknownColumn, strings.TrimSpace(string(b)))
	}
	return fmt.Errorf("api: %s %s: status %d", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode)
}

func list[T any](c *Client, ctx context.Context, path string) ([]T, error) {
	out := []T{}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func get[T any](c *Client, ctx context.Context, path, id string) (T, error) {
	var out T
	err := c.do(ctx, http.MethodGet, path+"/"+url.PathEscape(id), nil, &out)
	return out, err
}

func create[T any](c *Client, ctx context.Context, path string, in T) (T, error) {
	var out T
	err := c.do(ctx, http.MethodPost, path, in, &out)
	return out, err
}

func patch[T any](c *Client, ctx context.Context, path, id string, in any) (T, error) {
	var out T
	err := c.do(ctx, http.MethodPatch, path+"/"+url.PathEscape(id), in, &out)
	return out, err
}

func (c *Client) delete(ctx context.Context, path, id string) error {
	return c.do(ctx, http.MethodDelete, path+"/"+url.PathEscape(id), nil, nil)
}

// Tickets

type Tickets struct{ C *Client }

func (s Tickets) List(ctx context.Context) ([]model.Ticket, error) {
	return list[model.Ticket](s.C, ctx, "/chamados")
}

func (s Tickets) Get(ctx context.Context, id string) (model.Ticket, error) {
	return get[model.Ticket](s.C, ctx, "/chamados", id)
}

func (s Tickets) Create(ctx context.Context, t model.Ticket) (model.Ticket, error) {
	return create(s.C, ctx, "/chamados", t)
}

func (s Tickets) Update(ctx context.Context, id string, p model.TicketPatch) (model.Ticket, error) {
	return patch[model.Ticket](s.C, ctx, "/chamados", id, p)
}

func (s Tickets) Delete(ctx context.Context, id string) error {
	return s.C.delete(ctx, "/chamados", id)
}

// Equipment

type Equipment struct{ C *Client }

func (s Equipment) List(ctx context.Context) ([]model.Equipamento, error) {
	return list[model.Equipamento](s.C, ctx, "/equipamentos")
}

func (s Equipment) Create(ctx context.Context, e model.Equipamento) (model.Equipamento, error) {
	return create(s.C, ctx, "/equipamentos", e)
}

func (s Equipment) Update(ctx context.Context, id string, p model.EquipamentoPatch) (model.Equipamento, error) {
	return patch[model.Equipamento](s.C, ctx, "/equipamentos", id, p)
}

func (s Equipment) Delete(ctx context.Context, id string) error {
	return s.C.delete(ctx, "/equipamentos", id)
}

// Products

type Products struct{ C *Client }

func (s Products) List(ctx context.Context) ([]model.Produto, error) {
	return list[model.Produto](s.C, ctx, "/produtos")
}

func (s Products) Create(ctx context.Context, p model.Produto) (model.Produto, error) {
	return create(s.C, ctx, "/produtos", p)
}

func (s Products) Update(ctx context.Context, id string, p model.ProdutoPatch) (model.Produto, error) {
	return patch[model.Produto](s.C, ctx, "/produtos", id, p)
}

func (s Products) Delete(ctx context.Context, id string) error {
	return s.C.delete(ctx, "/produtos", id)
}

// Issuances

type Issuances struct{ C *Client }

func (s Issuances) List(ctx context.Context) ([]model.ProdutoSaida, error) {
	return list[model.ProdutoSaida](s.C, ctx, "/produto_saidas")
}

// Create checks stock, records the issuance and writes the decremented
// stock back. The legacy API has no multi-row writes, so this is not
// atomic; concurrent issuances against the fallback can race.
func (s Issuances) Create(ctx context.Context, out model.ProdutoSaida) (model.ProdutoSaida, error) {
	prod, err := get[model.Produto](s.C, ctx, "/produtos", out.ProdutoID)
	if err != nil {
		return model.ProdutoSaida{}, err
	}
	if prod.Estoque < out.Quantidade {
		return model.ProdutoSaida{}, store.ErrInsufficientStock
	}
	saved, err := create(s.C, ctx, "/produto_saidas", out)
	if err != nil {
		return model.ProdutoSaida{}, err
	}
	rest := prod.Estoque - out.Quantidade
	if _, err := patch[model.Produto](s.C, ctx, "/produtos", out.ProdutoID, map[string]int{"estoque": rest}); err != nil {
		return model.ProdutoSaida{}, err
	}
	return saved, nil
}

func (s Issuances) Update(ctx context.Context, id string, p model.ProdutoSaidaPatch) (model.ProdutoSaida, error) {
	return patch[model.ProdutoSaida](s.C, ctx, "/produto_saidas", id, p)
}

func (s Issuances) Delete(ctx context.Context, id string) error {
	return s.C.delete(ctx, "/produto_saidas", id)
}

// Sectors

type Sectors struct{ C *Client }

func (s Sectors) List(ctx context.Context) ([]model.Setor, error) {
	return list[model.Setor](s.C, ctx, "/setores")
}

func (s Sectors) Create(ctx context.Context, in model.Setor) (model.Setor, error) {
	in.Nome = strings.ToUpper(in.Nome)
	return create(s.C, ctx, "/setores", in)
}

func (s Sectors) Update(ctx context.Context, id string, p model.SetorPatch) (model.Setor, error) {
	if p.Nome != nil {
		up := strings.ToUpper(*p.Nome)
		p.Nome = &up
	}
	return patch[model.Setor](s.C, ctx, "/setores", id, p)
}

func (s Sectors) Delete(ctx context.Context, id string) error {
	return s.C.delete(ctx, "/setores", id)
}

// Users

type Users struct{ C *Client }

// apiUser carries the password hash over the wire. model.Usuario
// deliberately never serializes it, but the legacy API stores it as a
// plain column, so the client needs its own projection.
type apiUser struct {
	model.Usuario
	Hash string `json:"password_hash,omitempty"`
}

func (a apiUser) user() model.Usuario {
	u := a.Usuario
	u.PasswordHash = a.Hash
	return u
}

func (s Users) List(ctx context.Context) ([]model.Usuario, error) {
	raw, err := list[apiUser](s.C, ctx, "/usuarios")
	if err != nil {
		return nil, err
	}
	out := make([]model.Usuario, 0, len(raw))
	for _, a := range raw {
		out = append(out, a.user())
	}
	return out, nil
}

func (s Users) Get(ctx context.Context, id string) (model.Usuario, error) {
	a, err := get[apiUser](s.C, ctx, "/usuarios", id)
	if err != nil {
		return model.Usuario{}, err
	}
	return a.user(), nil
}

func (s Users) GetByUsername(ctx context.Context, username string) (model.Usuario, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	all, err := list[apiUser](s.C, ctx, "/usuarios?username="+url.QueryEscape(username))
	if err != nil {
		return model.Usuario{}, err
	}
	for _, a := range all {
		if strings.EqualFold(a.Username, username) {
			return a.user(), nil
		}
	}
	return model.Usuario{}, store.ErrNotFound
}

func (s Users) Create(ctx context.Context, u model.Usuario) (model.Usuario, error) {
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	in := apiUser{Usuario: u, Hash: u.PasswordHash}
	out, err := create(s.C, ctx, "/usuarios", in)
	if err != nil {
		return model.Usuario{}, err
	}
	return out.user(), nil
}

func (s Users) Update(ctx context.Context, id string, p model.UsuarioPatch) (model.Usuario, error) {
	out, err := patch[apiUser](s.C, ctx, "/usuarios", id, p)
	if err != nil {
		return model.Usuario{}, err
	}
	return out.user(), nil
}

func (s Users) Delete(ctx context.Context, id string) error {
	return s.C.delete(ctx, "/usuarios", id)
}
