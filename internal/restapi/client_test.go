package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/concrem/helpdesk/internal/model"
	"github.com/concrem/helpdesk/internal/store"
)

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"not found", http.StatusNotFound, `{"error":"no row"}`, store.ErrNotFound},
		{"conflict", http.StatusConflict, `{"error":"duplicate"}`, store.ErrDuplicate},
		{"unknown column", http.StatusBadRequest, `{"error":"Unknown column 'started_at' in field list"}`, store.ErrUnknownColumn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := New(srv.URL, "")
			_, err := Tickets{C: c}.Get(context.Background(), "x")
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestAuthorizationHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]model.Setor{})
	}))
	defer srv.Close()

	c := New(srv.URL, "sekret")
	if _, err := (Sectors{C: c}).List(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got != "Bearer sekret" {
		t.Fatalf("Authorization = %q", got)
	}
}

func TestIssuanceCreateChecksStock(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /produtos/p1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.Produto{ID: "p1", Nome: "Mouse", Estoque: 3})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := Issuances{C: c}.Create(context.Background(), model.ProdutoSaida{
		ProdutoID: "p1", Quantidade: 5, Destinatario: "TI",
	})
	if !errors.Is(err, store.ErrInsufficientStock) {
		t.Fatalf("got %v, want ErrInsufficientStock", err)
	}
}

func TestIssuanceCreateDecrementsStock(t *testing.T) {
	var patched map[string]int
	mux := http.NewServeMux()
	mux.HandleFunc("GET /produtos/p1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.Produto{ID: "p1", Estoque: 10})
	})
	mux.HandleFunc("POST /produto_saidas", func(w http.ResponseWriter, r *http.Request) {
		var s model.ProdutoSaida
		json.NewDecoder(r.Body).Decode(&s)
		s.ID = "s1"
		json.NewEncoder(w).Encode(s)
	})
	mux.HandleFunc("PATCH /produtos/p1", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&patched)
		json.NewEncoder(w).Encode(model.Produto{ID: "p1", Estoque: patched["estoque"]})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, "")
	saved, err := Issuances{C: c}.Create(context.Background(), model.ProdutoSaida{
		ProdutoID: "p1", Quantidade: 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID != "s1" {
		t.Fatalf("saved id = %q", saved.ID)
	}
	if patched["estoque"] != 6 {
		t.Fatalf("patched stock = %d, want 6", patched["estoque"])
	}
}

func TestUserHashRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]apiUser{{
			Usuario: model.Usuario{ID: "u1", Username: "ana", Tier: model.TierAdmin},
			Hash:    "$2a$10$abc",
		}})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	u, err := Users{C: c}.GetByUsername(context.Background(), "  ANA ")
	if err != nil {
		t.Fatal(err)
	}
	if u.PasswordHash != "$2a$10$abc" {
		t.Fatalf("hash not carried over: %+v", u)
	}
}

func TestSectorNameUppercased(t *testing.T) {
	var got model.Setor
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(got)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if _, err := (Sectors{C: c}).Create(context.Background(), model.Setor{Nome: "almoxarifado"}); err != nil {
		t.Fatal(err)
	}
	if got.Nome != "ALMOXARIFADO" {
		t.Fatalf("nome = %q", got.Nome)
	}
}
