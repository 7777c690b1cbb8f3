package model

// Produto mirrors the 'produtos' table. Estoque never goes below
// zero; the stores enforce that on issuance, not the handlers.
type Produto struct {
	ID        string `json:"id"`
	Nome      string `json:"nome"`
	Categoria string `json:"categoria"`
	Descricao string `json:"descricao,omitempty"`
	Estoque   int    `json:"estoque"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ProdutoPatch is a partial update for a product row.
type ProdutoPatch struct {
	Nome      *string `json:"nome,omitempty"`
	Categoria *string `json:"categoria,omitempty"`
	Descricao *string `json:"descricao,omitempty"`
	Estoque   *int    `json:"estoque,omitempty"`
}

// ProdutoSaida mirrors the 'produto_saidas' table: one stock issuance
// of a product to a recipient. Creating a row decrements the product's
// estoque by Quantidade.
type ProdutoSaida struct {
	ID           string `json:"id"`
	ProdutoID    string `json:"produto_id"`
	Quantidade   int    `json:"quantidade"`
	Destinatario string `json:"destinatario,omitempty"`
	Data         string `json:"data,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// ProdutoSaidaPatch is a partial update for an issuance row. The
// product reference is immutable after creation.
type ProdutoSaidaPatch struct {
	Quantidade   *int    `json:"quantidade,omitempty"`
	Destinatario *string `json:"destinatario,omitempty"`
	Data         *string `json:"data,omitempty"`
}
