package model

// Setor mirrors the 'setores' table. Nome is canonicalized to upper
// case on every write so the sector directory stays consistent with
// the uppercase setor fields on users and equipment.
type Setor struct {
	ID          string `json:"id"`
	Nome        string `json:"nome"`
	Responsavel string `json:"responsavel,omitempty"`
	Ramal       string `json:"ramal,omitempty"`
	Localizacao string `json:"localizacao,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// SetorPatch is a partial update for a sector row.
type SetorPatch struct {
	Nome        *string `json:"nome,omitempty"`
	Responsavel *string `json:"responsavel,omitempty"`
	Ramal       *string `json:"ramal,omitempty"`
	Localizacao *string `json:"localizacao,omitempty"`
}
