package model

// User tiers. Tier affects ticket display ordering (vip) and
// permissions (admin); it is not a scheduling guarantee.
const (
	TierPadrao = "padrao"
	TierVIP    = "vip"
	TierAdmin  = "admin"
)

// Usuario mirrors the 'app_users' table. PasswordHash holds a bcrypt
// hash; it is never serialized in API responses.
type Usuario struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Setor        string `json:"setor,omitempty"`
	Cargo        string `json:"cargo,omitempty"`
	Tier         string `json:"tier"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// UsuarioPatch is a partial update for a user row. PasswordHash, when
// set, must already be hashed by the caller.
type UsuarioPatch struct {
	Name         *string `json:"name,omitempty"`
	Username     *string `json:"username,omitempty"`
	Setor        *string `json:"setor,omitempty"`
	Cargo        *string `json:"cargo,omitempty"`
	Tier         *string `json:"tier,omitempty"`
	PasswordHash *string `json:"password_hash,omitempty"`
}

// ValidTier reports whether t is a known user tier.
func ValidTier(t string) bool {
	return t == TierPadrao || t == TierVIP || t == TierAdmin
}
