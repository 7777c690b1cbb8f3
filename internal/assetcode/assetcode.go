// Package assetcode derives the human-readable inventory codes shown
// next to equipment rows (PC003, TAB-012, JV-004, ...). Codes are a
// display value computed from the current record set on every call;
// they are never written back to the patrimonio column unless a user
// explicitly accepts a suggestion into the create form.
package assetcode

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/concrem/helpdesk/internal/model"
)

// Bucket prefixes in display-rank order. NoBucket marks equipment
// that belongs to no bucket and is excluded from numbering.
const (
	JV       = "JV"
	PC       = "PC"
	TAB      = "TAB"
	CEL      = "CEL"
	IMP      = "IMP"
	MON      = "MON"
	NoBucket = "-"
)

var bucketRank = map[string]int{JV: 0, PC: 1, TAB: 2, CEL: 3, IMP: 4, MON: 5, NoBucket: 6}

var (
	codeRe   = regexp.MustCompile(`^(?i)(JV|PC|TAB|CEL|IMP|MON)-?(\d{3})$`)
	jvNameRe = regexp.MustCompile(`^\s*(?i:jovem\s+aprendiz)\s+\d{1,2}\s*$`)
)

// Prefix classifies an equipment record into its code bucket. A name
// matching "jovem aprendiz NN" always wins over the declared type.
func Prefix(e model.Equipamento) string {
	if jvNameRe.MatchString(e.Nome) {
		return JV
	}
	switch e.Tipo {
	case "Desktop", "Notebook":
		return PC
	case "Tablet":
		return TAB
	case "Smartphone":
		return CEL
	case "Impressora":
		return IMP
	case "Monitor":
		return MON
	}
	return NoBucket
}

// ParseCode parses a patrimony string as a bucket code, e.g. "tab-012"
// -> (TAB, 12, true). The dash is optional and matching is
// case-insensitive.
func ParseCode(patrimonio string) (prefix string, num int, ok bool) {
	m := codeRe.FindStringSubmatch(patrimonio)
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return strings.ToUpper(m[1]), n, true
}

// Format renders a bucket code. PC codes have no separator; all other
// buckets are dashed.
func Format(prefix string, num int) string {
	if prefix == PC {
		return fmt.Sprintf("PC%03d", num)
	}
	return fmt.Sprintf("%s-%03d", prefix, num)
}

// Assign computes the id -> display code mapping for the given record
// set. Records whose patrimony already parses with the bucket's own
// prefix keep their number; the rest receive sequential numbers past
// the bucket's current maximum, walked in name order. The mapping is
// deterministic and idempotent for an unchanged input. Bucketless
// records are absent from the map.
func Assign(list []model.Equipamento) map[string]string {
	codes := make(map[string]string, len(list))
	for _, prefix := range []string{JV, PC, TAB, CEL, IMP, MON} {
		assignBucket(codes, bucketMembers(list, prefix), prefix)
	}
	return codes
}

func bucketMembers(list []model.Equipamento, prefix string) []model.Equipamento {
	var out []model.Equipamento
	for _, e := range list {
		if Prefix(e) == prefix {
			out = append(out, e)
		}
	}
	return out
}

// assignBucket numbers one bucket. The max is taken over every
// parseable code in the bucket's member list, whatever its prefix, so
// a mistagged row still reserves its number.
func assignBucket(codes map[string]string, members []model.Equipamento, prefix string) {
	max := 0
	for _, e := range members {
		if _, n, ok := ParseCode(e.Patrimonio); ok && n > max {
			max = n
		}
	}
	next := max + 1
	sorted := append([]model.Equipamento(nil), members...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Nome) < strings.ToLower(sorted[j].Nome)
	})
	for _, e := range sorted {
		if p, n, ok := ParseCode(e.Patrimonio); ok && p == prefix {
			codes[e.ID] = Format(prefix, n)
			continue
		}
		codes[e.ID] = Format(prefix, next)
		next++
	}
}

// Order returns a sorted copy of list for display: bucket rank first,
// then numeric code ascending, ties broken by case-insensitive name.
func Order(list []model.Equipamento) []model.Equipamento {
	codes := Assign(list)
	num := func(e model.Equipamento) int {
		if _, n, ok := ParseCode(e.Patrimonio); ok {
			return n
		}
		if code, ok := codes[e.ID]; ok {
			if _, n, ok := ParseCode(code); ok {
				return n
			}
		}
		return 9999
	}
	out := append([]model.Equipamento(nil), list...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := bucketRank[Prefix(out[i])], bucketRank[Prefix(out[j])]
		if ri != rj {
			return ri < rj
		}
		ni, nj := num(out[i]), num(out[j])
		if ni != nj {
			return ni < nj
		}
		return strings.ToLower(out[i].Nome) < strings.ToLower(out[j].Nome)
	})
	return out
}

// Suggest proposes the next free code for a new record with the given
// name and type, based on the current record set. It returns "" when
// the record falls in no bucket.
func Suggest(list []model.Equipamento, nome, tipo string) string {
	prefix := Prefix(model.Equipamento{Nome: nome, Tipo: tipo})
	if prefix == NoBucket {
		return ""
	}
	max := 0
	for _, e := range bucketMembers(list, prefix) {
		if _, n, ok := ParseCode(e.Patrimonio); ok && n > max {
			max = n
		}
	}
	return Format(prefix, max+1)
}

// CheckDuplicate validates a submitted patrimony against the existing
// records before any write: an error is returned when the string
// matches an existing patrimony case-insensitively, or when its parsed
// (prefix, number) collides with another record's parsed code.
// excludeID skips the record being edited.
func CheckDuplicate(list []model.Equipamento, patrimonio, excludeID string) error {
	pat := strings.TrimSpace(patrimonio)
	if pat == "" {
		return nil
	}
	prefix, num, parsed := ParseCode(pat)
	for _, e := range list {
		if e.ID == excludeID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(e.Patrimonio), pat) {
			return fmt.Errorf("patrimônio %q já cadastrado", e.Patrimonio)
		}
		if parsed {
			if p, n, ok := ParseCode(e.Patrimonio); ok && p == prefix && n == num {
				return fmt.Errorf("código %s já utilizado pelo patrimônio %q", Format(prefix, num), e.Patrimonio)
			}
		}
	}
	return nil
}
