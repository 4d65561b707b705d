package procurement

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/supply-chain-api/internal/domain"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TieBreakPolicy decide qué regla gana cuando dos comparten MinQuantity.
type TieBreakPolicy string

const (
	TieBreakLastWriteWins     TieBreakPolicy = "last-write-wins"
	TieBreakFirstWriteWins    TieBreakPolicy = "first-write-wins"
	TieBreakHighestPercentage TieBreakPolicy = "highest-percentage"
)

// ParseTieBreakPolicy interpreta el valor de configuración. Vacío = last-write-wins.
func ParseTieBreakPolicy(s string) (TieBreakPolicy, error) {
	switch TieBreakPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", TieBreakLastWriteWins:
		return TieBreakLastWriteWins, nil
	case TieBreakFirstWriteWins:
		return TieBreakFirstWriteWins, nil
	case TieBreakHighestPercentage:
		return TieBreakHighestPercentage, nil
	}
	return "", fmt.Errorf("%w: política de desempate desconocida %q", domain.ErrInvalidInput, s)
}

// DiscountResolver resuelve el porcentaje de descuento aplicable a una cantidad (servicio de dominio).
type DiscountResolver struct {
	policy TieBreakPolicy
}

// NewDiscountResolver construye el resolver con la política de desempate indicada.
func NewDiscountResolver(policy TieBreakPolicy) *DiscountResolver {
	if policy == "" {
		policy = TieBreakLastWriteWins
	}
	return &DiscountResolver{policy: policy}
}

// Policy devuelve la política de desempate configurada.
func (r *DiscountResolver) Policy() TieBreakPolicy { return r.policy }

// Resolve devuelve el porcentaje de la regla vigente con mayor MinQuantity <= quantity; 0 si ninguna califica.
func (r *DiscountResolver) Resolve(rules []entity.DiscountRule, quantity int, today time.Time) decimal.Decimal {
	best := r.BestRule(rules, quantity, today)
	if best == nil {
		return decimal.Zero
	}
	return best.Percentage
}

// BestRule devuelve la regla que aplicaría Resolve, o nil si ninguna califica.
func (r *DiscountResolver) BestRule(rules []entity.DiscountRule, quantity int, today time.Time) *entity.DiscountRule {
	var best *entity.DiscountRule
	for i := range rules {
		rule := &rules[i]
		if rule.MinQuantity > quantity || !ActiveOn(*rule, today) {
			continue
		}
		switch {
		case best == nil || rule.MinQuantity > best.MinQuantity:
			best = rule
		case rule.MinQuantity == best.MinQuantity && r.prefers(*rule, *best):
			best = rule
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

// Upsert inserta o reemplaza la regla con la misma MinQuantity. Devuelve false y la lista intacta
// si la regla es inválida o si la política de desempate conserva la existente.
// Nunca modifica el slice recibido.
func (r *DiscountResolver) Upsert(rules []entity.DiscountRule, rule entity.DiscountRule) ([]entity.DiscountRule, bool) {
	if err := ValidateRule(rule); err != nil {
		return rules, false
	}
	out := make([]entity.DiscountRule, len(rules), len(rules)+1)
	copy(out, rules)
	for i := range out {
		if out[i].MinQuantity != rule.MinQuantity {
			continue
		}
		if !r.prefers(rule, out[i]) {
			return rules, false
		}
		out[i] = rule
		return out, true
	}
	out = append(out, rule)
	sort.SliceStable(out, func(i, j int) bool { return out[i].MinQuantity < out[j].MinQuantity })
	return out, true
}

// prefers indica si candidate (escrita después) debe reemplazar a current.
func (r *DiscountResolver) prefers(candidate, current entity.DiscountRule) bool {
	switch r.policy {
	case TieBreakFirstWriteWins:
		return false
	case TieBreakHighestPercentage:
		return candidate.Percentage.GreaterThan(current.Percentage)
	default:
		return true
	}
}

// ValidateRule verifica porcentaje en [0,100], MinQuantity >= 0 y ventana coherente.
// Las reglas STORE exigen ambas fechas; una ventana con una sola fecha nunca es válida.
func ValidateRule(rule entity.DiscountRule) error {
	if rule.Percentage.LessThan(decimal.Zero) || rule.Percentage.GreaterThan(hundred) {
		return fmt.Errorf("%w: porcentaje fuera de [0,100]", domain.ErrInvalidInput)
	}
	if rule.MinQuantity < 0 {
		return fmt.Errorf("%w: cantidad mínima negativa", domain.ErrInvalidInput)
	}
	switch rule.Scope {
	case entity.DiscountScopeSupplier, entity.DiscountScopeStore:
	default:
		return fmt.Errorf("%w: alcance %q desconocido", domain.ErrInvalidInput, rule.Scope)
	}
	if (rule.ValidFrom == nil) != (rule.ValidTo == nil) {
		return fmt.Errorf("%w: la vigencia requiere fecha inicial y final", domain.ErrInvalidInput)
	}
	if rule.Scope == entity.DiscountScopeStore && !rule.HasWindow() {
		return fmt.Errorf("%w: los descuentos de tienda requieren vigencia", domain.ErrInvalidInput)
	}
	if rule.HasWindow() && DateOnly(*rule.ValidFrom).After(DateOnly(rule.ValidTo.In(rule.ValidFrom.Location()))) {
		return fmt.Errorf("%w: fecha inicial posterior a la final", domain.ErrInvalidInput)
	}
	return nil
}

// ActiveOn indica si la regla está vigente en la fecha de today (límites inclusivos).
func ActiveOn(rule entity.DiscountRule, today time.Time) bool {
	day := DateOnly(today)
	if rule.ValidFrom != nil && day.Before(DateOnly(rule.ValidFrom.In(today.Location()))) {
		return false
	}
	if rule.ValidTo != nil && day.After(DateOnly(rule.ValidTo.In(today.Location()))) {
		return false
	}
	return true
}
