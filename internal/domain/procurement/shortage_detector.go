package procurement

import (
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AlertThreshold calcula la cantidad mínima de alerta: 0.5*demanda + 0.5*días de abastecimiento,
// redondeado al entero más cercano (mitades hacia arriba).
func AlertThreshold(demandLevel, supplyDays int) int {
	sum := decimal.NewFromInt(int64(demandLevel)).Add(decimal.NewFromInt(int64(supplyDays)))
	return int(sum.Div(decimal.NewFromInt(2)).Round(0).IntPart())
}

// ShortageMap devuelve catalogNumber → cantidad faltante para las filas cuyo stock actual
// (tienda + bodega) está por debajo del umbral. Las filas en o sobre el umbral se omiten.
func ShortageMap(stock []entity.BranchStock) map[int]int {
	out := make(map[int]int)
	for _, s := range stock {
		current := s.Current()
		if current < s.MinimumQuantityForAlert {
			out[s.CatalogNumber] = s.MinimumQuantityForAlert - current
		}
	}
	return out
}
