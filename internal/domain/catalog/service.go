package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ValidateService aplica as regras de nome obrigatório e preço positivo.
func ValidateService(name string, price decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return httperr.ErrValidation("service_name_required", "Nome do serviço é obrigatório.")
	}
	if !price.IsPositive() {
		return httperr.ErrValidation("invalid_price", "O preço deve ser maior que zero.")
	}
	return nil
}

// ParsePrice aceita "35", "35.5" ou "35,50".
func ParsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return decimal.Zero, httperr.ErrValidation("price_required", "Preço é obrigatório.")
	}
	p, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, httperr.ErrValidation("invalid_price", "Preço inválido.")
	}
	return p.Round(2), nil
}
