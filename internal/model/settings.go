package model

// Settings holds the plain configuration values read by the core. The
// core does not own settings persistence; they travel with the snapshot.
type Settings struct {
	TaxRatePercent float64 `json:"tax_rate_percent" validate:"gte=0"`
	CurrencySymbol string  `json:"currency_symbol"`
}

// DefaultSettings are applied whenever a snapshot is missing them.
func DefaultSettings() Settings {
	return Settings{
		TaxRatePercent: 10,
		CurrencySymbol: "Rp",
	}
}
