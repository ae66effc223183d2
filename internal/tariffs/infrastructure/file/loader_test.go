package file

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const catalogYAML = `
tariffs:
  - id: alpha
    company_name: Alpha Energía
    energy_prices: [0.15, 0.12, 0.10, 0, 0, 0]
    power_prices: [0.10, 0.05, 0, 0, 0, 0]
    fixed_term_monthly: 3
    promo: welcome
  - id: current
    company_name: current plan
    energy_prices: [0.2, 0.18, 0.15, 0, 0, 0]
    power_prices: [0.12, 0.06, 0, 0, 0, 0]
    fixed_term_monthly: 4
    surplus_compensation_price: 0.05
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tariffs.yaml")
	if err := os.WriteFile(path, []byte(catalogYAML), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	list, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 tariffs, got %d", len(list))
	}
	alpha := list[0]
	if alpha.CompanyName != "Alpha Energía" || alpha.EnergyPrices[1] != 0.12 || alpha.PowerPrices[0] != 0.10 || alpha.Promo != "welcome" {
		t.Fatalf("unexpected tariff: %+v", alpha)
	}
	if list[1].SurplusCompensationPrice != 0.05 {
		t.Fatalf("unexpected surplus price: %+v", list[1])
	}
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	cases := map[string]string{
		"missing id":     "tariffs:\n  - company_name: Acme\n",
		"duplicate id":   "tariffs:\n  - id: a\n    company_name: A\n  - id: a\n    company_name: B\n",
		"negative price": "tariffs:\n  - id: a\n    company_name: A\n    fixed_term_monthly: -1\n",
		"no company":     "tariffs:\n  - id: a\n",
		"bad yaml":       "tariffs: [",
	}
	for name, data := range cases {
		if _, err := Parse([]byte(data)); err == nil {
			t.Fatalf("%s: expected error", name)
		} else if !strings.HasPrefix(err.Error(), "tariff file:") {
			t.Fatalf("%s: unexpected error text %q", name, err)
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
