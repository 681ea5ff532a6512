package model

import "fmt"

// TokenPackage is a purchasable bundle of tokens. Amount is in paise.
type TokenPackage struct {
	ID     string `json:"id"`
	Tokens int64  `json:"tokens"`
	Amount int64  `json:"amount"`
	Label  string `json:"label"`
}

type TokenPackageView struct {
	TokenPackage
	PriceDisplay string `json:"priceDisplay"`
}

var tokenPackages = []TokenPackage{
	{ID: "starter", Tokens: 50, Amount: 9900, Label: "50 Tokens"},
	{ID: "pro", Tokens: 150, Amount: 24900, Label: "150 Tokens"},
	{ID: "unlimited", Tokens: 500, Amount: 49900, Label: "500 Tokens"},
}

// TokenPackages returns the package catalog in display order.
func TokenPackages() []TokenPackage {
	out := make([]TokenPackage, len(tokenPackages))
	copy(out, tokenPackages)
	return out
}

func LookupTokenPackage(id string) (TokenPackage, bool) {
	for _, p := range tokenPackages {
		if p.ID == id {
			return p, true
		}
	}
	return TokenPackage{}, false
}

func (p TokenPackage) PriceDisplay() string {
	return fmt.Sprintf("₹%d", p.Amount/100)
}

func (p TokenPackage) View() TokenPackageView {
	return TokenPackageView{TokenPackage: p, PriceDisplay: p.PriceDisplay()}
}
