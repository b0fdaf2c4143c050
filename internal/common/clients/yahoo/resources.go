package yahoo

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (r *chartResponse) Price() (decimal.Decimal, error) {
	if r.Chart.Error != nil {
		return decimal.Zero, fmt.Errorf("provider error %s: %s", r.Chart.Error.Code, r.Chart.Error.Description)
	}

	if len(r.Chart.Result) == 0 {
		return decimal.Zero, fmt.Errorf("empty chart result")
	}

	price := decimal.NewFromFloat(r.Chart.Result[0].Meta.RegularMarketPrice)
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive market price %s", price)
	}

	return price, nil
}
