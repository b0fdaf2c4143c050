package server

import (
	"time"

	"github.com/leonid6372/portfolio-service/internal/common/domain"
	"github.com/leonid6372/portfolio-service/pkg/format"
)

// formattedStats mirrors TransactionStats with display-ready amounts for
// the printable report, which is rendered without client-side formatting.
type formattedStats struct {
	TotalInvested string `json:"total_invested"`
	TotalSold     string `json:"total_sold"`
	NetPosition   string `json:"net_position"`
}

func formatStats(stats domain.TransactionStats) formattedStats {
	return formattedStats{
		TotalInvested: format.Amount(stats.TotalInvested),
		TotalSold:     format.Amount(stats.TotalSold),
		NetPosition:   format.Amount(stats.NetPosition),
	}
}

type filterEcho struct {
	Symbol    string `json:"symbol,omitempty"`
	Type      string `json:"type,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

func echoFilter(filter domain.TransactionFilter) filterEcho {
	echo := filterEcho{
		Symbol: filter.Symbol,
		Type:   filter.Kind,
	}

	if filter.From != nil {
		echo.StartDate = filter.From.Format(time.RFC3339)
	}
	if filter.To != nil {
		echo.EndDate = filter.To.Format(time.RFC3339)
	}

	return echo
}
