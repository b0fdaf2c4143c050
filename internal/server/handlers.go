package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/leonid6372/portfolio-service/internal/apperrs"
	"github.com/leonid6372/portfolio-service/internal/common/domain"
	"github.com/shopspring/decimal"
)

type buyRequest struct {
	Symbol        string          `json:"symbol"`
	Quantity      int64           `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PurchaseDate  string          `json:"purchase_date"`
}

type sellRequest struct {
	Symbol    string          `json:"symbol"`
	Quantity  int64           `json:"quantity"`
	SellPrice decimal.Decimal `json:"sell_price"`
	SellDate  string          `json:"sell_date"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	req := &buyRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		respondError(w, apperrs.ErrInvalidBody)
		return
	}

	purchasedAt, err := parseDate(req.PurchaseDate, false)
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := s.deps.Ledger.Buy(r.Context(), &domain.BuyOrder{
		OwnerID:     ownerIDFromContext(r.Context()),
		Symbol:      req.Symbol,
		Quantity:    req.Quantity,
		UnitPrice:   req.PurchasePrice,
		PurchasedAt: purchasedAt,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":        "Stock added successfully",
		"lot_id":         result.LotID,
		"transaction_id": result.TransactionID,
	})
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	req := &sellRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		respondError(w, apperrs.ErrInvalidBody)
		return
	}

	soldAt, err := parseDate(req.SellDate, false)
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := s.deps.Ledger.Sell(r.Context(), &domain.SellOrder{
		OwnerID:   ownerIDFromContext(r.Context()),
		Symbol:    req.Symbol,
		Quantity:  req.Quantity,
		SellPrice: req.SellPrice,
		SoldAt:    soldAt,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":        "Stock sold successfully",
		"transaction_id": result.TransactionID,
		"cost_basis":     result.CostBasis,
		"profit_loss":    result.ProfitLoss,
	})
}

func (s *Server) handleValuation(w http.ResponseWriter, r *http.Request) {
	report, err := s.deps.Valuation.Valuate(r.Context(), ownerIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	positions, err := s.deps.Positions.GetPositions(r.Context(), ownerIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"positions": positions})
}

func (s *Server) handleSales(w http.ResponseWriter, r *http.Request) {
	sales, err := s.deps.Sales.GetSalesByOwner(r.Context(), ownerIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"sales": sales})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("print") == "true" {
		s.handleTransactionsPrint(w, r)
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		respondError(w, err)
		return
	}

	page, err := parsePage(r)
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := s.deps.Transactions.Query(r.Context(), ownerIDFromContext(r.Context()), filter, page)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type printResponse struct {
	*domain.TransactionReport

	Formatted formattedStats `json:"formatted_stats"`
	Filters   filterEcho     `json:"filters"`
}

func (s *Server) handleTransactionsPrint(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respondError(w, err)
		return
	}

	report, err := s.deps.Transactions.Report(r.Context(), ownerIDFromContext(r.Context()), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, &printResponse{
		TransactionReport: report,
		Formatted:         formatStats(report.Stats),
		Filters:           echoFilter(filter),
	})
}

func parseDate(value string, endOfDay bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}

		if endOfDay && layout == "2006-01-02" {
			parsed = parsed.Add(24*time.Hour - time.Nanosecond)
		}

		return parsed, nil
	}

	return time.Time{}, apperrs.ErrInvalidDate
}

func parsePositiveInt(raw string) (int64, error) {
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, apperrs.ErrInvalidPage
	}

	return parsed, nil
}

func parseFilter(r *http.Request) (domain.TransactionFilter, error) {
	q := r.URL.Query()

	filter := domain.TransactionFilter{
		Symbol: q.Get("symbol"),
	}

	if kind := q.Get("type"); kind != "" {
		switch kind {
		case "BUY", "buy", "SELL", "sell":
			filter.Kind = kind
		default:
			return filter, apperrs.ErrInvalidKind
		}
	}

	if from, err := parseDate(q.Get("startDate"), false); err != nil {
		return filter, err
	} else if !from.IsZero() {
		filter.From = &from
	}

	if to, err := parseDate(q.Get("endDate"), true); err != nil {
		return filter, err
	} else if !to.IsZero() {
		filter.To = &to
	}

	return filter, nil
}

func parsePage(r *http.Request) (domain.PageRequest, error) {
	q := r.URL.Query()

	page := domain.PageRequest{
		Page:  1,
		Limit: domain.DefaultTransactionsPerPage,
	}

	if raw := q.Get("page"); raw != "" {
		parsed, err := parsePositiveInt(raw)
		if err != nil {
			return page, apperrs.ErrInvalidPage
		}

		page.Page = parsed
	}

	if raw := q.Get("limit"); raw != "" {
		parsed, err := parsePositiveInt(raw)
		if err != nil || parsed > domain.MaxTransactionsPerPage {
			return page, apperrs.ErrInvalidLimit
		}

		page.Limit = parsed
	}

	return page, nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrs.ErrUnauthorized):
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, apperrs.ErrInsufficientHoldings):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Insufficient quantity"})
	case apperrs.IsValidation(err):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
