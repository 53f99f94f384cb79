package service

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/agrovista/agrodash/internal/models"
)

// ErrInvalidRange marks malformed report parameters so handlers can answer
// with a 400 instead of a 500.
var ErrInvalidRange = errors.New("invalid report range")

const dateLayout = "2006-01-02"

// CashFlowReport assembles the grouped cash-flow view over a date range.
// Real stored transactions are merged with the scheduled debt payments in
// the range; buckets past today are marked as forecast.
func (s *Service) CashFlowReport(req models.CashFlowReportRequest) (*models.CashFlowOverview, error) {
	from, err := time.Parse(dateLayout, req.From)
	if err != nil {
		return nil, fmt.Errorf("%w: bad from date %q", ErrInvalidRange, req.From)
	}
	to, err := time.Parse(dateLayout, req.To)
	if err != nil {
		return nil, fmt.Errorf("%w: bad to date %q", ErrInvalidRange, req.To)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to precedes from", ErrInvalidRange)
	}
	groupBy := req.GroupBy
	if groupBy == "" {
		groupBy = "month"
	}
	if groupBy != "week" && groupBy != "month" {
		return nil, fmt.Errorf("%w: unknown grouping %q", ErrInvalidRange, groupBy)
	}

	txs, err := s.repo.ListTransactions(from, to, req.Currency, req.Institution)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.ListPaymentsDueBetween(from, to)
	if err != nil {
		return nil, err
	}
	payments = filterPayments(payments, req.Currency, req.Institution)

	fin, err := s.repo.GetFinancials()
	if err != nil {
		return nil, err
	}

	return &models.CashFlowOverview{
		CashBalance:     fin.CashBalance,
		AvailableCredit: fin.AvailableCredit,
		MonthlyBurnRate: fin.MonthlyBurn,
		Periods:         buildPeriods(txs, payments, groupBy, fin.CashBalance, time.Now()),
	}, nil
}

func filterPayments(payments []models.DebtPayment, currency, institution string) []models.DebtPayment {
	if currency == "" && institution == "" {
		return payments
	}
	filtered := payments[:0]
	for _, p := range payments {
		if currency != "" && p.Currency != currency {
			continue
		}
		if institution != "" && p.Institution != institution {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// buildPeriods groups transactions and scheduled payments into week or month
// buckets with a running balance.
func buildPeriods(txs []models.CashFlowTransaction, payments []models.DebtPayment, groupBy string, startBalance float64, now time.Time) []models.CashFlowPeriod {
	buckets := make(map[string]*models.CashFlowPeriod)

	bucket := func(key string) *models.CashFlowPeriod {
		if b, ok := buckets[key]; ok {
			return b
		}
		b := &models.CashFlowPeriod{Period: key}
		buckets[key] = b
		return b
	}

	for _, t := range txs {
		d, err := time.Parse(dateLayout, t.Date)
		if err != nil {
			continue
		}
		b := bucket(periodKey(d, groupBy))
		if t.AmountBRL >= 0 {
			b.Inflow += t.AmountBRL
		} else {
			b.Outflow += -t.AmountBRL
		}
	}

	// scheduled installments are outflows; amount_brl already carries the
	// converted value for FX contracts
	for _, p := range payments {
		if p.DueDate == nil {
			continue
		}
		amount := p.AmountBRL
		if amount == 0 {
			amount = p.TotalAmount
		}
		bucket(periodKey(*p.DueDate, groupBy)).Outflow += amount
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	nowKey := periodKey(now, groupBy)
	balance := startBalance
	periods := make([]models.CashFlowPeriod, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		b.Inflow = round2(b.Inflow)
		b.Outflow = round2(b.Outflow)
		b.Net = round2(b.Inflow - b.Outflow)
		balance += b.Net
		b.Balance = round2(balance)
		b.Forecast = k > nowKey
		periods = append(periods, *b)
	}
	return periods
}

// periodKey buckets a date: months as YYYY-MM, weeks as the Monday of the
// ISO week in YYYY-MM-DD form. Both sort chronologically as strings within
// their grouping.
func periodKey(d time.Time, groupBy string) string {
	if groupBy == "week" {
		offset := (int(d.Weekday()) + 6) % 7 // days since Monday
		return d.AddDate(0, 0, -offset).Format(dateLayout)
	}
	return d.Format("2006-01")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
