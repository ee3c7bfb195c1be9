package waste

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

// moneyPrecision - знаков после запятой у денежных сумм (NUMERIC(14,2))
const moneyPrecision int32 = 2

// RankBids возвращает неотменённые ставки от старшей к младшей.
// При равных суммах выше ставка, поданная раньше.
func RankBids(bids []models.WasteBid) []models.WasteBid {
	ranked := make([]models.WasteBid, 0, len(bids))
	for _, b := range bids {
		if b.Status != models.BidCancelled {
			ranked = append(ranked, b)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if c := ranked[i].BidAmount.Cmp(ranked[j].BidAmount); c != 0 {
			return c > 0
		}
		if !ranked[i].BidTime.Equal(ranked[j].BidTime) {
			return ranked[i].BidTime.Before(ranked[j].BidTime)
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

// CurrentHigh - максимальная сумма среди неотменённых ставок
func CurrentHigh(bids []models.WasteBid) (decimal.Decimal, bool) {
	ranked := RankBids(bids)
	if len(ranked) == 0 {
		return decimal.Zero, false
	}
	return ranked[0].BidAmount, true
}

// Floor - сумма, которую новая ставка должна строго превысить
func Floor(auction models.WasteAuction, bids []models.WasteBid) decimal.Decimal {
	if high, ok := CurrentHigh(bids); ok {
		return high
	}
	return auction.BasePrice
}

// MeetsReserve: без резервной цены проходит любая ставка
func MeetsReserve(auction models.WasteAuction, amount decimal.Decimal) bool {
	if !auction.ReservePrice.Valid {
		return true
	}
	return amount.Round(moneyPrecision).GreaterThanOrEqual(auction.ReservePrice.Decimal.Round(moneyPrecision))
}

func hasMoneyPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Round(moneyPrecision))
}
