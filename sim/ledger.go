package sim

// Position is the single open position a ledger can hold. Amount is in
// base-asset units and never negative; AvgEntryPrice is meaningless while
// Amount is zero.
type Position struct {
	Amount        float64
	AvgEntryPrice float64
}

// Fill describes one executed buy or sell at its executable price.
type Fill struct {
	Price  float64
	Amount float64
	Fee    float64
}

// Ledger owns the cash balance and the open position for one engine run.
// Buys and sells are applied atomically: balance, position amount and
// average entry price all move in the same call, or not at all.
//
// Ledger is not safe for concurrent use; each run owns its own instance.
type Ledger struct {
	cash     float64
	position Position
}

// NewLedger returns a ledger holding the given cash and no position.
func NewLedger(initialCash float64) *Ledger {
	return &Ledger{cash: initialCash}
}

// Reset returns the ledger to its initial state: all cash, no position.
func (l *Ledger) Reset(initialCash float64) {
	l.cash = initialCash
	l.position = Position{}
}

func (l *Ledger) Cash() float64      { return l.cash }
func (l *Ledger) Position() Position { return l.position }

// Value is the mark-to-market portfolio value at the given price.
func (l *Ledger) Value(price float64) float64 {
	return l.cash + l.position.Amount*price
}

// Buy applies a buy without a funds check. The signal engine sizes entries
// from the available budget before calling, so the debit is covered by
// construction; checking again would reject entries over float rounding.
func (l *Ledger) Buy(price, amount, feeRate float64) Fill {
	cost := price * amount
	fee := cost * feeRate

	l.cash -= cost + fee
	l.applyEntry(price, amount)

	return Fill{Price: price, Amount: amount, Fee: fee}
}

// TryBuy applies a buy only if cash covers cost plus fee. Grid orders are
// all-or-nothing: a buy that does not fit is rejected, never clipped.
func (l *Ledger) TryBuy(price, amount, feeRate float64) (Fill, bool) {
	cost := price * amount
	fee := cost * feeRate

	if l.cash < cost+fee {
		return Fill{}, false
	}

	l.cash -= cost + fee
	l.applyEntry(price, amount)

	return Fill{Price: price, Amount: amount, Fee: fee}, true
}

// Sell applies a sell only if the position covers the amount. Proceeds net
// of fee are credited; a negative fee rate credits a rebate on top.
func (l *Ledger) Sell(price, amount, feeRate float64) (Fill, bool) {
	if l.position.Amount < amount {
		return Fill{}, false
	}

	revenue := price * amount
	fee := revenue * feeRate

	l.cash += revenue - fee
	l.position.Amount -= amount
	if l.position.Amount == 0 {
		l.position.AvgEntryPrice = 0
	}

	return Fill{Price: price, Amount: amount, Fee: fee}, true
}

// applyEntry folds a buy into the volume-weighted average entry price.
func (l *Ledger) applyEntry(price, amount float64) {
	prev := l.position.Amount
	total := prev + amount
	if total <= 0 {
		return
	}
	l.position.AvgEntryPrice = (l.position.AvgEntryPrice*prev + price*amount) / total
	l.position.Amount = total
}
