package market

// Side is the direction of an execution.
type Side int8

const (
	// NoSide leaves a theoretical price untouched by the cost model.
	NoSide Side = 0
	Buy    Side = +1
	Sell   Side = -1
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	}
	return "NONE"
}
