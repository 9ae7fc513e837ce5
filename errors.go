package drip

import (
	"errors"
	"fmt"

	"github.com/etnz/drip/date"
)

var (
	// ErrEmptySeries is returned by Simulate when there is no observation to seed the simulation.
	ErrEmptySeries = errors.New("empty price series")
	// ErrUnsortedSeries is returned when observation dates are not strictly increasing.
	ErrUnsortedSeries = errors.New("price series dates are not strictly increasing")
	// ErrInvalidShares is returned when the initial share count is not positive.
	ErrInvalidShares = errors.New("initial shares must be positive")
	// ErrDegenerateInput matches every *DegenerateInputError.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrNotFound is returned by providers that know the ticker does not exist.
	ErrNotFound = errors.New("ticker not found")
	// ErrNoData is returned when a query yields no priced day at all. It is terminal for that query.
	ErrNoData = errors.New("no data")
	// ErrNoDividends reports a series without a single dividend payment.
	ErrNoDividends = errors.New("no dividends")
	// ErrEmptyTicker is returned for a query without ticker.
	ErrEmptyTicker = errors.New("empty ticker")
	// ErrInvalidRange is returned for a query whose start date is after its end date.
	ErrInvalidRange = date.ErrInvalidRange
)

// DegenerateInputError reports an observation the simulation cannot use, typically
// a dividend paid on a day without a positive closing price.
type DegenerateInputError struct {
	Date   date.Date
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate input on %s: %s", e.Date, e.Reason)
}

// Is makes errors.Is(err, ErrDegenerateInput) true.
func (e *DegenerateInputError) Is(target error) bool { return target == ErrDegenerateInput }
