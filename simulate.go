package drip

import (
	"fmt"

	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

// Point is the state of the reinvested position at the end of a trading day.
type Point struct {
	Date     date.Date
	Close    decimal.Decimal
	Dividend decimal.Decimal // dividend per share paid that day
	Bought   decimal.Decimal // shares bought with that day's dividend
	Shares   decimal.Decimal // shares held after reinvestment
	Value    decimal.Decimal // Shares * Close
	Gain     decimal.Decimal // Value - Close
}

// Simulation is the result of Simulate, aligned on the dates of its PriceSeries.
type Simulation struct {
	initial decimal.Decimal
	points  []Point
}

// Simulate runs the dividend reinvestment recurrence over s, starting with initial shares.
//
// The first observation seeds the position: its dividend, if any, is not reinvested.
// On every later day paying a dividend, dividend/close shares are added to the position.
// The value of the position is always exactly shares * close.
func Simulate(s *PriceSeries, initial decimal.Decimal) (*Simulation, error) {
	if s.Len() == 0 {
		return nil, ErrEmptySeries
	}
	if !initial.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidShares, initial)
	}

	points := make([]Point, 0, s.Len())
	for i, o := range s.All() {
		if !o.Close.IsPositive() && (i == 0 || !o.Dividend.IsZero()) {
			return nil, &DegenerateInputError{Date: o.Date, Reason: fmt.Sprintf("close is %s", o.Close)}
		}
		if o.Dividend.IsNegative() {
			return nil, &DegenerateInputError{Date: o.Date, Reason: fmt.Sprintf("dividend is %s", o.Dividend)}
		}
		if i == 0 {
			points = append(points, newPoint(o, initial, decimal.Zero))
			continue
		}
		points = append(points, reinvest(points[i-1].Shares, o))
	}
	return &Simulation{initial: initial, points: points}, nil
}

// reinvest computes the day's point from the shares held the day before.
func reinvest(held decimal.Decimal, o Observation) Point {
	bought := decimal.Zero
	if o.PaysDividend() {
		bought = o.Dividend.Div(o.Close)
	}
	return newPoint(o, held.Add(bought), bought)
}

func newPoint(o Observation, shares, bought decimal.Decimal) Point {
	value := shares.Mul(o.Close)
	return Point{
		Date:     o.Date,
		Close:    o.Close,
		Dividend: o.Dividend,
		Bought:   bought,
		Shares:   shares,
		Value:    value,
		Gain:     value.Sub(o.Close),
	}
}

// InitialShares returns the number of shares the simulation started with.
func (s *Simulation) InitialShares() decimal.Decimal { return s.initial }

// Len returns the number of points.
func (s *Simulation) Len() int { return len(s.points) }

// At returns the i-th point.
func (s *Simulation) At(i int) Point { return s.points[i] }

// Points returns a copy of all points.
func (s *Simulation) Points() []Point {
	res := make([]Point, len(s.points))
	copy(res, s.points)
	return res
}

// Last returns the final point.
func (s *Simulation) Last() Point { return s.points[len(s.points)-1] }

// Shares returns the share count series.
func (s *Simulation) Shares() []decimal.Decimal {
	return column(s.points, func(p Point) decimal.Decimal { return p.Shares })
}

// Values returns the position value series.
func (s *Simulation) Values() []decimal.Decimal {
	return column(s.points, func(p Point) decimal.Decimal { return p.Value })
}

// Gains returns the value minus close series.
func (s *Simulation) Gains() []decimal.Decimal {
	return column(s.points, func(p Point) decimal.Decimal { return p.Gain })
}

func column(points []Point, f func(Point) decimal.Decimal) []decimal.Decimal {
	res := make([]decimal.Decimal, len(points))
	for i, p := range points {
		res[i] = f(p)
	}
	return res
}
