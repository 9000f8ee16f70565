// Package alerts derives financial notices from recent transaction history.
// The engine is pure: it reads the slice it is given plus the clock, and
// never persists or deduplicates anything.
package alerts

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caixa-dev/caixa/internal/model"
)

const (
	msgNoActivity        = "Hoje ainda não houve nenhuma entrada registrada"
	msgSpendingSpike     = "Você gastou %s%% mais esta semana do que na anterior"
	msgNegativeStreak    = "%d dias seguidos com saldo negativo"
	msgMonthlyComparison = "Este mês você faturou %s%% menos que o anterior"

	weekDays   = 7
	streakDays = 7
)

var hundred = decimal.NewFromInt(100)

// Thresholds tunes when each check fires.
type Thresholds struct {
	NoActivityHour      int             // no_activity only from this local hour on
	SpikeInfoPercent    decimal.Decimal // week-over-week increase that raises spending_spike
	SpikeWarningPercent decimal.Decimal // increase above which spending_spike is a warning
	StreakMinDays       int             // negative days needed for negative_streak
	MonthlyMinDay       int             // first day of month monthly_comparison runs
	MonthlyDropRatio    decimal.Decimal // this/last income ratio below which it fires
}

// DefaultThresholds returns the stock tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		NoActivityHour:      12,
		SpikeInfoPercent:    decimal.NewFromInt(30),
		SpikeWarningPercent: decimal.NewFromInt(50),
		StreakMinDays:       3,
		MonthlyMinDay:       5,
		MonthlyDropRatio:    decimal.RequireFromString("0.7"),
	}
}

// Clock returns the current time.
type Clock func() time.Time

// Engine evaluates the alert heuristics. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	now        Clock
	loc        *time.Location
	thresholds Thresholds
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.now = c }
}

// WithLocation sets the zone used to cut days and months.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithThresholds overrides the default tuning.
func WithThresholds(t Thresholds) Option {
	return func(e *Engine) { e.thresholds = t }
}

// NewEngine creates an Engine using the wall clock and local zone unless
// overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:        time.Now,
		loc:        time.Local,
		thresholds: DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate runs the default engine.
func Generate(txns []model.Transaction) []model.Alert {
	return NewEngine().Generate(txns)
}

// Generate evaluates every check against txns and returns the alerts that
// fired, always in the order no_activity, spending_spike, negative_streak,
// monthly_comparison. txns must belong to a single business.
func (e *Engine) Generate(txns []model.Transaction) []model.Alert {
	now := e.now().In(e.loc)

	checks := []func([]model.Transaction, time.Time) *model.Alert{
		e.checkNoActivity,
		e.checkSpendingSpike,
		e.checkNegativeStreak,
		e.checkMonthlyComparison,
	}

	var out []model.Alert
	for _, check := range checks {
		if a := check(txns, now); a != nil {
			out = append(out, *a)
		}
	}
	return out
}

// day truncates t to local midnight.
func (e *Engine) day(t time.Time) time.Time {
	t = t.In(e.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, e.loc)
}

func (e *Engine) checkNoActivity(txns []model.Transaction, now time.Time) *model.Alert {
	if now.Hour() < e.thresholds.NoActivityHour {
		return nil
	}
	today := e.day(now)
	for _, t := range txns {
		if e.day(t.Date).Equal(today) {
			return nil
		}
	}
	return &model.Alert{
		Type:     model.AlertNoActivity,
		Message:  msgNoActivity,
		Severity: model.SeverityInfo,
	}
}

func (e *Engine) checkSpendingSpike(txns []model.Transaction, now time.Time) *model.Alert {
	weekStart := now.AddDate(0, 0, -weekDays)
	lastWeekStart := weekStart.AddDate(0, 0, -weekDays)

	thisWeek := decimal.Zero
	lastWeek := decimal.Zero
	for _, t := range txns {
		if t.Type != model.Expense {
			continue
		}
		switch {
		case !t.Date.Before(weekStart):
			thisWeek = thisWeek.Add(t.Amount)
		case !t.Date.Before(lastWeekStart):
			lastWeek = lastWeek.Add(t.Amount)
		}
	}

	if !lastWeek.IsPositive() {
		return nil
	}

	increase := thisWeek.Sub(lastWeek).Div(lastWeek).Mul(hundred)
	if !increase.GreaterThan(e.thresholds.SpikeInfoPercent) {
		return nil
	}

	severity := model.SeverityInfo
	if increase.GreaterThan(e.thresholds.SpikeWarningPercent) {
		severity = model.SeverityWarning
	}
	return &model.Alert{
		Type:     model.AlertSpendingSpike,
		Message:  fmt.Sprintf(msgSpendingSpike, increase.Round(0).String()),
		Severity: severity,
	}
}

func (e *Engine) checkNegativeStreak(txns []model.Transaction, now time.Time) *model.Alert {
	today := e.day(now)
	oldest := today.AddDate(0, 0, -(streakDays - 1))

	balances := make(map[string]decimal.Decimal, streakDays)
	for _, t := range txns {
		d := e.day(t.Date)
		if d.Before(oldest) || d.After(today) {
			continue
		}
		key := d.Format(time.DateOnly)
		balances[key] = balances[key].Add(t.Signed())
	}

	streak := 0
	for i := 0; i < streakDays; i++ {
		if !balances[today.AddDate(0, 0, -i).Format(time.DateOnly)].IsNegative() {
			break
		}
		streak++
	}

	if streak < e.thresholds.StreakMinDays {
		return nil
	}
	return &model.Alert{
		Type:     model.AlertNegativeStreak,
		Message:  fmt.Sprintf(msgNegativeStreak, streak),
		Severity: model.SeverityWarning,
	}
}

func (e *Engine) checkMonthlyComparison(txns []model.Transaction, now time.Time) *model.Alert {
	if now.Day() < e.thresholds.MonthlyMinDay {
		return nil
	}

	thisStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, e.loc)
	nextStart := thisStart.AddDate(0, 1, 0)
	lastStart := thisStart.AddDate(0, -1, 0)

	thisMonth := decimal.Zero
	lastMonth := decimal.Zero
	for _, t := range txns {
		if t.Type != model.Income {
			continue
		}
		switch {
		case !t.Date.Before(thisStart) && t.Date.Before(nextStart):
			thisMonth = thisMonth.Add(t.Amount)
		case !t.Date.Before(lastStart) && t.Date.Before(thisStart):
			lastMonth = lastMonth.Add(t.Amount)
		}
	}

	if !lastMonth.IsPositive() {
		return nil
	}
	if !thisMonth.LessThan(lastMonth.Mul(e.thresholds.MonthlyDropRatio)) {
		return nil
	}

	decrease := lastMonth.Sub(thisMonth).Div(lastMonth).Mul(hundred)
	return &model.Alert{
		Type:     model.AlertMonthlyComparison,
		Message:  fmt.Sprintf(msgMonthlyComparison, decrease.Round(0).String()),
		Severity: model.SeverityWarning,
	}
}
