// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultDelay stands in for a network round-trip
const DefaultDelay = 1500 * time.Millisecond

type State string

const (
	StateIdle      State = "idle"
	StatePending   State = "pending"
	StateSubmitted State = "submitted"
)

type PredictionType string

const (
	TypeTariff      PredictionType = "tariff"
	TypeRetaliation PredictionType = "retaliation"
	TypeMarket      PredictionType = "market"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// PotentialPoints is the points range advertised for a confidence level
func (c Confidence) PotentialPoints() string {
	switch c {
	case ConfidenceHigh:
		return "100-500"
	case ConfidenceMedium:
		return "50-250"
	default:
		return "25-100"
	}
}

var (
	ErrMissingDate    = errors.New("target date is required")
	ErrPastDate       = errors.New("target date must be after today")
	ErrInvalidPayload = errors.New("invalid prediction")
	ErrBusy           = errors.New("submission already in progress")
	ErrNotIdle        = errors.New("prediction already submitted")
	ErrClosed         = errors.New("simulator closed")
)

// Payload is the prediction form
type Payload struct {
	Type       PredictionType
	TargetDate time.Time
	Confidence Confidence
	Address    string
}

// Receipt is produced when the simulated round-trip completes. The id is
// for display only and is not unique across sessions.
type Receipt struct {
	ID              string
	PotentialPoints string
	SubmittedAt     time.Time
}

// Snapshot is a consistent copy of the simulator state
type Snapshot struct {
	State   State
	Payload *Payload
	Receipt *Receipt
}

// CanSubmit reports whether the submit affordance is enabled
func (s Snapshot) CanSubmit() bool {
	return s.State == StateIdle
}

type Option func(*Simulator)

// WithClock overrides time.Now for date validation and receipts
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

// WithIDGenerator overrides the synthetic prediction id
func WithIDGenerator(gen func() string) Option {
	return func(s *Simulator) { s.newID = gen }
}

// OnSubmitted registers a callback run after the pending→submitted
// transition, outside the simulator lock
func OnSubmitted(fn func(Receipt)) Option {
	return func(s *Simulator) { s.onSubmitted = fn }
}

// Simulator is the idle → pending → submitted state machine behind the
// prediction form. The pending delay is a timer owned by the simulator;
// Reset and Close make sure a late timer cannot change state.
type Simulator struct {
	mu          sync.Mutex
	delay       time.Duration
	state       State
	payload     *Payload
	receipt     *Receipt
	timer       *time.Timer
	generation  uint64
	closed      bool
	now         func() time.Time
	newID       func() string
	onSubmitted func(Receipt)
}

func New(delay time.Duration, opts ...Option) *Simulator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	s := &Simulator{
		delay: delay,
		state: StateIdle,
		now:   time.Now,
		newID: syntheticID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func syntheticID() string {
	return fmt.Sprintf("PRD-%04d", rand.IntN(10000))
}

// Normalize fills defaults and validates a payload
func Normalize(p Payload, now time.Time) (Payload, error) {
	if p.TargetDate.IsZero() {
		return p, ErrMissingDate
	}
	if p.Type == "" {
		p.Type = TypeTariff
	}
	if p.Confidence == "" {
		p.Confidence = ConfidenceMedium
	}

	switch p.Type {
	case TypeTariff, TypeRetaliation, TypeMarket:
	default:
		return p, fmt.Errorf("%w: unknown type %q", ErrInvalidPayload, p.Type)
	}
	switch p.Confidence {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
	default:
		return p, fmt.Errorf("%w: unknown confidence %q", ErrInvalidPayload, p.Confidence)
	}

	// the date picker only offers days after today
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !p.TargetDate.After(today) {
		return p, ErrPastDate
	}
	return p, nil
}

// Submit moves idle → pending and schedules the completion timer. A
// rejected submit leaves the state untouched.
func (s *Simulator) Submit(p Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	switch s.state {
	case StatePending:
		return ErrBusy
	case StateSubmitted:
		return ErrNotIdle
	}

	p, err := Normalize(p, s.now())
	if err != nil {
		return err
	}

	s.generation++
	gen := s.generation
	s.state = StatePending
	s.payload = &p
	s.timer = time.AfterFunc(s.delay, func() { s.fire(gen) })
	return nil
}

func (s *Simulator) fire(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.generation || s.state != StatePending {
		s.mu.Unlock()
		return
	}

	r := Receipt{
		ID:              s.newID(),
		PotentialPoints: s.payload.Confidence.PotentialPoints(),
		SubmittedAt:     s.now(),
	}
	s.state = StateSubmitted
	s.receipt = &r
	s.timer = nil
	cb := s.onSubmitted
	s.mu.Unlock()

	if cb != nil {
		cb(r)
	}
}

// Reset returns a submitted (or idle) simulator to idle with an empty
// form. Resetting while pending is rejected.
func (s *Simulator) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.state == StatePending {
		return ErrBusy
	}

	s.state = StateIdle
	s.payload = nil
	s.receipt = nil
	return nil
}

// Close stops any pending timer. The simulator rejects every later call.
func (s *Simulator) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.closed = true
	s.generation++
}

func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{State: s.state}
	if s.payload != nil {
		p := *s.payload
		snap.Payload = &p
	}
	if s.receipt != nil {
		r := *s.receipt
		snap.Receipt = &r
	}
	return snap
}
