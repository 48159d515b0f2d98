package chartscale

import (
	"math"
)

// BandOptions describes a band scale.
// Domain holds the first and last (integer) index; the range
// is split into Domain.Max - Domain.Min + 1 bands.
type BandOptions struct {
	Domain Bounds
	Range  Bounds
	// Padding is the fraction of a step reserved between
	// bands and at both ends, in [0, 1]. 0 means contiguous bands.
	Padding float64
}

// Band maps discrete indices to equal-width
// segments of the range.
type Band struct {
	domain Bounds
	rng    Bounds

	first     float64 // first index
	n         float64 // number of bands
	start     float64 // lowest band start
	reverse   bool
	step      float64
	bandwidth float64
}

// NewBand returns the band scale described by opts.
func NewBand(opts BandOptions) *Band {
	s := &Band{domain: opts.Domain, rng: opts.Range}
	s.first = math.Ceil(opts.Domain.Min)
	n := math.Floor(opts.Domain.Max) - s.first + 1
	if !(n > 0) {
		n = 0
	}
	s.n = n

	padding := math.Min(1, math.Max(0, opts.Padding))
	start, stop := opts.Range.Min, opts.Range.Max
	s.reverse = stop < start
	if s.reverse {
		start, stop = stop, start
	}
	s.step = (stop - start) / math.Max(1, n-padding+padding*2)
	s.start = start + (stop-start-s.step*(n-padding))*0.5
	s.bandwidth = s.step * (1 - padding)
	return s
}

func (s *Band) Domain() Bounds { return s.domain }
func (s *Band) Range() Bounds  { return s.rng }

// Len returns the number of bands.
// It saturates to math.MaxInt for huge domains.
func (s *Band) Len() int {
	if s.n >= math.MaxInt {
		return math.MaxInt
	}
	return int(s.n)
}

// Bandwidth returns the width of each band.
func (s *Band) Bandwidth() float64 { return s.bandwidth }

// Step returns the distance between the starts of adjacent bands.
func (s *Band) Step() float64 { return s.step }

// Apply returns the start of the band at index,
// or NaN if index is outside the domain.
func (s *Band) Apply(index int) float64 {
	k := float64(index) - s.first
	if k < 0 || k >= s.n {
		return math.NaN()
	}
	if s.reverse {
		k = s.n - 1 - k
	}
	return s.start + s.step*k
}

// Center returns the middle of the band at index.
func (s *Band) Center(index int) float64 {
	return s.Apply(index) + s.bandwidth/2
}
