// Package main searches the steering weights for the values that keep the
// most prey alive, using CMA-ES over headless runs.
package main

import (
	"github.com/pthm-cable/flocking/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name string  // column name in the log
	Min  float64 // lower bound
	Max  float64 // upper bound
	Get  func(*config.Config) float64
	Set  func(*config.Config, float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the four steering weights, bounded by the
// config's weight limits.
func NewParamVector() *ParamVector {
	lim := config.Limits.Weight
	return &ParamVector{
		Specs: []ParamSpec{
			{
				Name: "separation", Min: lim.Min, Max: lim.Max,
				Get: func(c *config.Config) float64 { return c.Weights.Separation },
				Set: func(c *config.Config, v float64) { c.Weights.Separation = v },
			},
			{
				Name: "alignment", Min: lim.Min, Max: lim.Max,
				Get: func(c *config.Config) float64 { return c.Weights.Alignment },
				Set: func(c *config.Config, v float64) { c.Weights.Alignment = v },
			},
			{
				Name: "cohesion", Min: lim.Min, Max: lim.Max,
				Get: func(c *config.Config) float64 { return c.Weights.Cohesion },
				Set: func(c *config.Config, v float64) { c.Weights.Cohesion = v },
			},
			{
				Name: "flee", Min: lim.Min, Max: lim.Max,
				Get: func(c *config.Config) float64 { return c.Weights.Flee },
				Set: func(c *config.Config, v float64) { c.Weights.Flee = v },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to the [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds. CMA-ES samples freely, so
// denormalized values can fall outside.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].Set(cfg, v)
	}
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.Get(cfg)
	}
	return out
}
