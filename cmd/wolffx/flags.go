package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erinpentecost/wolffx/internal/job"
	"github.com/erinpentecost/wolffx/internal/raster"
)

// parseParams turns NAME=VALUE pairs into a map. Later pairs win.
func parseParams(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("parameter %q: want NAME=VALUE", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}

// parseSize reads WxH.
func parseSize(s string) (job.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return job.Size{}, fmt.Errorf("size %q: want WxH", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return job.Size{}, fmt.Errorf("size %q: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return job.Size{}, fmt.Errorf("size %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return job.Size{}, fmt.Errorf("size %q: must be positive", s)
	}
	return job.Size{Width: width, Height: height}, nil
}

// parseRect reads X,Y,W,H.
func parseRect(s string) (raster.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return raster.Rect{}, fmt.Errorf("rect %q: want X,Y,W,H", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return raster.Rect{}, fmt.Errorf("rect %q: %w", s, err)
		}
		v[i] = f
	}
	return raster.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}
