package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/sculptkit/internal/engine/sculpt"
)

// Script describes a reproducible sculpting session: a starting
// primitive, a fixed camera, and a list of strokes to replay.
type Script struct {
	Primitive    string   `yaml:"primitive"`
	Subdivisions int      `yaml:"subdivisions"`
	Camera       Camera   `yaml:"camera"`
	Strokes      []Stroke `yaml:"strokes"`
}

// Camera is the fixed orbit camera used for every stroke.
type Camera struct {
	Distance float32 `yaml:"distance"`
	Yaw      float32 `yaml:"yaw"`
	Pitch    float32 `yaml:"pitch"`
}

// Stroke is one pointer-down .. pointer-up sequence.
type Stroke struct {
	Tool     string   `yaml:"tool"`
	Radius   float32  `yaml:"radius"`
	Strength float32  `yaml:"strength"`
	Invert   bool     `yaml:"invert"`
	Symmetry Symmetry `yaml:"symmetry"`
	Samples  []Point  `yaml:"samples"`
}

// Symmetry mirrors the stroke across the listed axes.
type Symmetry struct {
	X bool `yaml:"x"`
	Y bool `yaml:"y"`
	Z bool `yaml:"z"`
}

// Point is a screen position in script viewport coordinates.
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// LoadScript reads and validates a stroke script.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}

	s := &Script{
		Primitive:    "sphere",
		Subdivisions: 2,
		Camera:       Camera{Distance: 3},
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}

	if s.Camera.Distance <= 0 {
		return nil, fmt.Errorf("camera distance must be positive, got %f", s.Camera.Distance)
	}
	for i, st := range s.Strokes {
		if _, err := sculpt.ParseTool(st.Tool); err != nil {
			return nil, fmt.Errorf("stroke %d: %w", i, err)
		}
		if st.Radius <= 0 || st.Strength <= 0 {
			return nil, fmt.Errorf("stroke %d: radius and strength must be positive", i)
		}
		if len(st.Samples) == 0 {
			return nil, fmt.Errorf("stroke %d: no samples", i)
		}
	}
	return s, nil
}
