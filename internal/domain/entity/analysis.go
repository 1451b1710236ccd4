package entity

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyResponse   = errors.New("model returned empty response")
	ErrInvalidAnalysis = errors.New("invalid analysis")
)

// InputType классификация входной фотографии.
type InputType string

const (
	InputPlacePhoto InputType = "place_photo"
	InputNotAPlace  InputType = "not_a_place"
	InputAmbiguous  InputType = "ambiguous"
)

// PlaceGuess предполагаемое место. Любое поле может быть nil.
type PlaceGuess struct {
	Name    *string `json:"name"`
	City    *string `json:"city"`
	Country *string `json:"country"`
}

// PlaceAnalysis ответ модели в разобранном виде.
type PlaceAnalysis struct {
	InputType    InputType  `json:"input_type"`
	PlaceGuess   PlaceGuess `json:"place_guess"`
	Confidence   float64    `json:"confidence"`
	WhatISee     []string   `json:"what_i_see"`
	Significance []string   `json:"significance"`
	Response     string     `json:"response"`
}

// Validate проверяет допустимые значения полей.
func (a *PlaceAnalysis) Validate() error {
	switch a.InputType {
	case InputPlacePhoto, InputNotAPlace, InputAmbiguous:
	default:
		return fmt.Errorf("%w: unknown input_type %q", ErrInvalidAnalysis, a.InputType)
	}

	if a.Confidence < 0 || a.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v out of range [0,1]", ErrInvalidAnalysis, a.Confidence)
	}

	return nil
}

// IsPlace true, если модель распознала место.
func (a *PlaceAnalysis) IsPlace() bool {
	return a.InputType == InputPlacePhoto
}

// Location собирает "name, city, country" из известных частей.
func (g PlaceGuess) Location() string {
	out := ""
	for _, p := range []*string{g.Name, g.City, g.Country} {
		if p == nil || *p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += *p
	}
	return out
}
