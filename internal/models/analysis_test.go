package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionsFor(t *testing.T) {
	assert.Equal(t, ChestConditions, ConditionsFor(XRayTypeChest))
	assert.Equal(t, BoneConditions, ConditionsFor(XRayTypeBone))
	// unknown types fall back to chest
	assert.Equal(t, ChestConditions, ConditionsFor(XRayType("unknown")))
}

func TestAnalysis_IsNormal(t *testing.T) {
	tests := []struct {
		name       string
		conditions []string
		want       bool
	}{
		{"normal only", []string{ConditionNormal}, true},
		{"single abnormal", []string{"Pneumonia"}, false},
		{"normal plus abnormal", []string{ConditionNormal, "Pneumonia"}, false},
		{"empty", nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := &Analysis{DetectedConditions: tc.conditions}
			assert.Equal(t, tc.want, a.IsNormal())
		})
	}
}
