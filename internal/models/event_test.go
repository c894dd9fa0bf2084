package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory_Valid(t *testing.T) {
	tests := []struct {
		category Category
		want     bool
	}{
		{CategoryPrivat, true},
		{CategoryArbeit, true},
		{CategoryFreizeit, true},
		{CategorySonstiges, true},
		{Category(""), false},
		{Category("privat"), false}, // регистр имеет значение
		{Category("Urlaub"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.Valid())
		})
	}
}
