package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Slug     string `binding:"required,slug"`
	Category string `binding:"omitempty,category"`
	Status   string `binding:"omitempty,project_status"`
	Inquiry  string `binding:"omitempty,inquiry_status"`
}

func TestRules(t *testing.T) {
	Register()
	Register()

	tests := []struct {
		name string
		in   sample
		ok   bool
	}{
		{"valid", sample{Slug: "kitchen-design", Category: "Kitchen", Status: "ongoing", Inquiry: "resolved"}, true},
		{"upper slug", sample{Slug: "Kitchen"}, false},
		{"double hyphen", sample{Slug: "a--b"}, false},
		{"trailing hyphen", sample{Slug: "a-"}, false},
		{"bad category", sample{Slug: "a", Category: "garage"}, false},
		{"bad status", sample{Slug: "a", Status: "done"}, false},
		{"bad inquiry status", sample{Slug: "a", Inquiry: "closed"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.in)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
