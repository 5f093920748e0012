package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"kitchen", CategoryKitchen, true},
		{"KITCHEN", CategoryKitchen, true},
		{" Living_Room ", CategoryLivingRoom, true},
		{"garage", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseProjectStatus(t *testing.T) {
	st, ok := ParseProjectStatus("Ongoing")
	assert.True(t, ok)
	assert.Equal(t, StatusOngoing, st)

	_, ok = ParseProjectStatus("cancelled")
	assert.False(t, ok)
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Living Room", CategoryLivingRoom.Label())
	assert.Equal(t, "Kitchen", CategoryKitchen.Label())
}

func TestInquiryStatusValid(t *testing.T) {
	for _, s := range InquiryStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, InquiryStatus("closed").Valid())
}

func TestIconUnmarshal(t *testing.T) {
	var svc Service
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Ремонт","icon":"Hammer"}`), &svc))
	assert.Equal(t, IconHammer, svc.Icon)
	assert.Equal(t, "🔨", svc.Icon.Glyph())

	err := json.Unmarshal([]byte(`{"title":"Ремонт","icon":"rocket"}`), &svc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown icon")

	assert.Equal(t, IconStar.Glyph(), Icon("rocket").Glyph())
}

func TestIconsSorted(t *testing.T) {
	icons := Icons()
	require.Len(t, icons, len(iconGlyphs))
	for i := 1; i < len(icons); i++ {
		assert.Less(t, string(icons[i-1]), string(icons[i]))
	}
}

func TestProjectHasLocation(t *testing.T) {
	lat, lng := 43.2, 76.9
	assert.False(t, Project{}.HasLocation())
	assert.False(t, Project{Latitude: &lat}.HasLocation())
	assert.True(t, Project{Latitude: &lat, Longitude: &lng}.HasLocation())
}

func TestUserHasRole(t *testing.T) {
	u := User{Role: RoleAdmin}
	assert.True(t, u.HasRole(RoleAdmin))
	assert.False(t, u.HasRole(RoleEditor))
	assert.False(t, UserRole("root").Valid())
}
