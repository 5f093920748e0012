package models

import (
	"fmt"
	"sort"
	"strings"
)

// Icon: закрытый набор иконок для карточек услуг, ценностей и преимуществ.
// Неизвестное имя отклоняется при разборе, а не при отрисовке.
type Icon string

const (
	IconHammer     Icon = "hammer"
	IconRuler      Icon = "ruler"
	IconPaintbrush Icon = "paintbrush"
	IconHome       Icon = "home"
	IconShield     Icon = "shield"
	IconClock      Icon = "clock"
	IconAward      Icon = "award"
	IconUsers      Icon = "users"
	IconLeaf       Icon = "leaf"
	IconStar       Icon = "star"
	IconWrench     Icon = "wrench"
	IconLightbulb  Icon = "lightbulb"
)

var iconGlyphs = map[Icon]string{
	IconHammer:     "🔨",
	IconRuler:      "📐",
	IconPaintbrush: "🖌",
	IconHome:       "🏠",
	IconShield:     "🛡",
	IconClock:      "⏱",
	IconAward:      "🏆",
	IconUsers:      "👥",
	IconLeaf:       "🌿",
	IconStar:       "⭐",
	IconWrench:     "🔧",
	IconLightbulb:  "💡",
}

func (i Icon) Valid() bool {
	_, ok := iconGlyphs[i]
	return ok
}

// Glyph используется в серверных шаблонах.
func (i Icon) Glyph() string {
	if g, ok := iconGlyphs[i]; ok {
		return g
	}
	return iconGlyphs[IconStar]
}

func (i *Icon) UnmarshalText(b []byte) error {
	v := Icon(strings.ToLower(strings.TrimSpace(string(b))))
	if v == "" {
		*i = ""
		return nil
	}
	if !v.Valid() {
		return fmt.Errorf("unknown icon %q", string(b))
	}
	*i = v
	return nil
}

func Icons() []Icon {
	out := make([]Icon, 0, len(iconGlyphs))
	for i := range iconGlyphs {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}
