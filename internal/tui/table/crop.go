package table

import "strings"

// Ellipsis is appended to cropped text.
const Ellipsis = "…"

// Crop shortens text so it fits width as measured by measure. While the
// text is wider than width minus the ellipsis, the last rune is removed;
// the ellipsis is then appended. It returns "" when nothing fits.
//
// Text that already ends with an ellipsis and fits is returned as is, so
// cropping a cropped string is a no-op.
func Crop(text string, width int, measure func(string) int) string {
	if text == "" {
		return ""
	}
	w := measure(text)
	if strings.HasSuffix(text, Ellipsis) && w <= width {
		return text
	}
	limit := width - measure(Ellipsis)
	if w <= limit {
		return text
	}

	runes := []rune(text)
	for len(runes) > 0 && measure(string(runes)) > limit {
		runes = runes[:len(runes)-1]
	}
	if len(runes) == 0 {
		return ""
	}
	return string(runes) + Ellipsis
}
