package markup

import "errors"

// ErrSelectionNotSimple is returned when a spoiler wrap would cross an
// inline style boundary. The caller surfaces it as a benign message; the
// document stays unchanged.
var ErrSelectionNotSimple = errors.New("selection crosses a style boundary")

// Toggle applies or removes style over the rune range [start, end) of the
// block's plain text and returns the new markup value.
//
// Bold and italic toggle: when every character in the range already carries
// the style it is removed, otherwise it is added, so a second application
// undoes the first. A collapsed or out-of-range selection is a no-op and
// returns the value unchanged.
//
// Spoiler additionally requires the range to be containable by a single
// contiguous wrap: every character in the range must carry the same style
// set. Otherwise ErrSelectionNotSimple is returned and the value is left
// untouched.
func Toggle(value string, start, end int, style Style) (string, error) {
	runes, err := parse(value)
	if err != nil {
		return value, err
	}
	if start < 0 || end > len(runes) || start >= end {
		return value, nil
	}

	if style == StyleSpoiler && !uniform(runes[start:end]) {
		return value, ErrSelectionNotSimple
	}

	on := !allStyled(runes[start:end], style)
	for i := start; i < end; i++ {
		runes[i].styles = runes[i].styles.with(style, on)
	}
	return serialize(runes), nil
}

// uniform reports whether every character carries an identical style set.
func uniform(runes []styledRune) bool {
	for _, sr := range runes {
		if sr.styles != runes[0].styles {
			return false
		}
	}
	return true
}

// allStyled reports whether every character already carries the style.
func allStyled(runes []styledRune, style Style) bool {
	for _, sr := range runes {
		if !sr.styles.has(style) {
			return false
		}
	}
	return true
}
