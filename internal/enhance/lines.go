package enhance

// RemoveRuledLines strips long straight runs such as chat-interface rulings.
// A length x 1 opening isolates horizontal runs and a 1 x length opening
// isolates vertical runs; both are subtracted from the input. Glyph strokes
// shorter than length survive.
func RemoveRuledLines(r *Raster, length int) *Raster {
	if length < 2 || r.Empty() {
		return r.Clone()
	}
	horizontal := Open(r, length, 1)
	vertical := Open(r, 1, length)
	out := Subtract(r, horizontal)
	return Subtract(out, vertical)
}
