package enhance

// RemoveSmallBlobs erases connected foreground regions whose pixel area is
// strictly below minArea. Components are 4-connected; foreground is any
// non-zero pixel. Regions exactly at minArea are kept.
func RemoveSmallBlobs(r *Raster, minArea int) *Raster {
	out := r.Clone()
	if minArea <= 1 || out.Empty() {
		return out
	}

	w, h := out.W, out.H
	visited := make([]bool, w*h)
	queue := make([]int, 0, 64)
	component := make([]int, 0, 64)

	for start := range out.Pix {
		if out.Pix[start] == 0 || visited[start] {
			continue
		}
		queue = append(queue[:0], start)
		component = append(component[:0], start)
		visited[start] = true

		for len(queue) > 0 {
			idx := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			x, y := idx%w, idx/w
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := ny*w + nx
				if out.Pix[ni] != 0 && !visited[ni] {
					visited[ni] = true
					queue = append(queue, ni)
					component = append(component, ni)
				}
			}
		}

		if len(component) < minArea {
			for _, idx := range component {
				out.Pix[idx] = 0
			}
		}
	}
	return out
}
