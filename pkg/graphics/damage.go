package graphics

// Damage is the set of window regions known to be stale.
// Overlapping rectangles are merged on insertion so the backend repaints
// each pixel at most once per frame.
type Damage struct {
	rects []Rect
}

// Add marks r as stale. Empty rectangles are ignored.
func (d *Damage) Add(r Rect) {
	if r.IsEmpty() {
		return
	}
	for {
		merged := false
		kept := d.rects[:0]
		for _, existing := range d.rects {
			if existing.Overlaps(r) {
				r = r.Union(existing)
				merged = true
				continue
			}
			kept = append(kept, existing)
		}
		d.rects = kept
		if !merged {
			break
		}
	}
	d.rects = append(d.rects, r)
}

// Rects returns the disjoint stale rectangles.
func (d *Damage) Rects() []Rect {
	return d.rects
}

// IsEmpty reports whether nothing needs repainting.
func (d *Damage) IsEmpty() bool {
	return len(d.rects) == 0
}

// Bounds returns the union of all stale rectangles.
func (d *Damage) Bounds() Rect {
	var r Rect
	for _, rect := range d.rects {
		r = r.Union(rect)
	}
	return r
}

// Intersects reports whether r overlaps any stale rectangle.
func (d *Damage) Intersects(r Rect) bool {
	for _, rect := range d.rects {
		if rect.Overlaps(r) {
			return true
		}
	}
	return false
}

// Reset clears the damage after a paint.
func (d *Damage) Reset() {
	d.rects = d.rects[:0]
}
