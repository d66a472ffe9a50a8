package report

// Layout tracks the vertical cursor of a paginated document. It knows nothing
// about PDF; the generator asks it where the next piece of content goes and
// whether a new page has to be started first.
type Layout struct {
	PageHeight   float64
	TopMargin    float64
	BottomMargin float64
	// running header drawn at the top of every page
	HeaderHeight float64

	y    float64
	page int
}

func NewLayout(pageHeight, topMargin, bottomMargin, headerHeight float64) *Layout {
	return &Layout{
		PageHeight:   pageHeight,
		TopMargin:    topMargin,
		BottomMargin: bottomMargin,
		HeaderHeight: headerHeight,
	}
}

// ContentTop is the first y position below the running header.
func (l *Layout) ContentTop() float64 {
	return l.TopMargin + l.HeaderHeight
}

// ContentBottom is the last y position content may reach.
func (l *Layout) ContentBottom() float64 {
	return l.PageHeight - l.BottomMargin
}

// Usable is the height available for content on one page.
func (l *Layout) Usable() float64 {
	return l.ContentBottom() - l.ContentTop()
}

func (l *Layout) Y() float64 { return l.y }

// Pages is the number of pages started so far.
func (l *Layout) Pages() int { return l.page }

// Fits reports whether h more units fit on the current page.
func (l *Layout) Fits(h float64) bool {
	return l.page > 0 && l.y+h <= l.ContentBottom()
}

// Reserve claims h units and returns where they start. newPage is true when a
// page had to be started first, including the very first page. Content that
// does not fit moves to the next page unless the current page is still empty,
// so an oversized item is placed (and clipped) rather than looping forever.
func (l *Layout) Reserve(h float64) (y float64, newPage bool) {
	if l.page == 0 || (!l.Fits(h) && l.y > l.ContentTop()) {
		l.Break()
		newPage = true
	}
	y = l.y
	l.y += h
	return y, newPage
}

// NeedsBreak reports whether a block of height h should start on a fresh page
// to stay in one piece. Blocks taller than a page never do; they flow line by
// line instead.
func (l *Layout) NeedsBreak(h float64) bool {
	return l.page > 0 && !l.Fits(h) && h <= l.Usable() && l.y > l.ContentTop()
}

// Break starts a new page.
func (l *Layout) Break() {
	l.page++
	l.y = l.ContentTop()
}
