package render

// Option applies a configuration option to the Chart.
type Option func(*Chart)

// WithPalette sets the men and women segment colors.
func WithPalette(men, women string) Option {
	return func(c *Chart) {
		c.menHex, c.womenHex = men, women
	}
}

// WithGridColor sets the gridline and bottom spine color.
func WithGridColor(hex string) Option {
	return func(c *Chart) { c.gridHex = hex }
}

// WithTextColor sets the title, tick and legend color.
func WithTextColor(hex string) Option {
	return func(c *Chart) { c.textHex = hex }
}

// WithFormat selects png or svg output.
func WithFormat(f Format) Option {
	return func(c *Chart) { c.format = f }
}

// WithDPI sets the renderer resolution.
func WithDPI(dpi float64) Option {
	return func(c *Chart) {
		if dpi > 0 {
			c.dpi = dpi
		}
	}
}

// WithSize sets the per-cohort slot width and the figure height in pixels.
func WithSize(slotWidth, height int) Option {
	return func(c *Chart) {
		if slotWidth > 0 {
			c.slotWidth = slotWidth
		}
		if height > 0 {
			c.height = height
		}
	}
}
