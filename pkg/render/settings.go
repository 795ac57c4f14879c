package render

// Settings is the persistable snapshot of the pattern-related render
// parameters. The persistence collaborator may serialize it and later replay
// it through ApplySettings losslessly; replay goes through the validated
// setters, so stale out-of-range values are corrected on load.
type Settings struct {
	Scale           float64    `yaml:"scale" json:"scale"`
	OffsetPercentX  float64    `yaml:"offset_percent_x" json:"offsetPercentX"`
	OffsetPercentY  float64    `yaml:"offset_percent_y" json:"offsetPercentY"`
	RepeatType      RepeatType `yaml:"repeat_type" json:"repeatType"`
	BackgroundColor string     `yaml:"background_color" json:"backgroundColor"`
	Zoom            float64    `yaml:"zoom" json:"zoom"`
	PanX            float64    `yaml:"pan_x" json:"panX"`
	PanY            float64    `yaml:"pan_y" json:"panY"`
}

// Snapshot captures the current pattern settings.
func (s *State) Snapshot() Settings {
	return Settings{
		Scale:           s.scale,
		OffsetPercentX:  s.offsetPercentX,
		OffsetPercentY:  s.offsetPercentY,
		RepeatType:      s.repeatType,
		BackgroundColor: FormatHexColor(s.backgroundColor),
		Zoom:            s.zoom,
		PanX:            s.panX,
		PanY:            s.panY,
	}
}

// ApplySettings replays a snapshot through the validated setters.
func (s *State) ApplySettings(set Settings) {
	s.SetScale(set.Scale)
	s.SetOffsetPercentX(set.OffsetPercentX)
	s.SetOffsetPercentY(set.OffsetPercentY)
	s.SetRepeatType(set.RepeatType)
	s.SetBackgroundColor(ParseHexColor(set.BackgroundColor))
	s.SetZoom(set.Zoom)
	s.SetPan(set.PanX, set.PanY)
}
