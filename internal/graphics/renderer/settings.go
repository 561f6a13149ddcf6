package renderer

// Position is a camera position in world units.
type Position struct {
	X float32 `yaml:"x" toml:"x"`
	Y float32 `yaml:"y" toml:"y"`
	Z float32 `yaml:"z" toml:"z"`
}

// Settings holds the renderer's view configuration.
type Settings struct {
	// DevicePixelRatio scales the target size to the drawing buffer size.
	// Zero means 1.
	DevicePixelRatio float32 `yaml:"devicePixelRatio" toml:"devicePixelRatio"`
	// ClearColor is RGBA. Used as given.
	ClearColor [4]float32 `yaml:"clearColor" toml:"clearColor"`
	// Camera is used as given; the zero position is valid.
	Camera Position `yaml:"camera" toml:"camera"`
	// ClipNear zero means 0.1.
	ClipNear float32 `yaml:"clipNear" toml:"clipNear"`
	// ClipFar at or below ClipNear means 100, or ClipNear*1000 when
	// ClipNear is 100 or more.
	ClipFar float32 `yaml:"clipFar" toml:"clipFar"`
	// FieldOfView is the vertical angle in degrees. Zero means 60.
	FieldOfView float32 `yaml:"fieldOfView" toml:"fieldOfView"`
}

// DefaultSettings returns the settings used for fields left unset by a
// settings file.
func DefaultSettings() Settings {
	return Settings{
		DevicePixelRatio: 1,
		ClearColor:       [4]float32{1, 1, 1, 1},
		Camera:           Position{Z: 2},
		ClipNear:         0.1,
		ClipFar:          100,
		FieldOfView:      60,
	}
}

func (s Settings) withDefaults() Settings {
	if s.DevicePixelRatio <= 0 {
		s.DevicePixelRatio = 1
	}
	if s.ClipNear <= 0 {
		s.ClipNear = 0.1
	}
	if s.ClipFar <= s.ClipNear {
		s.ClipFar = 100
		if s.ClipFar <= s.ClipNear {
			s.ClipFar = s.ClipNear * 1000
		}
	}
	if s.FieldOfView <= 0 {
		s.FieldOfView = 60
	}
	return s
}
