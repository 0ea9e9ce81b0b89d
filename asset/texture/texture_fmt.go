package texture

type Format uint32

const (
	Luminance8 Format = iota
	Rgba8
)

// Get the number of channels for this texture format.
func (f Format) Channels() uint32 {
	if f == Luminance8 {
		return 1
	}
	return 4
}

func (f Format) String() string {
	if f == Luminance8 {
		return "luminance8"
	}
	return "rgba8"
}
