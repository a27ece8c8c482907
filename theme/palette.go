package theme

type RGB [3]uint8

// Palette is an ordered color ramp sampled by normalized position.
type Palette struct {
	Name   string
	Colors []RGB
}

// Built-in ramps; selected by name in the config.
var palettes = map[string]*Palette{
	"ivory": {
		Name: "ivory",
		Colors: []RGB{
			{24, 22, 28},
			{86, 70, 110},
			{150, 110, 170},
			{215, 170, 210},
			{250, 244, 230},
		},
	},
	"plasma": {
		Name: "plasma",
		Colors: []RGB{
			{13, 8, 135},
			{126, 3, 168},
			{204, 71, 120},
			{248, 149, 64},
			{240, 249, 33},
		},
	},
}

// ByName finds a built-in palette by name, falling back to ivory.
func ByName(name string) *Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["ivory"]
}

// Lookup returns the interpolated color for a normalized value 0-1.
func (p *Palette) Lookup(norm float64) RGB {
	if norm <= 0 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[len(p.Colors)-1]
	}

	pos := norm * float64(len(p.Colors)-1)
	i := int(pos)
	frac := pos - float64(i)

	c0 := p.Colors[i]
	c1 := p.Colors[i+1]

	return RGB{
		lerp(c0[0], c1[0], frac),
		lerp(c0[1], c1[1], frac),
		lerp(c0[2], c1[2], frac),
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}
