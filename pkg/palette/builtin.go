package palette

import "github.com/lucasb-eyer/go-colorful"

// Nine anchors sampled evenly from the perceptually uniform matplotlib maps.
var builtin = []*Palette{
	fromHex("inferno", "#000004", "#1f0c48", "#550f6d", "#88226a", "#ba3655", "#e35933", "#f98e09", "#f8c932", "#fcffa4"),
	fromHex("viridis", "#440154", "#472d7b", "#3b528b", "#2c728e", "#21918c", "#28ae80", "#5ec962", "#addc30", "#fde725"),
	fromHex("plasma", "#0d0887", "#4c02a1", "#7e03a8", "#a92395", "#cc4778", "#e56b5d", "#f89540", "#fdc328", "#f0f921"),
	fromHex("magma", "#000004", "#1c1044", "#4f127b", "#812581", "#b5367a", "#e55064", "#fb8761", "#fec287", "#fcfdbf"),
	fromHex("cividis", "#00224e", "#123570", "#3b496c", "#575d6d", "#707173", "#8a8678", "#a59c74", "#c3b369", "#fee838"),
}

func fromHex(name string, hexes ...string) *Palette {
	anchors := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		anchors[i] = c
	}
	return New(name, anchors...)
}
