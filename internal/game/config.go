package game

// Renderer buffer capacities.
const (
	MaxSpriteRender = 20000 // point sprites per draw call
	MaxLineVerts    = 8192
	MaxTextQuads    = 1024
)

// Texture units.
const (
	texUnitQuad = 0
	texUnitText = 2
)

// Audio.
const (
	sfxVolume = 0.58
	// one voice per sound; a new lap chime while one plays is dropped
	maxVoices = 6
)
