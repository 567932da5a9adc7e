package biomedivision

import "worldforge/internal/phase"

// Params is the full tunable surface of the biome-division phase, one
// field per ParamDef declared in Meta(). All ratios are expressed as
// a fraction of world width or height unless noted otherwise.
type Params struct {
	OceanLeftWidth   float64 `json:"ocean_left_width"`
	OceanRightWidth  float64 `json:"ocean_right_width"`
	OceanTopLimit    float64 `json:"ocean_top_limit"`
	OceanBottomLimit float64 `json:"ocean_bottom_limit"`

	ForestWidthRatio float64 `json:"forest_width_ratio"`

	JungleWidthRatio        float64 `json:"jungle_width_ratio"`
	JungleTopLimit          float64 `json:"jungle_top_limit"`
	JungleBottomLimit       float64 `json:"jungle_bottom_limit"`
	JungleCenterOffsetRange float64 `json:"jungle_center_offset_range"`

	SnowTopWidthRatio     float64 `json:"snow_top_width_ratio"`
	SnowBottomWidthRatio  float64 `json:"snow_bottom_width_ratio"`
	SnowTopLimit          float64 `json:"snow_top_limit"`
	SnowBottomLimit       float64 `json:"snow_bottom_limit"`
	SnowBottomDepthFactor float64 `json:"snow_bottom_depth_factor"`
	SnowCenterOffsetRange float64 `json:"snow_center_offset_range"`

	DesertSurfaceCount       int     `json:"desert_surface_count"`
	DesertSurfaceWidthMin    float64 `json:"desert_surface_width_min"`
	DesertSurfaceWidthMax    float64 `json:"desert_surface_width_max"`
	DesertSurfaceTopLimit    float64 `json:"desert_surface_top_limit"`
	DesertSurfaceBottomLimit float64 `json:"desert_surface_bottom_limit"`
	DesertSurfaceMinSpacing  float64 `json:"desert_surface_min_spacing"`

	DesertTrueCount       int     `json:"desert_true_count"`
	DesertTrueTopLimit    float64 `json:"desert_true_top_limit"`
	DesertTrueBottomLimit float64 `json:"desert_true_bottom_limit"`
	DesertTrueDepthFactor float64 `json:"desert_true_depth_factor"`

	CrimsonCount      int     `json:"crimson_count"`
	CrimsonWidthMin   float64 `json:"crimson_width_min"`
	CrimsonWidthMax   float64 `json:"crimson_width_max"`
	CrimsonTopLimit   float64 `json:"crimson_top_limit"`
	CrimsonBottomLimit float64 `json:"crimson_bottom_limit"`
	CrimsonMinSpacing float64 `json:"crimson_min_spacing"`

	ForestFillMergeThreshold int `json:"forest_fill_merge_threshold"`
}

// DefaultParams returns the phase's default tuning.
func DefaultParams() Params {
	return Params{
		OceanLeftWidth:   0.05,
		OceanRightWidth:  0.05,
		OceanTopLimit:    0.10,
		OceanBottomLimit: 0.40,

		ForestWidthRatio: 0.15,

		JungleWidthRatio:        0.12,
		JungleTopLimit:          0.10,
		JungleBottomLimit:       0.85,
		JungleCenterOffsetRange: 0.20,

		SnowTopWidthRatio:     0.08,
		SnowBottomWidthRatio:  0.20,
		SnowTopLimit:          0.10,
		SnowBottomLimit:       0.85,
		SnowBottomDepthFactor: 0.8,
		SnowCenterOffsetRange: 0.12,

		DesertSurfaceCount:       3,
		DesertSurfaceWidthMin:    0.025,
		DesertSurfaceWidthMax:    0.05,
		DesertSurfaceTopLimit:    0.10,
		DesertSurfaceBottomLimit: 0.40,
		DesertSurfaceMinSpacing:  0.15,

		DesertTrueCount:       1,
		DesertTrueTopLimit:    0.30,
		DesertTrueBottomLimit: 0.85,
		DesertTrueDepthFactor: 0.90,

		CrimsonCount:       3,
		CrimsonWidthMin:    0.025,
		CrimsonWidthMax:    0.05,
		CrimsonTopLimit:    0.10,
		CrimsonBottomLimit: 0.40,
		CrimsonMinSpacing:  0.15,

		ForestFillMergeThreshold: 100,
	}
}

func paramDefs() []phase.ParamDef {
	ratio := phase.Float(0.0, 1.0)
	offset := phase.Float(0.0, 0.5)
	return []phase.ParamDef{
		{Key: "ocean_left_width", Name: "Ocean left width", Description: "Left ocean margin as a fraction of world width.", Type: ratio, Default: 0.05},
		{Key: "ocean_right_width", Name: "Ocean right width", Description: "Right ocean margin as a fraction of world width.", Type: ratio, Default: 0.05},
		{Key: "ocean_top_limit", Name: "Ocean top limit", Description: "Top edge of the ocean margin (fraction of world height).", Type: ratio, Default: 0.10},
		{Key: "ocean_bottom_limit", Name: "Ocean bottom limit", Description: "Bottom edge of the ocean margin (fraction of world height).", Type: ratio, Default: 0.40},

		{Key: "forest_width_ratio", Name: "Forest width ratio", Description: "Half-width of the spawn forest, centered, as a fraction of world width.", Type: ratio, Default: 0.15},

		{Key: "jungle_width_ratio", Name: "Jungle width ratio", Description: "Diameter of the jungle ellipse as a fraction of world width.", Type: ratio, Default: 0.12},
		{Key: "jungle_top_limit", Name: "Jungle top limit", Description: "Top clip of the jungle region (fraction of world height).", Type: ratio, Default: 0.10},
		{Key: "jungle_bottom_limit", Name: "Jungle bottom limit", Description: "Bottom clip of the jungle region (fraction of world height).", Type: ratio, Default: 0.85},
		{Key: "jungle_center_offset_range", Name: "Jungle center offset range", Description: "Random offset of the jungle's center within its available space.", Type: offset, Default: 0.20},

		{Key: "snow_top_width_ratio", Name: "Snow top width ratio", Description: "Full width of the snow trapezoid at its top edge, as a fraction of world width.", Type: ratio, Default: 0.08},
		{Key: "snow_bottom_width_ratio", Name: "Snow bottom width ratio", Description: "Full width of the snow trapezoid at its bottom edge, as a fraction of world width.", Type: ratio, Default: 0.20},
		{Key: "snow_top_limit", Name: "Snow top limit", Description: "Top edge of the snow region (fraction of world height).", Type: ratio, Default: 0.10},
		{Key: "snow_bottom_limit", Name: "Snow bottom limit", Description: "Bottom edge baseline for the snow region's depth.", Type: ratio, Default: 0.85},
		{Key: "snow_bottom_depth_factor", Name: "Snow bottom depth factor", Description: "Scales how far the snow region reaches toward snow_bottom_limit.", Type: ratio, Default: 0.8},
		{Key: "snow_center_offset_range", Name: "Snow center offset range", Description: "Random offset of the snow region's center within its available space.", Type: offset, Default: 0.12},

		{Key: "desert_surface_count", Name: "Desert surface count", Description: "Number of surface desert slots to place.", Type: phase.Int(0, 10), Default: 3},
		{Key: "desert_surface_width_min", Name: "Desert surface width min", Description: "Minimum surface desert rectangle width.", Type: ratio, Default: 0.025},
		{Key: "desert_surface_width_max", Name: "Desert surface width max", Description: "Maximum surface desert rectangle width.", Type: ratio, Default: 0.05},
		{Key: "desert_surface_top_limit", Name: "Desert surface top limit", Description: "Top edge of surface desert placement.", Type: ratio, Default: 0.10},
		{Key: "desert_surface_bottom_limit", Name: "Desert surface bottom limit", Description: "Bottom edge of surface desert placement.", Type: ratio, Default: 0.40},
		{Key: "desert_surface_min_spacing", Name: "Desert surface min spacing", Description: "Minimum horizontal spacing between surface desert slots.", Type: ratio, Default: 0.15},

		{Key: "desert_true_count", Name: "True desert count", Description: "Number of surface deserts, closest to center, upgraded to true deserts.", Type: phase.Int(0, 5), Default: 1},
		{Key: "desert_true_top_limit", Name: "True desert top limit", Description: "Top edge of the true desert ellipse.", Type: ratio, Default: 0.30},
		{Key: "desert_true_bottom_limit", Name: "True desert bottom limit", Description: "Bottom edge baseline for the true desert ellipse.", Type: ratio, Default: 0.85},
		{Key: "desert_true_depth_factor", Name: "True desert depth factor", Description: "Scales how far the true desert reaches toward desert_true_bottom_limit.", Type: ratio, Default: 0.90},

		{Key: "crimson_count", Name: "Crimson count", Description: "Number of crimson slots to place.", Type: phase.Int(0, 10), Default: 3},
		{Key: "crimson_width_min", Name: "Crimson width min", Description: "Minimum crimson rectangle width.", Type: ratio, Default: 0.025},
		{Key: "crimson_width_max", Name: "Crimson width max", Description: "Maximum crimson rectangle width.", Type: ratio, Default: 0.05},
		{Key: "crimson_top_limit", Name: "Crimson top limit", Description: "Top edge of crimson placement.", Type: ratio, Default: 0.10},
		{Key: "crimson_bottom_limit", Name: "Crimson bottom limit", Description: "Bottom edge of crimson placement.", Type: ratio, Default: 0.40},
		{Key: "crimson_min_spacing", Name: "Crimson min spacing", Description: "Minimum horizontal spacing between crimson slots.", Type: ratio, Default: 0.15},

		{Key: "forest_fill_merge_threshold", Name: "Forest fill merge threshold", Description: "Gaps narrower than this many pixels between a desert/crimson slot and its neighbor are absorbed into that slot instead of becoming forest.", Type: phase.Int(0, 500), Default: 100},
	}
}
