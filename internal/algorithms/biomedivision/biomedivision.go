// Package biomedivision implements the biome-division phase: it
// carves space/hell bands, ocean margins, a spawn forest, a jungle and
// a snow region on opposite sides of the forest, scattered desert and
// crimson pockets (with some desert slots upgraded to "true" desert),
// a forest-fill pass that either expands a desert/crimson edge across
// a narrow gap or plants forest in what's left, and finally a stone
// fill for anything still unassigned anywhere in the world.
package biomedivision

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"worldforge/internal/core"
	"worldforge/internal/geometry"
	"worldforge/internal/phase"
)

const (
	keyJungleOnLeft    phase.SharedKey = "biome_division.jungle_on_left"
	keyDesertSlots     phase.SharedKey = "biome_division.desert_slots"
	keyDesertTrueSlots phase.SharedKey = "biome_division.desert_true_slots"
)

// desertSlot is one placed desert or crimson rectangle: its horizontal
// center and half-width, both in pixels.
type desertSlot struct {
	CenterX   int32
	HalfWidth int32
}

// Algorithm is the biome_division phase.
type Algorithm struct {
	params         Params
	pixelThreshold int64
}

// New builds the phase with default parameters.
func New() *Algorithm {
	return &Algorithm{params: DefaultParams(), pixelThreshold: geometry.DefaultParallelPixelThreshold}
}

// SetPixelThreshold overrides the fill/scan parallel-split threshold,
// normally wired from engine.yaml's parallel_pixel_threshold.
func (a *Algorithm) SetPixelThreshold(n int64) {
	if n > 0 {
		a.pixelThreshold = n
	}
}

func (a *Algorithm) Meta() phase.Meta {
	return phase.Meta{
		ID:          "biome_division",
		Name:        "Biome Division",
		Description: "Divides the world into biome regions: ocean, forest, jungle, snow, desert, crimson and stone.",
		Steps: []phase.StepMeta{
			{Name: "space_hell", Description: "Creates the biome map and fills the space and hell bands."},
			{Name: "ocean", Description: "Fills the left and right ocean margins."},
			{Name: "forest", Description: "Fills the centered spawn forest."},
			{Name: "jungle", Description: "Places a jungle ellipse on a random side of the forest."},
			{Name: "snow", Description: "Places a snow trapezoid on the side opposite the jungle."},
			{Name: "desert", Description: "Scatters surface desert slots and upgrades the most central ones to true desert."},
			{Name: "crimson", Description: "Scatters crimson slots."},
			{Name: "forest_fill", Description: "Expands desert/crimson edges across narrow gaps, then fills whatever remains with forest."},
			{Name: "stone_fill", Description: "Fills every still-unassigned cell in the world with stone."},
		},
		Params: paramDefs(),
	}
}

func (a *Algorithm) Execute(stepIndex int, ctx *phase.RuntimeContext) error {
	switch stepIndex {
	case 0:
		return a.stepSpaceHell(ctx)
	case 1:
		return a.stepOcean(ctx)
	case 2:
		return a.stepForest(ctx)
	case 3:
		return a.stepJungle(ctx)
	case 4:
		return a.stepSnow(ctx)
	case 5:
		return a.stepDesert(ctx)
	case 6:
		return a.stepCrimson(ctx)
	case 7:
		return a.stepForestFill(ctx)
	case 8:
		return a.stepStoneFill(ctx)
	default:
		return fmt.Errorf("biome_division: invalid step index %d", stepIndex)
	}
}

func (a *Algorithm) GetParams() json.RawMessage {
	b, err := json.Marshal(a.params)
	if err != nil {
		return json.RawMessage("{}")
	}
	return b
}

func (a *Algorithm) SetParams(raw json.RawMessage) error {
	var p Params
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	v := reflect.ValueOf(&p).Elem()
	for i := 0; i < v.NumField(); i++ {
		for _, d := range paramDefs() {
			if d.Key != v.Type().Field(i).Tag.Get("json") {
				continue
			}
			switch f := v.Field(i); f.Kind() {
			case reflect.Float64:
				f.SetFloat(phase.ClampFloat(d.Type, f.Float()))
			case reflect.Int:
				f.SetInt(int64(phase.ClampFloat(d.Type, float64(f.Int()))))
			}
		}
	}
	a.params = p
	return nil
}

// OnReset is a no-op: this phase keeps no runtime state on itself
// between runs, only inside the per-run RuntimeContext the pipeline
// already resets.
func (a *Algorithm) OnReset() {}

func px(dim uint32, ratio float64) int32 {
	return int32(ratio * float64(dim))
}

func isUnassigned(current uint8) bool { return current == core.BiomeUnassigned }

func colorFor(ctx *phase.RuntimeContext, id uint8) [4]uint8 {
	if def, ok := ctx.Biomes[id]; ok {
		return def.OverlayColor
	}
	return [4]uint8{}
}

func biomeID(ctx *phase.RuntimeContext, key string) (uint8, error) {
	id, ok := ctx.BiomeIDByKey(key)
	if !ok {
		return 0, fmt.Errorf("biome_division: no biome configured with key %q", key)
	}
	return id, nil
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func spacingOK(slots []desertSlot, cx, minSpacing int32) bool {
	for _, s := range slots {
		if absInt32(s.CenterX-cx) < minSpacing {
			return false
		}
	}
	return true
}

const (
	spaceBandBottomRatio = 0.10
	hellBandTopRatio      = 0.85
	forestTopRatio        = 0.10
	forestBottomRatio     = 0.40
	forestFillScanRatio   = 0.25
)

func (a *Algorithm) stepSpaceHell(ctx *phase.RuntimeContext) error {
	w, h := ctx.World.Width, ctx.World.Height
	ctx.BiomeMap = core.NewBiomeMap(w, h)

	spaceID, err := biomeID(ctx, "space")
	if err != nil {
		return err
	}
	hellID, err := biomeID(ctx, "hell")
	if err != nil {
		return err
	}

	space := geometry.NewRect(0, 0, int32(w), px(h, spaceBandBottomRatio))
	hell := geometry.NewRect(0, px(h, hellBandTopRatio), int32(w), int32(h))

	geometry.FillBiome(ctx.BiomeMap, space, spaceID, a.pixelThreshold)
	geometry.FillBiome(ctx.BiomeMap, hell, hellID, a.pixelThreshold)

	ctx.LogShape(geometry.NewShapeRecord("space", space, colorFor(ctx, spaceID), geometry.ParamsFromRect(space)))
	ctx.LogShape(geometry.NewShapeRecord("hell", hell, colorFor(ctx, hellID), geometry.ParamsFromRect(hell)))
	return nil
}

func (a *Algorithm) stepOcean(ctx *phase.RuntimeContext) error {
	p := a.params
	w, h := ctx.World.Width, ctx.World.Height

	oceanID, err := biomeID(ctx, "ocean")
	if err != nil {
		return err
	}

	top := px(h, p.OceanTopLimit)
	bottom := px(h, p.OceanBottomLimit)
	leftW := px(w, p.OceanLeftWidth)
	rightW := px(w, p.OceanRightWidth)

	left := geometry.NewRect(0, top, leftW, bottom)
	right := geometry.NewRect(int32(w)-rightW, top, int32(w), bottom)

	geometry.FillBiome(ctx.BiomeMap, left, oceanID, a.pixelThreshold)
	geometry.FillBiome(ctx.BiomeMap, right, oceanID, a.pixelThreshold)

	ctx.LogShape(geometry.NewShapeRecord("ocean_left", left, colorFor(ctx, oceanID), geometry.ParamsFromRect(left)))
	ctx.LogShape(geometry.NewShapeRecord("ocean_right", right, colorFor(ctx, oceanID), geometry.ParamsFromRect(right)))
	return nil
}

func (a *Algorithm) stepForest(ctx *phase.RuntimeContext) error {
	p := a.params
	w, h := ctx.World.Width, ctx.World.Height

	forestID, err := biomeID(ctx, "forest")
	if err != nil {
		return err
	}

	cx := int32(w) / 2
	half := px(w, p.ForestWidthRatio)
	rect := geometry.NewRect(cx-half, px(h, forestTopRatio), cx+half, px(h, forestBottomRatio))

	geometry.FillBiomeIf(ctx.BiomeMap, rect, forestID, a.pixelThreshold, isUnassigned)
	ctx.LogShape(geometry.NewShapeRecord("forest", rect, colorFor(ctx, forestID), geometry.ParamsFromRect(rect)))
	return nil
}

func (a *Algorithm) stepJungle(ctx *phase.RuntimeContext) error {
	p := a.params
	w, h := ctx.World.Width, ctx.World.Height

	jungleID, err := biomeID(ctx, "jungle")
	if err != nil {
		return err
	}

	onLeft := ctx.Rand.Bool()
	ctx.SharedSet(keyJungleOnLeft, onLeft)

	cx := int32(w) / 2
	forestHalf := px(w, p.ForestWidthRatio)
	oceanLeftEdge := px(w, p.OceanLeftWidth)
	oceanRightEdge := int32(w) - px(w, p.OceanRightWidth)

	var left, right float64
	if onLeft {
		left, right = float64(oceanLeftEdge), float64(cx-forestHalf)
	} else {
		left, right = float64(cx+forestHalf), float64(oceanRightEdge)
	}
	available := right - left
	if available < 0 {
		available = 0
	}
	center := (left + right) / 2
	center += ctx.Rand.Range(-1, 1) * p.JungleCenterOffsetRange * available

	rx := float64(px(w, p.JungleWidthRatio)) / 2
	cy := float64(h) / 2
	ry := float64(h) / 2
	ellipse := geometry.NewEllipse(center, cy, rx, ry)
	clip := geometry.NewRect(0, px(h, p.JungleTopLimit), int32(w), px(h, p.JungleBottomLimit))
	shape := geometry.CombineIntersect(ellipse, clip)

	geometry.FillBiomeIf(ctx.BiomeMap, shape, jungleID, a.pixelThreshold, isUnassigned)
	ctx.LogShape(geometry.NewShapeRecord("jungle", shape, colorFor(ctx, jungleID), geometry.ParamsComposite(ellipse, clip, "∩")))
	return nil
}

func (a *Algorithm) stepSnow(ctx *phase.RuntimeContext) error {
	p := a.params
	w, h := ctx.World.Width, ctx.World.Height

	snowID, err := biomeID(ctx, "snow")
	if err != nil {
		return err
	}

	jungleOnLeft, _ := func() (bool, bool) {
		v, ok := ctx.SharedGet(keyJungleOnLeft)
		if !ok {
			return false, false
		}
		b, ok := v.(bool)
		return b, ok
	}()
	onLeft := !jungleOnLeft

	cx := int32(w) / 2
	forestHalf := px(w, p.ForestWidthRatio)
	oceanLeftEdge := px(w, p.OceanLeftWidth)
	oceanRightEdge := int32(w) - px(w, p.OceanRightWidth)

	var left, right float64
	if onLeft {
		left, right = float64(oceanLeftEdge), float64(cx-forestHalf)
	} else {
		left, right = float64(cx+forestHalf), float64(oceanRightEdge)
	}
	available := right - left
	if available < 0 {
		available = 0
	}
	center := (left + right) / 2
	center += ctx.Rand.Range(-1, 1) * p.SnowCenterOffsetRange * available

	topHalf := float64(px(w, p.SnowTopWidthRatio)) / 2
	botHalf := float64(px(w, p.SnowBottomWidthRatio)) / 2
	yTop := px(h, p.SnowTopLimit)
	yBottom := int32(float64(px(h, p.SnowBottomLimit)) * p.SnowBottomDepthFactor)
	if yBottom > int32(h) {
		yBottom = int32(h)
	}
	if yBottom <= yTop {
		yBottom = yTop + 1
	}

	trap := geometry.NewTrapezoid(center, yTop, yBottom, topHalf, botHalf)
	geometry.FillBiomeIf(ctx.BiomeMap, trap, snowID, a.pixelThreshold, isUnassigned)
	ctx.LogShape(geometry.NewShapeRecord("snow", trap, colorFor(ctx, snowID), geometry.ParamsFromTrapezoid(trap)))
	return nil
}

func (a *Algorithm) stepDesert(ctx *phase.RuntimeContext) error {
	p := a.params
	w, h := ctx.World.Width, ctx.World.Height

	desertID, err := biomeID(ctx, "desert")
	if err != nil {
		return err
	}
	desertTrueID, err := biomeID(ctx, "desert_true")
	if err != nil {
		return err
	}

	top := px(h, p.DesertSurfaceTopLimit)
	bottom := px(h, p.DesertSurfaceBottomLimit)
	minSpacing := px(w, p.DesertSurfaceMinSpacing)
	widthMin := int(px(w, p.DesertSurfaceWidthMin))
	widthMax := int(px(w, p.DesertSurfaceWidthMax))
	if widthMax < widthMin {
		widthMax = widthMin
	}

	var slots []desertSlot
	maxAttempts := (p.DesertSurfaceCount + 1) * 30
	for attempts := 0; len(slots) < p.DesertSurfaceCount && attempts < maxAttempts; attempts++ {
		width := ctx.Rand.IntRange(widthMin, widthMax)
		if width < 1 {
			width = 1
		}
		halfWidth := int32(width) / 2
		if halfWidth < 1 {
			halfWidth = 1
		}
		if int32(w) <= 2*halfWidth {
			continue
		}
		cx := int32(ctx.Rand.IntRange(int(halfWidth), int(int32(w)-halfWidth)))
		if !spacingOK(slots, cx, minSpacing) {
			continue
		}
		rect := geometry.NewRect(cx-halfWidth, top, cx+halfWidth, bottom)
		if !geometry.ShapeAllMatch(ctx.BiomeMap, rect, a.pixelThreshold, isUnassigned) {
			continue
		}
		slots = append(slots, desertSlot{CenterX: cx, HalfWidth: halfWidth})
	}

	trueCount := p.DesertTrueCount
	if trueCount > len(slots) {
		trueCount = len(slots)
	}
	ordered := append([]desertSlot(nil), slots...)
	sort.Slice(ordered, func(i, j int) bool {
		return absInt32(ordered[i].CenterX-int32(w)/2) < absInt32(ordered[j].CenterX-int32(w)/2)
	})
	trueSlots := append([]desertSlot(nil), ordered[:trueCount]...)

	trueTop := px(h, p.DesertTrueTopLimit)
	trueBottom := int32(float64(px(h, p.DesertTrueBottomLimit)) * p.DesertTrueDepthFactor)
	if trueBottom > int32(h) {
		trueBottom = int32(h)
	}
	if trueBottom <= trueTop {
		trueBottom = trueTop + 1
	}

	isUnassignedOrDesert := func(current uint8) bool {
		return current == core.BiomeUnassigned || current == desertID
	}

	for _, s := range slots {
		rect := geometry.NewRect(s.CenterX-s.HalfWidth, top, s.CenterX+s.HalfWidth, bottom)
		geometry.FillBiomeIf(ctx.BiomeMap, rect, desertID, a.pixelThreshold, isUnassigned)
		ctx.LogShape(geometry.NewShapeRecord("desert_surface", rect, colorFor(ctx, desertID), geometry.ParamsFromRect(rect)))
	}
	for _, s := range trueSlots {
		cyMid := float64(trueTop+trueBottom) / 2
		ry := float64(trueBottom-trueTop) / 2
		ellipse := geometry.NewEllipse(float64(s.CenterX), cyMid, float64(s.HalfWidth), ry)
		geometry.FillBiomeIf(ctx.BiomeMap, ellipse, desertTrueID, a.pixelThreshold, isUnassignedOrDesert)
		ctx.LogShape(geometry.NewShapeRecord("desert_true", ellipse, colorFor(ctx, desertTrueID), geometry.ParamsFromEllipse(ellipse)))
	}

	ctx.SharedSet(keyDesertSlots, slots)
	ctx.SharedSet(keyDesertTrueSlots, trueSlots)
	return nil
}

func (a *Algorithm) stepCrimson(ctx *phase.RuntimeContext) error {
	p := a.params
	w, h := ctx.World.Width, ctx.World.Height

	crimsonID, err := biomeID(ctx, "crimson")
	if err != nil {
		return err
	}

	top := px(h, p.CrimsonTopLimit)
	bottom := px(h, p.CrimsonBottomLimit)
	minSpacing := px(w, p.CrimsonMinSpacing)
	widthMin := int(px(w, p.CrimsonWidthMin))
	widthMax := int(px(w, p.CrimsonWidthMax))
	if widthMax < widthMin {
		widthMax = widthMin
	}

	var slots []desertSlot
	maxAttempts := (p.CrimsonCount + 1) * 30
	for attempts := 0; len(slots) < p.CrimsonCount && attempts < maxAttempts; attempts++ {
		width := ctx.Rand.IntRange(widthMin, widthMax)
		if width < 1 {
			width = 1
		}
		halfWidth := int32(width) / 2
		if halfWidth < 1 {
			halfWidth = 1
		}
		if int32(w) <= 2*halfWidth {
			continue
		}
		cx := int32(ctx.Rand.IntRange(int(halfWidth), int(int32(w)-halfWidth)))
		if !spacingOK(slots, cx, minSpacing) {
			continue
		}
		rect := geometry.NewRect(cx-halfWidth, top, cx+halfWidth, bottom)
		if !geometry.ShapeAllMatch(ctx.BiomeMap, rect, a.pixelThreshold, isUnassigned) {
			continue
		}
		slots = append(slots, desertSlot{CenterX: cx, HalfWidth: halfWidth})
	}

	for _, s := range slots {
		rect := geometry.NewRect(s.CenterX-s.HalfWidth, top, s.CenterX+s.HalfWidth, bottom)
		geometry.FillBiomeIf(ctx.BiomeMap, rect, crimsonID, a.pixelThreshold, isUnassigned)
		ctx.LogShape(geometry.NewShapeRecord("crimson", rect, colorFor(ctx, crimsonID), geometry.ParamsFromRect(rect)))
	}
	return nil
}

type expandTask struct {
	edgeX  int32
	dir    int32 // -1 expands left, +1 expands right
	fillID uint8
}

func isTrueDesertRun(runStart, runEnd int32, trueSlots []desertSlot) bool {
	mid := (runStart + runEnd) / 2
	for _, s := range trueSlots {
		if mid >= s.CenterX-s.HalfWidth && mid < s.CenterX+s.HalfWidth {
			return true
		}
	}
	return false
}

func (a *Algorithm) stepForestFill(ctx *phase.RuntimeContext) error {
	p := a.params
	w, h := ctx.World.Width, ctx.World.Height

	forestID, err := biomeID(ctx, "forest")
	if err != nil {
		return err
	}
	desertID, err := biomeID(ctx, "desert")
	if err != nil {
		return err
	}
	crimsonID, err := biomeID(ctx, "crimson")
	if err != nil {
		return err
	}

	layerTop := px(h, forestTopRatio)
	layerBottom := px(h, forestBottomRatio)
	scanY := px(h, forestFillScanRatio)
	if scanY < layerTop {
		scanY = layerTop
	}
	if scanY >= layerBottom {
		scanY = layerBottom - 1
	}

	var trueSlots []desertSlot
	if v, ok := ctx.SharedGet(keyDesertTrueSlots); ok {
		trueSlots, _ = v.([]desertSlot)
	}

	threshold := int32(p.ForestFillMergeThreshold)
	var tasks []expandTask

	for x := int32(0); x < int32(w); {
		cur := ctx.BiomeMap.Get(x, scanY)
		if cur == core.BiomeUnassigned {
			x++
			continue
		}
		runStart := x
		for x < int32(w) && ctx.BiomeMap.Get(x, scanY) == cur {
			x++
		}
		runEnd := x
		if cur != desertID && cur != crimsonID {
			continue
		}
		if isTrueDesertRun(runStart, runEnd, trueSlots) {
			continue
		}

		leftGap := int32(0)
		for gx := runStart - 1; gx >= 0 && ctx.BiomeMap.Get(gx, scanY) == core.BiomeUnassigned; gx-- {
			leftGap++
		}
		if leftGap > 0 && leftGap < threshold {
			tasks = append(tasks, expandTask{edgeX: runStart, dir: -1, fillID: cur})
		}

		rightGap := int32(0)
		for gx := runEnd; gx < int32(w) && ctx.BiomeMap.Get(gx, scanY) == core.BiomeUnassigned; gx++ {
			rightGap++
		}
		if rightGap > 0 && rightGap < threshold {
			tasks = append(tasks, expandTask{edgeX: runEnd - 1, dir: 1, fillID: cur})
		}
	}

	for _, t := range tasks {
		inward := -t.dir
		for y := layerTop; y < layerBottom; y++ {
			cx := t.edgeX
			for cx >= 0 && cx < int32(w) && ctx.BiomeMap.Get(cx, y) == core.BiomeUnassigned {
				cx += inward
			}
			if cx < 0 || cx >= int32(w) {
				continue
			}
			for ox := cx + t.dir; ox >= 0 && ox < int32(w) && ctx.BiomeMap.Get(ox, y) == core.BiomeUnassigned; ox += t.dir {
				ctx.BiomeMap.Set(ox, y, t.fillID)
			}
		}
	}

	remaining := geometry.NewRect(0, layerTop, int32(w), layerBottom)
	geometry.FillBiomeIf(ctx.BiomeMap, remaining, forestID, a.pixelThreshold, isUnassigned)
	ctx.LogShape(geometry.NewShapeRecord("forest_fill_remainder", remaining, colorFor(ctx, forestID), geometry.ParamsFromRect(remaining)))
	return nil
}

func (a *Algorithm) stepStoneFill(ctx *phase.RuntimeContext) error {
	w, h := ctx.World.Width, ctx.World.Height

	stoneID, err := biomeID(ctx, "stone")
	if err != nil {
		return err
	}

	full := geometry.NewRect(0, 0, int32(w), int32(h))
	geometry.FillBiomeIf(ctx.BiomeMap, full, stoneID, a.pixelThreshold, isUnassigned)
	ctx.LogShape(geometry.NewShapeRecord("stone_fill", full, colorFor(ctx, stoneID), geometry.ParamsFromRect(full)))
	return nil
}
