package phantom

import (
	"medphantom/pkg/geometry"
	"medphantom/pkg/motion"
	"medphantom/pkg/raster"
)

// The torso lives in coordinates where one unit is 15 cm, so a 30 cm field
// of view spans [-1, 1]. unitML converts a normalized unit volume to
// milliliters.
const unitML = 3375.0

// Lung shape table. The transverse radii scale with the respiratory lung
// scale and the caudal extent follows the diaphragm term, tuned together
// with the polynomials in the motion package so that the rasterized volume
// of the two lungs minus the hilar vessels tracks the commanded liters.
// None of these constants can change on its own.
const (
	lungRightRX = 0.30
	lungRightRY = 0.5433
	lungLeftRX  = 0.225
	lungLeftRY  = 0.5705
	lungRZBase  = 0.52
	lungRZSlope = 0.016835
	lungCenterZ = 0.33
)

// Torso returns the deformed torso anatomy, heart excluded, for one
// respiratory state. Elements are ordered so that every later shape may
// overwrite the earlier ones: the body envelope first, viscera next, then
// lungs, the vessels and bone that sit inside or beside them, and the
// aorta last.
func Torso(p motion.RespParams, t TissueIntensities) []raster.Element {
	bs := p.BodyScale
	du := p.DiaphragmUp
	xyv := p.XYVisceralScale
	lungRZ := lungRZBase + lungRZSlope*p.LowerRZ

	return []raster.Element{
		// Chest wall envelope, flattened front to back.
		raster.Mask(geometry.SuperEllipsoid{
			CX: 0, CY: p.YOffset, CZ: 0,
			RX: 0.81 * bs, RY: 0.62 * bs, RZ: 0.93,
			EX: 2, EY: 2, EZ: 8,
		}, t.Body),

		// Viscera under the diaphragm ride up as the lungs empty.
		raster.Mask(geometry.Ellipsoid{
			CX: -0.25, CY: p.YOffsetVisceral, CZ: -0.28 + 0.4*du,
			RX: 0.33 * xyv, RY: 0.26 * xyv, RZ: 0.16 * p.LowerRZ,
		}, t.Liver),
		raster.Mask(geometry.SuperEllipsoid{
			CX: 0.24, CY: p.YOffsetVisceral - 0.08, CZ: -0.36 + 0.4*du,
			RX: 0.20 * xyv, RY: 0.18 * xyv, RZ: 0.20,
			EX: 2.5, EY: 2.5, EZ: 2,
		}, t.Stomach),

		raster.Mask(geometry.SuperEllipsoid{
			CX: -0.33*bs - 0.24, CY: p.YOffset, CZ: lungCenterZ,
			RX: lungLeftRX * p.Scale, RY: lungLeftRY * p.Scale, RZ: lungRZ,
			EX: 8, EY: 8, EZ: 8,
		}, t.Lung),
		raster.Mask(geometry.SuperEllipsoid{
			CX: 0.33*bs + 0.13, CY: p.YOffset, CZ: lungCenterZ,
			RX: lungRightRX * p.Scale, RY: lungRightRY * p.Scale, RZ: lungRZ,
			EX: 8, EY: 8, EZ: 8,
		}, t.Lung),

		// Hilar vessel trees carve a fixed volume out of each lung. They
		// stay strictly inside the lungs over the whole breathing range.
		raster.Mask(geometry.SuperEllipsoid{
			CX: 0.45, CY: 0.04, CZ: lungCenterZ,
			RX: 0.095, RY: 0.175, RZ: 0.42,
			EX: 8, EY: 8, EZ: 8,
		}, t.VesselsBlood),
		raster.Mask(geometry.SuperEllipsoid{
			CX: -0.56, CY: 0.04, CZ: lungCenterZ,
			RX: 0.055, RY: 0.16, RZ: 0.35,
			EX: 8, EY: 8, EZ: 8,
		}, t.VesselsBlood),

		raster.Mask(geometry.NewCylinderZ(0, p.YOffset+0.36, 0, 0.10, 1.8), t.Bones),
		raster.Mask(geometry.SuperEllipsoid{
			CX: 0, CY: p.YOffset - 0.44, CZ: -0.20,
			RX: 0.08, RY: 0.025, RZ: 0.33,
			EX: 8, EY: 8, EZ: 8,
		}, t.Bones),

		raster.Mask(geometry.NewCylinderZ(0, p.YOffset+0.19, 0.15, 0.055, 1.4), t.VesselsBlood),
	}
}
