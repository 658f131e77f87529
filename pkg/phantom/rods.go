package phantom

import (
	"medphantom/pkg/geometry"
	"medphantom/pkg/raster"
)

// Rods returns a geometric quality phantom: three orthogonal rods of known
// radius in a water bath. Each rod carries its own intensity, so a render
// immediately shows whether the slice planes, axis order and voxel scaling
// are wired correctly.
func Rods() []raster.Element {
	return []raster.Element{
		raster.Mask(geometry.Ellipsoid{RX: 0.95, RY: 0.95, RZ: 0.95}, 0.2),
		raster.Mask(geometry.NewCylinderX(0, -0.4, 0.4, 0.1, 1.6), 0.5),
		raster.Mask(geometry.NewCylinderY(0.4, 0, -0.4, 0.1, 1.6), 0.7),
		raster.Mask(geometry.NewCylinderZ(-0.4, 0.4, 0, 0.1, 1.6), 0.9),
	}
}
