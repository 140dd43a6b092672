package lib

import "fmt"
import "math"
import "sort"

import "github.com/golang/geo/r2"
import "github.com/golang/geo/r3"

const MaxTileZoom = 19

// TileCoord identifies a map tile in the XYZ scheme used by OSM tile servers.
type TileCoord struct {
	X, Y, Zoom int
}

func (c TileCoord) String() string {
	return fmt.Sprintf("%d/%d/%d", c.Zoom, c.X, c.Y)
}

// VisibleTiles returns the tiles at zoom level floor(zoom) that cover the
// ground area visible in the viewport, sorted by row and then by column.
// Column indices are wrapped into the map, rows are clamped to it.
func (v *WebMercatorViewport) VisibleTiles() ([]TileCoord, error) {
	zoom := int(math.Floor(v.props.Zoom))
	if zoom < 0 {
		zoom = 0
	}
	if zoom > MaxTileZoom {
		zoom = MaxTileZoom
	}
	numTiles := 1 << zoom
	tileSize := TileSize * v.scale / float64(numTiles)

	corners := []r2.Point{{X: 0, Y: 0}, {X: v.width, Y: 0}, {X: 0, Y: v.height}, {X: v.width, Y: v.height}}
	worldCorners := make([]r2.Point, 0, len(corners))
	for _, corner := range corners {
		world, err := PixelsToWorld(r3.Vector{X: corner.X, Y: corner.Y, Z: math.NaN()}, v.pixelUnprojectionMatrix, 0)
		if err != nil {
			return nil, err
		}
		worldCorners = append(worldCorners, r2.Point{X: world.X, Y: world.Y})
	}
	bounds := r2.RectFromPoints(worldCorners...)

	minX := int(math.Floor(bounds.X.Lo / tileSize))
	maxX := int(math.Floor(bounds.X.Hi / tileSize))
	if maxX-minX >= numTiles {
		minX, maxX = 0, numTiles-1
	}
	minY := clampTileIndex(int(math.Floor(bounds.Y.Lo/tileSize)), numTiles)
	maxY := clampTileIndex(int(math.Floor(bounds.Y.Hi/tileSize)), numTiles)

	seen := make(map[TileCoord]struct{})
	tiles := []TileCoord{}
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			coord := TileCoord{X: ((x % numTiles) + numTiles) % numTiles, Y: y, Zoom: zoom}
			if _, ok := seen[coord]; ok {
				continue
			}
			seen[coord] = struct{}{}
			tiles = append(tiles, coord)
		}
	}
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Y != tiles[j].Y {
			return tiles[i].Y < tiles[j].Y
		}
		return tiles[i].X < tiles[j].X
	})
	return tiles, nil
}

func clampTileIndex(index, numTiles int) int {
	if index < 0 {
		return 0
	}
	if index >= numTiles {
		return numTiles - 1
	}
	return index
}
