package primitives

// Triangle is the unit triangle every primitive draws, scaled by Primitive.Size.
// Winding is counter-clockwise seen from +Z.
var Triangle = [3][3]float32{
	{0, 1, 0},
	{-1, -1, 0},
	{1, -1, 0},
}

// TriangleUV maps the checkerboard so the apex samples the top-centre of the texture.
var TriangleUV = [3][2]float32{
	{0.5, 1},
	{0, 0},
	{1, 0},
}

// TriangleNormal faces the camera.
var TriangleNormal = [3]float32{0, 0, 1}

// DemoColors are the per-vertex colours of the quick demo triangle.
var DemoColors = [3][3]float32{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}
