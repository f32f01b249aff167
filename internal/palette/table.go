package palette

// classic is the 256-color table the effect was designed around: 24 hues
// evenly mixed from {R, G, B}, each ramped in 8 gamma-corrected (2.5)
// brightness steps from full (offset 0) to black (offset 7). Family 0 is
// all black so that erasing is just drawing with hue 0.
var classic = [...]RGB{
	{0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xff, 0x00, 0x00}, {0xef, 0x00, 0x00}, {0xde, 0x00, 0x00}, {0xcb, 0x00, 0x00}, {0xb5, 0x00, 0x00}, {0x9a, 0x00, 0x00}, {0x75, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xff, 0x91, 0x00}, {0xef, 0x89, 0x00}, {0xde, 0x7f, 0x00}, {0xcb, 0x74, 0x00}, {0xb5, 0x67, 0x00}, {0x9a, 0x58, 0x00}, {0x75, 0x42, 0x00}, {0x00, 0x00, 0x00},
	{0xff, 0xc0, 0x00}, {0xef, 0xb5, 0x00}, {0xde, 0xa8, 0x00}, {0xcb, 0x9a, 0x00}, {0xb5, 0x89, 0x00}, {0x9a, 0x74, 0x00}, {0x75, 0x58, 0x00}, {0x00, 0x00, 0x00},
	{0xff, 0xe3, 0x00}, {0xef, 0xd5, 0x00}, {0xde, 0xc6, 0x00}, {0xcb, 0xb5, 0x00}, {0xb5, 0xa1, 0x00}, {0x9a, 0x89, 0x00}, {0x75, 0x68, 0x00}, {0x00, 0x00, 0x00},
	{0xff, 0xff, 0x00}, {0xef, 0xef, 0x00}, {0xde, 0xde, 0x00}, {0xcb, 0xcb, 0x00}, {0xb5, 0xb5, 0x00}, {0x9a, 0x9a, 0x00}, {0x75, 0x75, 0x00}, {0x00, 0x00, 0x00},
	{0xe3, 0xff, 0x00}, {0xd5, 0xef, 0x00}, {0xc6, 0xde, 0x00}, {0xb5, 0xcb, 0x00}, {0xa1, 0xb5, 0x00}, {0x89, 0x9a, 0x00}, {0x68, 0x75, 0x00}, {0x00, 0x00, 0x00},
	{0xc0, 0xff, 0x00}, {0xb5, 0xef, 0x00}, {0xa8, 0xde, 0x00}, {0x9a, 0xcb, 0x00}, {0x89, 0xb5, 0x00}, {0x74, 0x9a, 0x00}, {0x58, 0x75, 0x00}, {0x00, 0x00, 0x00},
	{0x91, 0xff, 0x00}, {0x89, 0xef, 0x00}, {0x7f, 0xde, 0x00}, {0x74, 0xcb, 0x00}, {0x67, 0xb5, 0x00}, {0x58, 0x9a, 0x00}, {0x42, 0x75, 0x00}, {0x00, 0x00, 0x00},
	{0x00, 0xff, 0x00}, {0x00, 0xef, 0x00}, {0x00, 0xde, 0x00}, {0x00, 0xcb, 0x00}, {0x00, 0xb5, 0x00}, {0x00, 0x9a, 0x00}, {0x00, 0x75, 0x00}, {0x00, 0x00, 0x00},
	{0x00, 0xff, 0x91}, {0x00, 0xef, 0x89}, {0x00, 0xde, 0x7f}, {0x00, 0xcb, 0x74}, {0x00, 0xb5, 0x67}, {0x00, 0x9a, 0x58}, {0x00, 0x75, 0x42}, {0x00, 0x00, 0x00},
	{0x00, 0xff, 0xc0}, {0x00, 0xef, 0xb5}, {0x00, 0xde, 0xa8}, {0x00, 0xcb, 0x9a}, {0x00, 0xb5, 0x89}, {0x00, 0x9a, 0x74}, {0x00, 0x75, 0x58}, {0x00, 0x00, 0x00},
	{0x00, 0xff, 0xe3}, {0x00, 0xef, 0xd5}, {0x00, 0xde, 0xc6}, {0x00, 0xcb, 0xb5}, {0x00, 0xb5, 0xa1}, {0x00, 0x9a, 0x89}, {0x00, 0x75, 0x68}, {0x00, 0x00, 0x00},
	{0x00, 0xff, 0xff}, {0x00, 0xef, 0xef}, {0x00, 0xde, 0xde}, {0x00, 0xcb, 0xcb}, {0x00, 0xb5, 0xb5}, {0x00, 0x9a, 0x9a}, {0x00, 0x75, 0x75}, {0x00, 0x00, 0x00},
	{0x00, 0xe3, 0xff}, {0x00, 0xd5, 0xef}, {0x00, 0xc6, 0xde}, {0x00, 0xb5, 0xcb}, {0x00, 0xa1, 0xb5}, {0x00, 0x89, 0x9a}, {0x00, 0x68, 0x75}, {0x00, 0x00, 0x00},
	{0x00, 0xc0, 0xff}, {0x00, 0xb5, 0xef}, {0x00, 0xa8, 0xde}, {0x00, 0x9a, 0xcb}, {0x00, 0x89, 0xb5}, {0x00, 0x74, 0x9a}, {0x00, 0x58, 0x75}, {0x00, 0x00, 0x00},
	{0x00, 0x91, 0xff}, {0x00, 0x89, 0xef}, {0x00, 0x7f, 0xde}, {0x00, 0x74, 0xcb}, {0x00, 0x67, 0xb5}, {0x00, 0x58, 0x9a}, {0x00, 0x42, 0x75}, {0x00, 0x00, 0x00},
	{0x00, 0x00, 0xff}, {0x00, 0x00, 0xef}, {0x00, 0x00, 0xde}, {0x00, 0x00, 0xcb}, {0x00, 0x00, 0xb5}, {0x00, 0x00, 0x9a}, {0x00, 0x00, 0x75}, {0x00, 0x00, 0x00},
	{0x91, 0x00, 0xff}, {0x89, 0x00, 0xef}, {0x7f, 0x00, 0xde}, {0x74, 0x00, 0xcb}, {0x67, 0x00, 0xb5}, {0x58, 0x00, 0x9a}, {0x42, 0x00, 0x75}, {0x00, 0x00, 0x00},
	{0xc0, 0x00, 0xff}, {0xb5, 0x00, 0xef}, {0xa8, 0x00, 0xde}, {0x9a, 0x00, 0xcb}, {0x89, 0x00, 0xb5}, {0x74, 0x00, 0x9a}, {0x58, 0x00, 0x75}, {0x00, 0x00, 0x00},
	{0xe3, 0x00, 0xff}, {0xd5, 0x00, 0xef}, {0xc6, 0x00, 0xde}, {0xb5, 0x00, 0xcb}, {0xa1, 0x00, 0xb5}, {0x89, 0x00, 0x9a}, {0x68, 0x00, 0x75}, {0x00, 0x00, 0x00},
	{0xff, 0x00, 0xff}, {0xef, 0x00, 0xef}, {0xde, 0x00, 0xde}, {0xcb, 0x00, 0xcb}, {0xb5, 0x00, 0xb5}, {0x9a, 0x00, 0x9a}, {0x75, 0x00, 0x75}, {0x00, 0x00, 0x00},
	{0xff, 0x00, 0xe3}, {0xef, 0x00, 0xd5}, {0xde, 0x00, 0xc6}, {0xcb, 0x00, 0xb5}, {0xb5, 0x00, 0xa1}, {0x9a, 0x00, 0x89}, {0x75, 0x00, 0x68}, {0x00, 0x00, 0x00},
	{0xff, 0x00, 0xc0}, {0xef, 0x00, 0xb5}, {0xde, 0x00, 0xa8}, {0xcb, 0x00, 0x9a}, {0xb5, 0x00, 0x89}, {0x9a, 0x00, 0x74}, {0x75, 0x00, 0x58}, {0x00, 0x00, 0x00},
	{0xff, 0x00, 0x91}, {0xef, 0x00, 0x89}, {0xde, 0x00, 0x7f}, {0xcb, 0x00, 0x74}, {0xb5, 0x00, 0x67}, {0x9a, 0x00, 0x58}, {0x75, 0x00, 0x42}, {0x00, 0x00, 0x00},
}
