package syntax

import "unicode"

// bidiMirrored is the Bidi_Mirrored property: characters drawn mirrored in
// right-to-left text, such as brackets and relational operators. Neither
// package unicode nor x/text exports it.
var bidiMirrored = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0028, Hi: 0x0029, Stride: 1},
		{Lo: 0x003c, Hi: 0x003c, Stride: 1},
		{Lo: 0x003e, Hi: 0x003e, Stride: 1},
		{Lo: 0x005b, Hi: 0x005b, Stride: 1},
		{Lo: 0x005d, Hi: 0x005d, Stride: 1},
		{Lo: 0x007b, Hi: 0x007b, Stride: 1},
		{Lo: 0x007d, Hi: 0x007d, Stride: 1},
		{Lo: 0x00ab, Hi: 0x00ab, Stride: 1},
		{Lo: 0x00bb, Hi: 0x00bb, Stride: 1},
		{Lo: 0x0f3a, Hi: 0x0f3d, Stride: 1},
		{Lo: 0x169b, Hi: 0x169c, Stride: 1},
		{Lo: 0x2039, Hi: 0x203a, Stride: 1},
		{Lo: 0x2045, Hi: 0x2046, Stride: 1},
		{Lo: 0x207d, Hi: 0x207e, Stride: 1},
		{Lo: 0x208d, Hi: 0x208e, Stride: 1},
		{Lo: 0x2140, Hi: 0x2140, Stride: 1},
		{Lo: 0x2201, Hi: 0x2204, Stride: 1},
		{Lo: 0x2208, Hi: 0x220d, Stride: 1},
		{Lo: 0x2211, Hi: 0x2211, Stride: 1},
		{Lo: 0x2215, Hi: 0x2216, Stride: 1},
		{Lo: 0x221a, Hi: 0x221d, Stride: 1},
		{Lo: 0x221f, Hi: 0x2222, Stride: 1},
		{Lo: 0x2224, Hi: 0x2224, Stride: 1},
		{Lo: 0x2226, Hi: 0x2226, Stride: 1},
		{Lo: 0x222b, Hi: 0x2233, Stride: 1},
		{Lo: 0x2239, Hi: 0x2239, Stride: 1},
		{Lo: 0x223b, Hi: 0x224c, Stride: 1},
		{Lo: 0x2252, Hi: 0x2255, Stride: 1},
		{Lo: 0x225f, Hi: 0x2260, Stride: 1},
		{Lo: 0x2262, Hi: 0x2262, Stride: 1},
		{Lo: 0x2264, Hi: 0x226b, Stride: 1},
		{Lo: 0x226e, Hi: 0x228c, Stride: 1},
		{Lo: 0x228f, Hi: 0x2292, Stride: 1},
		{Lo: 0x2298, Hi: 0x2298, Stride: 1},
		{Lo: 0x22a2, Hi: 0x22a3, Stride: 1},
		{Lo: 0x22a6, Hi: 0x22b8, Stride: 1},
		{Lo: 0x22be, Hi: 0x22bf, Stride: 1},
		{Lo: 0x22c9, Hi: 0x22cd, Stride: 1},
		{Lo: 0x22d0, Hi: 0x22d1, Stride: 1},
		{Lo: 0x22d6, Hi: 0x22ed, Stride: 1},
		{Lo: 0x22f0, Hi: 0x22ff, Stride: 1},
		{Lo: 0x2308, Hi: 0x230b, Stride: 1},
		{Lo: 0x2320, Hi: 0x2321, Stride: 1},
		{Lo: 0x2329, Hi: 0x232a, Stride: 1},
		{Lo: 0x2768, Hi: 0x2775, Stride: 1},
		{Lo: 0x27c0, Hi: 0x27c0, Stride: 1},
		{Lo: 0x27c3, Hi: 0x27c6, Stride: 1},
		{Lo: 0x27c8, Hi: 0x27c9, Stride: 1},
		{Lo: 0x27cb, Hi: 0x27cd, Stride: 1},
		{Lo: 0x27d3, Hi: 0x27d6, Stride: 1},
		{Lo: 0x27dc, Hi: 0x27de, Stride: 1},
		{Lo: 0x27e2, Hi: 0x27ef, Stride: 1},
		{Lo: 0x2983, Hi: 0x2998, Stride: 1},
		{Lo: 0x299b, Hi: 0x29a0, Stride: 1},
		{Lo: 0x29a2, Hi: 0x29af, Stride: 1},
		{Lo: 0x29b8, Hi: 0x29b8, Stride: 1},
		{Lo: 0x29c0, Hi: 0x29c5, Stride: 1},
		{Lo: 0x29c9, Hi: 0x29c9, Stride: 1},
		{Lo: 0x29ce, Hi: 0x29d2, Stride: 1},
		{Lo: 0x29d4, Hi: 0x29d5, Stride: 1},
		{Lo: 0x29d8, Hi: 0x29dc, Stride: 1},
		{Lo: 0x29e1, Hi: 0x29e1, Stride: 1},
		{Lo: 0x29e3, Hi: 0x29e5, Stride: 1},
		{Lo: 0x29e8, Hi: 0x29e9, Stride: 1},
		{Lo: 0x29f4, Hi: 0x29f9, Stride: 1},
		{Lo: 0x29fc, Hi: 0x29fd, Stride: 1},
		{Lo: 0x2a0a, Hi: 0x2a1c, Stride: 1},
		{Lo: 0x2a1e, Hi: 0x2a21, Stride: 1},
		{Lo: 0x2a24, Hi: 0x2a24, Stride: 1},
		{Lo: 0x2a26, Hi: 0x2a26, Stride: 1},
		{Lo: 0x2a29, Hi: 0x2a29, Stride: 1},
		{Lo: 0x2a2b, Hi: 0x2a2e, Stride: 1},
		{Lo: 0x2a34, Hi: 0x2a35, Stride: 1},
		{Lo: 0x2a3c, Hi: 0x2a3e, Stride: 1},
		{Lo: 0x2a57, Hi: 0x2a58, Stride: 1},
		{Lo: 0x2a64, Hi: 0x2a65, Stride: 1},
		{Lo: 0x2a6a, Hi: 0x2a6d, Stride: 1},
		{Lo: 0x2a6f, Hi: 0x2a70, Stride: 1},
		{Lo: 0x2a73, Hi: 0x2a74, Stride: 1},
		{Lo: 0x2a79, Hi: 0x2aa3, Stride: 1},
		{Lo: 0x2aa6, Hi: 0x2aad, Stride: 1},
		{Lo: 0x2aaf, Hi: 0x2ad6, Stride: 1},
		{Lo: 0x2adc, Hi: 0x2adc, Stride: 1},
		{Lo: 0x2ade, Hi: 0x2ade, Stride: 1},
		{Lo: 0x2ae2, Hi: 0x2ae6, Stride: 1},
		{Lo: 0x2aec, Hi: 0x2aee, Stride: 1},
		{Lo: 0x2af3, Hi: 0x2af3, Stride: 1},
		{Lo: 0x2af7, Hi: 0x2afb, Stride: 1},
		{Lo: 0x2afd, Hi: 0x2afd, Stride: 1},
		{Lo: 0x2bfe, Hi: 0x2bfe, Stride: 1},
		{Lo: 0x2e02, Hi: 0x2e05, Stride: 1},
		{Lo: 0x2e09, Hi: 0x2e0a, Stride: 1},
		{Lo: 0x2e0c, Hi: 0x2e0d, Stride: 1},
		{Lo: 0x2e1c, Hi: 0x2e1d, Stride: 1},
		{Lo: 0x2e20, Hi: 0x2e29, Stride: 1},
		{Lo: 0x2e55, Hi: 0x2e5c, Stride: 1},
		{Lo: 0x3008, Hi: 0x3011, Stride: 1},
		{Lo: 0x3014, Hi: 0x301b, Stride: 1},
		{Lo: 0xfe59, Hi: 0xfe5e, Stride: 1},
		{Lo: 0xfe64, Hi: 0xfe65, Stride: 1},
		{Lo: 0xff08, Hi: 0xff09, Stride: 1},
		{Lo: 0xff1c, Hi: 0xff1c, Stride: 1},
		{Lo: 0xff1e, Hi: 0xff1e, Stride: 1},
		{Lo: 0xff3b, Hi: 0xff3b, Stride: 1},
		{Lo: 0xff3d, Hi: 0xff3d, Stride: 1},
		{Lo: 0xff5b, Hi: 0xff5b, Stride: 1},
		{Lo: 0xff5d, Hi: 0xff5d, Stride: 1},
		{Lo: 0xff5f, Hi: 0xff60, Stride: 1},
		{Lo: 0xff62, Hi: 0xff63, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1d6db, Hi: 0x1d6db, Stride: 1},
		{Lo: 0x1d715, Hi: 0x1d715, Stride: 1},
		{Lo: 0x1d74f, Hi: 0x1d74f, Stride: 1},
		{Lo: 0x1d789, Hi: 0x1d789, Stride: 1},
		{Lo: 0x1d7c3, Hi: 0x1d7c3, Stride: 1},
	},
	LatinOffset: 9,
}
