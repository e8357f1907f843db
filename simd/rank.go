package simd

// byteRank approximates how common each byte is in text and source code.
// Lower is rarer. Memmem anchors its scan on the rarest byte of the needle
// so that candidate positions are few.
var byteRank = [256]byte{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	// ' ' ! " # $ % & ' ( ) * + , - . /
	255, 60, 140, 50, 40, 35, 30, 160, 130, 130, 80, 55, 200, 140, 210, 100,
	// 0-9 : ; < = > ?
	180, 190, 170, 150, 140, 140, 130, 120, 120, 120, 150, 100, 70, 160, 70, 50,
	// @ A-O
	25, 120, 80, 90, 85, 130, 75, 70, 80, 115, 30, 35, 90, 85, 100, 105,
	// P-Z [ \ ] ^ _
	80, 15, 100, 110, 115, 70, 45, 55, 20, 50, 10, 90, 60, 90, 20, 110,
	// ` a-o
	30, 225, 140, 170, 165, 245, 135, 130, 150, 200, 25, 65, 175, 155, 195, 205,
	// p-z { | } ~ DEL
	145, 15, 195, 200, 215, 150, 75, 95, 45, 120, 20, 85, 40, 85, 15, 0,
	// UTF-8 lead and continuation bytes
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
}

// RarestByte returns the rarest byte of needle and its first index.
// The first occurrence wins ties. It returns (0, -1) for an empty needle.
func RarestByte(needle []byte) (b byte, index int) {
	if len(needle) == 0 {
		return 0, -1
	}
	b, index = needle[0], 0
	best := byteRank[b]
	for i := 1; i < len(needle); i++ {
		if r := byteRank[needle[i]]; r < best {
			b, index, best = needle[i], i, r
		}
	}
	return b, index
}
