package device

// encodeFrame packs interleaved 16-bit samples little-endian into dst, which
// must hold exactly 2*len(pcm) bytes.
func encodeFrame(dst []byte, pcm []int16) {
	for i, s := range pcm {
		dst[2*i] = byte(s)
		dst[2*i+1] = byte(uint16(s) >> 8)
	}
}
