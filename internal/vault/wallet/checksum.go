package wallet

import (
	"errors"
	"fmt"
	"strings"
)

const (
	descriptorInputCharset = "0123456789()[],'/*abcdefgh@:$%{}" +
		"IJKLMNOPQRSTUVWXYZ&+-.;<=>?!^_|~" +
		"ijklmnopqrstuvwxyzABCDEFGH`#\"\\ "
	descriptorChecksumCharset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
	descriptorChecksumLen     = 8
)

var descriptorGenerator = [5]uint64{0xf5dee51989, 0xa9fdca3312, 0x1bab10e32d, 0x3706b1677a, 0x644d626ffd}

// ErrBadChecksum reports a descriptor whose checksum does not match its body.
var ErrBadChecksum = errors.New("descriptor checksum mismatch")

func descriptorPolymod(c uint64, val uint64) uint64 {
	c0 := c >> 35
	c = ((c & 0x7ffffffff) << 5) ^ val
	for i, g := range descriptorGenerator {
		if (c0>>uint(i))&1 != 0 {
			c ^= g
		}
	}
	return c
}

// DescriptorChecksum computes the eight character output descriptor checksum.
func DescriptorChecksum(desc string) (string, error) {
	c := uint64(1)
	cls, clsCount := uint64(0), 0
	for i := 0; i < len(desc); i++ {
		pos := strings.IndexByte(descriptorInputCharset, desc[i])
		if pos < 0 {
			return "", fmt.Errorf("invalid descriptor character %q at %d", desc[i], i)
		}
		c = descriptorPolymod(c, uint64(pos&31))
		cls = cls*3 + uint64(pos>>5)
		clsCount++
		if clsCount == 3 {
			c = descriptorPolymod(c, cls)
			cls, clsCount = 0, 0
		}
	}
	if clsCount > 0 {
		c = descriptorPolymod(c, cls)
	}
	for i := 0; i < descriptorChecksumLen; i++ {
		c = descriptorPolymod(c, 0)
	}
	c ^= 1

	out := make([]byte, descriptorChecksumLen)
	for i := range out {
		out[i] = descriptorChecksumCharset[(c>>(5*(7-uint(i))))&31]
	}
	return string(out), nil
}

// AddChecksum returns desc followed by "#" and its checksum.
func AddChecksum(desc string) (string, error) {
	sum, err := DescriptorChecksum(desc)
	if err != nil {
		return "", err
	}
	return desc + "#" + sum, nil
}

// VerifyChecksum checks a "body#checksum" descriptor and returns the body.
func VerifyChecksum(desc string) (string, error) {
	body, sum, ok := strings.Cut(desc, "#")
	if !ok {
		return "", fmt.Errorf("%w: missing checksum", ErrBadChecksum)
	}
	want, err := DescriptorChecksum(body)
	if err != nil {
		return "", err
	}
	if sum != want {
		return "", fmt.Errorf("%w: got %s, want %s", ErrBadChecksum, sum, want)
	}
	return body, nil
}
