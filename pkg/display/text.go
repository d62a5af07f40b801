package display

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// EncodeText converts s to GBK, the superset of GB2312 the display font is
// indexed by. Runes it cannot encode become the substitute character. NUL
// runes are dropped since the device reads text up to the first zero byte.
func EncodeText(s string) []byte {
	s = strings.ReplaceAll(s, "\x00", "")
	bs, err := encoding.ReplaceUnsupported(simplifiedchinese.GBK.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return bs
}
