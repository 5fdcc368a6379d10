package decoder

import "unicode/utf8"

func (d *Decoder) startString(inKey bool) {
	d.inKey = inKey
	d.strEsc = false
	d.hi = 0
	d.state = stateString
}

// promote switches the string lexer from the fast path to the accumulator,
// carrying over the unescaped run scanned so far.
func (d *Decoder) promote(seg []byte) {
	if !d.strEsc {
		d.strEsc = true
		d.str = d.str[:0]
	}
	d.str = append(d.str, seg...)
}

// scanString drives the string sub-states. The fast path scans a contiguous
// run of plain UTF-8 bytes and emits it as a single slice; the first escape
// or chunk boundary promotes the run into the accumulator.
func (d *Decoder) scanString() (more bool, err error) {
scan:
	for {
		switch d.state {
		case stateString:
			run := d.pos
			for d.pos < len(d.buf) {
				b := d.buf[d.pos]
				if b == '"' {
					seg := d.buf[run:d.pos]
					d.pos++
					return false, d.finishString(seg)
				}
				if b == '\\' {
					d.promote(d.buf[run:d.pos])
					d.escPos = d.abs(d.pos)
					d.pos++
					d.state = stateStringEscape
					continue scan
				}
				if b < 0x20 {
					return false, d.errByteAt(d.pos)
				}
				if b < 0x80 {
					d.pos++
					continue
				}
				n := int(mbLen[b])
				if n == 0 {
					return false, d.errByteAt(d.pos)
				}
				avail := len(d.buf) - d.pos
				k := min(n, avail)
				for i := 1; i < k; i++ {
					if !checkMultibyte(b, i, d.buf[d.pos+i]) {
						return false, d.errByteAt(d.pos)
					}
				}
				if avail < n {
					// the sequence continues in the next chunk
					d.promote(d.buf[run:d.pos])
					d.mbPos = d.abs(d.pos)
					d.mbLen = copy(d.mb[:], d.buf[d.pos:])
					d.mbNeed = n
					d.pos = len(d.buf)
					d.state = stateStringMultibyte
					return true, nil
				}
				d.pos += n
			}
			d.promote(d.buf[run:])
			return true, nil

		case stateStringEscape:
			if d.pos == len(d.buf) {
				return true, nil
			}
			b := d.buf[d.pos]
			if b == 'u' {
				d.esc[0], d.esc[1] = '\\', 'u'
				d.escLen = 2
				d.hexNeed = 4
				d.pos++
				d.state = stateStringUnicode
				continue
			}
			m := escapeTable[b]
			if m == 0 {
				return false, d.errByteAt(d.pos)
			}
			d.str = append(d.str, m)
			d.pos++
			d.state = stateString

		case stateStringUnicode:
			for d.hexNeed > 0 && d.pos < len(d.buf) {
				d.esc[d.escLen] = d.buf[d.pos]
				d.escLen++
				d.hexNeed--
				d.pos++
			}
			if d.hexNeed > 0 {
				return true, nil
			}
			if err := d.finishEscape(); err != nil {
				return false, err
			}

		case stateStringSurrogate:
			if d.pos == len(d.buf) {
				return true, nil
			}
			if d.buf[d.pos] != '\\' {
				return false, d.errToken(d.escPos, d.esc[:6])
			}
			d.escPos2 = d.abs(d.pos)
			d.esc[6] = '\\'
			d.pos++
			d.state = stateStringSurrogateU

		case stateStringSurrogateU:
			if d.pos == len(d.buf) {
				return true, nil
			}
			if d.buf[d.pos] != 'u' {
				return false, d.errToken(d.escPos, d.esc[:6])
			}
			d.esc[7] = 'u'
			d.escLen = 8
			d.hexNeed = 4
			d.pos++
			d.state = stateStringUnicode

		case stateStringMultibyte:
			for d.mbLen < d.mbNeed && d.pos < len(d.buf) {
				b := d.buf[d.pos]
				if !checkMultibyte(d.mb[0], d.mbLen, b) {
					return false, errMultibyte(d.mbPos, d.mb[0])
				}
				d.mb[d.mbLen] = b
				d.mbLen++
				d.pos++
			}
			if d.mbLen < d.mbNeed {
				return true, nil
			}
			d.str = append(d.str, d.mb[:d.mbNeed]...)
			d.mbLen, d.mbNeed = 0, 0
			d.state = stateString
		}
	}
}

// finishEscape classifies the code point spelled by the four hex digits just
// collected. Surrogate halves are paired here; every orphan form is a token
// error carrying the literal source bytes.
func (d *Decoder) finishEscape() error {
	var r rune
	for _, c := range d.esc[d.escLen-4 : d.escLen] {
		v := hexTable[c]
		if v == notHex {
			if d.escLen == 6 {
				return d.errToken(d.escPos, d.esc[:6])
			}
			return d.errToken(d.escPos2, d.esc[6:12])
		}
		r = r<<4 | rune(v)
	}
	if d.escLen == 6 {
		switch {
		case r >= 0xD800 && r <= 0xDBFF:
			d.hi = r
			d.state = stateStringSurrogate
		case r >= 0xDC00 && r <= 0xDFFF:
			return d.errToken(d.escPos, d.esc[:6])
		default:
			d.str = utf8.AppendRune(d.str, r)
			d.state = stateString
		}
		return nil
	}
	// second half of a surrogate pair
	if r < 0xDC00 || r > 0xDFFF {
		return d.errToken(d.escPos, d.esc[:12])
	}
	r = 0x10000 + (d.hi-0xD800)<<10 + (r - 0xDC00)
	d.hi = 0
	d.str = utf8.AppendRune(d.str, r)
	d.state = stateString
	return nil
}

// finishString emits the completed string: the accumulator (if active) plus
// the final unescaped run. Keys go through the key transform; values are
// handed to the structural driver.
func (d *Decoder) finishString(seg []byte) error {
	raw := seg
	if d.strEsc {
		d.str = append(d.str, seg...)
		raw = d.str
	}
	if d.inKey {
		key, err := d.keys(raw)
		if err != nil {
			return err
		}
		d.inKey = false
		d.stack[len(d.stack)-1].key = key
		d.state = stateObjectColon
		return nil
	}
	d.complete(string(raw))
	return nil
}
