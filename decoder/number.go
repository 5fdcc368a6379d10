package decoder

import (
	"errors"
	"strconv"
)

func (d *Decoder) startNumber(s state) {
	d.numStart = d.abs(d.pos)
	d.numLocal = d.pos
	d.pos++
	d.state = s
}

// scanNumber advances through the number grammar
//
//	-? ( 0 | [1-9][0-9]* ) ( . [0-9]+ )? ( [eE] [+-]? [0-9]+ )?
//
// until a terminator byte ends the token, the chunk runs out, or a byte
// violates the grammar. The terminator is left unconsumed for the structural
// driver to re-dispatch.
func (d *Decoder) scanNumber() (more bool, err error) {
	for d.pos < len(d.buf) {
		b := d.buf[d.pos]
		switch d.state {
		case stateNumMinus:
			switch {
			case b == '0':
				d.state = stateNumZero
			case b >= '1' && b <= '9':
				d.state = stateNumInt
			default:
				return false, d.errByteAt(d.pos)
			}
		case stateNumZero:
			switch {
			case b == '.':
				d.state = stateNumDot
			case b == 'e' || b == 'E':
				d.state = stateNumExp
			default:
				// a digit here is not a number error: the single zero is the
				// value and the digit is judged by the enclosing context
				return false, d.emitNumberHere()
			}
		case stateNumInt:
			switch {
			case b >= '0' && b <= '9':
			case b == '.':
				d.state = stateNumDot
			case b == 'e' || b == 'E':
				d.state = stateNumExp
			default:
				return false, d.emitNumberHere()
			}
		case stateNumDot:
			if b < '0' || b > '9' {
				return false, d.errByteAt(d.pos)
			}
			d.state = stateNumFrac
		case stateNumFrac:
			switch {
			case b >= '0' && b <= '9':
			case b == 'e' || b == 'E':
				d.state = stateNumExp
			default:
				return false, d.emitNumberHere()
			}
		case stateNumExp:
			switch {
			case b >= '0' && b <= '9':
				d.state = stateNumExpDigits
			case b == '+' || b == '-':
				d.state = stateNumExpSign
			default:
				return false, d.errByteAt(d.pos)
			}
		case stateNumExpSign:
			if b < '0' || b > '9' {
				return false, d.errByteAt(d.pos)
			}
			d.state = stateNumExpDigits
		case stateNumExpDigits:
			if b < '0' || b > '9' {
				return false, d.emitNumberHere()
			}
		}
		d.pos++
	}
	// chunk exhausted mid-token: carry the partial token over
	d.num = append(d.num, d.buf[d.numLocal:]...)
	return true, nil
}

// emitNumberHere converts the token ending at the current position. The fast
// case slices the chunk directly; only tokens that crossed a chunk boundary
// touch the carry buffer.
func (d *Decoder) emitNumberHere() error {
	tok := d.buf[d.numLocal:d.pos]
	if len(d.num) > 0 {
		d.num = append(d.num, tok...)
		tok = d.num
	}
	return d.emitNumber(tok)
}

// emitNumber converts tok according to the sub-state the token ended in and
// hands the value to the structural driver. Integer tokens that overflow
// int64 widen to float64; tokens the float parser rejects outright become
// token errors carrying the original source slice.
func (d *Decoder) emitNumber(tok []byte) error {
	var v any
	if d.state == stateNumZero || d.state == stateNumInt {
		n, err := strconv.ParseInt(string(tok), 10, 64)
		switch {
		case err == nil:
			v = n
		case !errors.Is(err, strconv.ErrRange):
			return d.errToken(d.numStart, tok)
		}
	}
	if v == nil {
		f, err := strconv.ParseFloat(string(tok), 64)
		if err != nil {
			return d.errToken(d.numStart, tok)
		}
		v = f
	}
	d.num = d.num[:0]
	d.complete(v)
	return nil
}
