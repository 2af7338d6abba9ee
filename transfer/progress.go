package transfer

import "io"

// progressReader reports how far through a body of known size a reader has
// advanced, as an integer percentage.
type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	onChange func(percent int)
}

func newProgressReader(r io.Reader, total int64, onChange func(percent int)) *progressReader {
	return &progressReader{r: r, total: total, onChange: onChange}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 && p.total > 0 && p.onChange != nil {
		p.read += int64(n)
		percent := int(p.read * 100 / p.total)
		if percent > 100 {
			percent = 100
		}
		p.onChange(percent)
	}
	return n, err
}
