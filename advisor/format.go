package advisor

import (
	"io"
	"strconv"
	"strings"

	"github.com/AydenZK/fuel-price-fcast/stats"
)

// Format renders a recommendation as the report
//
//	Recommended Differencing:
//	ADF: 1
//	KPSS: 1
//	PP: 1
//
// Unavailable entries print as "n/a". When tests are given only those lines
// are written, in the order given.
func Format(rec Recommendation, tests ...stats.TestType) string {
	if len(tests) == 0 {
		tests = Tests
	}
	var b strings.Builder
	b.WriteString("Recommended Differencing:\n")
	for _, test := range tests {
		b.WriteString(test.Label())
		b.WriteString(": ")
		if d := rec.Get(test); d == Unavailable {
			b.WriteString("n/a")
		} else {
			b.WriteString(strconv.Itoa(d))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Fprint writes the formatted recommendation to w.
func Fprint(w io.Writer, rec Recommendation, tests ...stats.TestType) error {
	_, err := io.WriteString(w, Format(rec, tests...))
	return err
}
