// Package templates file: templates/funcs.go
package templates

import (
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Funcs returns the helpers available to every page.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatINR":  FormatINR,
		"formatDate": formatDate,
		"stars":      stars,
		"ratings":    func() []string { return []string{"1", "2", "3", "4", "5"} },
		"add":        func(a, b int) int { return a + b },
		"barWidth":   barWidth,
		"initial":    initial,
		"truncate":   truncate,
		"telURL":     telURL,
	}
}

// FormatINR formats an amount the en-IN way: ₹1,23,456.50
func FormatINR(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	// last three digits, then groups of two
	var groups []string
	if len(whole) > 3 {
		head, tail := whole[:len(whole)-3], whole[len(whole)-3:]
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		groups = append([]string{head}, groups...)
		groups = append(groups, tail)
	} else {
		groups = []string{whole}
	}
	return sign + "₹" + strings.Join(groups, ",") + "." + frac
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2 Jan 2006")
}

// stars renders a 1..5 rating as filled and empty stars.
func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// barWidth is n as a percentage of max, for the chart bars.
func barWidth(n, max int) int {
	if max <= 0 {
		return 0
	}
	return n * 100 / max
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "…"
}

// telURL marks a tel: link as safe; html/template rejects the scheme otherwise.
func telURL(link string) template.URL {
	if !strings.HasPrefix(link, "tel:") {
		return "#"
	}
	return template.URL(link) // #nosec G203 built from digits and the stored phone
}
