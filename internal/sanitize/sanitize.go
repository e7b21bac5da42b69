// Package sanitize rewrites filesystem entry names into names that are safe
// for SMB/Windows-compatible storage.
//
// Clean is a total, pure function: it never fails and has no side effects
// beyond returning diagnostic warnings alongside the cleaned name. Names that
// are already safe are returned byte-identical (the fast path), which is what
// makes the function idempotent.
package sanitize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Placeholder names used when cleaning leaves nothing usable behind.
const (
	PlaceholderFile    = "file"
	PlaceholderUnnamed = "unnamed_file"
)

// smbInvalid is the set of characters forbidden by SMB naming rules.
const smbInvalid = `\/:*?"<>|+[]`

var (
	// reExt matches the trailing segment that plausibly marks a real
	// file extension (last period followed by alphanumerics only).
	reExt = regexp.MustCompile(`\.[A-Za-z0-9]+$`)

	// reHyphenBeforeExt matches a hyphen run (optionally preceded by a
	// space) sitting directly in front of the extension: "name-.ext".
	reHyphenBeforeExt = regexp.MustCompile(` ?-+(\.[A-Za-z0-9]+)$`)

	// reSpaceBeforeExt matches spaces directly in front of the extension.
	reSpaceBeforeExt = regexp.MustCompile(` +(\.[A-Za-z0-9]+)$`)

	reMultiPeriod = regexp.MustCompile(`\.{2,}`)
	reMultiHyphen = regexp.MustCompile(`-{2,}`)

	// reReserved matches legacy Windows device names (stem only).
	reReserved = regexp.MustCompile(`(?i)^(CON|PRN|AUX|NUL|COM[1-9][0-9]?|LPT[1-9][0-9]?)$`)
)

// isSMBInvalid reports whether r is forbidden by SMB naming rules.
func isSMBInvalid(r rune) bool {
	return strings.ContainsRune(smbInvalid, r)
}

// isProblemRune reports whether r is a control character, a Private-Use-Area
// code point, or a combining diacritic. These render unpredictably (or not at
// all) on SMB clients.
func isProblemRune(r rune) bool {
	switch {
	case r <= 0x1F || r == 0x7F:
		return true
	case r >= 0xE000 && r <= 0xF8FF:
		return true
	case r >= 0x0300 && r <= 0x036F:
		return true
	}
	return false
}

// isDashVariant reports whether r is an en dash, em dash, or horizontal bar.
func isDashVariant(r rune) bool {
	return r == 0x2013 || r == 0x2014 || r == 0x2015
}

// isSpaceVariant reports whether r is any whitespace code point the cleaner
// normalizes: plain space, tab, no-break space, the U+2000 block, and the
// line/paragraph separators.
func isSpaceVariant(r rune) bool {
	switch {
	case r == ' ' || r == '\t' || r == 0xA0:
		return true
	case r >= 0x2000 && r <= 0x200B:
		return true
	case r == 0x2028 || r == 0x2029:
		return true
	}
	return false
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// SplitExt splits name into (base, extension) at the last period that
// plausibly marks a real extension. The extension includes the period.
// Names without a plausible extension return ext == "".
func SplitExt(name string) (base, ext string) {
	if loc := reExt.FindStringIndex(name); loc != nil {
		// Leading periods are hidden-file markers, not separators, so a
		// base consisting only of periods means there is no extension.
		if base := name[:loc[0]]; strings.Trim(base, ".") != "" {
			return base, name[loc[0]:]
		}
	}
	return name, ""
}

// IsReserved reports whether name's stem (extension ignored) matches a
// legacy Windows device name, case-insensitively.
func IsReserved(name string) bool {
	stem, _ := SplitExt(name)
	return reReserved.MatchString(stem)
}

// hasRun reports whether name contains two or more consecutive runes
// matching pred.
func hasRun(name string, pred func(rune) bool) bool {
	prev := false
	for _, r := range name {
		cur := pred(r)
		if cur && prev {
			return true
		}
		prev = cur
	}
	return false
}

// NeedsCleaning reports whether name exhibits any disqualifying condition.
// Clean returns a name unchanged exactly when this returns false.
func NeedsCleaning(name string) bool {
	if name == "" {
		return true
	}
	if strings.ContainsFunc(name, isSMBInvalid) || strings.ContainsFunc(name, isProblemRune) {
		return true
	}
	if strings.ContainsRune(name, 0xA0) {
		return true
	}
	if IsReserved(name) {
		return true
	}
	if strings.Contains(name, "..") || strings.Contains(name, "--") {
		return true
	}
	if hasRun(name, isDashVariant) || hasRun(name, isSpaceVariant) {
		return true
	}
	runes := []rune(name)
	first, last := runes[0], runes[len(runes)-1]
	if isSpaceVariant(first) || first == '-' {
		return true
	}
	if isSpaceVariant(last) || (!isAlnum(last) && last != ')') {
		return true
	}
	if strings.Contains(name, " .") {
		return true
	}
	return false
}

// collapseSpaces converts every whitespace variant to a plain space,
// collapses runs to a single space, and trims both ends.
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if isSpaceVariant(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Clean returns a cleaned rendition of name safe for SMB storage, plus any
// diagnostic warnings produced along the way. Warnings are informational
// only; Clean never fails.
//
// Already-safe names are returned byte-identical.
func Clean(name string) (string, []string) {
	if name == "" {
		return PlaceholderUnnamed, []string{"empty filename, using " + PlaceholderUnnamed}
	}
	if !NeedsCleaning(name) {
		return name, nil
	}

	var warnings []string
	s := name

	// 1. No-break spaces become regular spaces.
	s = strings.Map(func(r rune) rune {
		if r == 0xA0 {
			return ' '
		}
		return r
	}, s)

	// 2. A leading "*" keeps its sort-to-top intent as "_".
	if strings.HasPrefix(s, "*") {
		s = "_" + s[1:]
	}

	// 3. Remaining SMB-invalid and problem characters become hyphens.
	s = strings.Map(func(r rune) rune {
		if isSMBInvalid(r) || isProblemRune(r) {
			return '-'
		}
		return r
	}, s)

	// 4. Unicode dash variants become plain hyphens.
	s = strings.Map(func(r rune) rune {
		if isDashVariant(r) {
			return '-'
		}
		return r
	}, s)

	// 5. Hyphen runs collapse to one.
	s = reMultiHyphen.ReplaceAllString(s, "-")

	// 6. A hyphen run in front of the extension is dropped, absorbing a
	// preceding space: "name -.ext" -> "name.ext".
	s = reHyphenBeforeExt.ReplaceAllString(s, "$1")

	// 7. Leading hyphens and whitespace go; leading periods stay so hidden
	// files remain hidden.
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return r == '-' || isSpaceVariant(r)
	})

	// 8. A trailing hyphen introduced by step 3 is stripped. One the
	// original already carried is left for the base-name pass below.
	if strings.HasSuffix(s, "-") && !strings.HasSuffix(name, "-") {
		s = strings.TrimRight(s, "-")
	}

	// 9-10. Split off the extension and normalize whitespace in the base.
	base, ext := SplitExt(s)
	base = collapseSpaces(base)

	// 11. Nothing left: fall back to a placeholder.
	if base == "" {
		warnings = append(warnings, "filename "+strconv.Quote(name)+" became empty after cleaning")
		if ext != "" {
			return PlaceholderFile + ext, warnings
		}
		return PlaceholderUnnamed, warnings
	}

	// 12. Period normalization, skipped for hidden files.
	if !strings.HasPrefix(base, ".") {
		for strings.Contains(base, " .") {
			base = strings.ReplaceAll(base, " .", ".")
		}
		base = reMultiPeriod.ReplaceAllString(base, ".")
	}

	// 13. Trailing junk goes; a closing parenthesis may stay.
	base = strings.TrimRightFunc(base, func(r rune) bool {
		return !isAlnum(r) && r != ')'
	})

	// 14. Emptiness re-check after the trailing-junk pass.
	if base == "" {
		warnings = append(warnings, "filename "+strconv.Quote(name)+" became empty after cleaning")
		if ext != "" {
			return PlaceholderFile + ext, warnings
		}
		return PlaceholderUnnamed, warnings
	}

	// 15-16. Belt and braces for trailing periods and hyphens.
	base = strings.TrimSuffix(base, ".")
	base = strings.TrimRight(base, "-")

	// 17. Recombine, dropping any space left in front of the extension.
	s = reSpaceBeforeExt.ReplaceAllString(base+ext, "$1")

	// 18. Final trim.
	s = strings.TrimFunc(s, isSpaceVariant)

	// 19. Reserved device names get an escape underscore on the stem, so
	// "CON.txt" becomes "CON_.txt".
	if IsReserved(s) {
		stem, sExt := SplitExt(s)
		s = stem + "_" + sExt
	}

	return s, warnings
}
