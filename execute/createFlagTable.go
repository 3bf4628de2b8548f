//Ascii table of the flags of a list of ProcessedFiles
//go:build !i18nops_runtime_only

package execute

import (
	"sort"
	"strings"
)

// CreateFlagTable returns an aligned ascii table of which flags are set on which locales.
//
// The first 2 rows are the header: each used flag’s 4 letter ProcessedFileFlagNames.ShortName split over 2 rows.
// Then there is 1 row per locale, sorted by identifier, with a “*” under each flag it has.
func (list ProcessedFileList) CreateFlagTable() []string {
	const cellWidth = 2

	//Only flags set on at least 1 locale get a column
	var combined ProcessedFileFlag
	localeWidth := cellWidth
	for locale, pf := range list {
		combined |= pf.Flags
		localeWidth = max(localeWidth, len(locale))
	}
	var columns []ProcessedFileFlagName
	for _, fn := range ProcessedFileFlagNames {
		if combined&fn.Flag != 0 {
			columns = append(columns, fn)
		}
	}

	//Rows are “|locale|cell|cell|…|”
	row := func(first string, cell func(fn ProcessedFileFlagName) string) string {
		var sb strings.Builder
		sb.WriteByte('|')
		sb.WriteString(first)
		sb.WriteString(strings.Repeat(" ", localeWidth-len(first)))
		sb.WriteByte('|')
		for _, fn := range columns {
			sb.WriteString(cell(fn))
			sb.WriteByte('|')
		}
		return sb.String()
	}

	ret := make([]string, 0, len(list)+2)
	for half := 0; half < 2; half++ {
		ret = append(ret, row("", func(fn ProcessedFileFlagName) string {
			return string(fn.ShortName[half*cellWidth : (half+1)*cellWidth])
		}))
	}

	locales := getMapKeys(list)
	sort.Strings(locales)
	for _, locale := range locales {
		flags := list[locale].Flags
		ret = append(ret, row(locale, func(fn ProcessedFileFlagName) string {
			return cond(flags&fn.Flag != 0, "* ", "  ")
		}))
	}

	return ret
}
