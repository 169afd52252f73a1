package utils

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"unicode"
)

var restdbSourceDir string

func init() {
	_, file, _, _ := runtime.Caller(0)
	// compatible solution to get restdb source directory with various operating systems
	restdbSourceDir = sourceDir(file)
}

func sourceDir(file string) string {
	dir := filepath.Dir(file)
	dir = filepath.Dir(dir)

	s := filepath.Dir(dir)
	if filepath.Base(s) != "restdb" {
		s = dir
	}
	return filepath.ToSlash(s) + "/"
}

// FileWithLineNum return the file name and line number of the current file
func FileWithLineNum() string {
	// skip the first two callers, they are always restdb internal
	for i := 2; i < 15; i++ {
		_, file, line, ok := runtime.Caller(i)
		if ok && (!strings.HasPrefix(file, restdbSourceDir) || strings.HasSuffix(file, "_test.go")) {
			return file + ":" + strconv.FormatInt(int64(line), 10)
		}
	}

	return ""
}

// IsValidDBNameChar reports whether c may appear in a table or column name.
func IsValidDBNameChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsNumber(c) || c == '_' || c == '$' || c == '@'
}

// IsValidDBName reports whether name is non-empty and contains only
// characters accepted by IsValidDBNameChar.
func IsValidDBName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		if !IsValidDBNameChar(c) {
			return false
		}
	}
	return true
}

// CheckTruth check string true or not
func CheckTruth(vals ...string) bool {
	for _, val := range vals {
		if val != "" && !strings.EqualFold(val, "false") && !isAllZero(val) {
			return true
		}
	}
	return false
}

// isAllZero reports whether val is a numeric string whose digits are all
// zero, e.g. "0", "000", "0.0", "-0".
func isAllZero(val string) bool {
	rest := strings.TrimLeft(val, "+-")
	if rest == "" || len(val)-len(rest) > 1 {
		return false
	}
	sawZero := false
	sawDot := false
	for _, c := range rest {
		switch {
		case c == '0':
			sawZero = true
		case c == '.' && !sawDot:
			sawDot = true
		default:
			return false
		}
	}
	return sawZero
}
